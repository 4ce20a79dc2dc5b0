package chapterquiz

import (
	"regexp"
	"sort"
	"strings"
)

// Question templates, grouped by kind. Several phrasings per kind keep
// generated quizzes from sounding repetitive; the variant for a concept is
// picked by a stable hash so repeated runs agree.
var templatesByKind = map[TemplateKind][]QuestionTemplate{
	KindDefinition: {
		{Kind: KindDefinition, Arity: 1, Pattern: "Што е %s?"},
		{Kind: KindDefinition, Arity: 1, Pattern: "Како се дефинира %s?"},
		{Kind: KindDefinition, Arity: 1, Pattern: "Што се подразбира под %s?"},
	},
	KindCharacteristic: {
		{Kind: KindCharacteristic, Arity: 1, Pattern: "Кои се карактеристиките на %s?"},
		{Kind: KindCharacteristic, Arity: 1, Pattern: "Кои се својствата на %s?"},
	},
	KindFunction: {
		{Kind: KindFunction, Arity: 1, Pattern: "Како функционира %s?"},
		{Kind: KindFunction, Arity: 1, Pattern: "За што се користи %s?"},
	},
	KindCalculation: {
		{Kind: KindCalculation, Arity: 1, Pattern: "Како се пресметува %s?"},
		{Kind: KindCalculation, Arity: 1, Pattern: "Која е формулата за %s?"},
	},
	KindRelationship: {
		{Kind: KindRelationship, Arity: 2, Pattern: "Како е поврзано %s со %s?"},
		{Kind: KindRelationship, Arity: 2, Pattern: "Каква е врската меѓу %s и %s?"},
	},
}

var calcCueRe = regexp.MustCompile(`[0-9=]|формула|пресмет|равенка|изнесува`)

var functionCues = []string{"функционира", "работи", "се користи", "служи"}

// TemplateSelector maps ranked concepts to question templates using
// lightweight context cues from the chapter text.
type TemplateSelector struct {
	cfg Config
}

// NewTemplateSelector creates a selector with the given limits.
func NewTemplateSelector(cfg Config) *TemplateSelector {
	return &TemplateSelector{cfg: cfg}
}

// Select assigns one single-arity template per concept, then adds up to
// MaxRelationPairs relationship bindings for concepts that co-occur in the
// same paragraph, ranked by joint salience. A relationship template is never
// produced with fewer than two distinct concepts available.
func (ts *TemplateSelector) Select(text string, concepts []Concept) []TemplateBinding {
	if len(concepts) == 0 {
		return nil
	}
	sents := splitSentences(text)

	bindings := make([]TemplateBinding, 0, len(concepts)+ts.cfg.MaxRelationPairs)
	for _, c := range concepts {
		window := conceptWindow(sents, c)
		kind := classifyConcept(c, window)
		bindings = append(bindings, TemplateBinding{
			Template: pickTemplate(kind, c.Normalized),
			Concepts: []Concept{c},
			Evidence: evidenceFor(sents, c),
		})
	}

	if len(concepts) >= 2 && ts.cfg.MaxRelationPairs > 0 {
		bindings = append(bindings, ts.relationBindings(text, concepts)...)
	}
	return bindings
}

// conceptWindow joins the first few sentences mentioning the concept.
func conceptWindow(sents []sentence, c Concept) string {
	var parts []string
	for _, s := range sents {
		if strings.Contains(normalizeText(s.text), c.Normalized) {
			parts = append(parts, s.text)
			if len(parts) == 3 {
				break
			}
		}
	}
	return strings.Join(parts, " ")
}

// classifyConcept picks a template kind from context cues: numeric or
// procedural language favors calculation, list-like punctuation favors
// characteristic, a mechanism verb in the defining sentence favors function,
// and definition is the default.
func classifyConcept(c Concept, window string) TemplateKind {
	lw := strings.ToLower(window)
	if calcCueRe.MatchString(lw) {
		return KindCalculation
	}
	if strings.Count(window, ",") >= 2 || strings.Contains(window, ";") {
		return KindCharacteristic
	}
	ld := strings.ToLower(c.Definition)
	for _, cue := range functionCues {
		if strings.Contains(ld, cue) {
			return KindFunction
		}
	}
	return KindDefinition
}

func evidenceFor(sents []sentence, c Concept) string {
	if c.Definition != "" {
		return c.Definition
	}
	for _, s := range sents {
		if strings.Contains(normalizeText(s.text), c.Normalized) {
			return s.text
		}
	}
	return ""
}

type relationPair struct {
	a, b     int
	joint    float64
	evidence string
}

// relationBindings finds concept pairs sharing a paragraph and keeps the top
// pairs by joint salience, capped to avoid combinatorial blowup.
func (ts *TemplateSelector) relationBindings(text string, concepts []Concept) []TemplateBinding {
	paras := splitParagraphs(text)
	var pairs []relationPair
	for i := 0; i < len(concepts); i++ {
		for j := i + 1; j < len(concepts); j++ {
			ev, ok := coOccurrence(paras, concepts[i], concepts[j])
			if !ok {
				continue
			}
			if ev == "" {
				ev = concepts[i].Definition
			}
			pairs = append(pairs, relationPair{
				a:        i,
				b:        j,
				joint:    concepts[i].Score + concepts[j].Score,
				evidence: ev,
			})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		if pairs[i].joint != pairs[j].joint {
			return pairs[i].joint > pairs[j].joint
		}
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})
	if len(pairs) > ts.cfg.MaxRelationPairs {
		pairs = pairs[:ts.cfg.MaxRelationPairs]
	}

	out := make([]TemplateBinding, 0, len(pairs))
	for _, p := range pairs {
		a, b := concepts[p.a], concepts[p.b]
		out = append(out, TemplateBinding{
			Template: pickTemplate(KindRelationship, a.Normalized+"|"+b.Normalized),
			Concepts: []Concept{a, b},
			Evidence: p.evidence,
		})
	}
	return out
}

// coOccurrence reports whether both concepts appear in one paragraph and
// returns the first sentence mentioning both, when there is one.
func coOccurrence(paras []string, a, b Concept) (string, bool) {
	for _, p := range paras {
		np := normalizeText(p)
		if !strings.Contains(np, a.Normalized) || !strings.Contains(np, b.Normalized) {
			continue
		}
		for _, s := range splitSentences(p) {
			ns := normalizeText(s.text)
			if strings.Contains(ns, a.Normalized) && strings.Contains(ns, b.Normalized) {
				return s.text, true
			}
		}
		return "", true
	}
	return "", false
}

func pickTemplate(kind TemplateKind, key string) QuestionTemplate {
	variants := templatesByKind[kind]
	return variants[stableHash(key)%uint64(len(variants))]
}
