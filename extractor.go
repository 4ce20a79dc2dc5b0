package chapterquiz

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ConceptExtractor scans normalized chapter text and produces a ranked set of
// terms worth quizzing on. It expects pre-cleaned input: OCR noise removal and
// script conversion happen upstream.
type ConceptExtractor struct {
	cfg Config
}

// NewConceptExtractor creates an extractor with the given weights.
func NewConceptExtractor(cfg Config) *ConceptExtractor {
	return &ConceptExtractor{cfg: cfg}
}

type candidate struct {
	surface string
	norm    string
	count   int
	first   int
	def     string
}

// copulas mark a defining sentence: "<term> е/се <rest>".
var copulas = map[string]bool{
	"е": true, "се": true, "претставува": true, "значи": true,
	"is": true, "are": true, "means": true,
}

// Extract returns up to maxConcepts concepts ranked by salience, ties broken
// by first occurrence. It is deterministic for identical input. Text below
// the minimum token threshold yields an empty result, not an error.
func (ce *ConceptExtractor) Extract(text string, maxConcepts int) []Concept {
	if maxConcepts <= 0 {
		maxConcepts = ce.cfg.MaxConcepts
	}
	toks := tokenize(text)
	if len(toks) < ce.cfg.MinTokens {
		return nil
	}

	// Count candidate terms in first-seen order so every later step iterates
	// deterministically.
	byNorm := make(map[string]*candidate)
	var order []string
	for _, t := range toks {
		if utf8.RuneCountInString(t.text) < 4 {
			continue
		}
		norm := strings.ToLower(t.text)
		if stopwords[norm] {
			continue
		}
		c, ok := byNorm[norm]
		if !ok {
			c = &candidate{surface: t.text, norm: norm, first: t.offset}
			byNorm[norm] = c
			order = append(order, norm)
		}
		c.count++
	}
	if len(order) == 0 {
		return nil
	}

	// Attach defining sentences: the first sentence of the form
	// "<term> е/се <explanation>" wins for each term.
	for _, s := range splitSentences(text) {
		st := tokenize(s.text)
		for i := 0; i+2 < len(st); i++ {
			if !copulas[strings.ToLower(st[i+1].text)] {
				continue
			}
			c, ok := byNorm[strings.ToLower(st[i].text)]
			if ok && c.def == "" {
				c.def = s.text
			}
		}
	}

	// Cluster inflected forms of the same word into the earliest candidate.
	kept := make([]*candidate, 0, len(order))
	for _, norm := range order {
		c := byNorm[norm]
		merged := false
		for _, k := range kept {
			if nearDuplicate(k.norm, c.norm) {
				k.count += c.count
				if k.def == "" {
					k.def = c.def
				}
				merged = true
				break
			}
		}
		if !merged {
			kept = append(kept, c)
		}
	}

	textLen := float64(len(text))
	concepts := make([]Concept, 0, len(kept))
	for _, c := range kept {
		score := ce.cfg.FrequencyWeight * float64(c.count) *
			(1 + ce.cfg.PositionWeight*(1-float64(c.first)/textLen))
		if c.def != "" {
			score += ce.cfg.DefinitionBonus
		}
		concepts = append(concepts, Concept{
			Surface:     c.surface,
			Normalized:  c.norm,
			Score:       score,
			FirstOffset: c.first,
			Definition:  c.def,
		})
	}

	sort.SliceStable(concepts, func(i, j int) bool {
		if concepts[i].Score != concepts[j].Score {
			return concepts[i].Score > concepts[j].Score
		}
		if concepts[i].FirstOffset != concepts[j].FirstOffset {
			return concepts[i].FirstOffset < concepts[j].FirstOffset
		}
		return concepts[i].Normalized < concepts[j].Normalized
	})

	if len(concepts) > maxConcepts {
		concepts = concepts[:maxConcepts]
	}
	return concepts
}
