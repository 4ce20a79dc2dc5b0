package chapterquiz

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DistractorSynthesizer fabricates plausible wrong answers from the chapter's
// own concept pool, falling back to attribute perturbation and a generic pool
// when sibling concepts cannot fill the requested count.
type DistractorSynthesizer struct {
	cfg Config
}

// NewDistractorSynthesizer creates a synthesizer with the given plausibility
// weights.
func NewDistractorSynthesizer(cfg Config) *DistractorSynthesizer {
	return &DistractorSynthesizer{cfg: cfg}
}

// genericDistractors is the domain-neutral fallback pool. Entries must stay
// pairwise distinct under normalization.
var genericDistractors = []string{
	"Ова не е точна дефиниција за бараниот поим",
	"Ова тврдење не одговара на содржината од поглавјето",
	"Ниту едно од другите тврдења не го опишува поимот точно",
	"Ова својство се однесува на сосема друг поим",
	"Таквата појава не е опишана во ова поглавје",
}

// attributeFlips swaps a qualifier or unit to turn a correct statement into a
// superficially similar wrong one. Applied in both directions.
var attributeFlips = [][2]string{
	{"се зголемува", "се намалува"},
	{"се привлекуваат", "се одбиваат"},
	{"поголем", "помал"},
	{"побрзо", "побавно"},
	{"директно", "обратно"},
	{"позитив", "негатив"},
	{"њутни", "џули"},
	{"килограми", "грамови"},
	{"волти", "ампери"},
}

var numberRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// Synthesize returns up to count distractors for the given correct answer,
// most plausible first. The second result is false when even the generic pool
// could not fill the count. Every returned distractor differs from the
// correct answer and from each other under normalization.
func (ds *DistractorSynthesizer) Synthesize(correct string, pool []Concept, count int) ([]Distractor, bool) {
	if count <= 0 {
		return nil, true
	}

	var cands []Distractor
	for i, c := range pool {
		if c.Definition == "" {
			continue
		}
		cands = append(cands, Distractor{
			Text:         c.Definition,
			Strategy:     StrategySibling,
			Plausibility: ds.cfg.SiblingPlausibility - 0.01*float64(i),
		})
	}
	for i, alt := range perturb(correct) {
		cands = append(cands, Distractor{
			Text:         alt,
			Strategy:     StrategyPerturb,
			Plausibility: ds.cfg.PerturbPlausibility - 0.01*float64(i),
		})
	}
	for i, g := range genericDistractors {
		cands = append(cands, Distractor{
			Text:         g,
			Strategy:     StrategyGeneric,
			Plausibility: ds.cfg.GenericPlausibility - 0.01*float64(i),
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Plausibility > cands[j].Plausibility
	})

	seen := map[string]bool{normalizeText(correct): true}
	out := make([]Distractor, 0, count)
	for _, c := range cands {
		n := normalizeText(c.Text)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, c)
		if len(out) == count {
			break
		}
	}
	return out, len(out) == count
}

// perturb derives wrong statements from the correct one by altering a number
// or flipping a qualifier/unit.
func perturb(correct string) []string {
	var out []string
	if m := numberRe.FindString(correct); m != "" {
		if v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64); err == nil {
			alt := strconv.FormatFloat(v*2, 'f', -1, 64)
			if alt != m {
				out = append(out, strings.Replace(correct, m, alt, 1))
			}
		}
	}
	for _, f := range attributeFlips {
		for _, dir := range [][2]string{{f[0], f[1]}, {f[1], f[0]}} {
			if strings.Contains(correct, dir[0]) {
				out = append(out, strings.Replace(correct, dir[0], dir[1], 1))
			}
		}
	}
	return out
}
