package chapterquiz

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Generator produces a QuizSet from chapter text. Implementations must emit
// items with pairwise-distinct options and a single correct answer, so the
// web layer can treat every source interchangeably.
type Generator interface {
	GenerateQuiz(ctx context.Context, req GenerationRequest) (*QuizSet, error)
}

// RuleBasedGenerator is the pattern-matching engine: concept extraction,
// template selection, distractor synthesis and assembly, with no external
// services. It holds no mutable state, so one instance is safe for concurrent
// use across requests.
type RuleBasedGenerator struct {
	cfg       Config
	extractor *ConceptExtractor
	selector  *TemplateSelector
	synth     *DistractorSynthesizer
	assembler *QuestionAssembler
}

// NewRuleBasedGenerator wires the engine components with one shared config.
func NewRuleBasedGenerator(cfg Config) *RuleBasedGenerator {
	return &RuleBasedGenerator{
		cfg:       cfg,
		extractor: NewConceptExtractor(cfg),
		selector:  NewTemplateSelector(cfg),
		synth:     NewDistractorSynthesizer(cfg),
		assembler: NewQuestionAssembler(cfg),
	}
}

// GenerateQuiz generates up to req.NumQuestions items for one chapter. A
// chapter below the content threshold, or one where every candidate item
// fails validation, yields an empty QuizSet and a nil error; the caller is
// expected to tell the user fewer questions were available than requested.
func (g *RuleBasedGenerator) GenerateQuiz(ctx context.Context, req GenerationRequest) (*QuizSet, error) {
	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = 5
	}

	set := &QuizSet{
		ID:           uuid.NewString(),
		Chapter:      req.Chapter,
		ChapterTitle: req.ChapterTitle,
		CreatedAt:    time.Now(),
	}

	concepts := g.extractor.Extract(req.Content, g.cfg.MaxConcepts)
	if len(concepts) == 0 {
		VerboseLog("chapter %d: insufficient content, returning empty quiz", req.Chapter)
		return set, nil
	}

	bindings := g.selector.Select(req.Content, concepts)
	seenPrompts := make(map[string]bool)

	for _, b := range bindings {
		if len(set.Items) >= numQuestions {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		correct := b.AnswerText()
		distractors, filled := g.synth.Synthesize(correct, concepts, g.cfg.OptionCount-1)

		item, err := g.assembler.Assemble(b, correct, distractors, req.Chapter)
		if err != nil {
			VerboseLog("skipping item: %v", err)
			continue
		}
		if seenPrompts[item.Text] {
			continue
		}
		seenPrompts[item.Text] = true
		// Warn only for items that made it into the set; a rejected or
		// duplicate item carries no warning.
		if !filled {
			set.Warnings = append(set.Warnings, fmt.Sprintf(
				"%s: only %d of %d distractors available",
				b.Concepts[0].Surface, len(distractors), g.cfg.OptionCount-1))
		}
		set.Items = append(set.Items, item)
	}

	log.Printf("chapter %d: generated %d/%d questions from %d concepts",
		req.Chapter, len(set.Items), numQuestions, len(concepts))
	return set, nil
}
