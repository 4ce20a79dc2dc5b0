package chapterquiz

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"
)

// ErrAssemblyRejected marks a candidate item that failed validation. The
// generator skips the item; it never aborts the batch.
var ErrAssemblyRejected = errors.New("assembly rejected")

// QuestionAssembler combines a template binding, its correct answer and a set
// of distractors into a validated QuizItem.
type QuestionAssembler struct {
	cfg Config
}

// NewQuestionAssembler creates an assembler with the given limits.
func NewQuestionAssembler(cfg Config) *QuestionAssembler {
	return &QuestionAssembler{cfg: cfg}
}

// Render produces the prompt for a binding.
func (b TemplateBinding) Render() string {
	args := make([]any, len(b.Concepts))
	for i, c := range b.Concepts {
		args[i] = promptForm(c.Surface)
	}
	return fmt.Sprintf(b.Template.Pattern, args...)
}

// AnswerText returns the correct answer for a binding: the supporting
// sentence when one was found, otherwise the concept's defining sentence,
// otherwise a neutral statement naming the concept(s).
func (b TemplateBinding) AnswerText() string {
	if b.Evidence != "" {
		return b.Evidence
	}
	for _, c := range b.Concepts {
		if c.Definition != "" {
			return c.Definition
		}
	}
	switch len(b.Concepts) {
	case 1:
		return fmt.Sprintf("%s е клучен поим објаснет во ова поглавје", b.Concepts[0].Surface)
	case 2:
		return fmt.Sprintf("%s и %s се поврзани поими опишани во ова поглавје",
			promptForm(b.Concepts[0].Surface), promptForm(b.Concepts[1].Surface))
	default:
		return ""
	}
}

// Assemble renders the prompt, merges the correct answer with the
// distractors, shuffles option order with a seed derived from the prompt and
// validates the result. Repeated assembly of the same inputs produces an
// identical item.
func (qa *QuestionAssembler) Assemble(b TemplateBinding, correct string, distractors []Distractor, chapter int) (QuizItem, error) {
	prompt := b.Render()
	if utf8.RuneCountInString(prompt) < qa.cfg.MinPromptLen {
		return QuizItem{}, fmt.Errorf("%w: prompt too short: %q", ErrAssemblyRejected, prompt)
	}
	if strings.TrimSpace(correct) == "" {
		return QuizItem{}, fmt.Errorf("%w: empty correct answer for %q", ErrAssemblyRejected, prompt)
	}

	options := make([]string, 0, len(distractors)+1)
	options = append(options, correct)
	for _, d := range distractors {
		options = append(options, d.Text)
	}
	if len(options) < 2 {
		return QuizItem{}, fmt.Errorf("%w: no distractors for %q", ErrAssemblyRejected, prompt)
	}
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		n := normalizeText(o)
		if seen[n] {
			return QuizItem{}, fmt.Errorf("%w: duplicate option %q", ErrAssemblyRejected, o)
		}
		seen[n] = true
	}

	r := rand.New(rand.NewSource(promptSeed(prompt)))
	r.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	correctIx := 0
	for i, o := range options {
		if o == correct {
			correctIx = i
			break
		}
	}

	return QuizItem{
		ID:            itemID(prompt),
		Text:          prompt,
		Options:       options,
		CorrectAnswer: correctIx,
		Kind:          b.Template.Kind,
		Chapter:       chapter,
	}, nil
}
