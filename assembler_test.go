package chapterquiz

import (
	"errors"
	"reflect"
	"testing"
)

func defBinding(surface string) TemplateBinding {
	return TemplateBinding{
		Template: QuestionTemplate{Kind: KindDefinition, Arity: 1, Pattern: "Што е %s?"},
		Concepts: []Concept{{Surface: surface, Normalized: normalizeText(surface)}},
	}
}

func someDistractors(texts ...string) []Distractor {
	out := make([]Distractor, len(texts))
	for i, s := range texts {
		out[i] = Distractor{Text: s, Strategy: StrategyGeneric, Plausibility: 0.2}
	}
	return out
}

func TestAssembleDeterministic(t *testing.T) {
	qa := NewQuestionAssembler(DefaultConfig())
	b := defBinding("Фотосинтезата")
	correct := "Фотосинтезата е процес со кој растенијата произведуваат храна"
	ds := someDistractors("прво погрешно тврдење", "второ погрешно тврдење", "трето погрешно тврдење")

	first, err := qa.Assemble(b, correct, ds, 3)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	second, err := qa.Assemble(b, correct, ds, 3)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("assembly is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestAssembleSingleCorrectAnswer(t *testing.T) {
	qa := NewQuestionAssembler(DefaultConfig())
	correct := "Фотосинтезата е процес со кој растенијата произведуваат храна"

	item, err := qa.Assemble(defBinding("Фотосинтезата"), correct,
		someDistractors("прво погрешно тврдење", "второ погрешно тврдење", "трето погрешно тврдење"), 3)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if len(item.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(item.Options))
	}
	var hits int
	for i, o := range item.Options {
		if o == correct {
			hits++
			if i != item.CorrectAnswer {
				t.Fatalf("CorrectAnswer is %d, but the correct text sits at %d", item.CorrectAnswer, i)
			}
		}
	}
	if hits != 1 {
		t.Fatalf("correct answer appears %d times in options", hits)
	}
}

func TestAssemblePromptLowercasesConcept(t *testing.T) {
	qa := NewQuestionAssembler(DefaultConfig())

	item, err := qa.Assemble(defBinding("Фотосинтезата"), "точен одговор за поимот",
		someDistractors("погрешен одговор за поимот"), 3)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if item.Text != "Што е фотосинтезата?" {
		t.Fatalf("unexpected prompt: %q", item.Text)
	}
}

func TestAssembleRejectsShortPrompt(t *testing.T) {
	qa := NewQuestionAssembler(DefaultConfig())

	_, err := qa.Assemble(defBinding("х"), "точен одговор за поимот",
		someDistractors("погрешен одговор за поимот"), 3)
	if !errors.Is(err, ErrAssemblyRejected) {
		t.Fatalf("expected ErrAssemblyRejected, got %v", err)
	}
}

func TestAssembleRejectsEmptyCorrectAnswer(t *testing.T) {
	qa := NewQuestionAssembler(DefaultConfig())

	_, err := qa.Assemble(defBinding("Фотосинтезата"), "  ",
		someDistractors("погрешен одговор за поимот"), 3)
	if !errors.Is(err, ErrAssemblyRejected) {
		t.Fatalf("expected ErrAssemblyRejected, got %v", err)
	}
}

func TestAssembleRejectsNoDistractors(t *testing.T) {
	qa := NewQuestionAssembler(DefaultConfig())

	_, err := qa.Assemble(defBinding("Фотосинтезата"), "точен одговор за поимот", nil, 3)
	if !errors.Is(err, ErrAssemblyRejected) {
		t.Fatalf("expected ErrAssemblyRejected, got %v", err)
	}
}

func TestAssembleRejectsDuplicateOptions(t *testing.T) {
	qa := NewQuestionAssembler(DefaultConfig())
	correct := "Точен одговор за поимот"

	_, err := qa.Assemble(defBinding("Фотосинтезата"), correct,
		someDistractors("точен одговор за поимот!"), 3)
	if !errors.Is(err, ErrAssemblyRejected) {
		t.Fatalf("expected ErrAssemblyRejected for a normalized duplicate, got %v", err)
	}
}

func TestAssembleStableItemID(t *testing.T) {
	qa := NewQuestionAssembler(DefaultConfig())
	ds := someDistractors("погрешен одговор за поимот")

	a, err := qa.Assemble(defBinding("Фотосинтезата"), "точен одговор за поимот", ds, 3)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	b, err := qa.Assemble(defBinding("Фотосинтезата"), "точен одговор за поимот", ds, 7)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if a.ID == "" || a.ID != b.ID {
		t.Fatalf("item ID should depend on the prompt only, got %q and %q", a.ID, b.ID)
	}
}
