package chapterquiz

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"
)

const physicsText = "Силата е влијание кое го менува движењето на телото. " +
	"Кога силата дејствува на тело, телото добива забрзување. " +
	"Масата е мерка за количеството материја во телото. " +
	"Поголема маса значи помало забрзување при иста сила.\n\n" +
	"Забрзувањето се пресметува со формулата a = F / m. " +
	"Силата се мери во њутни, а масата во килограми. " +
	"Триењето е сила која се спротивставува на движењето. " +
	"Триењето се зголемува со тежината на телото."

func TestGenerateQuizInsufficientContent(t *testing.T) {
	g := NewRuleBasedGenerator(DefaultConfig())

	set, err := g.GenerateQuiz(context.Background(), GenerationRequest{
		Chapter: 1,
		Content: "Сонцето е голема жолта ѕвезда.",
	})
	if err != nil {
		t.Fatalf("expected nil error for thin content, got %v", err)
	}
	if len(set.Items) != 0 {
		t.Fatalf("expected an empty quiz, got %d items", len(set.Items))
	}
	if set.ID == "" {
		t.Fatal("expected a quiz ID even for an empty quiz")
	}
}

func TestGenerateQuizPhotosynthesisScenario(t *testing.T) {
	g := NewRuleBasedGenerator(DefaultConfig())

	set, err := g.GenerateQuiz(context.Background(), GenerationRequest{
		Chapter:      3,
		ChapterTitle: "Фотосинтеза",
		Content:      photoText,
		NumQuestions: 1,
	})
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}
	if len(set.Items) != 1 {
		t.Fatalf("expected exactly 1 item, got %d", len(set.Items))
	}

	item := set.Items[0]
	if !strings.Contains(item.Text, "фотосинтез") {
		t.Fatalf("expected the top concept in the prompt, got %q", item.Text)
	}
	if item.Kind != KindDefinition {
		t.Fatalf("expected a definition question, got %s", item.Kind)
	}
	if len(item.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(item.Options))
	}
	if item.CorrectAnswer < 0 || item.CorrectAnswer >= len(item.Options) {
		t.Fatalf("correct answer index %d out of range", item.CorrectAnswer)
	}
	if !strings.Contains(item.Options[item.CorrectAnswer], "процес") {
		t.Fatalf("expected the defining sentence as the correct option, got %q",
			item.Options[item.CorrectAnswer])
	}
	seen := make(map[string]bool)
	for _, o := range item.Options {
		n := normalizeText(o)
		if seen[n] {
			t.Fatalf("options are not pairwise distinct: %q", o)
		}
		seen[n] = true
	}
}

func TestGenerateQuizAtMostRequested(t *testing.T) {
	g := NewRuleBasedGenerator(DefaultConfig())

	set, err := g.GenerateQuiz(context.Background(), GenerationRequest{
		Chapter:      2,
		Content:      physicsText,
		NumQuestions: 3,
	})
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}
	if len(set.Items) == 0 || len(set.Items) > 3 {
		t.Fatalf("expected between 1 and 3 items, got %d", len(set.Items))
	}
	prompts := make(map[string]bool)
	for _, item := range set.Items {
		if prompts[item.Text] {
			t.Fatalf("duplicate prompt %q", item.Text)
		}
		prompts[item.Text] = true
	}
}

func TestGenerateQuizDeterministicItems(t *testing.T) {
	g := NewRuleBasedGenerator(DefaultConfig())
	req := GenerationRequest{Chapter: 2, Content: physicsText, NumQuestions: 5}

	first, err := g.GenerateQuiz(context.Background(), req)
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}
	second, err := g.GenerateQuiz(context.Background(), req)
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}
	if !reflect.DeepEqual(first.Items, second.Items) {
		t.Fatalf("items differ across runs:\nfirst:  %+v\nsecond: %+v", first.Items, second.Items)
	}
}

func TestGenerateQuizCanceledContext(t *testing.T) {
	g := NewRuleBasedGenerator(DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.GenerateQuiz(ctx, GenerationRequest{
		Chapter:      2,
		Content:      physicsText,
		NumQuestions: 5,
	})
	if err == nil {
		t.Fatal("expected an error from a canceled context")
	}
}

func TestGenerateQuizConcurrentUse(t *testing.T) {
	g := NewRuleBasedGenerator(DefaultConfig())
	req := GenerationRequest{Chapter: 2, Content: physicsText, NumQuestions: 5}

	baseline, err := g.GenerateQuiz(context.Background(), req)
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]*QuizSet, 8)
	errs := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = g.GenerateQuiz(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for i, set := range results {
		if errs[i] != nil {
			t.Fatalf("concurrent call %d failed: %v", i, errs[i])
		}
		if !reflect.DeepEqual(set.Items, baseline.Items) {
			t.Fatalf("concurrent call %d produced different items", i)
		}
	}
}

func TestGenerateQuizWarnsOnShortfallForAcceptedItems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OptionCount = 10
	g := NewRuleBasedGenerator(cfg)

	set, err := g.GenerateQuiz(context.Background(), GenerationRequest{
		Chapter:      3,
		Content:      photoText,
		NumQuestions: 1,
	})
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}
	if len(set.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(set.Items))
	}
	if len(set.Warnings) != 1 {
		t.Fatalf("expected a shortfall warning for the accepted item, got %v", set.Warnings)
	}
}

func TestGenerateQuizNoWarningsForRejectedItems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OptionCount = 10
	cfg.MinPromptLen = 200
	g := NewRuleBasedGenerator(cfg)

	set, err := g.GenerateQuiz(context.Background(), GenerationRequest{
		Chapter:      3,
		Content:      photoText,
		NumQuestions: 5,
	})
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}
	if len(set.Items) != 0 {
		t.Fatalf("expected every item rejected, got %d", len(set.Items))
	}
	if len(set.Warnings) != 0 {
		t.Fatalf("rejected items must not leave warnings, got %v", set.Warnings)
	}
}

func TestGenerateQuizDefaultQuestionCount(t *testing.T) {
	g := NewRuleBasedGenerator(DefaultConfig())

	set, err := g.GenerateQuiz(context.Background(), GenerationRequest{
		Chapter: 2,
		Content: physicsText,
	})
	if err != nil {
		t.Fatalf("GenerateQuiz failed: %v", err)
	}
	if len(set.Items) > 5 {
		t.Fatalf("expected the default cap of 5 questions, got %d", len(set.Items))
	}
}
