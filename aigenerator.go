package chapterquiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAIGenerator is the remote alternative to the rule-based engine. Its
// output passes the same validation, so the two sources are interchangeable
// behind the Generator interface.
type OpenAIGenerator struct {
	client    *openai.Client
	cfg       Config
	assembler *QuestionAssembler
}

// NewOpenAIGenerator creates a generator backed by the OpenAI API.
func NewOpenAIGenerator(apiKey string, cfg Config) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:    openai.NewClient(apiKey),
		cfg:       cfg,
		assembler: NewQuestionAssembler(cfg),
	}
}

// GenerateQuiz asks the model for structured questions via a forced tool
// call, then keeps only the ones satisfying the QuizItem invariants.
func (g *OpenAIGenerator) GenerateQuiz(ctx context.Context, req GenerationRequest) (*QuizSet, error) {
	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = 5
	}

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "Ти си професор кој создава квиз прашања од учебник на македонски јазик. Секое прашање има точно 4 одговори, а погрешните одговори мора да бидат веродостојни.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: g.buildPrompt(req, numQuestions),
				},
			},
			Tools: []openai.Tool{
				{
					Type: openai.ToolTypeFunction,
					Function: &openai.FunctionDefinition{
						Name:        "submit_questions",
						Description: "Submit generated quiz questions",
						Parameters: map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"questions": map[string]interface{}{
									"type": "array",
									"items": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"text": map[string]interface{}{
												"type":        "string",
												"description": "The question text, in Macedonian",
											},
											"options": map[string]interface{}{
												"type": "array",
												"items": map[string]interface{}{
													"type": "string",
												},
												"description": "Array of 4 multiple choice options",
											},
											"correct_answer": map[string]interface{}{
												"type":        "integer",
												"description": "0-based index of the correct answer",
											},
										},
										"required": []string{"text", "options", "correct_answer"},
									},
								},
							},
							"required": []string{"questions"},
						},
					},
				},
			},
			ToolChoice: openai.ToolChoice{
				Type: openai.ToolTypeFunction,
				Function: openai.ToolFunction{
					Name: "submit_questions",
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from model")
	}
	choice := resp.Choices[0]
	if len(choice.Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("no tool calls in response")
	}
	toolCall := choice.Message.ToolCalls[0]
	if toolCall.Function.Name != "submit_questions" {
		return nil, fmt.Errorf("unexpected tool call: %s", toolCall.Function.Name)
	}

	var toolArgs struct {
		Questions []struct {
			Text          string   `json:"text"`
			Options       []string `json:"options"`
			CorrectAnswer int      `json:"correct_answer"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(toolCall.Function.Arguments), &toolArgs); err != nil {
		return nil, fmt.Errorf("failed to parse tool arguments: %w", err)
	}

	set := &QuizSet{
		ID:           uuid.NewString(),
		Chapter:      req.Chapter,
		ChapterTitle: req.ChapterTitle,
		CreatedAt:    time.Now(),
	}
	seenPrompts := make(map[string]bool)
	for _, q := range toolArgs.Questions {
		if len(set.Items) >= numQuestions {
			break
		}
		item, err := g.validate(q.Text, q.Options, q.CorrectAnswer, req.Chapter)
		if err != nil {
			VerboseLog("discarding model question: %v", err)
			continue
		}
		if seenPrompts[item.Text] {
			continue
		}
		seenPrompts[item.Text] = true
		set.Items = append(set.Items, item)
	}
	return set, nil
}

// validate applies the same invariants the assembler enforces: option count,
// a single in-range correct answer and pairwise-distinct options.
func (g *OpenAIGenerator) validate(text string, options []string, correct int, chapter int) (QuizItem, error) {
	if len(options) != g.cfg.OptionCount {
		return QuizItem{}, fmt.Errorf("%w: got %d options", ErrAssemblyRejected, len(options))
	}
	if correct < 0 || correct >= len(options) {
		return QuizItem{}, fmt.Errorf("%w: correct index %d out of range", ErrAssemblyRejected, correct)
	}
	if utf8.RuneCountInString(strings.TrimSpace(text)) < g.cfg.MinPromptLen {
		return QuizItem{}, fmt.Errorf("%w: prompt too short: %q", ErrAssemblyRejected, text)
	}
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		n := normalizeText(o)
		if n == "" || seen[n] {
			return QuizItem{}, fmt.Errorf("%w: duplicate option %q", ErrAssemblyRejected, o)
		}
		seen[n] = true
	}
	return QuizItem{
		ID:            itemID(text),
		Text:          text,
		Options:       options,
		CorrectAnswer: correct,
		Kind:          KindDefinition,
		Chapter:       chapter,
	}, nil
}

func (g *OpenAIGenerator) buildPrompt(req GenerationRequest, numQuestions int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Од следниот текст генерирај %d прашања за квиз на македонски јазик.\n\n", numQuestions))
	if req.ChapterTitle != "" {
		sb.WriteString(fmt.Sprintf("Поглавје: %s\n\n", req.ChapterTitle))
	}
	sb.WriteString("Текст:\n")
	sb.WriteString(clipRunes(req.Content, 4000))
	sb.WriteString("\n\nБарања:\n")
	sb.WriteString("- Прашањата треба да тестираат разбирање, не само меморија\n")
	sb.WriteString("- Погрешните одговори треба да бидат веродостојни, не очигледно погрешни\n")
	sb.WriteString("- Секое прашање треба да има точно 4 одговори\n")
	sb.WriteString("- Користи ја алатката submit_questions за да ги вратиш прашањата\n")
	return sb.String()
}

func clipRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
