package chapterquiz

import "time"

// TemplateKind categorizes what a question tests.
type TemplateKind string

const (
	KindDefinition     TemplateKind = "definition"
	KindCharacteristic TemplateKind = "characteristic"
	KindFunction       TemplateKind = "function"
	KindCalculation    TemplateKind = "calculation"
	KindRelationship   TemplateKind = "relationship"
)

// Concept is a salient term extracted from chapter text. Concepts are
// immutable once extracted; uniqueness is keyed by Normalized.
type Concept struct {
	Surface     string  `json:"surface"`
	Normalized  string  `json:"normalized"`
	Score       float64 `json:"score"`
	FirstOffset int     `json:"first_offset"`
	Definition  string  `json:"definition,omitempty"` // defining sentence, if one was found
}

// QuestionTemplate is a fixed question pattern. Pattern is a fmt string with
// one %s verb per required concept.
type QuestionTemplate struct {
	Kind    TemplateKind
	Arity   int
	Pattern string
}

// TemplateBinding pairs a template with the concept(s) it applies to and the
// sentence that supports the correct answer.
type TemplateBinding struct {
	Template QuestionTemplate
	Concepts []Concept
	Evidence string
}

// DistractorStrategy names how a wrong answer was fabricated.
type DistractorStrategy string

const (
	StrategySibling DistractorStrategy = "sibling"
	StrategyPerturb DistractorStrategy = "perturb"
	StrategyGeneric DistractorStrategy = "generic"
)

// Distractor is a candidate wrong answer.
type Distractor struct {
	Text         string
	Strategy     DistractorStrategy
	Plausibility float64
}

// QuizItem is one finished multiple-choice question.
type QuizItem struct {
	ID            string       `json:"id"`
	Text          string       `json:"text"`
	Options       []string     `json:"options"`
	CorrectAnswer int          `json:"correct_answer"` // 0-based index
	Kind          TemplateKind `json:"kind"`
	Chapter       int          `json:"chapter"`
}

// QuizSet is the ordered sequence of items generated for one chapter. No two
// items in a set share a prompt.
type QuizSet struct {
	ID           string     `json:"id"`
	Chapter      int        `json:"chapter"`
	ChapterTitle string     `json:"chapter_title"`
	Items        []QuizItem `json:"items"`
	CreatedAt    time.Time  `json:"created_at"`
	Warnings     []string   `json:"warnings,omitempty"`
}

// GenerationRequest is a request to generate a quiz from one chapter.
type GenerationRequest struct {
	Chapter      int    `json:"chapter"`
	ChapterTitle string `json:"chapter_title"`
	Content      string `json:"content"`
	NumQuestions int    `json:"num_questions"`
}

// Chapter is one unit of normalized textbook text. The upstream OCR pipeline
// produces these; the engine never cleans text itself.
type Chapter struct {
	Number  int    `json:"chapter_number"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
