package chapterquiz

// Config holds the tunable knobs of the rule-based engine. The zero value is
// not usable; start from DefaultConfig and override fields as needed.
type Config struct {
	MaxConcepts      int // concepts kept per chapter
	MinTokens        int // below this the chapter is treated as insufficient content
	OptionCount      int // options per question, correct answer included
	MaxRelationPairs int // cap on relationship questions per chapter
	MinPromptLen     int // minimum prompt length in runes

	// Concept salience weights.
	FrequencyWeight float64
	PositionWeight  float64 // bonus for an early first mention
	DefinitionBonus float64 // bonus for concepts with a defining sentence

	// Distractor plausibility per strategy.
	SiblingPlausibility float64
	PerturbPlausibility float64
	GenericPlausibility float64
}

// DefaultConfig returns the weights and thresholds used in production.
func DefaultConfig() Config {
	return Config{
		MaxConcepts:      10,
		MinTokens:        20,
		OptionCount:      4,
		MaxRelationPairs: 2,
		MinPromptLen:     10,

		FrequencyWeight: 1.0,
		PositionWeight:  0.5,
		DefinitionBonus: 2.0,

		SiblingPlausibility: 0.9,
		PerturbPlausibility: 0.7,
		GenericPlausibility: 0.2,
	}
}
