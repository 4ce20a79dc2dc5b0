package chapterquiz

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Фотосинтезата е процес.", "фотосинтезата е процес"},
		{"  многу   празнини  ", "многу празнини"},
		{"v = s / t", "v s t"},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalizeText(c.in); got != c.want {
			t.Errorf("normalizeText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPromptForm(t *testing.T) {
	if got := promptForm("Фотосинтезата"); got != "фотосинтезата" {
		t.Errorf("promptForm lowercase: got %q", got)
	}
	if got := promptForm("ДНК"); got != "ДНК" {
		t.Errorf("promptForm should keep acronyms: got %q", got)
	}
	if got := promptForm("х"); got != "х" {
		t.Errorf("promptForm single rune: got %q", got)
	}
}

func TestSplitSentencesOffsets(t *testing.T) {
	sents := splitSentences("Прва реченица. Втора реченица!\nТрета")
	if len(sents) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(sents))
	}
	if sents[1].text != "Втора реченица" {
		t.Fatalf("unexpected second sentence: %q", sents[1].text)
	}
	if sents[0].offset != 0 || sents[1].offset <= sents[0].offset {
		t.Fatalf("offsets not increasing: %d, %d", sents[0].offset, sents[1].offset)
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"фотосинтеза", "фотосинтезата", 2},
		{"сила", "сила", 0},
		{"", "абв", 3},
		{"маса", "каса", 1},
	}
	for _, c := range cases {
		if got := levenshtein(c.a, c.b); got != c.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestNearDuplicate(t *testing.T) {
	if !nearDuplicate("енергија", "енергијата") {
		t.Error("inflected forms should cluster")
	}
	if nearDuplicate("сила", "маса") {
		t.Error("short distinct words must not cluster")
	}
	if nearDuplicate("растение", "растојание") {
		t.Error("unrelated words past the edit threshold must not cluster")
	}
}

func TestPromptSeedStable(t *testing.T) {
	if promptSeed("Што е фотосинтезата?") != promptSeed("Што е фотосинтезата?") {
		t.Error("seed must be stable for equal prompts")
	}
	if promptSeed("Што е фотосинтезата?") == promptSeed("Што е хлорофилот?") {
		t.Error("different prompts should seed differently")
	}
}
