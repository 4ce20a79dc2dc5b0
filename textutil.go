package chapterquiz

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var wordRe = regexp.MustCompile(`\p{L}+`)

type token struct {
	text   string
	offset int
}

func tokenize(text string) []token {
	idxs := wordRe.FindAllStringIndex(text, -1)
	toks := make([]token, 0, len(idxs))
	for _, ix := range idxs {
		toks = append(toks, token{text: text[ix[0]:ix[1]], offset: ix[0]})
	}
	return toks
}

type sentence struct {
	text   string
	offset int
}

// splitSentences splits on sentence-final punctuation and newlines, keeping
// byte offsets into the original text.
func splitSentences(text string) []sentence {
	var out []sentence
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' || r == '\n' {
			if s := strings.TrimSpace(text[start:i]); s != "" {
				out = append(out, sentence{text: s, offset: start})
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, sentence{text: s, offset: start})
	}
	return out
}

func splitParagraphs(text string) []string {
	parts := strings.Split(text, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeText casefolds, drops punctuation and collapses whitespace. All
// option and prompt uniqueness checks compare normalized text.
func normalizeText(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			// skip
		default:
			if space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = false
			out = append(out, unicode.ToLower(r))
		}
	}
	return string(out)
}

// promptForm lowercases a leading capital so a concept reads naturally inside
// a question ("Фотосинтезата" -> "фотосинтезата"). Acronyms keep their case.
func promptForm(surface string) string {
	r := []rune(surface)
	if len(r) > 1 && unicode.IsUpper(r[0]) && unicode.IsLower(r[1]) {
		r[0] = unicode.ToLower(r[0])
	}
	return string(r)
}

func stableHash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// promptSeed derives the shuffle seed for an item from its prompt, so option
// order is stable per item but differs across items.
func promptSeed(prompt string) int64 {
	return int64(stableHash(prompt))
}

func itemID(prompt string) string {
	return fmt.Sprintf("%016x", stableHash(prompt))
}

// levenshtein computes edit distance (insertion, deletion, substitution cost 1).
func levenshtein(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n, m := len(ar), len(br)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	dp := make([]int, m+1)
	for j := 0; j <= m; j++ {
		dp[j] = j
	}
	for i := 1; i <= n; i++ {
		prev := dp[0]
		dp[0] = i
		for j := 1; j <= m; j++ {
			tmp := dp[j]
			cost := 0
			if ar[i-1] != br[j-1] {
				cost = 1
			}
			dp[j] = min3(dp[j]+1, dp[j-1]+1, prev+cost)
			prev = tmp
		}
	}
	return dp[m]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// nearDuplicate reports whether two normalized terms are inflected forms of
// the same word ("енергија" / "енергијата").
func nearDuplicate(a, b string) bool {
	if a == b {
		return true
	}
	if utf8.RuneCountInString(a) < 6 || utf8.RuneCountInString(b) < 6 {
		return false
	}
	return levenshtein(a, b) <= 2
}
