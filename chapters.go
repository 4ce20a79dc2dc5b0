package chapterquiz

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// LoadChapters reads the chapters JSON file produced by the upstream OCR
// pipeline (or by cmd/chapterimport) and returns chapters sorted by number.
func LoadChapters(path string) ([]Chapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chapters file: %w", err)
	}
	var chapters []Chapter
	if err := json.Unmarshal(data, &chapters); err != nil {
		return nil, fmt.Errorf("failed to parse chapters file: %w", err)
	}
	sort.Slice(chapters, func(i, j int) bool {
		return chapters[i].Number < chapters[j].Number
	})
	return chapters, nil
}

// FindChapter returns the chapter with the given number.
func FindChapter(chapters []Chapter, number int) (Chapter, bool) {
	for _, c := range chapters {
		if c.Number == number {
			return c, true
		}
	}
	return Chapter{}, false
}
