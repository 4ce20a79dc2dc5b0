package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"chapterquiz"

	"github.com/PuerkitoBio/goquery"
)

// chapterimport splits an HTML export of a textbook into chapters on heading
// elements and writes the chapters JSON file the webserver and quizgen
// consume. OCR and script conversion happen before this step.
func main() {
	var (
		inputFile  = flag.String("input", "", "HTML file to import (required)")
		outputFile = flag.String("output", "chapters.json", "Output chapters JSON file")
		headingSel = flag.String("headings", "h1,h2", "CSS selector for chapter headings")
	)
	flag.Parse()

	if *inputFile == "" {
		log.Fatal("An input file is required. Use -input.")
	}

	f, err := os.Open(*inputFile)
	if err != nil {
		log.Fatalf("Failed to open input file: %v", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		log.Fatalf("Failed to parse HTML: %v", err)
	}

	var chapters []chapterquiz.Chapter
	var cur *chapterquiz.Chapter

	doc.Find("body").Children().Each(func(_ int, sel *goquery.Selection) {
		if sel.Is(*headingSel) {
			title := strings.TrimSpace(sel.Text())
			if title == "" {
				return
			}
			chapters = append(chapters, chapterquiz.Chapter{
				Number: len(chapters) + 1,
				Title:  title,
			})
			cur = &chapters[len(chapters)-1]
			return
		}
		if cur == nil {
			return
		}
		// Collapse the block's text to single spaces; blocks become
		// paragraphs in the chapter content.
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" {
			return
		}
		if cur.Content != "" {
			cur.Content += "\n\n"
		}
		cur.Content += text
	})

	kept := chapters[:0]
	for _, c := range chapters {
		if strings.TrimSpace(c.Content) == "" {
			log.Printf("Skipping empty chapter %q", c.Title)
			continue
		}
		c.Number = len(kept) + 1
		kept = append(kept, c)
	}

	data, err := json.MarshalIndent(kept, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal chapters: %v", err)
	}
	if err := os.WriteFile(*outputFile, data, 0644); err != nil {
		log.Fatalf("Failed to write output file: %v", err)
	}
	log.Printf("Imported %d chapters to %s", len(kept), *outputFile)
}
