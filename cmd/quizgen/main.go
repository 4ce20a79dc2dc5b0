package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"chapterquiz"
)

func main() {
	var (
		chaptersFile = flag.String("chapters", "chapters.json", "Chapters JSON file")
		chapterNum   = flag.Int("chapter", 0, "Chapter number to quiz (required unless -input is set)")
		inputFile    = flag.String("input", "", "Raw text file to quiz instead of a chapter")
		numQuestions = flag.Int("questions", 5, "Number of questions to generate")
		genName      = flag.String("generator", "rules", "Generator to use: rules or openai")
		outputFile   = flag.String("output", "", "Output file for quiz JSON (default: stdout)")
		verbose      = flag.Bool("verbose", false, "Enable verbose debugging output")
	)
	flag.Parse()

	chapterquiz.SetVerbose(*verbose)

	req := chapterquiz.GenerationRequest{NumQuestions: *numQuestions}
	if *inputFile != "" {
		data, err := os.ReadFile(*inputFile)
		if err != nil {
			log.Fatalf("Failed to read input file: %v", err)
		}
		req.Content = string(data)
	} else {
		if *chapterNum == 0 {
			log.Fatal("A chapter number is required. Use -chapter (or -input for raw text).")
		}
		chapters, err := chapterquiz.LoadChapters(*chaptersFile)
		if err != nil {
			log.Fatalf("Failed to load chapters: %v", err)
		}
		chapter, ok := chapterquiz.FindChapter(chapters, *chapterNum)
		if !ok {
			log.Fatalf("Chapter %d not found in %s", *chapterNum, *chaptersFile)
		}
		req.Chapter = chapter.Number
		req.ChapterTitle = chapter.Title
		req.Content = chapter.Content
	}

	var generator chapterquiz.Generator
	switch *genName {
	case "rules":
		generator = chapterquiz.NewRuleBasedGenerator(chapterquiz.DefaultConfig())
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY environment variable is required for -generator=openai")
		}
		generator = chapterquiz.NewOpenAIGenerator(apiKey, chapterquiz.DefaultConfig())
	default:
		log.Fatalf("Unknown generator: %s", *genName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	set, err := generator.GenerateQuiz(ctx, req)
	if err != nil {
		log.Fatalf("Failed to generate quiz: %v", err)
	}
	if len(set.Items) < *numQuestions {
		log.Printf("Note: only %d of %d requested questions could be generated", len(set.Items), *numQuestions)
	}

	output, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal quiz: %v", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			log.Fatalf("Failed to write output file: %v", err)
		}
		log.Printf("Quiz saved to: %s", *outputFile)
	} else {
		fmt.Println(string(output))
	}
}
