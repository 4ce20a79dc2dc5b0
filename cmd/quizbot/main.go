package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"chapterquiz"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram limits: poll questions 300 chars, options 100 chars.
const (
	maxPollQuestion = 300
	maxPollOption   = 100
)

type bot struct {
	api      *tgbotapi.BotAPI
	chapters []chapterquiz.Chapter
	gen      chapterquiz.Generator
}

func main() {
	var (
		chaptersFile = flag.String("chapters", "chapters.json", "Chapters JSON file")
		numQuestions = flag.Int("questions", 5, "Questions per quiz")
		verbose      = flag.Bool("verbose", false, "Enable verbose debugging output")
	)
	flag.Parse()

	chapterquiz.SetVerbose(*verbose)

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	chapters, err := chapterquiz.LoadChapters(*chaptersFile)
	if err != nil {
		log.Fatalf("Failed to load chapters: %v", err)
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	log.Printf("Authorized on account: %s", api.Self.UserName)

	b := &bot{
		api:      api,
		chapters: chapters,
		gen:      chapterquiz.NewRuleBasedGenerator(chapterquiz.DefaultConfig()),
	}
	b.run(*numQuestions)
}

func (b *bot) run(numQuestions int) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	for update := range b.api.GetUpdatesChan(u) {
		if update.Message == nil {
			continue
		}
		chatID := update.Message.Chat.ID
		switch update.Message.Command() {
		case "start", "help":
			b.sendMessage(chatID, "Избери поглавје со /chapters, па побарај квиз со /quiz <број>.")
		case "chapters":
			b.sendChapterList(chatID)
		case "quiz":
			b.sendQuiz(chatID, strings.TrimSpace(update.Message.CommandArguments()), numQuestions)
		default:
			b.sendMessage(chatID, "Непозната команда. Пробај /chapters или /quiz <број>.")
		}
	}
}

func (b *bot) sendChapterList(chatID int64) {
	var sb strings.Builder
	sb.WriteString("Достапни поглавја:\n")
	for _, c := range b.chapters {
		fmt.Fprintf(&sb, "%d. %s\n", c.Number, c.Title)
	}
	b.sendMessage(chatID, sb.String())
}

func (b *bot) sendQuiz(chatID int64, arg string, numQuestions int) {
	num, err := strconv.Atoi(arg)
	if err != nil {
		b.sendMessage(chatID, "Употреба: /quiz <број на поглавје>")
		return
	}
	chapter, ok := chapterquiz.FindChapter(b.chapters, num)
	if !ok {
		b.sendMessage(chatID, fmt.Sprintf("Поглавје %d не постои. Провери со /chapters.", num))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	set, err := b.gen.GenerateQuiz(ctx, chapterquiz.GenerationRequest{
		Chapter:      chapter.Number,
		ChapterTitle: chapter.Title,
		Content:      chapter.Content,
		NumQuestions: numQuestions,
	})
	if err != nil {
		log.Printf("Failed to generate quiz for chapter %d: %v", num, err)
		b.sendMessage(chatID, "Не успеав да генерирам квиз, пробај повторно.")
		return
	}
	if len(set.Items) == 0 {
		b.sendMessage(chatID, "Поглавјето е прекратко за квиз.")
		return
	}
	if len(set.Items) < numQuestions {
		b.sendMessage(chatID, fmt.Sprintf("Достапни се само %d прашања за ова поглавје.", len(set.Items)))
	}

	for _, item := range set.Items {
		options := make([]string, len(item.Options))
		for i, o := range item.Options {
			options[i] = clip(o, maxPollOption)
		}
		poll := tgbotapi.NewPoll(chatID, clip(item.Text, maxPollQuestion), options...)
		poll.Type = "quiz"
		poll.CorrectOptionID = int64(item.CorrectAnswer)
		poll.IsAnonymous = true
		if _, err := b.api.Send(poll); err != nil {
			log.Printf("Failed to send poll: %v", err)
		}
	}
}

func (b *bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
