package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"chapterquiz"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// maxQuestions bounds the n query parameter.
const maxQuestions = 20

// maxRegistered bounds the answer-check registry; the oldest quiz is evicted
// once the cap is reached.
const maxRegistered = 256

type server struct {
	chapters []chapterquiz.Chapter
	gen      chapterquiz.Generator
	cache    *chapterquiz.QuizCache

	mu      sync.RWMutex
	quizzes map[string]*chapterquiz.QuizSet // quiz ID -> served quiz, for answer checks
	order   []string                        // registration order, oldest first
}

func main() {
	var (
		chaptersFile = flag.String("chapters", "chapters.json", "Chapters JSON file")
		cachePath    = flag.String("cache", "quizcache.db", "SQLite quiz cache path (empty disables caching)")
		verbose      = flag.Bool("verbose", false, "Enable verbose debugging output")
	)
	flag.Parse()

	chapterquiz.SetVerbose(*verbose)

	chapters, err := chapterquiz.LoadChapters(*chaptersFile)
	if err != nil {
		log.Fatalf("Failed to load chapters: %v", err)
	}
	log.Printf("Loaded %d chapters from %s", len(chapters), *chaptersFile)

	var generator chapterquiz.Generator
	if os.Getenv("GENERATOR") == "openai" {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY environment variable is required when GENERATOR=openai")
		}
		generator = chapterquiz.NewOpenAIGenerator(apiKey, chapterquiz.DefaultConfig())
	} else {
		generator = chapterquiz.NewRuleBasedGenerator(chapterquiz.DefaultConfig())
	}

	var cache *chapterquiz.QuizCache
	if *cachePath != "" {
		cache, err = chapterquiz.OpenQuizCache(*cachePath)
		if err != nil {
			log.Fatalf("Failed to open quiz cache: %v", err)
		}
		defer cache.Close()
	}

	s := &server{
		chapters: chapters,
		gen:      generator,
		cache:    cache,
		quizzes:  make(map[string]*chapterquiz.QuizSet),
	}

	r := chi.NewRouter()
	allowedOrigins := strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/api/chapters", s.handleChapters)
	r.Get("/api/quiz/{chapter}", s.handleQuiz)
	r.Get("/api/quiz/{chapter}/pdf", s.handleQuizPDF)
	r.Post("/api/check_answer", s.handleCheckAnswer)

	port := getenv("PORT", "8180")
	log.Printf("Starting server on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

func (s *server) handleChapters(w http.ResponseWriter, r *http.Request) {
	type chapterInfo struct {
		Number int    `json:"chapter_number"`
		Title  string `json:"title"`
	}
	out := make([]chapterInfo, 0, len(s.chapters))
	for _, c := range s.chapters {
		out = append(out, chapterInfo{Number: c.Number, Title: c.Title})
	}
	writeJSON(w, http.StatusOK, out)
}

// quizForRequest generates (or serves from cache) the quiz for one chapter
// and registers it for later answer checks.
func (s *server) quizForRequest(r *http.Request) (*chapterquiz.QuizSet, int, error) {
	num, err := strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil {
		return nil, http.StatusBadRequest, err
	}
	chapter, ok := chapterquiz.FindChapter(s.chapters, num)
	if !ok {
		return nil, http.StatusNotFound, errChapterNotFound
	}

	n := 5
	if q := r.URL.Query().Get("n"); q != "" {
		if v, err := strconv.Atoi(q); err == nil && v >= 1 && v <= maxQuestions {
			n = v
		}
	}

	hash := chapterquiz.ContentHash(chapter.Content)
	if s.cache != nil {
		set, err := s.cache.Get(chapter.Number, hash, n)
		if err != nil {
			log.Printf("Cache read failed for chapter %d: %v", chapter.Number, err)
		} else if set != nil {
			s.register(set)
			return set, http.StatusOK, nil
		}
	}

	set, err := s.gen.GenerateQuiz(r.Context(), chapterquiz.GenerationRequest{
		Chapter:      chapter.Number,
		ChapterTitle: chapter.Title,
		Content:      chapter.Content,
		NumQuestions: n,
	})
	if err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if s.cache != nil {
		if err := s.cache.Put(set, hash, n); err != nil {
			log.Printf("Cache write failed for chapter %d: %v", chapter.Number, err)
		}
	}
	s.register(set)
	return set, http.StatusOK, nil
}

func (s *server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	set, status, err := s.quizForRequest(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (s *server) handleQuizPDF(w http.ResponseWriter, r *http.Request) {
	set, status, err := s.quizForRequest(r)
	if err != nil {
		http.Error(w, err.Error(), status)
		return
	}
	pdf, err := chapterquiz.RenderWorksheetPDF(set)
	if err != nil {
		http.Error(w, "failed to render PDF", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=quiz.pdf")
	w.Write(pdf)
}

func (s *server) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuizID   string `json:"quiz_id"`
		ItemID   string `json:"item_id"`
		Selected int    `json:"selected"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	set, ok := s.quizzes[req.QuizID]
	s.mu.RUnlock()
	if !ok {
		http.Error(w, "quiz not found", http.StatusNotFound)
		return
	}
	for _, item := range set.Items {
		if item.ID != req.ItemID {
			continue
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"is_correct":     req.Selected == item.CorrectAnswer,
			"correct_answer": item.CorrectAnswer,
		})
		return
	}
	http.Error(w, "question not found", http.StatusNotFound)
}

func (s *server) register(set *chapterquiz.QuizSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[set.ID]; ok {
		return
	}
	if len(s.order) >= maxRegistered {
		delete(s.quizzes, s.order[0])
		s.order = s.order[1:]
	}
	s.quizzes[set.ID] = set
	s.order = append(s.order, set.ID)
}

var errChapterNotFound = chapterNotFoundError{}

type chapterNotFoundError struct{}

func (chapterNotFoundError) Error() string { return "chapter not found" }

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
