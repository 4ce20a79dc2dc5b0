package main

import (
	"fmt"
	"testing"

	"chapterquiz"
)

func TestRegisterEvictsOldest(t *testing.T) {
	s := &server{quizzes: make(map[string]*chapterquiz.QuizSet)}

	for i := 0; i < maxRegistered+3; i++ {
		s.register(&chapterquiz.QuizSet{ID: fmt.Sprintf("quiz-%d", i)})
	}
	if len(s.quizzes) != maxRegistered {
		t.Fatalf("expected registry capped at %d, got %d", maxRegistered, len(s.quizzes))
	}
	for i := 0; i < 3; i++ {
		if _, ok := s.quizzes[fmt.Sprintf("quiz-%d", i)]; ok {
			t.Fatalf("expected quiz-%d evicted", i)
		}
	}
	if _, ok := s.quizzes[fmt.Sprintf("quiz-%d", maxRegistered+2)]; !ok {
		t.Fatal("expected the newest quiz retained")
	}
}

func TestRegisterIdempotent(t *testing.T) {
	s := &server{quizzes: make(map[string]*chapterquiz.QuizSet)}
	set := &chapterquiz.QuizSet{ID: "quiz-1"}

	s.register(set)
	s.register(set)
	if len(s.quizzes) != 1 || len(s.order) != 1 {
		t.Fatalf("re-registering the same quiz must not grow the registry: %d quizzes, %d order entries",
			len(s.quizzes), len(s.order))
	}
}
