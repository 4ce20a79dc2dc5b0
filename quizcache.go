package chapterquiz

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// QuizCache is an explicit cache of generated quizzes, keyed by chapter
// number, a hash of the chapter content and the requested question count.
// The engine itself holds no state; the web layer owns the cache and decides
// when to consult it. A changed chapter text changes the key, so stale
// entries are never served.
type QuizCache struct {
	db *sql.DB
}

// OpenQuizCache opens (and if needed initializes) a SQLite-backed cache.
func OpenQuizCache(path string) (*QuizCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping cache: %w", err)
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS quizzes (
		chapter INTEGER NOT NULL,
		content_hash TEXT NOT NULL,
		num_questions INTEGER NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (chapter, content_hash, num_questions)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache table: %w", err)
	}
	return &QuizCache{db: db}, nil
}

// Close closes the underlying database.
func (qc *QuizCache) Close() error {
	return qc.db.Close()
}

// ContentHash returns the cache key component derived from chapter text.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached quiz for the key, or (nil, nil) on a miss.
func (qc *QuizCache) Get(chapter int, contentHash string, numQuestions int) (*QuizSet, error) {
	var payload string
	err := qc.db.QueryRow(
		"SELECT payload FROM quizzes WHERE chapter = ? AND content_hash = ? AND num_questions = ?",
		chapter, contentHash, numQuestions,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	var set QuizSet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		return nil, fmt.Errorf("failed to decode cached quiz: %w", err)
	}
	return &set, nil
}

// Put stores a quiz under the key, replacing any previous entry.
func (qc *QuizCache) Put(set *QuizSet, contentHash string, numQuestions int) error {
	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode quiz: %w", err)
	}
	_, err = qc.db.Exec(
		"INSERT OR REPLACE INTO quizzes (chapter, content_hash, num_questions, payload, created_at) VALUES (?, ?, ?, ?, ?)",
		set.Chapter, contentHash, numQuestions, string(payload), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to store quiz: %w", err)
	}
	return nil
}
