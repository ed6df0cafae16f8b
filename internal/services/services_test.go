package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/isdelr/quizmaster-be/internal/auth"
	"github.com/isdelr/quizmaster-be/internal/store"
	"github.com/stretchr/testify/require"
)

// fakeLLM returns canned text and records the prompts it was given.
type fakeLLM struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

func (f *fakeLLM) ListModels(ctx context.Context) ([]string, error) {
	return []string{"gemma:2b"}, f.err
}

func (f *fakeLLM) Model() string { return "gemma:2b" }

func (f *fakeLLM) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func newStore(t *testing.T) store.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := store.OpenJSONStore(filepath.Join(dir, "users.json"), filepath.Join(dir, "quiz_history.json"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newUserService(t *testing.T, s store.Store) *UserService {
	t.Helper()
	return NewUserService(s, auth.NewTokenIssuer("test-secret", time.Hour))
}

const sampleQuiz = "**QUESTION 1:** Which piece can only move diagonally?\n\n" +
	"**A.** Rook\n**B.** Bishop\n**C.** Knight\n**D.** King\n\n" +
	"**ANS:** **B**\n\n" +
	"**QUESTION 2:** How many squares are on a chessboard?\n\n" +
	"**A.** 32\n**B.** 48\n**C.** 81\n**D.** 64\n\n" +
	"**ANS:** **D**\n\n" +
	"**QUESTION 3:** Which piece moves in an L shape?\n\n" +
	"**A.** Knight\n**B.** Queen\n**C.** Pawn\n**D.** Rook\n\n" +
	"**ANS:** **A**\n\n"
