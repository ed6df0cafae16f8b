// Package store persists user accounts and quiz history.
package store

import (
	"context"

	"github.com/isdelr/quizmaster-be/internal/models"
)

// Users maps usernames to accounts.
type Users map[string]models.User

// QuizHistory maps user ids to their entries in submission order.
type QuizHistory map[string][]models.QuizHistoryEntry

// Snapshot is a deep copy of the whole store.
type Snapshot struct {
	Users   Users
	History QuizHistory
}

// Store is the persistence contract used by the services. Implementations
// serialize mutations so concurrent requests never lose writes.
type Store interface {
	// GetUser returns common.ErrNotFound for unknown usernames.
	GetUser(ctx context.Context, username string) (models.User, error)
	// CreateUser returns common.ErrAlreadyExists if the username is taken.
	CreateUser(ctx context.Context, user models.User) error
	// UpsertInterests replaces a user's interests, creating a bare account
	// when none exists.
	UpsertInterests(ctx context.Context, username string, interests []string) (models.User, error)
	// AppendEntry records an attempt. An empty entry.ID is filled with
	// models.EntryID using the user's entry count before the append.
	AppendEntry(ctx context.Context, userID string, entry models.QuizHistoryEntry) (models.QuizHistoryEntry, error)
	// History returns a user's entries oldest first, or an empty slice.
	History(ctx context.Context, userID string) ([]models.QuizHistoryEntry, error)
	Snapshot(ctx context.Context) (Snapshot, error)
	Close() error
}

func cloneUser(u models.User) models.User {
	if u.Interests != nil {
		u.Interests = append([]string{}, u.Interests...)
	}
	return u
}

func cloneEntries(entries []models.QuizHistoryEntry) []models.QuizHistoryEntry {
	out := make([]models.QuizHistoryEntry, len(entries))
	copy(out, entries)
	return out
}
