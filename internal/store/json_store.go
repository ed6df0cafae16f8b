package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/isdelr/quizmaster-be/internal/auth"
	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/rs/zerolog/log"
)

// userDoc is the on-disk shape of a user; the username is the map key.
// Password is the plaintext field of older files; it is hashed on load and
// never written back.
type userDoc struct {
	PasswordHash string   `json:"password_hash,omitempty"`
	Password     string   `json:"password,omitempty"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	Interests    []string `json:"interests"`
	CreatedAt    isoTime  `json:"created_at"`
}

// entryDoc is the on-disk shape of a history entry.
type entryDoc struct {
	ID             string                  `json:"id,omitempty"`
	Topic          string                  `json:"topic"`
	Score          int                     `json:"score"`
	TotalQuestions int                     `json:"total_questions"`
	Questions      []models.QuestionRecord `json:"questions,omitempty"`
	UserAnswers    []string                `json:"user_answers,omitempty"`
	Timestamp      isoTime                 `json:"timestamp"`
}

// JSONStore keeps both mappings in memory and rewrites both documents in full
// after every mutation.
type JSONStore struct {
	usersPath   string
	historyPath string

	mu      sync.RWMutex
	users   Users
	history QuizHistory
	now     func() time.Time
}

// OpenJSONStore loads the two documents. Missing files start empty.
func OpenJSONStore(usersPath, historyPath string) (*JSONStore, error) {
	users, history, err := Load(usersPath, historyPath)
	if err != nil {
		return nil, err
	}
	log.Info().Str("users_file", usersPath).Int("users", len(users)).Int("histories", len(history)).Msg("Loaded JSON store")
	return &JSONStore{
		usersPath:   usersPath,
		historyPath: historyPath,
		users:       users,
		history:     history,
		now:         time.Now,
	}, nil
}

// Load reads the users and history documents. A missing or empty file yields
// an empty mapping. Plaintext passwords from older files are hashed.
func Load(usersPath, historyPath string) (Users, QuizHistory, error) {
	docs := map[string]userDoc{}
	if err := readJSON(usersPath, &docs); err != nil {
		return nil, nil, err
	}
	users := make(Users, len(docs))
	migrated := 0
	for name, d := range docs {
		hash := d.PasswordHash
		if hash == "" && d.Password != "" {
			var err error
			if hash, err = auth.HashPassword(d.Password); err != nil {
				return nil, nil, fmt.Errorf("migrate password of %s: %w", name, err)
			}
			migrated++
		}
		users[name] = models.User{
			Username:     name,
			PasswordHash: hash,
			Email:        d.Email,
			Phone:        d.Phone,
			Interests:    d.Interests,
			CreatedAt:    time.Time(d.CreatedAt),
		}
	}
	if migrated > 0 {
		log.Warn().Int("users", migrated).Str("users_file", usersPath).Msg("Hashed plaintext passwords; they are removed on the next save")
	}

	entryDocs := map[string][]entryDoc{}
	if err := readJSON(historyPath, &entryDocs); err != nil {
		return nil, nil, err
	}
	history := make(QuizHistory, len(entryDocs))
	for userID, list := range entryDocs {
		entries := make([]models.QuizHistoryEntry, len(list))
		for i, d := range list {
			entries[i] = models.QuizHistoryEntry{
				ID:             d.ID,
				Topic:          d.Topic,
				Score:          d.Score,
				TotalQuestions: d.TotalQuestions,
				Questions:      d.Questions,
				UserAnswers:    d.UserAnswers,
				Timestamp:      time.Time(d.Timestamp),
			}
		}
		history[userID] = entries
	}
	return users, history, nil
}

// Save overwrites both documents with the full mappings.
func Save(usersPath, historyPath string, users Users, history QuizHistory) error {
	usersDoc, historyDoc, err := Snapshot{Users: users, History: history}.Documents()
	if err != nil {
		return err
	}
	// Both documents are staged before either is replaced.
	usersTmp, err := stageFile(usersPath, usersDoc)
	if err != nil {
		return err
	}
	defer os.Remove(usersTmp)
	historyTmp, err := stageFile(historyPath, historyDoc)
	if err != nil {
		return err
	}
	defer os.Remove(historyTmp)

	if err := os.Rename(usersTmp, usersPath); err != nil {
		return fmt.Errorf("replace %s: %w", usersPath, err)
	}
	if err := os.Rename(historyTmp, historyPath); err != nil {
		return fmt.Errorf("replace %s: %w", historyPath, err)
	}
	return nil
}

// Documents renders the snapshot as the users and quiz history JSON documents.
func (s Snapshot) Documents() (users, history []byte, err error) {
	docs := make(map[string]userDoc, len(s.Users))
	for name, u := range s.Users {
		docs[name] = userDoc{
			PasswordHash: u.PasswordHash,
			Email:        u.Email,
			Phone:        u.Phone,
			Interests:    u.Interests,
			CreatedAt:    isoTime(u.CreatedAt),
		}
	}
	if users, err = json.MarshalIndent(docs, "", "  "); err != nil {
		return nil, nil, err
	}
	h := s.History
	if h == nil {
		h = QuizHistory{}
	}
	if history, err = json.MarshalIndent(h, "", "  "); err != nil {
		return nil, nil, err
	}
	return users, history, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// stageFile writes data to a temp file next to path and returns its name.
// The caller renames it into place or removes it.
func stageFile(path string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return tmp.Name(), nil
}

// save must be called with mu held for writing.
func (s *JSONStore) save() error {
	return Save(s.usersPath, s.historyPath, s.users, s.history)
}

func (s *JSONStore) GetUser(ctx context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return models.User{}, fmt.Errorf("user %s: %w", username, common.ErrNotFound)
	}
	return cloneUser(u), nil
}

func (s *JSONStore) CreateUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return fmt.Errorf("user %s: %w", user.Username, common.ErrAlreadyExists)
	}
	s.users[user.Username] = cloneUser(user)
	if err := s.save(); err != nil {
		delete(s.users, user.Username)
		return err
	}
	return nil
}

func (s *JSONStore) UpsertInterests(ctx context.Context, username string, interests []string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.users[username]
	u := cloneUser(prev)
	if !existed {
		u = models.User{Username: username, CreatedAt: s.now()}
	}
	u.Interests = append([]string{}, interests...)
	s.users[username] = u

	if err := s.save(); err != nil {
		if existed {
			s.users[username] = prev
		} else {
			delete(s.users, username)
		}
		return models.User{}, err
	}
	return cloneUser(u), nil
}

func (s *JSONStore) AppendEntry(ctx context.Context, userID string, entry models.QuizHistoryEntry) (models.QuizHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.history[userID]
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	if entry.ID == "" {
		entry.ID = models.EntryID(userID, len(prev), entry.Timestamp)
	}
	s.history[userID] = append(cloneEntries(prev), entry)

	if err := s.save(); err != nil {
		if existed {
			s.history[userID] = prev
		} else {
			delete(s.history, userID)
		}
		return models.QuizHistoryEntry{}, err
	}
	return entry, nil
}

func (s *JSONStore) History(ctx context.Context, userID string) ([]models.QuizHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.history[userID]), nil
}

func (s *JSONStore) Snapshot(ctx context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Users:   make(Users, len(s.users)),
		History: make(QuizHistory, len(s.history)),
	}
	for name, u := range s.users {
		snap.Users[name] = cloneUser(u)
	}
	for id, entries := range s.history {
		snap.History[id] = cloneEntries(entries)
	}
	return snap, nil
}

// Close is a no-op; every mutation is already on disk.
func (s *JSONStore) Close() error { return nil }
