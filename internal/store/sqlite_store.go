package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/isdelr/quizmaster-be/internal/database"
	"github.com/isdelr/quizmaster-be/internal/models"
)

// SQLiteStore implements Store on an embedded SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex // serializes writers
	now func() time.Time
}

// OpenSQLiteStore opens (and migrates) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := database.New(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite %s: %w", path, err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, username string) (models.User, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT username, password_hash, email, phone, interests_json, created_at FROM users WHERE username = ?", username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %s: %w", username, common.ErrNotFound)
	}
	return u, err
}

func (s *SQLiteStore) CreateUser(ctx context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	interests, err := encodeList(user.Interests)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, email, phone, interests_json, created_at) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (username) DO NOTHING",
		user.Username, user.PasswordHash, user.Email, user.Phone, interests, formatTime(user.CreatedAt))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", user.Username, common.ErrAlreadyExists)
	}
	return nil
}

func (s *SQLiteStore) UpsertInterests(ctx context.Context, username string, interests []string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	encoded, err := encodeList(interests)
	if err != nil {
		return models.User{}, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (username, interests_json, created_at) VALUES (?, ?, ?)
		ON CONFLICT (username) DO UPDATE SET interests_json = excluded.interests_json`,
		username, encoded, formatTime(s.now()))
	if err != nil {
		return models.User{}, err
	}
	return s.GetUser(ctx, username)
}

func (s *SQLiteStore) AppendEntry(ctx context.Context, userID string, entry models.QuizHistoryEntry) (models.QuizHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.QuizHistoryEntry{}, err
	}
	defer tx.Rollback()

	var seq int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM quiz_history WHERE user_id = ?", userID).Scan(&seq); err != nil {
		return models.QuizHistoryEntry{}, err
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	if entry.ID == "" {
		entry.ID = models.EntryID(userID, seq, entry.Timestamp)
	}

	questions, err := encodeOptional(entry.Questions)
	if err != nil {
		return models.QuizHistoryEntry{}, err
	}
	answers, err := encodeOptional(entry.UserAnswers)
	if err != nil {
		return models.QuizHistoryEntry{}, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO quiz_history (id, user_id, seq, topic, score, total_questions, questions_json, user_answers_json, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, userID, seq, entry.Topic, entry.Score, entry.TotalQuestions, questions, answers, formatTime(entry.Timestamp))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return models.QuizHistoryEntry{}, fmt.Errorf("entry %s: %w", entry.ID, common.ErrAlreadyExists)
		}
		return models.QuizHistoryEntry{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.QuizHistoryEntry{}, err
	}
	return entry, nil
}

func (s *SQLiteStore) History(ctx context.Context, userID string) ([]models.QuizHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, topic, score, total_questions, questions_json, user_answers_json, timestamp
		FROM quiz_history WHERE user_id = ? ORDER BY seq`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.QuizHistoryEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Snapshot(ctx context.Context) (Snapshot, error) {
	snap := Snapshot{Users: Users{}, History: QuizHistory{}}

	rows, err := s.db.QueryContext(ctx, "SELECT username, password_hash, email, phone, interests_json, created_at FROM users")
	if err != nil {
		return Snapshot{}, err
	}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			rows.Close()
			return Snapshot{}, err
		}
		snap.Users[u.Username] = u
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT user_id, id, topic, score, total_questions, questions_json, user_answers_json, timestamp
		FROM quiz_history ORDER BY user_id, seq`)
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var userID string
		e, err := scanEntry(rows, &userID)
		if err != nil {
			return Snapshot{}, err
		}
		snap.History[userID] = append(snap.History[userID], e)
	}
	return snap, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanUser is a helper function to scan a single row into a User struct.
func scanUser(scanner interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	var interests, createdAt string
	if err := scanner.Scan(&u.Username, &u.PasswordHash, &u.Email, &u.Phone, &interests, &createdAt); err != nil {
		return models.User{}, err
	}
	if err := json.Unmarshal([]byte(interests), &u.Interests); err != nil {
		return models.User{}, fmt.Errorf("decode interests of %s: %w", u.Username, err)
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return models.User{}, err
	}
	u.CreatedAt = t
	return u, nil
}

// scanEntry scans an entry row; extra destinations precede the entry columns.
func scanEntry(scanner interface{ Scan(...any) error }, prefix ...any) (models.QuizHistoryEntry, error) {
	var e models.QuizHistoryEntry
	var questions, answers sql.NullString
	var ts string
	dest := append(prefix, &e.ID, &e.Topic, &e.Score, &e.TotalQuestions, &questions, &answers, &ts)
	if err := scanner.Scan(dest...); err != nil {
		return models.QuizHistoryEntry{}, err
	}
	if questions.Valid {
		if err := json.Unmarshal([]byte(questions.String), &e.Questions); err != nil {
			return models.QuizHistoryEntry{}, err
		}
	}
	if answers.Valid {
		if err := json.Unmarshal([]byte(answers.String), &e.UserAnswers); err != nil {
			return models.QuizHistoryEntry{}, err
		}
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return models.QuizHistoryEntry{}, err
	}
	e.Timestamp = t
	return e, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	return string(b), err
}

func encodeOptional[T any](list []T) (sql.NullString, error) {
	if list == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
