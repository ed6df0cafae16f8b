package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/isdelr/quizmaster-be/internal/inference"
	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/isdelr/quizmaster-be/internal/quiztext"
	"github.com/isdelr/quizmaster-be/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// QuizServiceProvider defines the interface for quiz services.
type QuizServiceProvider interface {
	GenerateQuiz(ctx context.Context, topic, userID string) ([]models.QuestionRecord, error)
	Submit(ctx context.Context, sub Submission) (models.QuizHistoryEntry, error)
	Performance(ctx context.Context, userID, topic string) ([]models.QuizHistoryEntry, error)
	History(ctx context.Context, userID string) ([]models.QuizHistoryEntry, error)
}

// ParseError is returned when generated text contains no recognizable
// questions. Raw is the text as received.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string { return "Failed to parse quiz data" }

func (e *ParseError) Unwrap() error { return common.ErrUnparseable }

// Submission is a completed quiz as posted by a client. Score is a pointer
// so that an explicit zero is told apart from a missing field.
type Submission struct {
	UserID         string                  `json:"user_id"`
	Topic          string                  `json:"topic"`
	Score          *int                    `json:"score"`
	TotalQuestions int                     `json:"total_questions"`
	Questions      []models.QuestionRecord `json:"questions"`
	UserAnswers    []string                `json:"user_answers"`
}

func (s Submission) validate() error {
	if s.UserID == "" || s.Topic == "" || s.Score == nil || s.TotalQuestions == 0 ||
		len(s.Questions) == 0 || len(s.UserAnswers) == 0 {
		return fmt.Errorf("%w: missing required fields", common.ErrInvalidInput)
	}
	return nil
}

// QuizService generates quizzes and records results.
type QuizService struct {
	store store.Store
	llm   inference.Client
	now   func() time.Time
}

// NewQuizService creates a new QuizService.
func NewQuizService(s store.Store, llm inference.Client) *QuizService {
	return &QuizService{store: s, llm: llm, now: time.Now}
}

// GenerateQuiz asks the model for a quiz on topic, tailored to the user's
// interests when userID names a known user.
func (s *QuizService) GenerateQuiz(ctx context.Context, topic, userID string) ([]models.QuestionRecord, error) {
	if topic == "" {
		return nil, fmt.Errorf("%w: missing topic parameter", common.ErrInvalidInput)
	}

	interests, err := interestsOf(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	text, err := s.llm.Generate(ctx, inference.QuizPrompt(topic, interests))
	if err != nil {
		return nil, err
	}

	questions := quiztext.Extract(text)
	if len(questions) == 0 {
		return nil, &ParseError{Raw: text}
	}
	if len(questions) != quiztext.QuestionsPerQuiz {
		log.Warn().Str("topic", topic).Int("questions", len(questions)).Msg("Quiz has an unexpected number of questions")
	}
	return questions, nil
}

// Submit records a completed quiz and returns the stored entry.
func (s *QuizService) Submit(ctx context.Context, sub Submission) (models.QuizHistoryEntry, error) {
	if err := sub.validate(); err != nil {
		return models.QuizHistoryEntry{}, err
	}

	entry, err := s.store.AppendEntry(ctx, sub.UserID, models.QuizHistoryEntry{
		Topic:          sub.Topic,
		Score:          *sub.Score,
		TotalQuestions: sub.TotalQuestions,
		Questions:      sub.Questions,
		UserAnswers:    sub.UserAnswers,
		Timestamp:      s.now(),
	})
	if err != nil {
		return models.QuizHistoryEntry{}, fmt.Errorf("failed to record quiz result: %w", err)
	}

	log.Info().Str("user_id", sub.UserID).Str("quiz_id", entry.ID).Int("score", entry.Score).Msg("Quiz result recorded")
	return entry, nil
}

// Performance returns the user's attempts, limited to topic when non-empty.
func (s *QuizService) Performance(ctx context.Context, userID, topic string) ([]models.QuizHistoryEntry, error) {
	history, err := s.History(ctx, userID)
	if err != nil || topic == "" {
		return history, err
	}
	return lo.Filter(history, func(e models.QuizHistoryEntry, _ int) bool {
		return e.Topic == topic
	}), nil
}

// History returns every attempt of the user, oldest first.
func (s *QuizService) History(ctx context.Context, userID string) ([]models.QuizHistoryEntry, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user_id", common.ErrInvalidInput)
	}
	return s.store.History(ctx, userID)
}

// interestsOf returns the stored interests of userID; unknown or empty ids
// have none.
func interestsOf(ctx context.Context, s store.Store, userID string) ([]string, error) {
	if userID == "" {
		return nil, nil
	}
	user, err := s.GetUser(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user.Interests, nil
}
