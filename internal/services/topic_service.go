package services

import (
	"context"
	"fmt"

	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/isdelr/quizmaster-be/internal/inference"
	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/isdelr/quizmaster-be/internal/quiztext"
	"github.com/isdelr/quizmaster-be/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// TopicServiceProvider defines the interface for topic suggestions.
type TopicServiceProvider interface {
	Available(ctx context.Context, userID string) ([]string, error)
	Pending(ctx context.Context, userID string) ([]string, error)
}

// TopicService suggests quiz topics from a user's interests.
type TopicService struct {
	store store.Store
	llm   inference.Client
}

// NewTopicService creates a new TopicService.
func NewTopicService(s store.Store, llm inference.Client) *TopicService {
	return &TopicService{store: s, llm: llm}
}

// Available returns freshly generated topic suggestions.
func (s *TopicService) Available(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user_id parameter", common.ErrInvalidInput)
	}

	interests, err := interestsOf(ctx, s.store, userID)
	if err != nil {
		return nil, err
	}

	text, err := s.llm.Generate(ctx, inference.TopicsPrompt(interests))
	if err != nil {
		return nil, err
	}

	topics := quiztext.ParseTopics(text)
	log.Debug().Str("user_id", userID).Strs("topics", topics).Msg("Generated topics")
	return topics, nil
}

// Pending returns suggestions the user has not yet taken a quiz on. Topics
// are compared exactly.
func (s *TopicService) Pending(ctx context.Context, userID string) ([]string, error) {
	topics, err := s.Available(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.store.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed := lo.SliceToMap(history, func(e models.QuizHistoryEntry) (string, struct{}) {
		return e.Topic, struct{}{}
	})
	return lo.Filter(topics, func(topic string, _ int) bool {
		_, done := completed[topic]
		return !done
	}), nil
}
