package services

import (
	"context"
	"testing"

	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const topicList = "1. Chess Openings\n2. Endgame Tactics\n- Cell Biology\n\n4. Genetics Basics\n5. chess openings"

func TestTopicService_Available(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	_, err := s.UpsertInterests(ctx, "alice", []string{"chess", "biology"})
	require.NoError(t, err)

	llm := &fakeLLM{text: topicList}
	svc := NewTopicService(s, llm)

	topics, err := svc.Available(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chess Openings", "Endgame Tactics", "Cell Biology", "Genetics Basics", "chess openings"}, topics)
	assert.Contains(t, llm.lastPrompt(), "Based on the user's interests: chess, biology, ")
}

func TestTopicService_PendingExcludesCompleted(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	quizzes := NewQuizService(s, &fakeLLM{})
	for _, topic := range []string{"Chess Openings", "Cell Biology"} {
		_, err := quizzes.Submit(ctx, submission("alice", topic, 2))
		require.NoError(t, err)
	}

	svc := NewTopicService(s, &fakeLLM{text: topicList})
	pending, err := svc.Pending(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, []string{"Endgame Tactics", "Genetics Basics", "chess openings"}, pending)
	assert.NotContains(t, pending, "Chess Openings")
	assert.NotContains(t, pending, "Cell Biology")
}

func TestTopicService_Errors(t *testing.T) {
	svc := NewTopicService(newStore(t), &fakeLLM{err: common.ErrUpstreamUnavailable})

	_, err := svc.Available(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Pending(context.Background(), "alice")
	assert.ErrorIs(t, err, common.ErrUpstreamUnavailable)
}
