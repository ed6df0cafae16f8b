package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// runConcurrentAppends submits n entries for each of two users in parallel
// and checks that every entry got a distinct sequence-based id.
func runConcurrentAppends(t *testing.T, s Store, n int) {
	t.Helper()
	ctx := context.Background()

	var g errgroup.Group
	for i := 0; i < n; i++ {
		for _, user := range []string{"alice", "bob"} {
			i, user := i, user
			g.Go(func() error {
				_, err := s.AppendEntry(ctx, user, models.QuizHistoryEntry{
					Topic:          fmt.Sprintf("topic-%d", i),
					Score:          i % 4,
					TotalQuestions: 3,
				})
				return err
			})
		}
	}
	require.NoError(t, g.Wait())

	for _, user := range []string{"alice", "bob"} {
		entries, err := s.History(ctx, user)
		require.NoError(t, err)
		require.Len(t, entries, n)

		seen := make(map[string]bool, n)
		for _, e := range entries {
			assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
			seen[e.ID] = true
		}
	}
}
