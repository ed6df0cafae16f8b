// Package inference talks to the language-model endpoint that writes quizzes.
package inference

import (
	"context"
	"fmt"

	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/isdelr/quizmaster-be/internal/models"
)

// Client generates free text from a prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	ListModels(ctx context.Context) ([]string, error)
	Model() string
}

// StatusError is returned when the endpoint answers with a non-success status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference API request failed: %d - %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return common.ErrUpstream }

// Verify lists the endpoint's models and reports whether the configured one
// is among them.
func Verify(ctx context.Context, c Client) (models.InferenceStatus, error) {
	names, err := c.ListModels(ctx)
	if err != nil {
		return models.InferenceStatus{}, err
	}
	status := models.InferenceStatus{
		Model:           c.Model(),
		AvailableModels: names,
	}
	for _, name := range names {
		if name == c.Model() {
			status.ModelAvailable = true
			break
		}
	}
	if status.AvailableModels == nil {
		status.AvailableModels = []string{}
	}
	return status, nil
}
