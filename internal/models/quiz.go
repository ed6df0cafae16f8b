package models

import (
	"fmt"
	"time"
)

// QuestionRecord is one multiple-choice question extracted from generated text.
type QuestionRecord struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// QuizHistoryEntry is one recorded quiz attempt. Score is caller-supplied and
// is not checked against TotalQuestions.
type QuizHistoryEntry struct {
	ID             string           `json:"id,omitempty"`
	Topic          string           `json:"topic"`
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	Questions      []QuestionRecord `json:"questions,omitempty"`
	UserAnswers    []string         `json:"user_answers,omitempty"`
	Timestamp      time.Time        `json:"timestamp"`
}

// EntryID builds the composite id of the seq-th entry (zero based) of a user.
func EntryID(userID string, seq int, ts time.Time) string {
	return fmt.Sprintf("%s_%d_%s", userID, seq, ts.Format("20060102150405"))
}
