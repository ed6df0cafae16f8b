// Package quiztext turns model-generated text into structured quiz data.
package quiztext

import (
	"regexp"
	"strings"

	"github.com/isdelr/quizmaster-be/internal/models"
)

// QuestionsPerQuiz is the number of questions the prompt asks the model for.
const QuestionsPerQuiz = 3

// QuestionFormat is the layout of one question, as the quiz prompt asks for
// it and as Extract reads it. Verbs: number, question, options A to D, answer.
const QuestionFormat = "**QUESTION %d:** %s\n\n" +
	"**A.** %s\n" +
	"**B.** %s\n" +
	"**C.** %s\n" +
	"**D.** %s\n\n" +
	"**ANS:** %s\n\n"

const questionBlock = `\*\*QUESTION \d+:\*\* (.+?)\n\n` +
	`\*\*A\.\*\* (.+?)\n` +
	`\*\*B\.\*\* (.+?)\n` +
	`\*\*C\.\*\* (.+?)\n` +
	`\*\*D\.\*\* (.+?)\n\n`

var (
	questionStart = regexp.MustCompile(`\*\*QUESTION \d+:\*\*`)

	// The answer label must be wrapped in emphasis markers.
	strictPattern = regexp.MustCompile(`(?s)^` + questionBlock + `\*\*ANS:\*\* \*\*(.+?)\*\*`)

	// The answer runs to the next blank line or the end of the block.
	fallbackPattern = regexp.MustCompile(`(?s)^` + questionBlock + `\*\*ANS:\*\* (.+?)(?:\n\n|\n?\z)`)
)

// Extract parses every well-formed question block in text. A block that does
// not match the layout is skipped without affecting its neighbours. The
// result is empty, never nil, when nothing matches.
func Extract(text string) []models.QuestionRecord {
	parts := blocks(text)

	questions := extractWith(strictPattern, parts)
	if len(questions) == 0 {
		questions = extractWith(fallbackPattern, parts)
	}
	return questions
}

// blocks cuts text into one chunk per "**QUESTION n:**" heading so a
// malformed question cannot borrow fields from the next one.
func blocks(text string) []string {
	locs := questionStart.FindAllStringIndex(text, -1)
	parts := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		parts = append(parts, text[loc[0]:end])
	}
	return parts
}

func extractWith(pattern *regexp.Regexp, parts []string) []models.QuestionRecord {
	questions := make([]models.QuestionRecord, 0, len(parts))
	for _, part := range parts {
		m := pattern.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		questions = append(questions, models.QuestionRecord{
			Question: strings.TrimSpace(m[1]),
			Options: []string{
				strings.TrimSpace(m[2]),
				strings.TrimSpace(m[3]),
				strings.TrimSpace(m[4]),
				strings.TrimSpace(m[5]),
			},
			CorrectAnswer: strings.ReplaceAll(strings.TrimSpace(m[6]), "*", ""),
		})
	}
	return questions
}

// ParseTopics splits a one-topic-per-line reply, dropping list numbering,
// bullets and blank lines.
func ParseTopics(text string) []string {
	var topics []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		topic := strings.TrimLeft(strings.TrimSpace(line), "123456789.- ")
		if topic != "" {
			topics = append(topics, topic)
		}
	}
	if topics == nil {
		return []string{}
	}
	return topics
}
