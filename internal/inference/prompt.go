package inference

import (
	"fmt"
	"strings"

	"github.com/isdelr/quizmaster-be/internal/quiztext"
)

const topicsTemplate = "Based on the user's interests: %s, " +
	"suggest 5 specific quiz topics that would be relevant and engaging. " +
	"Format your response as a simple list, one topic per line. " +
	"Make the topics specific and focused on areas where the user can test their knowledge. " +
	"For example, if the user is interested in 'Android Development', suggest topics like: " +
	"'Android UI Components', 'Activity Lifecycle', 'Material Design Guidelines', etc."

// QuizPrompt asks for exactly three multiple-choice questions on topic, laid
// out in the format quiztext.Extract understands.
func QuizPrompt(topic string, interests []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate EXACTLY 3 multiple-choice questions for a quiz titled: '%s'. ", topic)
	if len(interests) > 0 {
		fmt.Fprintf(&b, "The user is interested in: %s. ", strings.Join(interests, ", "))
	}
	b.WriteString("All questions must be highly relevant to the quiz title and, where possible, connect to the user's interests. ")
	b.WriteString("For each question, provide 4 options (A, B, C, D) with only one correct answer. ")
	b.WriteString("Format your response EXACTLY as follows:\n")
	for i := 1; i <= quiztext.QuestionsPerQuiz; i++ {
		fmt.Fprintf(&b, quiztext.QuestionFormat, i, "[Your question here]",
			"[First option]", "[Second option]", "[Third option]", "[Fourth option]",
			"[Correct answer letter]")
	}
	b.WriteString("IMPORTANT: Do not generate questions outside the scope of the quiz title. ")
	fmt.Fprintf(&b, "Make sure all questions are specific to '%s' and, if possible, tailored to the user's interests.", topic)
	return b.String()
}

// TopicsPrompt asks for five quiz topics, one per line, matching interests.
func TopicsPrompt(interests []string) string {
	return fmt.Sprintf(topicsTemplate, strings.Join(interests, ", "))
}
