package models

import "time"

// User represents a user account. The map key in the store is Username.
type User struct {
	Username     string    `json:"-"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Interests    []string  `json:"interests"`
	CreatedAt    time.Time `json:"created_at"`
}

// PublicUser is the subset of a user returned after login.
type PublicUser struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Interests []string `json:"interests"`
}

// Public strips credentials and normalizes nil interests to an empty list.
func (u User) Public() PublicUser {
	return PublicUser{
		Username:  u.Username,
		Email:     u.Email,
		Interests: nonNil(u.Interests),
	}
}

// Profile is a user's account data together with aggregate quiz statistics.
type Profile struct {
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Interests        []string  `json:"interests"`
	CreatedAt        time.Time `json:"created_at"`
	QuizzesDone      int       `json:"quizzes_done"`
	CorrectAnswers   int       `json:"correct_answers"`
	IncorrectAnswers int       `json:"incorrect_answers"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
