package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isdelr/quizmaster-be/internal/auth"
	"github.com/isdelr/quizmaster-be/internal/common"
	"github.com/isdelr/quizmaster-be/internal/models"
	"github.com/isdelr/quizmaster-be/internal/store"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, username, password string) (models.PublicUser, string, error)
	UpdateInterests(ctx context.Context, userID string, interests []string) error
	Profile(ctx context.Context, userID string) (models.Profile, error)
	Me(ctx context.Context, username string) (models.PublicUser, error)
}

// RegisterRequest carries the fields of a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// UserService provides business logic for accounts and profiles.
type UserService struct {
	store  store.Store
	tokens *auth.TokenIssuer
	now    func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(s store.Store, tokens *auth.TokenIssuer) *UserService {
	return &UserService{store: s, tokens: tokens, now: time.Now}
}

// Register creates an account with a hashed password.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) error {
	if req.Username == "" || req.Password == "" {
		return fmt.Errorf("%w: missing required fields", common.ErrInvalidInput)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		Phone:        req.Phone,
		Interests:    []string{},
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return fmt.Errorf("%w: username already exists", common.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().Str("username", req.Username).Msg("User registered")
	return nil
}

// Login checks credentials and returns the public view of the account with
// a signed session token.
func (s *UserService) Login(ctx context.Context, username, password string) (models.PublicUser, string, error) {
	if username == "" || password == "" {
		return models.PublicUser{}, "", fmt.Errorf("%w: missing username or password", common.ErrInvalidInput)
	}

	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.PublicUser{}, "", common.ErrUnauthorized
		}
		return models.PublicUser{}, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.PublicUser{}, "", common.ErrUnauthorized
	}

	token, err := s.tokens.Generate(username)
	if err != nil {
		return models.PublicUser{}, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user.Public(), token, nil
}

// UpdateInterests replaces a user's interests. Unknown users get a bare
// account holding only the interests.
func (s *UserService) UpdateInterests(ctx context.Context, userID string, interests []string) error {
	if userID == "" {
		return fmt.Errorf("%w: missing user_id", common.ErrInvalidInput)
	}
	if interests == nil {
		interests = []string{}
	}
	if _, err := s.store.UpsertInterests(ctx, userID, interests); err != nil {
		return fmt.Errorf("failed to update interests: %w", err)
	}
	return nil
}

// Profile returns account data with totals over the user's quiz history.
func (s *UserService) Profile(ctx context.Context, userID string) (models.Profile, error) {
	if userID == "" {
		return models.Profile{}, fmt.Errorf("%w: missing user_id parameter", common.ErrInvalidInput)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.Profile{}, fmt.Errorf("%w: user not found", common.ErrNotFound)
		}
		return models.Profile{}, err
	}
	history, err := s.store.History(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}

	correct := lo.SumBy(history, func(e models.QuizHistoryEntry) int { return e.Score })
	total := lo.SumBy(history, func(e models.QuizHistoryEntry) int { return e.TotalQuestions })

	return models.Profile{
		Username:         userID,
		Email:            user.Email,
		Phone:            user.Phone,
		Interests:        user.Public().Interests,
		CreatedAt:        user.CreatedAt,
		QuizzesDone:      len(history),
		CorrectAnswers:   correct,
		IncorrectAnswers: total - correct,
	}, nil
}

// Me returns the public view of an authenticated user.
func (s *UserService) Me(ctx context.Context, username string) (models.PublicUser, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return models.PublicUser{}, err
	}
	return user.Public(), nil
}
