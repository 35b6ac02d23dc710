package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"social-service/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore is the identity store. Misses are reported as gorm.ErrRecordNotFound.
type UserStore interface {
	FirstOrCreateByEmail(ctx context.Context, user *models.User) (bool, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	UpdateName(ctx context.Context, id uint, name string) error
	SearchByEmail(ctx context.Context, email string, page models.PageQuery) ([]models.User, int64, error)
	SearchByName(ctx context.Context, name string, page models.PageQuery) ([]models.User, int64, error)
}

type UserService struct {
	repo     UserStore
	tokens   *TokenService
	hashCost int
}

func NewUserService(repo UserStore, tokens *TokenService) *UserService {
	return &UserService{
		repo:     repo,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

// Signup registers email unless it already exists. created is false for a known email,
// in which case the stored password is left untouched.
func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.UserResponse, bool, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, false, ErrInvalidRequest
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		resp := models.NewUserResponse(existing)
		return &resp, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to load user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: string(hashedPassword),
	}
	created, err := s.repo.FirstOrCreateByEmail(ctx, &user)
	if err != nil {
		return nil, false, err
	}

	if created {
		slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	}
	resp := models.NewUserResponse(&user)
	return &resp, created, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenPair, error) {
	user, err := s.repo.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotRegistered
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.Password == "" {
		return nil, ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrWrongPassword
	}

	return s.tokens.GeneratePair(user)
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	claims, err := s.tokens.Parse(refreshToken, TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return s.tokens.GeneratePair(user)
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(err)
	}

	resp := models.NewUserResponse(user)
	return &resp, nil
}

// UpdateName sets the caller's display name.
func (s *UserService) UpdateName(ctx context.Context, userID uint, name string) (*models.UserResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidRequest
	}

	if err := s.repo.UpdateName(ctx, userID, name); err != nil {
		return nil, userLookupError(err)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, userLookupError(err)
	}
	slog.Info("User name updated", "user_id", user.ID, "name", user.DisplayName())

	resp := models.NewUserResponse(user)
	return &resp, nil
}

// SearchUsers matches by exact email when given, otherwise by name substring.
func (s *UserService) SearchUsers(ctx context.Context, email, name string, page models.PageQuery) (*models.Page[models.UserResponse], error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	var (
		users []models.User
		count int64
		err   error
	)
	switch {
	case email != "":
		users, count, err = s.repo.SearchByEmail(ctx, email, page)
	case name != "":
		users, count, err = s.repo.SearchByName(ctx, name, page)
	default:
		return nil, ErrInvalidSearch
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	results := make([]models.UserResponse, len(users))
	for i := range users {
		results[i] = models.NewUserResponse(&users[i])
	}
	return models.NewPage(page, count, results), nil
}
