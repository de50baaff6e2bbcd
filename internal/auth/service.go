package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub/internal/shared/config"
	"eventhub/internal/shared/constants"
	"eventhub/internal/shared/token"
	"eventhub/internal/users"
	"eventhub/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	// Authenticate checks credentials without issuing a token.
	Authenticate(ctx context.Context, email, password string) (*users.User, error)
	Me(ctx context.Context, userID int64) (*users.Profile, error)
}

type service struct {
	repo   users.Repository
	config config.JWTConfig
	log    *logger.Logger
	now    func() time.Time
}

func NewService(repo users.Repository, cfg config.JWTConfig, log *logger.Logger) Service {
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{repo: repo, config: cfg, log: log, now: time.Now}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	var user *users.User
	err := s.repo.WithTx(ctx, func(tx users.Repository) error {
		// Check if user already exists
		_, err := tx.GetByEmail(ctx, email)
		if err == nil {
			return ErrUserAlreadyExists
		}
		if !errors.Is(err, users.ErrUserNotFound) {
			return err
		}

		id, err := tx.NextID(ctx)
		if err != nil {
			return err
		}
		user = &users.User{
			ID:        id,
			Name:      strings.TrimSpace(req.Name),
			Email:     email,
			Password:  req.Password,
			Phone:     strings.TrimSpace(req.Phone),
			Role:      constants.RoleUser,
			CreatedAt: s.now(),
		}
		return tx.Save(ctx, user)
	})
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return s.issue(ctx, user, "register")
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, user, "password")
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*users.User, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, users.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.Password != password {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *service) Me(ctx context.Context, userID int64) (*users.Profile, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := user.Profile()
	return &p, nil
}

func (s *service) issue(ctx context.Context, user *users.User, method string) (*AuthResponse, error) {
	accessToken, err := token.Issue(s.config, user.ID, user.Email, user.Role, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	s.log.LogAuthSuccess(ctx, user.ID, method)
	return &AuthResponse{
		User:        user.Profile(),
		AccessToken: accessToken,
		ExpiresIn:   int64(s.config.JWTExpiresIn.Seconds()),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
