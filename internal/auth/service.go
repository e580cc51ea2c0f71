package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/schoolhub/classroom/internal/hash"
	"github.com/schoolhub/classroom/internal/models"
	"github.com/schoolhub/classroom/internal/repo"
	"github.com/schoolhub/classroom/internal/tokens"
	"github.com/schoolhub/classroom/pkg/logging"
)

const (
	DefaultAccessTTL  = 5 * time.Minute
	DefaultRefreshTTL = 180 * time.Minute
)

type Service struct {
	Repo       *repo.GormRepo
	Codec      *tokens.Codec
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewService(r *repo.GormRepo, codec *tokens.Codec) *Service {
	return &Service{
		Repo:       r,
		Codec:      codec,
		AccessTTL:  DefaultAccessTTL,
		RefreshTTL: DefaultRefreshTTL,
	}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     int
	Name     string
	LastName string
	School   string
	Class    string
}

// Register creates a student or teacher account. Admins are provisioned out
// of band and cannot be self-registered.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if in.Role != models.RoleStudent && in.Role != models.RoleTeacher {
		return nil, ErrInvalidRole
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: pwHash,
		Role:         in.Role,
		Name:         in.Name,
		LastName:     in.LastName,
		School:       in.School,
		Class:        in.Class,
	}

	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			l.Warn("register_error", "reason", "duplicate email or username")
			return nil, ErrDuplicateField
		}
		l.Error("register_error", "error", err)
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("login_error", "error", err)
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := hash.CheckPassword(user.PasswordHash, password)
	if err != nil {
		l.Error("login_error", "reason", "corrupted password hash", "user_id", user.ID)
		return nil, fmt.Errorf("check password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		l.Error("login_error", "error", err)
		return nil, err
	}

	// Overwriting the stored token supersedes every other live session for
	// this user.
	if err := s.Repo.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		l.Error("login_error", "error", err)
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	l.Info("login_ok", "user_id", user.ID)
	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair and rotates the
// stored token. The presented token must be the one currently on the user
// row; anything older, superseded, or foreign is rejected even when its
// signature and expiry still hold.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	claims, err := s.Codec.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, tokens.ErrTokenExpired) {
			return nil, tokens.ErrTokenExpired
		}
		return nil, tokens.ErrInvalidToken
	}

	user, err := s.Repo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, tokens.ErrInvalidToken
		}
		l.Error("refresh_error", "error", err)
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, tokens.ErrInvalidToken
	}

	pair, err := s.issuePair(user)
	if err != nil {
		l.Error("refresh_error", "error", err)
		return nil, err
	}

	if err := s.Repo.RotateRefreshToken(ctx, user.ID, refreshToken, pair.RefreshToken); err != nil {
		if errors.Is(err, repo.ErrStaleRefreshToken) {
			// A concurrent refresh won the rotation.
			return nil, tokens.ErrInvalidToken
		}
		l.Error("refresh_error", "error", err)
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}

	l.Info("refresh_ok", "user_id", user.ID)
	return pair, nil
}

func (s *Service) issuePair(user *models.User) (*TokenPair, error) {
	now := time.Now()

	access, err := s.Codec.SignAccess(user.ID, user.Email, user.Role, now.Add(s.AccessTTL))
	if err != nil {
		return nil, err
	}
	refresh, err := s.Codec.SignRefresh(user.ID, user.Email, user.Role, now.Add(s.RefreshTTL))
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
