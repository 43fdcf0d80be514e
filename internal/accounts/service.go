package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mk-cardoso198/engajapro-digital-hub/internal/auth"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrNotFound           = errors.New("user not found")
	ErrDuplicate          = errors.New("username or email already exists")
)

type Service struct {
	repo     Repository
	location *time.Location
}

func NewService(repo Repository, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		location: location,
	}
}

// Authenticate verifies the password and rejects users whose role is not
// admin, so a valid non-admin login never gets a session.
func (s *Service) Authenticate(ctx context.Context, username, password string) (User, error) {
	username = normalizeUsername(username)
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	if user.Role != RoleAdmin {
		return User{}, ErrAccessDenied
	}
	return user, nil
}

// IsAdmin re-checks the role against the database on every guarded
// request, so revoking a user takes effect before the token expires.
func (s *Service) IsAdmin(ctx context.Context, userID string) bool {
	user, err := s.repo.FindByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return false
	}
	return user.Role == RoleAdmin
}

func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	user, err := s.repo.FindByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

func (s *Service) Create(ctx context.Context, username, email, password string) (User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	now := time.Now().In(s.location)
	user := User{
		ID:           primitive.NewObjectID().Hex(),
		Username:     normalizeUsername(username),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: hash,
		Role:         RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}
	return user, nil
}

func (s *Service) UpdatePassword(ctx context.Context, userID, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	updated, err := s.repo.UpdatePassword(ctx, strings.TrimSpace(userID), hash, time.Now().In(s.location))
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
