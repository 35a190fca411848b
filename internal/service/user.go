// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/userhub/userhub/internal/cache"
	"github.com/userhub/userhub/internal/metrics"
	"github.com/userhub/userhub/internal/model"
	"github.com/userhub/userhub/internal/repository"
)

// Service errors.
var (
	ErrInvalidName  = errors.New("invalid user name")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrEmailExists  = errors.New("email already exists")
	ErrUserNotFound = errors.New("user not found")
)

// emailRegex is a pragmatic shape check; the database enforces uniqueness.
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	// maxNameLength and maxEmailLength mirror the column widths.
	maxNameLength  = 100
	maxEmailLength = 100

	// DefaultListLimit is the page size when the client does not ask for one.
	DefaultListLimit = 100

	// MaxListLimit caps the page size.
	MaxListLimit = 500
)

// UserService handles user business logic.
type UserService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
}

// NewUserService creates a new UserService.
// cache may be nil; the service then reads straight from the database.
func NewUserService(repo *repository.Repository, cache *cache.Cache, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		repo:    repo,
		cache:   cache,
		metrics: recorder,
	}
}

// CreateUserInput defines input for creating a user.
type CreateUserInput struct {
	Name  string
	Email string
}

// CreateUser validates input and inserts a new user.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	name, err := normalizeName(input.Name)
	if err != nil {
		return nil, err
	}

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:  name,
		Email: email,
	}

	start := time.Now()
	err = s.repo.CreateUser(ctx, user)
	s.metrics.ObserveDBQuery("create_user", time.Since(start), err)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncUserCreated()

	// Cache writes are best effort; the database row is the source of truth.
	if s.cache != nil {
		_ = s.cache.SetUser(ctx, user)
		_ = s.cache.InvalidateUserList(ctx)
	}

	return user, nil
}

// GetUser retrieves a user by ID, consulting the cache first.
func (s *UserService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetUser(ctx, id); err == nil {
			s.metrics.IncUserCacheHit()
			s.metrics.IncUserFetched()
			return cached, nil
		}
		s.metrics.IncUserCacheMiss()
	}

	start := time.Now()
	user, err := s.repo.GetUserByID(ctx, id)
	s.metrics.ObserveDBQuery("get_user", time.Since(start), err)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	s.metrics.IncUserFetched()

	if s.cache != nil {
		_ = s.cache.SetUser(ctx, user)
	}

	return user, nil
}

// ListUsers returns users ordered by ID.
// Only the default page is cached; other limits go straight to the database.
func (s *UserService) ListUsers(ctx context.Context, limit int) ([]*model.User, error) {
	limit = clampLimit(limit)
	cacheable := s.cache != nil && limit == DefaultListLimit

	if cacheable {
		if cached, err := s.cache.GetUserList(ctx); err == nil {
			s.metrics.IncUserCacheHit()
			s.metrics.IncUserListed()
			return cached, nil
		}
		s.metrics.IncUserCacheMiss()
	}

	start := time.Now()
	users, err := s.repo.ListUsers(ctx, limit)
	s.metrics.ObserveDBQuery("list_users", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	s.metrics.IncUserListed()

	if cacheable {
		_ = s.cache.SetUserList(ctx, users)
	}

	return users, nil
}

// clampLimit normalizes a requested page size into [1, MaxListLimit].
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(email) > maxEmailLength || !emailRegex.MatchString(email) {
		return "", ErrInvalidEmail
	}
	return email, nil
}
