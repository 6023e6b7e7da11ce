package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"bloglist/internal/auth"
	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

const minCredentialLength = 3

// LoginResult is returned after a successful login.
type LoginResult struct {
	Token    string
	Username string
	Name     string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, username, name, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	List(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	users    repository.UserRepository
	blogs    repository.BlogRepository
	tokens   *auth.Verifier
	tokenTTL time.Duration
	hashCost int
}

func NewUserService(users repository.UserRepository, blogs repository.BlogRepository, tokens *auth.Verifier, tokenTTL time.Duration) UserService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &userService{
		users:    users,
		blogs:    blogs,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *userService) Register(ctx context.Context, username, name, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)

	if username == "" {
		return nil, invalid("username", "is required")
	}
	if len(username) < minCredentialLength {
		return nil, invalid("username", fmt.Sprintf("must be at least %d characters", minCredentialLength))
	}
	if password == "" {
		return nil, invalid("password", "is required")
	}
	if len(password) < minCredentialLength {
		return nil, invalid("password", fmt.Sprintf("must be at least %d characters", minCredentialLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Name:         name,
		PasswordHash: string(hash),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

// List returns every user with its owned blogs resolved. Blogs deleted since
// they were linked are omitted from Blogs but kept in BlogIDs.
func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.User, len(users))
	for i := range users {
		blogs, err := s.blogs.ListByIDs(ctx, users[i].BlogIDs)
		if err != nil {
			return nil, err
		}
		u := sanitizeUser(&users[i])
		u.Blogs = blogs
		out[i] = *u
	}
	return out, nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	ids := user.BlogIDs
	if ids == nil {
		ids = []string{}
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Name:      user.Name,
		BlogIDs:   ids,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
