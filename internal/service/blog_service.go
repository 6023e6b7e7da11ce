package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"bloglist/internal/auth"
	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

// NewBlog is the payload accepted on creation.
type NewBlog struct {
	Title  string
	Author string
	URL    string
	Likes  *int
}

// BlogService enforces blog ownership over the blog and user stores.
type BlogService interface {
	List(ctx context.Context) ([]domain.Blog, error)
	Get(ctx context.Context, id string) (*domain.Blog, error)
	Create(ctx context.Context, claim *auth.Claim, input NewBlog) (*domain.Blog, error)
	Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error)
	Delete(ctx context.Context, claim *auth.Claim, id string) error
}

type blogService struct {
	blogs  repository.BlogRepository
	users  repository.UserRepository
	logger *logrus.Logger
}

func NewBlogService(blogs repository.BlogRepository, users repository.UserRepository, logger *logrus.Logger) BlogService {
	if logger == nil {
		logger = logrus.New()
	}
	return &blogService{
		blogs:  blogs,
		users:  users,
		logger: logger,
	}
}

func (s *blogService) List(ctx context.Context) ([]domain.Blog, error) {
	return s.blogs.List(ctx)
}

func (s *blogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	blog, err := s.blogs.Get(ctx, id)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return blog, nil
}

// Create stores the blog and then links it from the owner's list. The two
// writes are not transactional: a failed link leaves the blog stored but unlisted.
func (s *blogService) Create(ctx context.Context, claim *auth.Claim, input NewBlog) (*domain.Blog, error) {
	if claim == nil || claim.UserID == "" {
		return nil, auth.ErrInvalidToken
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, invalid("title", "is required")
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, invalid("url", "is required")
	}
	likes := 0
	if input.Likes != nil {
		likes = *input.Likes
	}
	if likes < 0 {
		return nil, invalid("likes", "must not be negative")
	}

	user, err := s.users.GetByID(ctx, claim.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", auth.ErrInvalidToken)
		}
		return nil, err
	}

	blog := &domain.Blog{
		Title:  input.Title,
		Author: input.Author,
		URL:    input.URL,
		Likes:  likes,
		UserID: user.ID,
	}
	if _, err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}

	if err := s.users.AppendBlog(ctx, user.ID, blog.ID); err != nil {
		s.logger.WithFields(logrus.Fields{
			"blog_id": blog.ID,
			"user_id": user.ID,
		}).Warnf("blog stored but not linked to owner: %v", err)
		return nil, fmt.Errorf("link blog to user: %w", err)
	}

	blog.Owner = &domain.Owner{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
	}
	return blog, nil
}

// Update applies patch to any existing blog. No caller identity is checked.
func (s *blogService) Update(ctx context.Context, id string, patch domain.BlogPatch) (*domain.Blog, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, invalid("title", "must not be empty")
	}
	if patch.URL != nil && strings.TrimSpace(*patch.URL) == "" {
		return nil, invalid("url", "must not be empty")
	}
	if patch.Likes != nil && *patch.Likes < 0 {
		return nil, invalid("likes", "must not be negative")
	}

	if err := s.blogs.Update(ctx, id, patch); err != nil {
		return nil, translateNotFound(err)
	}
	return s.Get(ctx, id)
}

// Delete removes the blog when claim identifies its owner. The owner's blog
// list is not pruned.
func (s *blogService) Delete(ctx context.Context, claim *auth.Claim, id string) error {
	if claim == nil || claim.UserID == "" {
		return auth.ErrInvalidToken
	}

	blog, err := s.blogs.Get(ctx, id)
	if err != nil {
		return translateNotFound(err)
	}
	if blog.UserID != claim.UserID {
		return ErrForbidden
	}

	s.logger.WithFields(logrus.Fields{
		"blog_id": blog.ID,
		"user_id": claim.UserID,
	}).Info("owner deleting blog")
	if err := s.blogs.Delete(ctx, id); err != nil {
		return translateNotFound(err)
	}
	return nil
}

func translateNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
