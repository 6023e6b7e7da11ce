package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bloglist/internal/auth"
	"bloglist/internal/domain"
	"bloglist/internal/listhelper"
	"bloglist/internal/repository"
	"bloglist/internal/storage"
)

// Stats summarizes the blog collection.
type Stats struct {
	Count      int                     `json:"count"`
	TotalLikes int                     `json:"total_likes"`
	Favorite   *listhelper.Favorite    `json:"favorite"`
	MostBlogs  *listhelper.AuthorCount `json:"most_blogs"`
}

// ExportConfig points exports at a bucket. An empty Bucket disables exports.
type ExportConfig struct {
	Bucket    string
	KeyPrefix string
}

// StatsService computes statistics over the stored blogs and exports snapshots.
type StatsService interface {
	Summary(ctx context.Context) (*Stats, error)
	Export(ctx context.Context, claim *auth.Claim) (string, error)
	ListExports(ctx context.Context) ([]storage.ObjectInfo, error)
}

type statsService struct {
	blogs   repository.BlogRepository
	storage storage.Service
	cfg     ExportConfig
	now     func() time.Time
	logger  *logrus.Logger
}

func NewStatsService(blogs repository.BlogRepository, store storage.Service, cfg ExportConfig, logger *logrus.Logger) StatsService {
	if logger == nil {
		logger = logrus.New()
	}
	cfg.KeyPrefix = strings.Trim(cfg.KeyPrefix, "/")
	return &statsService{
		blogs:   blogs,
		storage: store,
		cfg:     cfg,
		now:     time.Now,
		logger:  logger,
	}
}

func summarize(blogs []domain.Blog) *Stats {
	return &Stats{
		Count:      len(blogs),
		TotalLikes: listhelper.TotalLikes(blogs),
		Favorite:   listhelper.FavoriteBlog(blogs),
		MostBlogs:  listhelper.MostBlogs(blogs),
	}
}

func (s *statsService) Summary(ctx context.Context) (*Stats, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(blogs), nil
}

type snapshotOwner struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type snapshotBlog struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Author string         `json:"author"`
	URL    string         `json:"url"`
	Likes  int            `json:"likes"`
	User   *snapshotOwner `json:"user,omitempty"`
}

type snapshot struct {
	ExportedAt time.Time      `json:"exported_at"`
	ExportedBy string         `json:"exported_by"`
	Stats      *Stats         `json:"stats"`
	Blogs      []snapshotBlog `json:"blogs"`
}

// Export uploads the current blogs and their statistics as one JSON object.
func (s *statsService) Export(ctx context.Context, claim *auth.Claim) (string, error) {
	if claim == nil || claim.UserID == "" {
		return "", auth.ErrInvalidToken
	}
	if s.storage == nil || s.cfg.Bucket == "" {
		return "", ErrExportDisabled
	}

	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	snap := snapshot{
		ExportedAt: now,
		ExportedBy: claim.Username,
		Stats:      summarize(blogs),
		Blogs:      make([]snapshotBlog, len(blogs)),
	}
	for i, blog := range blogs {
		snap.Blogs[i] = snapshotBlog{
			ID:     blog.ID,
			Title:  blog.Title,
			Author: blog.Author,
			URL:    blog.URL,
			Likes:  blog.Likes,
		}
		if blog.Owner != nil {
			snap.Blogs[i].User = &snapshotOwner{Username: blog.Owner.Username, Name: blog.Owner.Name}
		}
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := path.Join(s.cfg.KeyPrefix, fmt.Sprintf("%s-%s.json", now.Format("20060102T150405Z"), uuid.NewString()))
	location, err := s.storage.Upload(ctx, bytes.NewReader(body), storage.UploadOptions{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		ContentType: "application/json",
	})
	if err != nil {
		return "", err
	}

	s.logger.WithFields(logrus.Fields{
		"location": location,
		"blogs":    len(blogs),
		"user_id":  claim.UserID,
	}).Info("exported blog snapshot")
	return location, nil
}

func (s *statsService) ListExports(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.storage == nil || s.cfg.Bucket == "" {
		return nil, ErrExportDisabled
	}
	prefix := s.cfg.KeyPrefix
	if prefix != "" {
		prefix += "/"
	}
	return s.storage.ListObjects(ctx, s.cfg.Bucket, prefix)
}
