package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"bloglist/internal/domain"
	"bloglist/internal/repository"
)

const createBlogsTable = `
CREATE TABLE IF NOT EXISTS blogs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL DEFAULT '',
	url TEXT NOT NULL,
	likes INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
	user_id TEXT NULL REFERENCES users(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_blogs_user_id ON blogs(user_id);
`

const selectBlogColumns = `
SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, u.username, u.name, b.created_at, b.updated_at
FROM blogs b
LEFT JOIN users u ON u.id = b.user_id`

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) repository.BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBlogsTable); err != nil {
		return fmt.Errorf("create blogs table: %w", err)
	}
	return nil
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) (string, error) {
	if blog.ID == "" {
		blog.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO blogs (id, title, author, url, likes, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		nullString(blog.UserID),
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert blog: %w", err)
	}
	return blog.ID, nil
}

func (r *BlogRepository) Get(ctx context.Context, id string) (*domain.Blog, error) {
	row := r.db.QueryRowContext(ctx, selectBlogColumns+`
WHERE b.id = ?`, id)
	return scanBlog(row)
}

func (r *BlogRepository) List(ctx context.Context) ([]domain.Blog, error) {
	rows, err := r.db.QueryContext(ctx, selectBlogColumns+`
ORDER BY b.rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("query blogs: %w", err)
	}
	defer rows.Close()

	blogs := []domain.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}
	return blogs, rows.Err()
}

// ListByIDs returns the blogs matching ids in the order of ids. Unknown ids are skipped.
func (r *BlogRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Blog, error) {
	if len(ids) == 0 {
		return []domain.Blog{}, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(selectBlogColumns+`
WHERE b.id IN (%s)`, strings.Join(placeholders, ",")), args...)
	if err != nil {
		return nil, fmt.Errorf("query blogs by id: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]domain.Blog, len(ids))
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		byID[blog.ID] = *blog
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blogs by id: %w", err)
	}

	blogs := make([]domain.Blog, 0, len(byID))
	for _, id := range ids {
		if blog, ok := byID[id]; ok {
			blogs = append(blogs, blog)
		}
	}
	return blogs, nil
}

func (r *BlogRepository) Update(ctx context.Context, id string, patch domain.BlogPatch) error {
	sets := []string{"updated_at=?"}
	args := []any{time.Now().UTC()}
	if patch.Title != nil {
		sets = append(sets, "title=?")
		args = append(args, *patch.Title)
	}
	if patch.Author != nil {
		sets = append(sets, "author=?")
		args = append(args, *patch.Author)
	}
	if patch.URL != nil {
		sets = append(sets, "url=?")
		args = append(args, *patch.URL)
	}
	if patch.Likes != nil {
		sets = append(sets, "likes=?")
		args = append(args, *patch.Likes)
	}
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`
UPDATE blogs
SET %s
WHERE id=?`, strings.Join(sets, ", ")), args...)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("blog update rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("blog %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("blog delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("blog %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (r *BlogRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count blogs: %w", err)
	}
	return n, nil
}

func scanBlog(scanner interface {
	Scan(dest ...any) error
}) (*domain.Blog, error) {
	var (
		blog      domain.Blog
		userID    sql.NullString
		username  sql.NullString
		name      sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)

	if err := scanner.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&userID,
		&username,
		&name,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("blog: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan blog: %w", err)
	}

	blog.CreatedAt = createdAt.Local()
	blog.UpdatedAt = updatedAt.Local()
	if userID.Valid {
		blog.UserID = userID.String
		if username.Valid {
			blog.Owner = &domain.Owner{
				ID:       userID.String,
				Username: username.String,
				Name:     name.String,
			}
		}
	}
	return &blog, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
