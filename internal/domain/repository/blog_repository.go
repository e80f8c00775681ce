package repository

import (
	"context"
	"errors"

	"blog-backend/internal/domain/entity"
)

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// BlogFilter is the normalized listing query. SortField is a column name
// already whitelisted by the caller; Categories is the explicit set to
// match (never empty unless no category exists at all).
type BlogFilter struct {
	AuthorID   string // empty = all authors
	Search     string // case-insensitive substring match on title
	Categories []string
	SortField  string
	SortDesc   bool
	Offset     int
	Limit      int
}

// BlogRepository defines the interface for blog and comment persistence.
// Read methods resolve the author display subset and embedded comments.
type BlogRepository interface {
	Create(ctx context.Context, b *entity.Blog) error
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	List(ctx context.Context, f BlogFilter) ([]*entity.Blog, error)
	// Count matches search against the given category set. Listing passes
	// the full distinct set here regardless of the selected filter (and no
	// author scope), mirroring the documented total semantics.
	Count(ctx context.Context, search string, categories []string) (int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, b *entity.Blog) error
	Delete(ctx context.Context, id string) error

	Comments(ctx context.Context, blogID string) ([]entity.Comment, error)
	// UpsertComment appends a comment, or replaces the text of the caller's
	// existing comment on the same blog (id and position preserved), and
	// recomputes the denormalized count.
	UpsertComment(ctx context.Context, blogID string, c *entity.Comment) error
	// DeleteComment removes a comment by id and recomputes the count.
	DeleteComment(ctx context.Context, blogID, commentID string) error
}
