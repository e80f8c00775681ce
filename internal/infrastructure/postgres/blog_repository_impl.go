package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domain/entity"
	"blog-backend/internal/domain/repository"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

func (r *BlogRepository) Create(ctx context.Context, b *entity.Blog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (author_id, title, description, category, image_id, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, num_comments, created_at, updated_at
	`, b.AuthorID, b.Title, b.Description, b.Category, b.Image.ID, b.Image.URL)

	return row.Scan(&b.ID, &b.NumComments, &b.CreatedAt, &b.UpdatedAt)
}

const blogSelect = `
	SELECT b.id, b.author_id, b.title, b.description, b.category,
	       b.image_id, b.image_url, b.num_comments, b.created_at, b.updated_at,
	       u.name, u.bio, u.avatar_id, u.avatar_url
	FROM blogs b
	JOIN users u ON u.id = b.author_id
`

func scanBlog(row pgx.Row) (*entity.Blog, error) {
	b := &entity.Blog{Author: &entity.Author{}}
	err := row.Scan(&b.ID, &b.AuthorID, &b.Title, &b.Description, &b.Category,
		&b.Image.ID, &b.Image.URL, &b.NumComments, &b.CreatedAt, &b.UpdatedAt,
		&b.Author.Name, &b.Author.Bio, &b.Author.Avatar.ID, &b.Author.Avatar.URL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	b.Author.ID = b.AuthorID
	return b, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	b, err := scanBlog(r.pool.QueryRow(ctx, blogSelect+` WHERE b.id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.attachComments(ctx, []*entity.Blog{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// likeEscaper neutralizes LIKE wildcards in user-supplied search terms so
// "100%" matches the literal text instead of everything.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

func (r *BlogRepository) List(ctx context.Context, f repository.BlogFilter) ([]*entity.Blog, error) {
	var sb strings.Builder
	sb.WriteString(blogSelect)

	args := []any{likePattern(f.Search), f.Categories}
	sb.WriteString(` WHERE b.title ILIKE $1 AND b.category = ANY($2)`)
	if f.AuthorID != "" {
		args = append(args, f.AuthorID)
		fmt.Fprintf(&sb, ` AND b.author_id = $%d`, len(args))
	}

	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	// SortField comes from the service-side whitelist, never from the client.
	fmt.Fprintf(&sb, ` ORDER BY b.%s %s`, f.SortField, dir)

	args = append(args, f.Limit)
	fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	args = append(args, f.Offset)
	fmt.Fprintf(&sb, ` OFFSET $%d`, len(args))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := make([]*entity.Blog, 0, f.Limit)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachComments(ctx, blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *BlogRepository) Count(ctx context.Context, search string, categories []string) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*)
		FROM blogs
		WHERE title ILIKE $1 AND category = ANY($2)
	`, likePattern(search), categories).Scan(&total)
	return total, err
}

func (r *BlogRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM blogs ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *BlogRepository) Update(ctx context.Context, b *entity.Blog) error {
	b.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE blogs
		SET title = $1, description = $2, category = $3,
		    image_id = $4, image_url = $5, updated_at = $6
		WHERE id = $7
	`, b.Title, b.Description, b.Category, b.Image.ID, b.Image.URL, b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	// Comments go with the blog (ON DELETE CASCADE).
	res, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

const commentSelect = `
	SELECT c.id, c.user_id, c.author_name, c.comment, c.created_at,
	       COALESCE(u.avatar_id, ''), COALESCE(u.avatar_url, '')
	FROM comments c
	LEFT JOIN users u ON u.id = c.user_id
`

func (r *BlogRepository) Comments(ctx context.Context, blogID string) ([]entity.Comment, error) {
	rows, err := r.pool.Query(ctx, commentSelect+`
		WHERE c.blog_id = $1
		ORDER BY c.created_at, c.id
	`, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows, nil)
}

// attachComments resolves the embedded comment lists for a page of blogs in
// one query.
func (r *BlogRepository) attachComments(ctx context.Context, blogs []*entity.Blog) error {
	if len(blogs) == 0 {
		return nil
	}
	ids := make([]string, len(blogs))
	byID := make(map[string]*entity.Blog, len(blogs))
	for i, b := range blogs {
		ids[i] = b.ID
		byID[b.ID] = b
		b.Comments = []entity.Comment{}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT c.blog_id, c.id, c.user_id, c.author_name, c.comment, c.created_at,
		       COALESCE(u.avatar_id, ''), COALESCE(u.avatar_url, '')
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.blog_id = ANY($1)
		ORDER BY c.created_at, c.id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var blogID string
		var c entity.Comment
		if err := rows.Scan(&blogID, &c.ID, &c.UserID, &c.AuthorName, &c.Comment,
			&c.CreatedAt, &c.Avatar.ID, &c.Avatar.URL); err != nil {
			return err
		}
		if b, ok := byID[blogID]; ok {
			b.Comments = append(b.Comments, c)
		}
	}
	return rows.Err()
}

func collectComments(rows pgx.Rows, out []entity.Comment) ([]entity.Comment, error) {
	if out == nil {
		out = []entity.Comment{}
	}
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.AuthorName, &c.Comment,
			&c.CreatedAt, &c.Avatar.ID, &c.Avatar.URL); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *BlogRepository) UpsertComment(ctx context.Context, blogID string, c *entity.Comment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Replacement keeps the original row: id, position and author snapshot
	// are preserved, only the text changes.
	err = tx.QueryRow(ctx, `
		INSERT INTO comments (blog_id, user_id, author_name, comment)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (blog_id, user_id) DO UPDATE SET comment = EXCLUDED.comment
		RETURNING id, created_at
	`, blogID, c.UserID, c.AuthorName, c.Comment).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return err
	}

	if err := syncCommentCount(ctx, tx, blogID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *BlogRepository) DeleteComment(ctx context.Context, blogID, commentID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Deleting an unknown comment id is a no-op; the count is recomputed
	// from the remaining rows either way.
	if _, err := tx.Exec(ctx, `
		DELETE FROM comments WHERE blog_id = $1 AND id = $2
	`, blogID, commentID); err != nil {
		return err
	}

	if err := syncCommentCount(ctx, tx, blogID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func syncCommentCount(ctx context.Context, tx pgx.Tx, blogID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE blogs
		SET num_comments = (SELECT count(*) FROM comments WHERE blog_id = $1),
		    updated_at = now()
		WHERE id = $1
	`, blogID)
	return err
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
