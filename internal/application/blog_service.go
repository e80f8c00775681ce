package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"blog-backend/internal/domain/entity"
	repo "blog-backend/internal/domain/repository"
	"blog-backend/pkg/helpers"
)

const blogImageFolder = "Blog-Post"

// sortFields whitelists listing sort keys to column names.
var sortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"category":  "category",
}

// BlogService owns blog CRUD, embedded comments and listing queries.
type BlogService struct {
	Repo    repo.BlogRepository
	Users   repo.UserRepository
	Media   MediaGateway
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
}

func NewBlogService(r repo.BlogRepository, users repo.UserRepository, media MediaGateway, logger *logrus.Logger, es *elasticsearch.Client, esIndex string) *BlogService {
	return &BlogService{Repo: r, Users: users, Media: media, Logger: logger, ES: es, ESIndex: esIndex}
}

type CreateBlogInput struct {
	Title       string
	Description string
	Category    string
	Image       string // inline base64 image, optional
}

// Create uploads the image (if any) first; an upload failure aborts the
// whole operation so no partial post is written.
func (s *BlogService) Create(ctx context.Context, authorID string, in CreateBlogInput) (*entity.Blog, error) {
	if in.Title == "" || in.Description == "" || in.Category == "" {
		return nil, ErrMissingFields
	}

	var img entity.Image
	if in.Image != "" {
		data, err := helpers.DecodeImagePayload(in.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadImagePayload, err)
		}
		img, err = s.Media.Upload(ctx, data, blogImageFolder, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
		}
	}

	b := &entity.Blog{
		AuthorID:    authorID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Image:       img,
	}
	if err := s.Repo.Create(ctx, b); err != nil {
		return nil, err
	}
	s.indexBlog(ctx, b)
	return b, nil
}

// ListFilter is the raw listing query as it arrives from the client.
type ListFilter struct {
	Page     int
	Limit    int
	Search   string
	Category string // "All" or comma-separated exact category names
	Sort     string // "field" or "field,direction", default createdAt asc
}

type ListResult struct {
	Blogs      []*entity.Blog
	Total      int64
	Page       int
	Limit      int
	Categories []string
}

// List returns a page of posts with resolved author/comment-author fields,
// the total matching count and the set of distinct categories.
//
// The total is computed against the full distinct-category set rather than
// the selected filter; a category disappearing between the two reads can
// transiently undercount. Accepted race, not a contract violation.
func (s *BlogService) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	return s.list(ctx, "", f)
}

// ListMine is List scoped to the caller's own posts.
func (s *BlogService) ListMine(ctx context.Context, authorID string, f ListFilter) (*ListResult, error) {
	return s.list(ctx, authorID, f)
}

func (s *BlogService) list(ctx context.Context, authorID string, f ListFilter) (*ListResult, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 5
	}

	all, err := s.Repo.DistinctCategories(ctx)
	if err != nil {
		return nil, err
	}

	selected := all
	if f.Category != "" && f.Category != "All" {
		selected = strings.Split(f.Category, ",")
	}

	field, desc := parseSort(f.Sort)
	blogs, err := s.Repo.List(ctx, repo.BlogFilter{
		AuthorID:   authorID,
		Search:     f.Search,
		Categories: selected,
		SortField:  field,
		SortDesc:   desc,
		Offset:     (f.Page - 1) * f.Limit,
		Limit:      f.Limit,
	})
	if err != nil {
		return nil, err
	}

	total, err := s.Repo.Count(ctx, f.Search, all)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Blogs:      blogs,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		Categories: all,
	}, nil
}

func parseSort(sort string) (field string, desc bool) {
	parts := strings.SplitN(sort, ",", 2)
	col, ok := sortFields[strings.TrimSpace(parts[0])]
	if !ok {
		col = "created_at"
	}
	if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc") {
		return col, true
	}
	return col, false
}

// Get returns the populated post, or (nil, nil) when absent: detail lookup
// deliberately answers with a null blog instead of a 404.
func (s *BlogService) Get(ctx context.Context, id string) (*entity.Blog, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

type UpdateBlogInput struct {
	Title       string
	Description string
	Category    string
	Image       string // non-empty = replace image, empty = keep existing
}

// Update mutates a post after an ownership check. A new image payload
// destroys the previous asset before uploading the replacement.
func (s *BlogService) Update(ctx context.Context, userID, id string, in UpdateBlogInput) (*entity.Blog, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	if b.AuthorID != userID {
		return nil, ErrNotOwner
	}

	if in.Image != "" {
		data, err := helpers.DecodeImagePayload(in.Image)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadImagePayload, err)
		}
		if b.HasImage() {
			if err := s.Media.Destroy(ctx, b.Image.ID); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMediaDestroy, err)
			}
		}
		img, err := s.Media.Upload(ctx, data, blogImageFolder, 0)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
		}
		b.Image = img
	}

	if in.Title != "" {
		b.Title = in.Title
	}
	if in.Description != "" {
		b.Description = in.Description
	}
	if in.Category != "" {
		b.Category = in.Category
	}

	if err := s.Repo.Update(ctx, b); err != nil {
		return nil, err
	}
	s.indexBlog(ctx, b)
	return b, nil
}

// Delete removes the post after destroying its media asset. The two calls
// are independent; a crash in between leaves an orphaned asset at worst.
func (s *BlogService) Delete(ctx context.Context, userID, id string) error {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return ErrBlogNotFound
		}
		return err
	}
	if b.AuthorID != userID {
		return ErrNotOwner
	}

	if b.HasImage() {
		if err := s.Media.Destroy(ctx, b.Image.ID); err != nil {
			return fmt.Errorf("%w: %v", ErrMediaDestroy, err)
		}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeBlogIndex(ctx, id)
	return nil
}

// UpsertComment appends the caller's comment, or replaces the text of their
// existing comment on the same post (one comment per author per post).
func (s *BlogService) UpsertComment(ctx context.Context, userID, blogID, text string) error {
	if text == "" {
		return ErrMissingFields
	}
	if _, err := s.Repo.GetByID(ctx, blogID); err != nil {
		if isNotFound(err) {
			return ErrBlogNotFound
		}
		return err
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	return s.Repo.UpsertComment(ctx, blogID, &entity.Comment{
		UserID:     userID,
		AuthorName: u.Name,
		Comment:    text,
	})
}

// Comments returns the ordered comment list of a post.
func (s *BlogService) Comments(ctx context.Context, blogID string) ([]entity.Comment, error) {
	if _, err := s.Repo.GetByID(ctx, blogID); err != nil {
		if isNotFound(err) {
			return nil, ErrBlogNotFound
		}
		return nil, err
	}
	return s.Repo.Comments(ctx, blogID)
}

// DeleteComment removes a comment by id and recomputes the denormalized
// count. There is intentionally no ownership check here.
func (s *BlogService) DeleteComment(ctx context.Context, blogID, commentID string) error {
	if _, err := s.Repo.GetByID(ctx, blogID); err != nil {
		if isNotFound(err) {
			return ErrBlogNotFound
		}
		return err
	}
	return s.Repo.DeleteComment(ctx, blogID, commentID)
}

func isNotFound(err error) bool {
	return errors.Is(err, repo.ErrNotFound)
}

// ---- Elasticsearch (best effort, never fails the request) ----

func (s *BlogService) indexBlog(ctx context.Context, b *entity.Blog) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          b.ID,
		"title":       b.Title,
		"description": b.Description,
		"category":    b.Category,
		"author_id":   b.AuthorID,
		"created_at":  b.CreatedAt.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: b.ID, Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("blog_id", b.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("blog_id", b.ID).Warn("es index response error")
	}
}

func (s *BlogService) removeBlogIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("blog_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over title, description and category.
// Returns an empty slice when Elasticsearch is not configured.
func (s *BlogService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category"},
			},
		},
		"size": size,
	}
	body, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(body))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
