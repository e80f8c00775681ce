package application

import (
	"context"
	"errors"
	"time"

	"blog-backend/internal/domain/entity"
	repo "blog-backend/internal/domain/repository"
)

// =============================================================================
// Mock UserRepository
// =============================================================================

type mockUserRepo struct {
	createFunc          func(ctx context.Context, u *entity.User) error
	getByIDFunc         func(ctx context.Context, id string) (*entity.User, error)
	getByEmailFunc      func(ctx context.Context, email string) (*entity.User, error)
	updateFunc          func(ctx context.Context, u *entity.User) error
	updatePasswordFunc  func(ctx context.Context, id, hash string) error
	setResetTokenFunc   func(ctx context.Context, id, tokenHash string, expires time.Time) error
	getByResetTokenFunc func(ctx context.Context, tokenHash string) (*entity.User, error)
	resetPasswordFunc   func(ctx context.Context, id, hash string) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, u)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	if m.updatePasswordFunc != nil {
		return m.updatePasswordFunc(ctx, id, hash)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepo) SetResetToken(ctx context.Context, id, tokenHash string, expires time.Time) error {
	if m.setResetTokenFunc != nil {
		return m.setResetTokenFunc(ctx, id, tokenHash, expires)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepo) GetByResetToken(ctx context.Context, tokenHash string) (*entity.User, error) {
	if m.getByResetTokenFunc != nil {
		return m.getByResetTokenFunc(ctx, tokenHash)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepo) ResetPassword(ctx context.Context, id, hash string) error {
	if m.resetPasswordFunc != nil {
		return m.resetPasswordFunc(ctx, id, hash)
	}
	return errors.New("not implemented")
}

// =============================================================================
// Mock BlogRepository
// =============================================================================

type mockBlogRepo struct {
	createFunc             func(ctx context.Context, b *entity.Blog) error
	getByIDFunc            func(ctx context.Context, id string) (*entity.Blog, error)
	listFunc               func(ctx context.Context, f repo.BlogFilter) ([]*entity.Blog, error)
	countFunc              func(ctx context.Context, search string, categories []string) (int64, error)
	distinctCategoriesFunc func(ctx context.Context) ([]string, error)
	updateFunc             func(ctx context.Context, b *entity.Blog) error
	deleteFunc             func(ctx context.Context, id string) error
	commentsFunc           func(ctx context.Context, blogID string) ([]entity.Comment, error)
	upsertCommentFunc      func(ctx context.Context, blogID string, c *entity.Comment) error
	deleteCommentFunc      func(ctx context.Context, blogID, commentID string) error
}

func (m *mockBlogRepo) Create(ctx context.Context, b *entity.Blog) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, b)
	}
	return errors.New("not implemented")
}

func (m *mockBlogRepo) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBlogRepo) List(ctx context.Context, f repo.BlogFilter) ([]*entity.Blog, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, f)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBlogRepo) Count(ctx context.Context, search string, categories []string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, search, categories)
	}
	return 0, errors.New("not implemented")
}

func (m *mockBlogRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	if m.distinctCategoriesFunc != nil {
		return m.distinctCategoriesFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBlogRepo) Update(ctx context.Context, b *entity.Blog) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, b)
	}
	return errors.New("not implemented")
}

func (m *mockBlogRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockBlogRepo) Comments(ctx context.Context, blogID string) ([]entity.Comment, error) {
	if m.commentsFunc != nil {
		return m.commentsFunc(ctx, blogID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockBlogRepo) UpsertComment(ctx context.Context, blogID string, c *entity.Comment) error {
	if m.upsertCommentFunc != nil {
		return m.upsertCommentFunc(ctx, blogID, c)
	}
	return errors.New("not implemented")
}

func (m *mockBlogRepo) DeleteComment(ctx context.Context, blogID, commentID string) error {
	if m.deleteCommentFunc != nil {
		return m.deleteCommentFunc(ctx, blogID, commentID)
	}
	return errors.New("not implemented")
}

// =============================================================================
// Mock gateways
// =============================================================================

type mockMedia struct {
	uploadFunc  func(ctx context.Context, data []byte, folder string, width int) (entity.Image, error)
	destroyFunc func(ctx context.Context, id string) error
}

func (m *mockMedia) Upload(ctx context.Context, data []byte, folder string, width int) (entity.Image, error) {
	if m.uploadFunc != nil {
		return m.uploadFunc(ctx, data, folder, width)
	}
	return entity.Image{}, errors.New("not implemented")
}

func (m *mockMedia) Destroy(ctx context.Context, id string) error {
	if m.destroyFunc != nil {
		return m.destroyFunc(ctx, id)
	}
	return errors.New("not implemented")
}

type mockMailer struct {
	sendFunc func(ctx context.Context, to, subject, text, html string) error
	sent     []string // recipients, in order
}

func (m *mockMailer) Send(ctx context.Context, to, subject, text, html string) error {
	m.sent = append(m.sent, to)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, to, subject, text, html)
	}
	return nil
}

type mockQueue struct {
	publishFunc func(ctx context.Context, body any) error
	published   []any
}

func (m *mockQueue) PublishJSON(ctx context.Context, body any) error {
	m.published = append(m.published, body)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, body)
	}
	return nil
}
