package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domain/entity"
	repo "blog-backend/internal/domain/repository"
	"blog-backend/pkg/helpers"
	"blog-backend/pkg/mailer"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

func newUserService(users *mockUserRepo, media *mockMedia, mail *mockMailer, jobs *mockQueue) *UserService {
	var q EmailQueue
	if jobs != nil {
		q = jobs
	}
	return &UserService{
		Repo:        users,
		JWT:         helpers.NewJWTManager(testSecret, time.Hour),
		Media:       media,
		Mail:        mail,
		Jobs:        q,
		AppName:     "blog-backend",
		FrontendURL: "http://localhost:3000",
		AdminEmail:  "admin@example.com",
		MailEnabled: true,
	}
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := helpers.HashPassword(password)
	require.NoError(t, err)
	return h
}

func TestRegisterSuccess(t *testing.T) {
	var created *entity.User
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return nil, repo.ErrNotFound
		},
		createFunc: func(ctx context.Context, u *entity.User) error {
			u.ID = "user-1"
			created = u
			return nil
		},
	}
	jobs := &mockQueue{}
	svc := newUserService(users, &mockMedia{}, &mockMailer{}, jobs)

	u, token, exp, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, "user", u.Role)
	assert.Equal(t, entity.DefaultAvatarID, u.Avatar.ID)
	assert.True(t, helpers.CheckPassword(created.Password, "password123"))
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	require.Len(t, jobs.published, 1)
	job := jobs.published[0].(mailer.EmailJob)
	assert.Equal(t, "alice@example.com", job.To)
}

func TestRegisterValidation(t *testing.T) {
	svc := newUserService(&mockUserRepo{}, &mockMedia{}, &mockMailer{}, nil)

	_, _, _, err := svc.Register(context.Background(), "", "a@b.c", "password123")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, _, _, err = svc.Register(context.Background(), "Alice", "a@b.c", "12345")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterEmailTaken(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: "user-1", Email: email}, nil
		},
	}
	svc := newUserService(users, &mockMedia{}, &mockMailer{}, nil)

	_, _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterSurvivesBrokenQueue(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return nil, repo.ErrNotFound
		},
		createFunc: func(ctx context.Context, u *entity.User) error {
			u.ID = "user-1"
			return nil
		},
	}
	jobs := &mockQueue{publishFunc: func(ctx context.Context, body any) error {
		return errors.New("broker down")
	}}
	svc := newUserService(users, &mockMedia{}, &mockMailer{}, jobs)

	_, _, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "password123")
	assert.NoError(t, err)
}

func TestLogin(t *testing.T) {
	stored := &entity.User{ID: "user-1", Email: "alice@example.com", Password: hashOf(t, "password123")}
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, repo.ErrNotFound
		},
	}
	svc := newUserService(users, &mockMedia{}, &mockMailer{}, nil)
	ctx := context.Background()

	u, token, _, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)
	claims, err := svc.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, _, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestUpdateProfileReplacesAvatar(t *testing.T) {
	stored := &entity.User{
		ID:     "user-1",
		Name:   "Alice",
		Bio:    "Bio",
		Avatar: entity.Image{ID: "blog-avataars/old.jpg", URL: "https://example.com/old.jpg"},
	}
	var updated *entity.User
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.User, error) { return stored, nil },
		updateFunc:  func(ctx context.Context, u *entity.User) error { updated = u; return nil },
	}

	var destroyed string
	media := &mockMedia{
		destroyFunc: func(ctx context.Context, id string) error { destroyed = id; return nil },
		uploadFunc: func(ctx context.Context, data []byte, folder string, width int) (entity.Image, error) {
			assert.Equal(t, "blog-avataars", folder)
			assert.Equal(t, 300, width)
			return entity.Image{ID: folder + "/new.jpg", URL: "https://example.com/new.jpg"}, nil
		},
	}
	svc := newUserService(users, media, &mockMailer{}, nil)

	u, err := svc.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{
		Name:   "Alicia",
		Avatar: "aGVsbG8=",
	})
	require.NoError(t, err)
	assert.Equal(t, "blog-avataars/old.jpg", destroyed)
	assert.Equal(t, "blog-avataars/new.jpg", u.Avatar.ID)
	assert.Equal(t, "Alicia", u.Name)
	assert.Equal(t, "Bio", u.Bio)
	require.NotNil(t, updated)
}

func TestUpdateProfileKeepsDefaultAvatarAsset(t *testing.T) {
	stored := &entity.User{
		ID:     "user-1",
		Avatar: entity.Image{ID: entity.DefaultAvatarID, URL: entity.DefaultAvatarURL},
	}
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.User, error) { return stored, nil },
		updateFunc:  func(ctx context.Context, u *entity.User) error { return nil },
	}
	media := &mockMedia{
		// destroyFunc deliberately unset: a call would fail the test
		uploadFunc: func(ctx context.Context, data []byte, folder string, width int) (entity.Image, error) {
			return entity.Image{ID: "blog-avataars/new.jpg"}, nil
		},
	}
	svc := newUserService(users, media, &mockMailer{}, nil)

	_, err := svc.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{Avatar: "aGVsbG8="})
	assert.NoError(t, err)
}

func TestUpdateProfileRejectsBadImage(t *testing.T) {
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{ID: id}, nil
		},
	}
	svc := newUserService(users, &mockMedia{}, &mockMailer{}, nil)

	_, err := svc.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{Avatar: "!!!not-base64!!!"})
	assert.ErrorIs(t, err, ErrBadImagePayload)
}

func TestUpdatePassword(t *testing.T) {
	stored := &entity.User{ID: "user-1", Password: hashOf(t, "oldpass123")}
	var newHash string
	users := &mockUserRepo{
		getByIDFunc:        func(ctx context.Context, id string) (*entity.User, error) { return stored, nil },
		updatePasswordFunc: func(ctx context.Context, id, hash string) error { newHash = hash; return nil },
	}
	svc := newUserService(users, &mockMedia{}, &mockMailer{}, nil)
	ctx := context.Background()

	err := svc.UpdatePassword(ctx, "user-1", "wrongpass", "newpass123", "newpass123")
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.UpdatePassword(ctx, "user-1", "oldpass123", "newpass123", "different")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	err = svc.UpdatePassword(ctx, "user-1", "oldpass123", "newpass123", "newpass123")
	require.NoError(t, err)
	assert.True(t, helpers.CheckPassword(newHash, "newpass123"))
}

func TestForgotPasswordStoresHashAndMailsPlaintext(t *testing.T) {
	stored := &entity.User{ID: "user-1", Name: "Alice", Email: "alice@example.com"}
	var storedHash string
	var storedExpiry time.Time
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) { return stored, nil },
		setResetTokenFunc: func(ctx context.Context, id, tokenHash string, expires time.Time) error {
			storedHash = tokenHash
			storedExpiry = expires
			return nil
		},
	}
	var mailedHTML string
	mail := &mockMailer{sendFunc: func(ctx context.Context, to, subject, text, html string) error {
		mailedHTML = html
		return nil
	}}
	svc := newUserService(users, &mockMedia{}, mail, nil)

	require.NoError(t, svc.ForgotPassword(context.Background(), "alice@example.com"))
	require.Equal(t, []string{"alice@example.com"}, mail.sent)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), storedExpiry, 5*time.Second)

	// the link carries the plaintext token whose sha256 matches the stored hash
	idx := strings.Index(mailedHTML, "/resetpassword/")
	require.GreaterOrEqual(t, idx, 0)
	rest := mailedHTML[idx+len("/resetpassword/"):]
	plain := rest[:64]
	assert.Equal(t, storedHash, helpers.HashResetToken(plain))
}

func TestForgotPasswordSendFailure(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: "user-1", Email: email}, nil
		},
		setResetTokenFunc: func(ctx context.Context, id, tokenHash string, expires time.Time) error {
			return nil
		},
	}
	mail := &mockMailer{sendFunc: func(ctx context.Context, to, subject, text, html string) error {
		return errors.New("mailgun 500")
	}}
	svc := newUserService(users, &mockMedia{}, mail, nil)

	err := svc.ForgotPassword(context.Background(), "alice@example.com")
	assert.ErrorIs(t, err, ErrEmailSend)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	users := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return nil, repo.ErrNotFound
		},
	}
	svc := newUserService(users, &mockMedia{}, &mockMailer{}, nil)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestContactRelaysMessageToOperator(t *testing.T) {
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
		},
	}
	var gotSubject, gotHTML string
	mail := &mockMailer{sendFunc: func(ctx context.Context, to, subject, text, html string) error {
		gotSubject = subject
		gotHTML = html
		return nil
	}}
	svc := newUserService(users, &mockMedia{}, mail, nil)
	ctx := context.Background()

	err := svc.Contact(ctx, "user-1", "", "")
	assert.ErrorIs(t, err, ErrMissingFields)

	require.NoError(t, svc.Contact(ctx, "user-1", "", "hello there"))
	require.Equal(t, []string{"admin@example.com"}, mail.sent)
	assert.Equal(t, "New contact message", gotSubject)
	assert.Contains(t, gotHTML, "alice@example.com")
	assert.Contains(t, gotHTML, "hello there")
}

func TestContactSendFailure(t *testing.T) {
	users := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
		},
	}
	mail := &mockMailer{sendFunc: func(ctx context.Context, to, subject, text, html string) error {
		return errors.New("mailgun 500")
	}}
	svc := newUserService(users, &mockMedia{}, mail, nil)

	err := svc.Contact(context.Background(), "user-1", "subject", "hello")
	assert.ErrorIs(t, err, ErrEmailSend)
}

func TestResetPassword(t *testing.T) {
	plain := "00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"
	stored := &entity.User{ID: "user-1"}
	var resetHash string
	users := &mockUserRepo{
		getByResetTokenFunc: func(ctx context.Context, tokenHash string) (*entity.User, error) {
			if tokenHash == helpers.HashResetToken(plain) {
				return stored, nil
			}
			return nil, repo.ErrNotFound
		},
		resetPasswordFunc: func(ctx context.Context, id, hash string) error { resetHash = hash; return nil },
	}
	svc := newUserService(users, &mockMedia{}, &mockMailer{}, nil)
	ctx := context.Background()

	_, err := svc.ResetPassword(ctx, "bogus-token", "newpass123", "newpass123")
	assert.ErrorIs(t, err, ErrResetToken)

	_, err = svc.ResetPassword(ctx, plain, "newpass123", "different")
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	u, err := svc.ResetPassword(ctx, plain, "newpass123", "newpass123")
	require.NoError(t, err)
	assert.True(t, helpers.CheckPassword(resetHash, "newpass123"))
	assert.Nil(t, u.ResetTokenHash)
	assert.Nil(t, u.ResetTokenExpires)
}
