package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"blog-backend/internal/domain/entity"
	repo "blog-backend/internal/domain/repository"
	"blog-backend/pkg/helpers"
	"blog-backend/pkg/mailer"
)

const (
	avatarFolder = "blog-avataars"
	avatarWidth  = 300

	resetTokenTTL = 15 * time.Minute
)

// UserService owns registration, authentication and the password reset
// lifecycle.
type UserService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Media       MediaGateway
	Mail        Mailer
	Jobs        EmailQueue // optional; welcome mail is best-effort
	Logger      *logrus.Logger
	AppName     string
	FrontendURL string
	AdminEmail  string // contact-form recipient
	MailEnabled bool
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, media MediaGateway, mail Mailer, jobs EmailQueue, logger *logrus.Logger, appName, frontendURL, adminEmail string, mailEnabled bool) *UserService {
	return &UserService{
		Repo:        r,
		JWT:         jwt,
		Media:       media,
		Mail:        mail,
		Jobs:        jobs,
		Logger:      logger,
		AppName:     appName,
		FrontendURL: frontendURL,
		AdminEmail:  adminEmail,
		MailEnabled: mailEnabled,
	}
}

// Register creates a user and issues a session token. Validation happens
// before any store write.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*entity.User, string, time.Time, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", time.Time{}, ErrMissingFields
	}
	if len(password) < 6 {
		return nil, "", time.Time{}, ErrPasswordTooShort
	}
	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, "", time.Time{}, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	u := &entity.User{
		Name:     name,
		Email:    email,
		Role:     "user",
		Bio:      "Bio",
		Password: hash,
		Avatar:   entity.Image{ID: entity.DefaultAvatarID, URL: entity.DefaultAvatarURL},
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	// Welcome mail goes through the queue; a broken broker must not fail
	// registration.
	if s.Jobs != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:      u.Email,
			Subject: "Welcome to " + s.AppName,
			HTML:    mailer.WelcomeHTML(s.AppName, u.Name),
		}
		if err := s.Jobs.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email enqueue failed")
		}
	}

	return u, token, exp, nil
}

// Login checks credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	if email == "" || password == "" {
		return nil, "", time.Time{}, ErrMissingFields
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", time.Time{}, fmt.Errorf("%w, please signup", ErrUserNotFound)
	}
	if !helpers.CheckPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

// GetUser returns the authenticated user's record.
func (s *UserService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name   string
	Bio    string
	Avatar string // inline base64 image, empty = keep current avatar
}

// UpdateProfile updates name/bio and optionally replaces the avatar: the
// previous asset is destroyed on the media gateway, then the new image is
// uploaded scaled to a fixed width.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Bio != "" {
		u.Bio = in.Bio
	}

	if in.Avatar != "" {
		data, err := helpers.DecodeImagePayload(in.Avatar)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadImagePayload, err)
		}
		if u.Avatar.ID != "" && u.Avatar.ID != entity.DefaultAvatarID {
			if err := s.Media.Destroy(ctx, u.Avatar.ID); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMediaDestroy, err)
			}
		}
		img, err := s.Media.Upload(ctx, data, avatarFolder, avatarWidth)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
		}
		u.Avatar = img
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdatePassword changes the password after checking the old one.
func (s *UserService) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	if !helpers.CheckPassword(u.Password, oldPassword) {
		return ErrWrongPassword
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, u.ID, hash)
}

// ForgotPassword issues a reset token: only the sha256 of the token is
// persisted, the plaintext goes into the reset link. A failed send surfaces
// as ErrEmailSend; the stored token state is deliberately not rolled back.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return ErrUserNotFound
	}

	plain, err := helpers.GenerateResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)
	if err := s.Repo.SetResetToken(ctx, u.ID, helpers.HashResetToken(plain), expires); err != nil {
		return err
	}

	resetURL := s.FrontendURL + "/resetpassword/" + plain
	html := mailer.ResetPasswordHTML(s.AppName, u.Name, resetURL)
	if err := s.Mail.Send(ctx, u.Email, "Password Reset Request", "", html); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("reset email send failed")
		}
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}
	return nil
}

// Contact relays an authenticated user's message to the site operator.
func (s *UserService) Contact(ctx context.Context, userID, subject, message string) error {
	if message == "" {
		return ErrMissingFields
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	to := s.AdminEmail
	if to == "" {
		return fmt.Errorf("%w: no contact recipient configured", ErrEmailSend)
	}
	if subject == "" {
		subject = "New contact message"
	}
	html := mailer.ContactHTML(s.AppName, u.Name, u.Email, message)
	if err := s.Mail.Send(ctx, to, subject, message, html); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("contact email send failed")
		}
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}
	return nil
}

// ResetPassword consumes a reset token. Invalid and expired tokens are
// indistinguishable to the caller.
func (s *UserService) ResetPassword(ctx context.Context, plainToken, password, confirmPassword string) (*entity.User, error) {
	u, err := s.Repo.GetByResetToken(ctx, helpers.HashResetToken(plainToken))
	if err != nil || u == nil {
		return nil, ErrResetToken
	}
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.ResetPassword(ctx, u.ID, hash); err != nil {
		return nil, err
	}
	u.Password = hash
	u.ResetTokenHash = nil
	u.ResetTokenExpires = nil
	return u, nil
}
