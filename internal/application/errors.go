package application

import "errors"

// Service-level error taxonomy. Every error a service returns wraps one of
// these sentinels; the HTTP layer translates them into status codes in a
// single place.
var (
	// 400 validation / conflict / token
	ErrMissingFields    = errors.New("please fill in all required fields")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmailTaken       = errors.New("email has already been registered")
	ErrResetToken       = errors.New("reset token is invalid or has expired")
	ErrBadImagePayload  = errors.New("invalid image payload")

	// 401
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("old password is incorrect")
	ErrNotOwner           = errors.New("user not authorized")

	// 404
	ErrUserNotFound = errors.New("user not found")
	ErrBlogNotFound = errors.New("blog not found")

	// 500 upstream
	ErrMediaUpload  = errors.New("image could not be uploaded")
	ErrMediaDestroy = errors.New("image could not be removed")
	ErrEmailSend    = errors.New("email could not be sent, please try again")
)
