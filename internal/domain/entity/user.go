package entity

import (
	"time"
)

// Default avatar assigned at registration until the user uploads their own.
const (
	DefaultAvatarID  = "avatars/default"
	DefaultAvatarURL = "https://storage.googleapis.com/blog-media/avatars/default.png"
)

// Image is a media asset reference: the gateway identifier used to destroy
// the asset later, plus the public retrieval URL.
type Image struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password and never serialized.
// ResetTokenHash/ResetTokenExpires are both set or both nil.
type User struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Role              string     `json:"role"`
	Bio               string     `json:"bio"`
	Password          string     `json:"-"`
	Avatar            Image      `json:"avatar"`
	ResetTokenHash    *string    `json:"-"`
	ResetTokenExpires *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
