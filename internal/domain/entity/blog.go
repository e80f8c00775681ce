package entity

import (
	"time"
)

// Author is the display subset of a user resolved on blog reads.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Bio    string `json:"bio"`
	Avatar Image  `json:"avatar"`
}

// Comment is embedded in a blog. AuthorName is a snapshot taken when the
// comment was first created; Avatar is resolved from the live user on read.
type Comment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"name"`
	Avatar     Image     `json:"avatar"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// Blog is the aggregate root for the content domain. NumComments is
// denormalized and kept equal to the number of comment rows.
type Blog struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       Image     `json:"image"`
	NumComments int       `json:"num_comments"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Resolved on read
	Author   *Author   `json:"author,omitempty"`
	Comments []Comment `json:"comments"`
}

// HasImage reports whether the blog carries an uploaded media asset.
func (b *Blog) HasImage() bool {
	return b.Image.ID != ""
}
