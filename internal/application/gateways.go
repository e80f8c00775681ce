package application

import (
	"context"

	"blog-backend/internal/domain/entity"
)

// MediaGateway stores binary images on an external host. Upload returns a
// stable identifier (used to destroy the asset later) plus a retrieval URL.
// A width > 0 asks the gateway to scale the image to that width.
type MediaGateway interface {
	Upload(ctx context.Context, data []byte, folder string, width int) (entity.Image, error)
	Destroy(ctx context.Context, id string) error
}

// Mailer sends a transactional email synchronously.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// EmailQueue enqueues an email job for the background worker. Used for
// notifications that must not block or fail the request.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}
