// Package media implements image storage on Google Cloud Storage.
package media

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"blog-backend/internal/domain/entity"
	"blog-backend/pkg/helpers"
)

// GCSGateway uploads decoded images into a single public bucket. Object ids
// are "<folder>/<uuid>.<ext>" so Destroy can address them directly.
type GCSGateway struct {
	Client *storage.Client
	Bucket string
}

func NewGCSGateway(client *storage.Client, bucket string) *GCSGateway {
	return &GCSGateway{Client: client, Bucket: bucket}
}

func (g *GCSGateway) Upload(ctx context.Context, data []byte, folder string, width int) (entity.Image, error) {
	contentType := http.DetectContentType(data)
	ext, err := extFor(contentType)
	if err != nil {
		return entity.Image{}, err
	}

	if width > 0 {
		data, contentType, ext, err = resize(data, width)
		if err != nil {
			return entity.Image{}, err
		}
	}

	objectPath := fmt.Sprintf("%s/%s.%s", folder, uuid.NewString(), ext)
	url, err := helpers.UploadObject(ctx, g.Client, g.Bucket, objectPath, contentType, bytes.NewReader(data))
	if err != nil {
		return entity.Image{}, err
	}
	return entity.Image{ID: objectPath, URL: url}, nil
}

func (g *GCSGateway) Destroy(ctx context.Context, id string) error {
	return helpers.DeleteObject(ctx, g.Client, g.Bucket, id)
}

// resize scales the image down to the given width, keeping the aspect ratio.
// Output is re-encoded as JPEG regardless of the input format.
func resize(data []byte, width int) ([]byte, string, string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", "", err
	}
	resized := imaging.Resize(img, width, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, "", "", err
	}
	return buf.Bytes(), "image/jpeg", "jpg", nil
}

func extFor(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg":
		return "jpg", nil
	case "image/png":
		return "png", nil
	case "image/gif":
		return "gif", nil
	case "image/webp":
		return "webp", nil
	default:
		return "", fmt.Errorf("unsupported image type %q", contentType)
	}
}
