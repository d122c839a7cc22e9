package domain

import "context"

// MediaStore issues upload URLs for member-provided images (infrastructure port).
type MediaStore interface {
	// PresignUpload returns a short-lived URL the client can PUT the object to.
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	// PublicURL returns the URL the object is served from once uploaded.
	PublicURL(key string) string
}
