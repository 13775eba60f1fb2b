package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"QR-Menu-Backend/internal/utils"
)

var (
	AllowImage = []string{"image/jpeg", "image/png"}

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrObjectNotFound     = errors.New("object not found")
)

// Storage is the blob store holding menu backgrounds, product images and QR codes.
// Keys returned by Upload are the external image identifiers stored on menu rows.
type Storage interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	DeleteImage(ctx context.Context, key string) error
	PublicURL(key string) string
}

// NewStorageFromConfig picks the backend named by STORAGE_TYPE.
func NewStorageFromConfig(ctx context.Context) (Storage, error) {
	switch utils.GetConfig("STORAGE_TYPE") {
	case "", "s3":
		return NewAwsS3(ctx)
	case "memory":
		return NewMemoryStorage(utils.GetConfig("APP_URL") + "/images"), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", utils.GetConfig("STORAGE_TYPE"))
	}
}

func isAllowed(contentType string, allowed []string) bool {
	for _, a := range allowed {
		if a == contentType {
			return true
		}
	}
	return false
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	default:
		return ""
	}
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + path.Clean(strings.TrimLeft(key, "/"))
}
