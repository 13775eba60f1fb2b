package domain

import (
	"encoding/base64"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MaxBackgroundImageSize = 3 * 1024 * 1024
	MaxProductImageSize    = 1 * 1024 * 1024
)

var AcceptedImageTypes = []string{"image/jpeg", "image/png"}

type (
	// ImageUpload is the wire shape of an image sent by the client.
	ImageUpload struct {
		Name string `json:"name" validate:"required"`
		Size int64  `json:"size" validate:"required,gt=0"`
		Type string `json:"type" validate:"required,oneof=image/jpeg image/png"`
		Data string `json:"data" validate:"required,base64"`
	}

	// Image is a decoded, validated image waiting to be uploaded.
	// A nil *Image means no image was supplied.
	Image struct {
		Name        string
		ContentType string
		Size        int64
		Data        []byte
	}
)

// Decode validates the payload against maxSize and the accepted types and returns the
// decoded image. A nil receiver decodes to a nil image.
func (u *ImageUpload) Decode(maxSize int64) (*Image, error) {
	if u == nil {
		return nil, nil
	}

	if !isAcceptedImageType(u.Type) {
		return nil, ErrInvalidImageType
	}

	data, err := base64.StdEncoding.DecodeString(u.Data)
	if err != nil {
		return nil, ErrInvalidImageData
	}

	if int64(len(data)) > maxSize || u.Size > maxSize {
		return nil, ErrImageTooLarge
	}

	if !mimetype.Detect(data).Is(u.Type) {
		return nil, ErrInvalidImageType
	}

	return &Image{
		Name:        u.Name,
		ContentType: u.Type,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}

func isAcceptedImageType(contentType string) bool {
	for _, t := range AcceptedImageTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
