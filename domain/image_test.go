package domain_test

import (
	"encoding/base64"
	"testing"

	"QR-Menu-Backend/domain"
	"QR-Menu-Backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageUploadDecode(t *testing.T) {
	pngData := testutil.PNG(t)
	jpegData := testutil.JPEG(t)

	upload := func(contentType string, data []byte) *domain.ImageUpload {
		return &domain.ImageUpload{
			Name: "image",
			Size: int64(len(data)),
			Type: contentType,
			Data: base64.StdEncoding.EncodeToString(data),
		}
	}

	t.Run("nil upload is no image", func(t *testing.T) {
		var u *domain.ImageUpload
		image, err := u.Decode(domain.MaxProductImageSize)
		require.NoError(t, err)
		assert.Nil(t, image)
	})

	t.Run("png", func(t *testing.T) {
		image, err := upload("image/png", pngData).Decode(domain.MaxProductImageSize)
		require.NoError(t, err)
		assert.Equal(t, "image/png", image.ContentType)
		assert.Equal(t, pngData, image.Data)
		assert.EqualValues(t, len(pngData), image.Size)
	})

	t.Run("jpeg", func(t *testing.T) {
		image, err := upload("image/jpeg", jpegData).Decode(domain.MaxBackgroundImageSize)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", image.ContentType)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := upload("image/gif", pngData).Decode(domain.MaxProductImageSize)
		assert.ErrorIs(t, err, domain.ErrInvalidImageType)
	})

	t.Run("declared type does not match content", func(t *testing.T) {
		_, err := upload("image/jpeg", pngData).Decode(domain.MaxProductImageSize)
		assert.ErrorIs(t, err, domain.ErrInvalidImageType)
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	})

	t.Run("bad base64", func(t *testing.T) {
		u := upload("image/png", pngData)
		u.Data = "%%%"
		_, err := u.Decode(domain.MaxProductImageSize)
		assert.ErrorIs(t, err, domain.ErrInvalidImageData)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := upload("image/png", pngData).Decode(int64(len(pngData) - 1))
		assert.ErrorIs(t, err, domain.ErrImageTooLarge)

		u := upload("image/png", pngData)
		u.Size = domain.MaxProductImageSize + 1
		_, err = u.Decode(domain.MaxProductImageSize)
		assert.ErrorIs(t, err, domain.ErrImageTooLarge)
	})
}

func TestAppError(t *testing.T) {
	cause := assert.AnError
	err := domain.NewInternalError("failed to save", cause)

	assert.Equal(t, "failed to save: "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, domain.ErrInternalServer)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, domain.ErrMenuNotFound, domain.ErrBadRequest)
	assert.Equal(t, "menu not found", domain.ErrMenuNotFound.Error())
}
