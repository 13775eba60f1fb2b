package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	data, err := NewGenerator().Generate("https://menu.example.com/menu/abc")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, defaultSize, img.Bounds().Dx())
}

func TestGenerator_GenerateEmptyContent(t *testing.T) {
	data, err := NewGenerator().Generate("")
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Nil(t, data)
}
