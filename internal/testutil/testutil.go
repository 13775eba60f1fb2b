// Package testutil holds fixtures shared by package tests: an in-memory database, image
// payloads and a QR generator double.
package testutil

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"
	"testing"

	migration "QR-Menu-Backend/cmd/database/migrate"
	"QR-Menu-Backend/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database with the schema migrated. The pool
// is limited to one connection so every query sees the same database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

func sample() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 60), B: 128, A: 255})
		}
	}
	return img
}

func PNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, sample()))
	return buf.Bytes()
}

func JPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, sample(), nil))
	return buf.Bytes()
}

// PNGUpload returns a valid PNG image payload as a client would send it.
func PNGUpload(t *testing.T, name string) *domain.ImageUpload {
	t.Helper()
	data := PNG(t)
	return &domain.ImageUpload{
		Name: name,
		Size: int64(len(data)),
		Type: "image/png",
		Data: base64.StdEncoding.EncodeToString(data),
	}
}

// QRGenerator records the requested contents and returns a small PNG, or Err when set.
type QRGenerator struct {
	Err error

	mu       sync.Mutex
	contents []string
	image    []byte
}

func NewQRGenerator(t *testing.T) *QRGenerator {
	return &QRGenerator{image: PNG(t)}
}

func (g *QRGenerator) Generate(content string) ([]byte, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.contents = append(g.contents, content)
	if g.Err != nil {
		return nil, g.Err
	}
	return g.image, nil
}

func (g *QRGenerator) Contents() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.contents...)
}
