package qrcode

import (
	"errors"

	goqrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 512

var ErrEmptyContent = errors.New("qr content is empty")

// Generator renders QR codes as PNG images.
type Generator interface {
	Generate(content string) ([]byte, error)
}

type pngGenerator struct {
	size  int
	level goqrcode.RecoveryLevel
}

func NewGenerator() Generator {
	return &pngGenerator{
		size:  defaultSize,
		level: goqrcode.Medium,
	}
}

func (g *pngGenerator) Generate(content string) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}
	return goqrcode.Encode(content, g.level, g.size)
}
