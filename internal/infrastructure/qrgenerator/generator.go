package qrgenerator

import (
	"errors"
	"fmt"
	"strings"

	qr "github.com/skip2/go-qrcode"

	"github.com/natthakit111/qr-demo/internal/domain/qrcode"
)

var ErrUnknownLevel = errors.New("unknown recovery level")

type Generator struct {
	size  int
	level qr.RecoveryLevel
}

func NewGenerator(size int, level qr.RecoveryLevel) *Generator {
	return &Generator{size: size, level: level}
}

func (g *Generator) Render(content string) ([]byte, error) {
	png, err := qr.Encode(content, g.level, g.size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", qrcode.ErrRender, err)
	}
	return png, nil
}

// ParseLevel maps the single-letter error correction names L, M, Q and H.
func ParseLevel(s string) (qr.RecoveryLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return qr.Low, nil
	case "M":
		return qr.Medium, nil
	case "Q":
		return qr.High, nil
	case "H":
		return qr.Highest, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
