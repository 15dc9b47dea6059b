package qrgenerator_test

import (
	"bytes"
	"image/png"
	"testing"

	qr "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/natthakit111/qr-demo/internal/infrastructure/qrgenerator"
)

func TestGenerator_Render(t *testing.T) {
	gen := qrgenerator.NewGenerator(200, qr.Highest)

	data, err := gen.Render("00020101021229370016A000000677010111011300669976215635802TH53037645406100.006304A0B4")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want qr.RecoveryLevel
	}{
		{"L", qr.Low},
		{"m", qr.Medium},
		{"Q", qr.High},
		{" h ", qr.Highest},
	}
	for _, tt := range tests {
		got, err := qrgenerator.ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := qrgenerator.ParseLevel("X")
	require.ErrorIs(t, err, qrgenerator.ErrUnknownLevel)
}
