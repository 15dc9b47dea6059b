package qrcode

import "errors"

//go:generate mockgen -source=qrcode.go -destination=../../usecase/renderqr/mocks/mock_renderer.go -package=mocks

var ErrRender = errors.New("qr rendering failed")

type Renderer interface {
	Render(content string) ([]byte, error)
}
