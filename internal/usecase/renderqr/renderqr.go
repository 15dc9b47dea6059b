package renderqr

import (
	"errors"

	"github.com/natthakit111/qr-demo/internal/domain/payload"
	"github.com/natthakit111/qr-demo/internal/domain/qrcode"
)

var ErrEmptyPayload = errors.New("empty payload")

type Request struct {
	Payload payload.Payload
}

type UseCase struct {
	renderer qrcode.Renderer
}

func NewUseCase(renderer qrcode.Renderer) *UseCase {
	return &UseCase{renderer: renderer}
}

// Execute returns the payload rendered as a PNG image.
func (uc *UseCase) Execute(req Request) ([]byte, error) {
	if req.Payload == "" {
		return nil, ErrEmptyPayload
	}
	return uc.renderer.Render(req.Payload.String())
}
