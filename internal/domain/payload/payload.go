package payload

import (
	"errors"

	"github.com/natthakit111/qr-demo/internal/domain/amount"
)

//go:generate mockgen -source=payload.go -destination=../../usecase/generatepayload/mocks/mock_encoder.go -package=mocks

var (
	ErrEncoding = errors.New("payload encoding failed")

	// ErrUnencodableAmount marks encoding failures caused by the amount itself rather
	// than by the recipient configuration.
	ErrUnencodableAmount = errors.New("amount cannot be encoded")
)

// Payload is an encoded PromptPay string, ready to be rendered as a QR code without
// further transformation.
type Payload string

func (p Payload) String() string {
	return string(p)
}

// Encoder builds the payload for a recipient and amount. Implementations must be
// deterministic and report failures wrapped in ErrEncoding.
type Encoder interface {
	Encode(recipient string, amt amount.Amount) (Payload, error)
}
