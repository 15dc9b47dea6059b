package generatepayload

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/natthakit111/qr-demo/internal/domain/amount"
	"github.com/natthakit111/qr-demo/internal/domain/payload"
)

const tracerName = "github.com/natthakit111/qr-demo/internal/usecase/generatepayload"

type Request struct {
	Amount amount.Amount
}

type Response struct {
	Payload payload.Payload
	Amount  amount.Amount
}

// UseCase builds PromptPay payloads for a single recipient fixed at construction.
type UseCase struct {
	encoder   payload.Encoder
	recipient string
	tracer    trace.Tracer
}

func NewUseCase(encoder payload.Encoder, recipient string) *UseCase {
	return &UseCase{
		encoder:   encoder,
		recipient: recipient,
		tracer:    otel.Tracer(tracerName),
	}
}

func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	_, span := uc.tracer.Start(ctx, "generatepayload.Execute")
	defer span.End()

	if !req.Amount.Valid() {
		span.SetStatus(codes.Error, amount.ErrInvalid.Error())
		return nil, amount.ErrInvalid
	}

	p, err := uc.encoder.Encode(uc.recipient, req.Amount)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encoding failed")
		if !errors.Is(err, payload.ErrEncoding) {
			err = fmt.Errorf("%w: %w", payload.ErrEncoding, err)
		}
		return nil, err
	}
	// Only amounts the encoder accepted have a bounded string form.
	span.SetAttributes(attribute.String("payment.amount", req.Amount.String()))

	return &Response{
		Payload: p,
		Amount:  req.Amount,
	}, nil
}
