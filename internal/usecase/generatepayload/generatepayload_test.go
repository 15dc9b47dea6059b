package generatepayload_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/natthakit111/qr-demo/internal/domain/amount"
	"github.com/natthakit111/qr-demo/internal/domain/payload"
	"github.com/natthakit111/qr-demo/internal/infrastructure/promptpay"
	"github.com/natthakit111/qr-demo/internal/usecase/generatepayload"
	"github.com/natthakit111/qr-demo/internal/usecase/generatepayload/mocks"
)

const recipient = "0812345678"

func mustAmount(t *testing.T, s string) amount.Amount {
	t.Helper()
	a, err := amount.ParseString(s)
	require.NoError(t, err)
	return a
}

func TestGeneratePayloadUseCase_Execute_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	encoder := mocks.NewMockEncoder(ctrl)
	uc := generatepayload.NewUseCase(encoder, recipient)

	amt := mustAmount(t, "100")
	encoder.EXPECT().Encode(recipient, amt).Return(payload.Payload("encoded"), nil)

	resp, err := uc.Execute(context.Background(), generatepayload.Request{Amount: amt})

	require.NoError(t, err)
	assert.Equal(t, payload.Payload("encoded"), resp.Payload)
	assert.True(t, resp.Amount.Equal(amt))
}

func TestGeneratePayloadUseCase_Execute_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	encoder := mocks.NewMockEncoder(ctrl)
	uc := generatepayload.NewUseCase(encoder, recipient)

	_, err := uc.Execute(context.Background(), generatepayload.Request{})

	require.ErrorIs(t, err, amount.ErrInvalid)
}

func TestGeneratePayloadUseCase_Execute_EncodingError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	encoder := mocks.NewMockEncoder(ctrl)
	uc := generatepayload.NewUseCase(encoder, recipient)

	encoder.EXPECT().Encode(recipient, gomock.Any()).Return(payload.Payload(""), errors.New("boom"))

	_, err := uc.Execute(context.Background(), generatepayload.Request{Amount: mustAmount(t, "5")})

	require.ErrorIs(t, err, payload.ErrEncoding)
	assert.Contains(t, err.Error(), "boom")
}

func TestGeneratePayloadUseCase_Execute_WithPromptPayEncoder(t *testing.T) {
	uc := generatepayload.NewUseCase(promptpay.NewEncoder(), recipient)
	ctx := context.Background()

	first, err := uc.Execute(ctx, generatepayload.Request{Amount: mustAmount(t, "250.50")})
	require.NoError(t, err)
	second, err := uc.Execute(ctx, generatepayload.Request{Amount: mustAmount(t, "250.50")})
	require.NoError(t, err)
	other, err := uc.Execute(ctx, generatepayload.Request{Amount: mustAmount(t, "250.51")})
	require.NoError(t, err)

	assert.Equal(t, first.Payload, second.Payload)
	assert.NotEqual(t, first.Payload, other.Payload)
	assert.Contains(t, first.Payload.String(), "5406250.50")
}

func TestGeneratePayloadUseCase_Execute_BadRecipient(t *testing.T) {
	uc := generatepayload.NewUseCase(promptpay.NewEncoder(), "not-a-number")

	_, err := uc.Execute(context.Background(), generatepayload.Request{Amount: mustAmount(t, "1")})

	require.ErrorIs(t, err, payload.ErrEncoding)
	require.ErrorIs(t, err, promptpay.ErrInvalidRecipient)
}

func TestGeneratePayloadUseCase_Execute_UnboundedAmount(t *testing.T) {
	uc := generatepayload.NewUseCase(promptpay.NewEncoder(), recipient)

	start := time.Now()
	_, err := uc.Execute(context.Background(), generatepayload.Request{Amount: mustAmount(t, "1e20000000")})

	require.ErrorIs(t, err, payload.ErrEncoding)
	require.ErrorIs(t, err, payload.ErrUnencodableAmount)
	assert.Less(t, time.Since(start), time.Second)
}
