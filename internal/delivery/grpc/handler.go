package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/natthakit111/qr-demo/internal/domain/amount"
	"github.com/natthakit111/qr-demo/internal/domain/payload"
	"github.com/natthakit111/qr-demo/internal/usecase/generatepayload"
)

const (
	msgInvalidAmount = "Invalid amount"
	msgInternalError = "Internal Server Error"
)

type Handler struct {
	generatePayloadUC *generatepayload.UseCase
	logger            *slog.Logger
}

func NewHandler(generatePayloadUC *generatepayload.UseCase, logger *slog.Logger) *Handler {
	return &Handler{
		generatePayloadUC: generatePayloadUC,
		logger:            logger,
	}
}

func (h *Handler) GeneratePayload(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	amt, err := amount.Parse(rawAmount(req.GetFields()["amount"]))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, msgInvalidAmount)
	}

	resp, err := h.generatePayloadUC.Execute(ctx, generatepayload.Request{Amount: amt})
	if err != nil {
		if errors.Is(err, amount.ErrInvalid) {
			return nil, status.Error(codes.InvalidArgument, msgInvalidAmount)
		}
		level := slog.LevelError
		if errors.Is(err, payload.ErrUnencodableAmount) {
			level = slog.LevelWarn
		}
		h.logger.Log(ctx, level, "generate payload failed", "error", err)
		return nil, status.Error(codes.Internal, msgInternalError)
	}

	out, err := structpb.NewStruct(map[string]any{"payload": resp.Payload.String()})
	if err != nil {
		h.logger.ErrorContext(ctx, "build response failed", "error", err)
		return nil, status.Error(codes.Internal, msgInternalError)
	}
	return out, nil
}

func rawAmount(v *structpb.Value) any {
	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return kind.NumberValue
	case *structpb.Value_StringValue:
		return kind.StringValue
	case *structpb.Value_BoolValue:
		return kind.BoolValue
	default:
		return nil
	}
}
