package grpc_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	grpcdelivery "github.com/natthakit111/qr-demo/internal/delivery/grpc"
	"github.com/natthakit111/qr-demo/internal/infrastructure/promptpay"
	"github.com/natthakit111/qr-demo/internal/usecase/generatepayload"
)

func newHandler(recipient string) *grpcdelivery.Handler {
	return grpcdelivery.NewHandler(
		generatepayload.NewUseCase(promptpay.NewEncoder(), recipient),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func request(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestHandler_GeneratePayload(t *testing.T) {
	h := newHandler("0997621563")

	for _, raw := range []any{100, "100", "100.00"} {
		resp, err := h.GeneratePayload(context.Background(), request(t, map[string]any{"amount": raw}))
		require.NoError(t, err)
		assert.Equal(t,
			"00020101021229370016A000000677010111011300669976215635802TH53037645406100.006304A0B4",
			resp.GetFields()["payload"].GetStringValue(),
		)
	}
}

func TestHandler_GeneratePayload_InvalidAmount(t *testing.T) {
	h := newHandler("0997621563")

	tests := []struct {
		name   string
		fields map[string]any
	}{
		{"missing", map[string]any{}},
		{"null", map[string]any{"amount": nil}},
		{"zero", map[string]any{"amount": 0}},
		{"negative", map[string]any{"amount": -5}},
		{"nan", map[string]any{"amount": math.NaN()}},
		{"text", map[string]any{"amount": "abc"}},
		{"bool", map[string]any{"amount": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.GeneratePayload(context.Background(), request(t, tt.fields))
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, codes.InvalidArgument, st.Code())
			assert.Equal(t, "Invalid amount", st.Message())
		})
	}
}

func TestHandler_GeneratePayload_EncodingFailure(t *testing.T) {
	h := newHandler("bad")

	_, err := h.GeneratePayload(context.Background(), request(t, map[string]any{"amount": 1}))

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
	assert.Equal(t, "Internal Server Error", st.Message())
}

func TestPayloadService_OverTheWire(t *testing.T) {
	srv := grpcdelivery.NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	grpcdelivery.RegisterPayloadServiceServer(srv, newHandler("0997621563"))
	conn := dial(t, srv)

	out := new(structpb.Struct)
	err := conn.Invoke(context.Background(), grpcdelivery.GeneratePayloadMethod,
		request(t, map[string]any{"amount": "250.50"}), out)
	require.NoError(t, err)
	assert.Contains(t, out.GetFields()["payload"].GetStringValue(), "5406250.50")
}

type panickingServer struct{}

func (panickingServer) GeneratePayload(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	panic("encoder exploded")
}

func dial(t *testing.T, srv *grpc.Server) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestNewServer_RecoversPanics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := grpcdelivery.NewServer(logger)
	grpcdelivery.RegisterPayloadServiceServer(srv, panickingServer{})
	conn := dial(t, srv)

	for i := 0; i < 2; i++ {
		err := conn.Invoke(context.Background(), grpcdelivery.GeneratePayloadMethod,
			request(t, map[string]any{"amount": 1}), new(structpb.Struct))

		st, ok := status.FromError(err)
		require.True(t, ok)
		assert.Equal(t, codes.Internal, st.Code())
		assert.Equal(t, "Internal Server Error", st.Message())
	}
}

func TestHandler_GeneratePayload_HugeExponentFailsFast(t *testing.T) {
	h := newHandler("0997621563")

	for _, raw := range []any{"1e20000000", "1e-20000000", 1e300} {
		start := time.Now()
		_, err := h.GeneratePayload(context.Background(), request(t, map[string]any{"amount": raw}))

		assert.Equal(t, codes.Internal, status.Code(err), raw)
		assert.Less(t, time.Since(start), time.Second, raw)
	}
}
