package grpc

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RecoveryInterceptor turns handler panics into the generic Internal error instead of
// crashing the process.
func RecoveryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return recovery.UnaryServerInterceptor(
		recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			logger.ErrorContext(ctx, "panic recovered",
				"panic", p,
				"stack", string(debug.Stack()),
			)
			return status.Error(codes.Internal, msgInternalError)
		}),
	)
}

// NewServer builds a gRPC server with the payload service's interceptors installed.
func NewServer(logger *slog.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(RecoveryInterceptor(logger)),
	}, opts...)
	return grpc.NewServer(opts...)
}
