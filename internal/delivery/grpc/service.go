package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName           = "promptpay.v1.PayloadService"
	GeneratePayloadMethod = "/" + ServiceName + "/GeneratePayload"
)

// PayloadServiceServer exchanges google.protobuf.Struct messages shaped like the HTTP
// JSON bodies: {"amount": number|string} in, {"payload": string} out.
type PayloadServiceServer interface {
	GeneratePayload(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

var PayloadServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PayloadServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GeneratePayload",
			Handler:    generatePayloadHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "promptpay/v1/payload.proto",
}

func RegisterPayloadServiceServer(s grpc.ServiceRegistrar, srv PayloadServiceServer) {
	s.RegisterService(&PayloadServiceDesc, srv)
}

func generatePayloadHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PayloadServiceServer).GeneratePayload(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GeneratePayloadMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PayloadServiceServer).GeneratePayload(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}
