package grpcclient

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	grpcdelivery "github.com/natthakit111/qr-demo/internal/delivery/grpc"
	"github.com/natthakit111/qr-demo/internal/domain/payload"
)

var ErrMalformedResponse = errors.New("malformed payload response")

type Client struct {
	conn *grpc.ClientConn
}

// NewClient connects without transport security unless opts say otherwise.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// GeneratePayload sends the amount as a string so the server parses it without float
// conversion.
func (c *Client) GeneratePayload(ctx context.Context, amount string) (payload.Payload, error) {
	in, err := structpb.NewStruct(map[string]any{"amount": amount})
	if err != nil {
		return "", err
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, grpcdelivery.GeneratePayloadMethod, in, out); err != nil {
		return "", err
	}

	p := out.GetFields()["payload"].GetStringValue()
	if p == "" {
		return "", ErrMalformedResponse
	}
	return payload.Payload(p), nil
}
