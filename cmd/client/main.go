package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	qr "github.com/skip2/go-qrcode"
	"github.com/spf13/pflag"

	"github.com/natthakit111/qr-demo/internal/infrastructure/grpcclient"
	"github.com/natthakit111/qr-demo/internal/infrastructure/qrgenerator"
	"github.com/natthakit111/qr-demo/internal/usecase/renderqr"
)

const (
	requestTimeout = 5 * time.Second
	qrCodeSize     = 256
	pngFileMode    = 0o644
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	if err := run(os.Args[1:]); err != nil {
		logger.Error("client failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("client", pflag.ContinueOnError)
	addr := flags.String("addr", "localhost:50051", "payload service gRPC address")
	amount := flags.String("amount", "", "payment amount in THB")
	out := flags.String("out", "", "optional PNG file to write the QR code to")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *amount == "" {
		return errors.New("--amount is required")
	}

	client, err := grpcclient.NewClient(*addr)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	p, err := client.GeneratePayload(ctx, *amount)
	if err != nil {
		return err
	}
	fmt.Println(p)

	if *out == "" {
		return nil
	}

	png, err := renderqr.NewUseCase(qrgenerator.NewGenerator(qrCodeSize, qr.Highest)).
		Execute(renderqr.Request{Payload: p})
	if err != nil {
		return err
	}
	return os.WriteFile(*out, png, pngFileMode)
}
