package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	keyHTTPAddr    = "http_addr"
	keyGRPCAddr    = "grpc_addr"
	keyPromptPayID = "promptpay_id"
	keyQRSize      = "qr_size"
	keyQRLevel     = "qr_level"
	keyLogLevel    = "log_level"

	keyTelemetryEnabled     = "telemetry.enabled"
	keyTelemetryServiceName = "telemetry.service_name"
	keyTelemetryJaegerURL   = "telemetry.jaeger_url"

	// DefaultPromptPayID is used when PROMPTPAY_ID is unset.
	DefaultPromptPayID = "0997621563"
)

var ErrInvalidConfig = errors.New("invalid config")

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	JaegerURL   string `mapstructure:"jaeger_url"`
}

type Config struct {
	HTTPAddr    string          `mapstructure:"http_addr"`
	GRPCAddr    string          `mapstructure:"grpc_addr"`
	PromptPayID string          `mapstructure:"promptpay_id"`
	QRSize      int             `mapstructure:"qr_size"`
	QRLevel     string          `mapstructure:"qr_level"`
	LogLevel    string          `mapstructure:"log_level"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

// Load reads configuration from command line arguments, then the environment, then
// defaults. args excludes the program name.
func Load(args []string) (*Config, error) {
	v := viper.New()

	v.SetDefault(keyHTTPAddr, ":8080")
	v.SetDefault(keyGRPCAddr, ":50051")
	v.SetDefault(keyPromptPayID, DefaultPromptPayID)
	v.SetDefault(keyQRSize, 256)
	v.SetDefault(keyQRLevel, "H")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyTelemetryEnabled, false)
	v.SetDefault(keyTelemetryServiceName, "promptpay-qr")
	v.SetDefault(keyTelemetryJaegerURL, "http://jaeger:14268/api/traces")

	_ = v.BindEnv(keyHTTPAddr, "HTTP_ADDR")
	_ = v.BindEnv(keyGRPCAddr, "GRPC_ADDR")
	_ = v.BindEnv(keyPromptPayID, "PROMPTPAY_ID")
	_ = v.BindEnv(keyQRSize, "QR_SIZE")
	_ = v.BindEnv(keyQRLevel, "QR_LEVEL")
	_ = v.BindEnv(keyLogLevel, "LOG_LEVEL")
	_ = v.BindEnv(keyTelemetryEnabled, "TELEMETRY_ENABLED")
	_ = v.BindEnv(keyTelemetryServiceName, "TELEMETRY_SERVICE_NAME")
	_ = v.BindEnv(keyTelemetryJaegerURL, "JAEGER_URL")

	flags := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flags.String(flagName(keyHTTPAddr), v.GetString(keyHTTPAddr), "HTTP listen address")
	flags.String(flagName(keyGRPCAddr), v.GetString(keyGRPCAddr), "gRPC listen address")
	flags.String(flagName(keyPromptPayID), v.GetString(keyPromptPayID), "PromptPay recipient identifier")
	flags.Int(flagName(keyQRSize), v.GetInt(keyQRSize), "QR image size in pixels")
	flags.String(flagName(keyQRLevel), v.GetString(keyQRLevel), "QR error correction level (L, M, Q, H)")
	flags.String(flagName(keyLogLevel), v.GetString(keyLogLevel), "log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	for _, key := range []string{keyHTTPAddr, keyGRPCAddr, keyPromptPayID, keyQRSize, keyQRLevel, keyLogLevel} {
		if err := v.BindPFlag(key, flags.Lookup(flagName(key))); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.PromptPayID) == "" {
		return fmt.Errorf("%w: promptpay id is empty", ErrInvalidConfig)
	}
	if c.QRSize <= 0 {
		return fmt.Errorf("%w: qr size must be positive, got %d", ErrInvalidConfig, c.QRSize)
	}
	switch strings.ToUpper(c.QRLevel) {
	case "L", "M", "Q", "H":
	default:
		return fmt.Errorf("%w: unknown qr level %q", ErrInvalidConfig, c.QRLevel)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return level, nil
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
