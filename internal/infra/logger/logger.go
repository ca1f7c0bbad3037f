package logger

import (
	"context"
	"sync"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	lg   *zap.Logger
	once sync.Once
)

// New returns a singleton zap.Logger configured for structured logging.
func New(env string) (*zap.Logger, error) {
	var err error
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		if env != "production" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		lg, err = cfg.Build()
	})

	return lg, err
}

// ValidationIDKey is used to store a per-validation identifier on the context.
type ValidationIDKey struct{}

// NewValidationContext stamps ctx with a fresh validation identifier.
func NewValidationContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, ValidationIDKey{}, uuid.NewString())
}

// WithContext attaches validation scoped fields to the logger.
func WithContext(ctx context.Context) *zap.Logger {
	if lg == nil {
		lz, _ := zap.NewDevelopment()
		return lz
	}

	if ctx == nil {
		return lg
	}

	return lg.With(zap.String("validation_id", validationIDFromContext(ctx)))
}

func validationIDFromContext(ctx context.Context) string {
	if val, ok := ctx.Value(ValidationIDKey{}).(string); ok {
		return val
	}
	return ""
}

// MaskUsername masks a username for log output, showing at most the first
// two characters. Candidate passwords are never logged at all.
func MaskUsername(username string) string {
	if username == "" {
		return ""
	}

	runes := []rune(username)
	if len(runes) <= 2 {
		return "***"
	}
	return string(runes[:2]) + "***"
}
