package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a no-op until Init is called so packages stay usable in tests.
var Logger = zap.NewNop()

// Init replaces the process logger: JSON at info level in production,
// colored console output at debug level anywhere else.
func Init(environment string) error {
	l, err := newConfig(environment).Build(
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return err
	}

	Logger = l.With(zap.String("service", "scholarship-portal"))
	zap.ReplaceGlobals(Logger)
	return nil
}

func newConfig(environment string) zap.Config {
	var cfg zap.Config
	if environment == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.MessageKey = "message"
	return cfg
}

func Sync() {
	_ = Logger.Sync()
}

// Event names the operation a log entry belongs to.
func Event(name string) zap.Field {
	return zap.String("event", name)
}

// ForRequest returns a logger carrying the request id plus any extra fields.
// It is called directly, so the wrapper caller skip is undone.
func ForRequest(requestID string, fields ...zap.Field) *zap.Logger {
	return Logger.
		WithOptions(zap.AddCallerSkip(-1)).
		With(append([]zap.Field{zap.String("request_id", requestID)}, fields...)...)
}

func Debug(msg string, fields ...zap.Field) { Logger.Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { Logger.Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { Logger.Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { Logger.Error(msg, fields...) }

func Fatal(msg string, fields ...zap.Field) { Logger.Fatal(msg, fields...) }
