package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.Logger with the (msg, err, fields) call shape used
// throughout the service.
type Logger struct {
	// Zap is exposed for callers that need zap-specific functionality.
	Zap *zap.Logger

	tracingEnabled bool
}

// NewLoggerClient builds a JSON logger writing to stderr.
//
// Entries carry an ISO8601 "timestamp", the caller, the process id and the
// configured service name. If the logger cannot be built the process exits.
//
// Example:
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "tech-report-api"})
//	log.Info("Server started", nil, map[string]interface{}{"port": 8080})
func NewLoggerClient(cfg Config) *Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	config := zap.Config{
		Level:             zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		Development:       false,
		DisableCaller:     false,
		DisableStacktrace: true,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	zl, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		log.Fatal(err)
	}

	return &Logger{
		Zap:            zl,
		tracingEnabled: cfg.EnableTracing,
	}
}

// NewWithCore wraps an existing zap core. It is mainly useful in tests
// together with zaptest/observer.
func NewWithCore(core zapcore.Core, enableTracing bool) *Logger {
	return &Logger{
		Zap:            zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
		tracingEnabled: enableTracing,
	}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Zap: zap.NewNop()}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case Debug:
		return zap.DebugLevel
	case Warning:
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
