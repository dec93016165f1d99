package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

var once sync.Once

var logger *zap.SugaredLogger

// Options controls how a logger encodes and filters entries
type Options struct {
	Level zapcore.Level
	JSON  bool
}

// OptionsFromEnv reads LOG_LEVEL and JSON_LOG
func OptionsFromEnv() Options {
	opts := Options{Level: zap.InfoLevel}

	if levelEnv := os.Getenv("LOG_LEVEL"); levelEnv != "" {
		level, err := zapcore.ParseLevel(levelEnv)
		if err != nil {
			log.Println(
				fmt.Errorf("invalid level, defaulting to INFO: %w", err),
			)
		} else {
			opts.Level = level
		}
	}

	opts.JSON = os.Getenv("JSON_LOG") != ""
	return opts
}

// New builds a logger writing to stdout. Build metadata is attached to every entry when available.
func New(opts Options) *zap.SugaredLogger {
	stdout := zapcore.AddSync(os.Stdout)

	productionCfg := zap.NewProductionEncoderConfig()
	productionCfg.TimeKey = "timestamp"
	productionCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	developmentCfg := zap.NewDevelopmentEncoderConfig()
	developmentCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	encoder := zapcore.NewConsoleEncoder(developmentCfg)
	if opts.JSON {
		encoder = zapcore.NewJSONEncoder(productionCfg)
	}

	core := zapcore.NewCore(encoder, stdout, zap.NewAtomicLevelAt(opts.Level))

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		fields := []zapcore.Field{zap.String("go_version", buildInfo.GoVersion)}
		for _, v := range buildInfo.Settings {
			if v.Key == "vcs.revision" && len(v.Value) >= 7 {
				fields = append(fields, zap.String("git_revision", v.Value[0:7]))
				break
			}
		}

		core = core.With(fields)
	}

	return zap.New(core).Sugar()
}

// Get initializes a zap.SugaredLogger instance from the environment if it has not been initialized
// already and returns the same instance for subsequent calls.
func Get() *zap.SugaredLogger {
	once.Do(func() {
		logger = New(OptionsFromEnv())
	})

	return logger
}

// FromCtx returns the Logger associated with the ctx. If no logger
// is associated, the default logger is returned.
func FromCtx(ctx context.Context, with ...any) *zap.SugaredLogger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		return l.With(with...)
	}

	return Get().With(with...)
}

// WithCtx returns a copy of ctx with the Logger attached.
func WithCtx(ctx context.Context, l *zap.SugaredLogger) context.Context {
	if lp, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok {
		if lp == l {
			// Do not store same logger.
			return ctx
		}
	}

	return context.WithValue(ctx, ctxKey{}, l)
}
