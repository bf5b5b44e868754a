// Package logger builds the service's zap logger and carries
// request-scoped loggers through contexts.
package logger

import (
	"os"

	"github.com/mytheresa/product-barcode/app/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ParseLevel maps a configured level name to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New builds the logger for cfg: human friendly console output in
// development, JSON in production, plus a rotating JSON file when
// LOG_FILE is set. The result also replaces zap's global logger.
func New(cfg *config.Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(ParseLevel(cfg.Log.Level))
	fields := zap.Fields(
		zap.String("service", cfg.ServiceName),
		zap.String("environment", cfg.Server.Env),
	)

	var log *zap.Logger
	if cfg.Log.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(zapcore.NewJSONEncoder(productionEncoderConfig()), zapcore.AddSync(rotating), level),
			zapcore.NewCore(consoleEncoder(cfg.Server.Env), zapcore.AddSync(os.Stdout), level),
		)
		log = zap.New(core, zap.AddCaller(), fields)
	} else {
		var zapConfig zap.Config
		if cfg.Server.Env == "production" {
			zapConfig = zap.NewProductionConfig()
			zapConfig.EncoderConfig = productionEncoderConfig()
		} else {
			zapConfig = zap.NewDevelopmentConfig()
			zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		zapConfig.Level = level

		var err error
		log, err = zapConfig.Build(fields)
		if err != nil {
			return nil, err
		}
	}

	zap.ReplaceGlobals(log)
	return log, nil
}

func productionEncoderConfig() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "timestamp"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return enc
}

func consoleEncoder(env string) zapcore.Encoder {
	if env == "production" {
		return zapcore.NewJSONEncoder(productionEncoderConfig())
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(enc)
}
