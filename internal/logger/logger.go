package logger

import (
	"os"

	"invest-portal/internal/config"
	"invest-portal/internal/database"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const FunctionKey = "func"

// NewLogger builds the console logger and tees it to a rotating file and the
// logs collection when configured.
func NewLogger(cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.EncoderConfig.FunctionKey = FunctionKey

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	cores := []zapcore.Core{baseLogger.Core()}

	if cfg.Log.File != "" {
		fileEncoder := zap.NewProductionEncoderConfig()
		fileEncoder.FunctionKey = FunctionKey
		fileEncoder.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoder),
			zapcore.AddSync(newRotatingFile(cfg.Log)),
			zapConfig.Level,
		))
	}

	core := zapcore.NewTee(cores...)

	if cfg.Log.ToDB && mongodb != nil {
		core = NewDBCore(core, NewDBLogWriter(mongodb, cfg))
	}

	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr))), nil
}

func newRotatingFile(cfg config.LogConfig) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
}
