package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logDir = "logs"

// InitLogger builds the shared logger for the allocation binaries (api,
// cli, mailer). Operator-facing output goes to the console at Info; the
// full Debug stream, including the services' step-by-step allocation
// logging, lands in a JSON file under logs/. Every entry carries the env
// tag so logs from different deployments can be told apart.
func InitLogger(env string) (*zap.Logger, error) {
	fileCore, err := newFileCore(env)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewTee(newConsoleCore(), fileCore)

	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("env", env)),
	)
	return logger, nil
}

// newConsoleCore renders colored human-readable lines at Info and above
func newConsoleCore() zapcore.Core {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(os.Stdout), zapcore.InfoLevel)
}

// newFileCore writes the Debug JSON stream to logs/<env>_<timestamp>.log
func newFileCore(env string) (zapcore.Core, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	name := filepath.Join(logDir, fmt.Sprintf("%s_%s.log", env, time.Now().Format("2006-01-02_15-04-05")))
	logFile, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(cfg), zapcore.AddSync(logFile), zapcore.DebugLevel), nil
}
