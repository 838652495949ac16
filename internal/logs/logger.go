package logs

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger  *zap.Logger
	logFile *os.File
	mu      sync.Mutex
)

// Nothing is written until Initialize is called; the TUI owns the terminal,
// so logs only go to a file.
func init() {
	Logger = zap.NewNop()
}

// Initialize points the logger at <logDir>/debug.log.
func Initialize(logDir string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		Logger.Warn("failed to open log file", zap.String("path", logPath), zap.Error(err))
		return err
	}

	if logFile != nil {
		_ = Logger.Sync()
		logFile.Close()
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	logFile = f
	Logger = New(zapcore.AddSync(f), level)
	Logger.Info("logger initialized", zap.String("path", logPath))

	return nil
}

// New builds a JSON logger writing to w. Exposed so commands can log to
// stderr without touching the package logger.
func New(w zapcore.WriteSyncer, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level)
	return zap.New(core, zap.AddCaller()).Named("mindflow")
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = Logger.Sync()
		err := logFile.Close()
		logFile = nil
		Logger = zap.NewNop()
		return err
	}
	return nil
}
