package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// sugared zap logger used by the cli
type Logger struct {
	*zap.SugaredLogger
}

// creates console logger writing to stderr, debug level when verbose
func NewLogger(verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.TimeKey = ""
	if verbose {
		encCfg.TimeKey = "T"
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return &Logger{zap.New(core).Sugar()}
}

// logger that discards everything
func Nop() *Logger {
	return &Logger{zap.NewNop().Sugar()}
}

// structured logger for packages that take *zap.Logger
func (l *Logger) Desugar() *zap.Logger {
	if l == nil || l.SugaredLogger == nil {
		return zap.NewNop()
	}
	return l.SugaredLogger.Desugar()
}
