package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level defines the severity level for log messages.
type Level string

const (
	// LevelInfo is used for general informational messages.
	LevelInfo Level = "info"

	// LevelWarn is used for potentially harmful situations.
	LevelWarn Level = "warn"

	// LevelError is used for error events that might still allow the application to continue running.
	LevelError Level = "error"

	// LevelDebug is used for debugging messages with detailed internal information.
	LevelDebug Level = "debug"
)

// ParseLevel maps a config string onto a Level. Unknown strings become LevelInfo.
func ParseLevel(s string) Level {
	switch l := Level(s); l {
	case LevelInfo, LevelWarn, LevelError, LevelDebug:
		return l
	}
	return LevelInfo
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	case LevelDebug:
		return zap.DebugLevel
	default:
		return zap.InfoLevel
	}
}

// Emit writes msg to logger at the given level.
func Emit(logger *zap.Logger, level Level, msg string, fields ...zap.Field) {
	switch level {
	case LevelInfo:
		logger.Info(msg, fields...)
	case LevelWarn:
		logger.Warn(msg, fields...)
	case LevelError:
		logger.Error(msg, fields...)
	case LevelDebug:
		logger.Debug(msg, fields...)
	default:
		logger.Info(msg, fields...)
	}
}

// NewConsole builds a development console logger writing to stdout at or above level.
func NewConsole(level Level) *zap.Logger {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		level.zapLevel(),
	)
	return zap.New(consoleCore)
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Sync flushes logger, reporting a failed flush through the logger itself.
func Sync(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		logger.Warn("failed to sync logger", zap.Error(err))
	}
}
