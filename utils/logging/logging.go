// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup installs a text logger on stderr, also writing to a rotated file
// when file is set, and shares it with gg.
func Setup(file string, level slog.Level) *slog.Logger {
	writers := []io.Writer{os.Stderr}
	if file != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    50,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}

	logger := slog.New(slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)
	return logger
}

// Level maps WORDFACE_DEBUG to a log level.
func Level() slog.Level {
	if os.Getenv("WORDFACE_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
