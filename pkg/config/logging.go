package config

import (
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger installs the default slog logger: text to stderr, plus JSON
// appended to cfg.LogFile when one is configured. Returns a cleanup function
// to close the file. A file-open failure falls back to stderr only.
func SetupLogger(cfg *Config) func() error {
	level := parseLevel(cfg.LogLevel)

	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})

	if cfg.LogFile == "" {
		slog.SetDefault(slog.New(stderrHandler))
		return func() error { return nil }
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		slog.SetDefault(slog.New(stderrHandler))
		slog.Error("failed to open log file, using stderr only", "error", err, "file", cfg.LogFile)
		return func() error { return nil }
	}

	fileHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(slogmulti.Fanout(stderrHandler, fileHandler)))

	return file.Close
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
