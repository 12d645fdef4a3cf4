package logger

import (
	"log/slog"
	"os"
	"strings"
)

const (
	FormatJSON = "json"
	FormatText = "text"

	serviceName = "scorekeeper"
)

type Options struct {
	Level   slog.Level
	Format  string
	Service string
}

// OptionsFromEnv defaults to debug in development and info elsewhere, JSON
// output unless LOG_FORMAT=text.
func OptionsFromEnv() Options {
	env := normalize(os.Getenv("ENV"))
	return Options{
		Level:   parseLevel(os.Getenv("LOG_LEVEL"), env),
		Format:  parseFormat(os.Getenv("LOG_FORMAT")),
		Service: serviceName,
	}
}

func parseLevel(value, env string) slog.Level {
	switch normalize(value) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical", "fatal":
		return LevelCritical
	}
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func parseFormat(value string) string {
	if normalize(value) == FormatText {
		return FormatText
	}
	return FormatJSON
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
