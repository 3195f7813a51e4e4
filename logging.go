package termvk

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const EnvLogLevel = "TERMVK_LOG_LEVEL"

// NewLogger builds the console logger used by the CLI. TERMVK_LOG_LEVEL
// overrides cfg.Level when set to a known level.
func NewLogger(w io.Writer, cfg LogConfig) zerolog.Logger {
	level, ok := parseLevel(os.Getenv(EnvLogLevel))
	if !ok {
		level, ok = parseLevel(cfg.Level)
		if !ok {
			level = zerolog.InfoLevel
		}
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.NoColor,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "termvk").Logger()
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	}
	return zerolog.InfoLevel, false
}
