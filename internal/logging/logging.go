package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Settings configure the global logger.
type Settings struct {
	Level   string
	Format  string
	NoColor bool

	// Out defaults to os.Stderr.
	Out io.Writer
}

// Init sets up the global logger. Unknown levels and formats fall back to
// info and console and are reported once the logger is ready.
func Init(s Settings) {
	var queue []string

	levelStr := strings.ToLower(s.Level)
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || levelStr == "" {
		level = zerolog.InfoLevel
		if levelStr != "" {
			queue = append(queue, fmt.Sprintf("invalid log level %q, using info", levelStr))
		}
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = os.Stderr
	if s.Out != nil {
		output = s.Out
	}

	logFormat := strings.ToLower(s.Format)
	if logFormat == FormatJSON {
		log.Logger = zerolog.New(output).With().
			Timestamp().
			Logger()
	} else {
		if logFormat != FormatConsole && logFormat != "" {
			queue = append(queue, fmt.Sprintf("unknown log format %q, using console", logFormat))
		}
		log.Logger = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = output
			w.NoColor = s.NoColor
			w.TimeFormat = "15:04:05.000"
		})).With().
			Timestamp().
			Logger()
	}

	// now after we set up the logger, we can log any queued messages
	for _, msg := range queue {
		log.Warn().Msg(msg)
	}
}
