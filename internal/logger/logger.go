package logger

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	once        sync.Once
	initialized = false
)

// Init configures the global zerolog logger. It only takes effect once per
// process; later calls are ignored.
func Init(level, format, appName string) {
	if len(appName) == 0 {
		appName = "realty"
	}
	if len(level) == 0 {
		level = "info"
	}
	initLogger(os.Stdout, appName, level, format)
}

// InitWriter is Init with an explicit destination. The CLI logs to stderr
// so that stdout carries only command output.
func InitWriter(out io.Writer, level, format, appName string) {
	if len(appName) == 0 {
		appName = "realty"
	}
	initLogger(out, appName, level, format)
}

func initLogger(out io.Writer, appName, level, format string) {
	if initialized {
		log.Debug().Msg("Logger already initialized!")
		return
	}
	once.Do(func() {
		zerolog.SetGlobalLevel(ParseLevel(level))

		var w io.Writer = out
		if strings.EqualFold(format, "console") {
			w = zerolog.ConsoleWriter{
				Out:        out,
				TimeFormat: "02-01-2006 15:04:05.000",
				FormatLevel: func(i interface{}) string {
					return strings.ToUpper(fmt.Sprintf("%-6s", i))
				},
			}
		}
		log.Logger = zerolog.New(w).With().Timestamp().Str("app", appName).Caller().Logger()

		// file:line instead of the full path
		zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
			parts := strings.Split(file, "/")
			return parts[len(parts)-1] + ":" + strconv.Itoa(line)
		}

		initialized = true
		log.Info().Str("level", zerolog.GlobalLevel().String()).Msg("Logger initialized")
	})
}

// ParseLevel maps a case-insensitive level name to a zerolog level,
// defaulting to info for unknown names
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "FATAL":
		return zerolog.FatalLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
