package logger

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New builds a logger writing to w. Unknown levels fall back to info,
// unknown formats to console.
func New(level, format string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if strings.ToLower(format) == FormatJSON {
		zl = zerolog.New(w)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
			FormatLevel: func(i interface{}) string {
				switch tag := strings.ToUpper(fmt.Sprintf("%s", i)); tag {
				case "DEBUG":
					return "[DBG]"
				case "INFO":
					return "[INF]"
				case "WARN":
					return "[WRN]"
				case "ERROR":
					return "[ERR]"
				default:
					return fmt.Sprintf("[%s]", tag)
				}
			},
		})
	}

	return zl.Level(lvl).With().Timestamp().Logger()
}
