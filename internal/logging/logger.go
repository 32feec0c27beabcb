package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New создаёт корневой логгер приложения.
// Компоненты получают его через конструкторы и берут себе префикс через WithPrefix.
func New(level, format string) *log.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter создаёт логгер, пишущий в произвольный writer
func NewWithWriter(w io.Writer, level, format string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Formatter:       parseFormatter(format),
	})
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// Discard возвращает логгер, который ничего не пишет (для тестов)
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func parseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
