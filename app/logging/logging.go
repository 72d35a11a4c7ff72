// Package logging configures the op/go-logging backend shared by every
// module of the forum binary.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

const format = `%{time:2006-01-02T15:04:05.000Z07:00} %{level:.4s} %{module} %{shortfunc} > %{message}`

func init() {
	// Until Setup runs, log warnings and worse to stderr.
	if err := Setup(os.Stderr, "warning"); err != nil {
		panic(err)
	}
}

// Setup routes all module loggers to w at the given level. Level names are
// the go-logging ones: debug, info, notice, warning, error, critical.
func Setup(w io.Writer, level string) error {
	lvl, err := logging.LogLevel(strings.ToUpper(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	backend := logging.NewLogBackend(w, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(format))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, "")
	logging.SetBackend(leveled)
	return nil
}

// NewLogger returns the logger for a module. The returned logger also
// satisfies badger.Logger.
func NewLogger(name string) *logging.Logger {
	return logging.MustGetLogger(name)
}
