package ecscore

import (
	"log"
	"os"

	"github.com/TheBitDrifter/bark"
)

// Logger is the category-tagged sink spec.md §6 requires: used only for
// invariant violations and registration errors, never for routine frame
// logging.
type Logger interface {
	Error(category string, err error, fields ...any)
}

// stdLogger backs Logger with the standard library's log package,
// enriching every error with bark.AddTrace before it's printed — the
// same trace-enrichment path warehouse's entity.go uses at its own
// panic boundary.
type stdLogger struct {
	*log.Logger
}

// NewStdLogger returns a Logger that writes to stderr.
func NewStdLogger() Logger {
	return &stdLogger{Logger: log.New(os.Stderr, "ecscore: ", log.LstdFlags)}
}

func (l *stdLogger) Error(category string, err error, fields ...any) {
	traced := bark.AddTrace(err)
	l.Printf("[%s] %v %v", category, traced, fields)
}

// Assert panics with a traced error if cond is false. It is the sole
// enforcement mechanism for "Programmer errors (fail fast)" in spec.md §7.
func Assert(cond bool, logger Logger, category string, err error) {
	if cond {
		return
	}
	if logger != nil {
		logger.Error(category, err)
	}
	panic(bark.AddTrace(err))
}
