package telemetry

import (
	"io"
	"log/slog"
	"os"

	// Packages
	logger "github.com/mutablelogic/go-server/pkg/logger"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewLogger returns a logger writing to w, at debug level when debug is true.
// A terminal gets colourised output, anything else gets logfmt text. Records
// at or above the level are also sent to any additional handlers.
func NewLogger(w io.Writer, debug bool, handlers ...slog.Handler) *slog.Logger {
	level := new(slog.LevelVar)
	if debug {
		level.Set(logger.LevelDebug)
	} else {
		level.Set(logger.LevelInfo)
	}

	// Console output
	var console slog.Handler
	if isTerminal(w) {
		console = logger.NewTermHandler(w, level)
	} else {
		console = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	if len(handlers) == 0 {
		return slog.New(console)
	}

	// Fan out to the other handlers at the same level
	result := []slog.Handler{console}
	for _, h := range handlers {
		result = append(result, logger.NewLevelHandler(h, level))
	}
	return slog.New(logger.NewMultiHandler(result...))
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
