package logging

import (
	"io"
	"log"
	"os"
)

var (
	Debug   *log.Logger
	Scanner *log.Logger
	UI      *log.Logger
	Enabled bool
)

func init() {
	// Logging stays off unless DISKVIZ_DEBUG is set
	if os.Getenv("DISKVIZ_DEBUG") == "" {
		setOutput(io.Discard, 0)
		Enabled = false
		return
	}

	Enabled = true

	// All loggers share one debug.log
	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fall back to stderr
		setOutput(os.Stderr, log.Ldate|log.Ltime)
		return
	}

	setOutput(debugFile, log.Lmicroseconds)
}

// setOutput points every logger at w. The component is named only by the
// logger prefix, so messages carry no tags of their own.
func setOutput(w io.Writer, flags int) {
	Debug = log.New(w, "[debug] ", flags)
	Scanner = log.New(w, "[scanner] ", flags)
	UI = log.New(w, "[ui] ", flags)
}
