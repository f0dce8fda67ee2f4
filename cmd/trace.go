package cmd

import (
	"fmt"
	"io"
	"os"
)

// traceWriter is stderr in production; tests swap it to capture diagnostics.
var traceWriter io.Writer = os.Stderr

// trace writes one newline-terminated diagnostic line. Operational tracing
// carries no machine-readable contract; it exists so operators can see which
// runs performed a fresh bootstrap and what was executed. stderr is
// unbuffered, so every line is flushed as it is written.
func trace(format string, args ...any) {
	_, _ = fmt.Fprintf(traceWriter, format+"\n", args...)
}
