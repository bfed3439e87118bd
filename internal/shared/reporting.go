package shared

import (
	"fmt"
	"io"
	"os"
)

// Reporter emits user-facing status lines to an underlying sink.
type Reporter interface {
	Printf(format string, args ...any)
	Println(line string)
}

type writerReporter struct {
	writer io.Writer
}

// NewWriterReporter constructs a Reporter that writes to the provided io.Writer, defaulting to stdout.
func NewWriterReporter(writer io.Writer) Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return writerReporter{writer: writer}
}

func (reporter writerReporter) Printf(format string, args ...any) {
	fmt.Fprintf(reporter.writer, format, args...)
}

func (reporter writerReporter) Println(line string) {
	fmt.Fprintln(reporter.writer, line)
}
