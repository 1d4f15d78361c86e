package notifier

import (
	"fmt"
	"io"
	"os"

	"ticker-scout/internal/model"
)

// Sink receives status lines and completed results.
type Sink interface {
	UpdateStatus(status string)
	Publish(res *model.AnalysisResult)
}

// ConsoleSink writes formatted results to a writer, stdout by default.
type ConsoleSink struct {
	Out io.Writer
}

// NewConsoleSink writes to stdout.
func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{Out: os.Stdout}
}

func (s *ConsoleSink) UpdateStatus(status string) {
	fmt.Fprintf(s.out(), "-- %s\n", status)
}

func (s *ConsoleSink) Publish(res *model.AnalysisResult) {
	fmt.Fprint(s.out(), FormatResult(res))
}

func (s *ConsoleSink) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}
