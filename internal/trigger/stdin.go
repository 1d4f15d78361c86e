package trigger

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"strings"
)

// StdinTrigger fires an analysis every time a line arrives on the reader.
// An empty line or "analyze" triggers; "quit" stops the loop.
type StdinTrigger struct {
	In      io.Reader
	analyze AnalyzeFunc
}

// NewStdinTrigger reads from stdin.
func NewStdinTrigger(analyze AnalyzeFunc) *StdinTrigger {
	return &StdinTrigger{In: os.Stdin, analyze: analyze}
}

// Run blocks until the reader closes, the context is canceled, or the user
// quits.
func (t *StdinTrigger) Run(ctx context.Context) {
	scanner := bufio.NewScanner(t.In)
	log.Println("[INFO] press enter to analyze, type quit to exit")
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
		case "", "analyze":
			if err := t.analyze(ctx); err != nil {
				logTriggerErr("stdin", err)
			}
		case "quit", "exit":
			return
		}
	}
}
