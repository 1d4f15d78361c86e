// Package trigger delivers "analyze now" signals to the pipeline.
package trigger

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"ticker-scout/internal/analyzer"
)

// AnalyzeFunc runs one pipeline invocation.
type AnalyzeFunc func(ctx context.Context) error

// CronTrigger fires analyses on a cron schedule.
type CronTrigger struct {
	cron *cron.Cron
}

// NewCronTrigger registers the analyze function under the given cron spec.
func NewCronTrigger(ctx context.Context, spec string, analyze AnalyzeFunc) (*CronTrigger, error) {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(spec, func() {
		if err := analyze(ctx); err != nil {
			logTriggerErr("cron", err)
		}
	}); err != nil {
		return nil, fmt.Errorf("register cron trigger: %w", err)
	}
	return &CronTrigger{cron: c}, nil
}

// Start starts the schedule.
func (t *CronTrigger) Start() {
	t.cron.Start()
	log.Println("[INFO] cron trigger started")
}

// Stop stops the schedule gracefully.
func (t *CronTrigger) Stop() {
	t.cron.Stop()
	log.Println("[INFO] cron trigger stopped")
}

// logTriggerErr downgrades expected pipeline outcomes to info level.
func logTriggerErr(source string, err error) {
	switch {
	case errors.Is(err, analyzer.ErrCoolingDown):
		log.Printf("[INFO] %s trigger ignored: cooling down", source)
	case errors.Is(err, analyzer.ErrNoTicker):
		log.Printf("[INFO] %s trigger: no ticker found", source)
	default:
		log.Printf("[WARN] %s trigger: %v", source, err)
	}
}
