// Package analyzer runs the full capture-to-recommendation pipeline.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"ticker-scout/internal/capture"
	"ticker-scout/internal/chart"
	"ticker-scout/internal/collector"
	"ticker-scout/internal/model"
	"ticker-scout/internal/notifier"
	"ticker-scout/internal/recorder"
	"ticker-scout/internal/sentiment"
	"ticker-scout/internal/strategy"
)

// ErrCoolingDown reports a trigger that arrived inside the cooldown window
// of the previous accepted trigger.
var ErrCoolingDown = errors.New("analyzer: cooling down")

// ErrNoTicker reports a frame in which no ticker symbol was recognized.
var ErrNoTicker = errors.New("analyzer: no ticker found")

// TickerDetector recognizes a ticker symbol in a frame.
type TickerDetector interface {
	DetectTicker(img gocv.Mat) string
}

// ChartDetectFunc analyzes a frame for a chart pattern.
type ChartDetectFunc func(img gocv.Mat) chart.Verdict

// Options configures pipeline behavior outside the vision passes.
type Options struct {
	Cooldown      time.Duration
	HeadlineLimit int
}

// DefaultOptions returns the standard pipeline settings.
func DefaultOptions() Options {
	return Options{
		Cooldown:      time.Second,
		HeadlineLimit: 10,
	}
}

// Analyzer wires the capture source, vision passes, data providers, scorer,
// and fusion engine into one trigger-driven pipeline.
type Analyzer struct {
	source   capture.Source
	detector TickerDetector
	chart    ChartDetectFunc
	quotes   collector.QuoteFetcher
	news     collector.HeadlineFetcher
	scorer   *sentiment.Scorer
	engine   *strategy.Engine
	sinks    []notifier.Sink
	recorder recorder.Recorder
	opts     Options

	mu      sync.Mutex
	lastRun time.Time
}

// New assembles a pipeline. The recorder may be nil; sinks may be empty.
func New(
	source capture.Source,
	detector TickerDetector,
	chartDetect ChartDetectFunc,
	quotes collector.QuoteFetcher,
	news collector.HeadlineFetcher,
	scorer *sentiment.Scorer,
	engine *strategy.Engine,
	rec recorder.Recorder,
	sinks []notifier.Sink,
	opts Options,
) *Analyzer {
	if opts.Cooldown < 0 {
		opts.Cooldown = 0
	}
	if opts.HeadlineLimit <= 0 {
		opts.HeadlineLimit = 10
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Analyzer{
		source:   source,
		detector: detector,
		chart:    chartDetect,
		quotes:   quotes,
		news:     news,
		scorer:   scorer,
		engine:   engine,
		sinks:    sinks,
		recorder: rec,
		opts:     opts,
	}
}

// Analyze runs one full pipeline invocation. Triggers inside the cooldown
// window return ErrCoolingDown. A frame without a recognizable ticker
// returns ErrNoTicker; provider failures degrade to null data instead of
// failing the analysis.
func (a *Analyzer) Analyze(ctx context.Context) (*model.AnalysisResult, error) {
	if err := a.acceptTrigger(); err != nil {
		return nil, err
	}

	a.status("capturing frame")
	frame, err := a.source.Capture()
	if err != nil {
		a.status("capture failed")
		return nil, fmt.Errorf("analyze: %w", err)
	}
	defer frame.Close()

	// The recognizer and the chart detector read the same immutable frame
	// and have no data dependency on each other.
	var (
		ticker  string
		verdict chart.Verdict
		wg      sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		ticker = a.detector.DetectTicker(frame)
	}()
	go func() {
		defer wg.Done()
		if a.chart != nil {
			verdict = a.chart(frame)
		}
	}()
	wg.Wait()

	if ticker == "" {
		a.status("no ticker found")
		return nil, ErrNoTicker
	}
	a.status("recognized " + ticker)

	snap, headlines := a.fetchData(ctx, ticker)

	a.mu.Lock()
	scorer, engine := a.scorer, a.engine
	a.mu.Unlock()

	sent := scorer.Score(headlines)
	rec := engine.Evaluate(snap, sent.Score)

	result := &model.AnalysisResult{
		Ticker:         ticker,
		Timestamp:      time.Now(),
		Snapshot:       snap,
		Sentiment:      sent,
		Recommendation: rec,
		Metadata: map[string]any{
			"chart_is_chart":   verdict.IsChart,
			"chart_confidence": verdict.Confidence,
			"headline_count":   len(headlines),
		},
	}

	if err := a.recorder.RecordAnalysis(result); err != nil {
		log.Printf("[WARN] record analysis: %v", err)
	}
	for _, s := range a.sinks {
		s.Publish(result)
	}
	return result, nil
}

// SetEvaluators swaps the scorer and fusion engine. Used when a config
// reload changes keyword sets or fusion thresholds.
func (a *Analyzer) SetEvaluators(scorer *sentiment.Scorer, engine *strategy.Engine) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.scorer = scorer
	a.engine = engine
}

// acceptTrigger enforces the cooldown window.
func (a *Analyzer) acceptTrigger() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := time.Now()
	if !a.lastRun.IsZero() && now.Sub(a.lastRun) < a.opts.Cooldown {
		return ErrCoolingDown
	}
	a.lastRun = now
	return nil
}

// fetchData issues the provider calls concurrently. Failures degrade to
// null data; no retries.
func (a *Analyzer) fetchData(ctx context.Context, ticker string) (*model.PriceSnapshot, []string) {
	var (
		snap      *model.PriceSnapshot
		headlines []string
		wg        sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		if a.quotes == nil {
			return
		}
		bars, err := a.quotes.FetchDailyBars(ctx, ticker, 10)
		if err != nil {
			log.Printf("[WARN] %s quotes: %v", a.quotes.Name(), err)
			return
		}
		snap = collector.SnapshotFromBars(bars)
	}()
	go func() {
		defer wg.Done()
		if a.news == nil {
			return
		}
		hs, err := a.news.FetchHeadlines(ctx, ticker, a.opts.HeadlineLimit)
		if err != nil {
			log.Printf("[WARN] %s headlines: %v", a.news.Name(), err)
			return
		}
		headlines = hs
	}()
	wg.Wait()
	return snap, headlines
}

func (a *Analyzer) status(msg string) {
	for _, s := range a.sinks {
		s.UpdateStatus(msg)
	}
}
