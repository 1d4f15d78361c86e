package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"gocv.io/x/gocv"

	"ticker-scout/internal/analyzer"
	"ticker-scout/internal/capture"
	"ticker-scout/internal/chart"
	"ticker-scout/internal/collector"
	"ticker-scout/internal/config"
	"ticker-scout/internal/notifier"
	"ticker-scout/internal/recorder"
	"ticker-scout/internal/sentiment"
	"ticker-scout/internal/strategy"
	"ticker-scout/internal/trigger"
	"ticker-scout/internal/vision"
	"ticker-scout/ui/overlay"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ticker-scout starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// The template set is built once and shared read-only by every
	// classification call.
	templates := vision.BuildTemplateSet()
	defer templates.Close()
	classifier := vision.NewTemplateClassifier(templates, cfg.OCR.MatchThreshold)
	recognizer := vision.NewRecognizer(vision.DefaultPreprocessOptions(), charBounds(cfg), classifier)

	chartOpts := chartOptions(cfg)
	chartDetect := func(img gocv.Mat) chart.Verdict { return chart.Detect(img, chartOpts) }

	source := capture.NewDisplaySource(cfg.Capture.Display, cfg.Capture.Scale)
	quotes := collector.NewYahooFetcher(cfg.DataSource.Proxy)
	news := collector.NewNewsFetcher(cfg.DataSource.NewsAPIKey, cfg.DataSource.Proxy)
	if cfg.DataSource.NewsAPIKey == "" {
		log.Println("[WARN] no news api key configured, sentiment will run on empty headlines")
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	sinks := []notifier.Sink{notifier.NewConsoleSink()}
	var ov *overlay.Overlay
	var ui fyne.App
	if cfg.Overlay.Enabled {
		a := fyneapp.New()
		ov = overlay.New(a, cfg.Overlay.Width, cfg.Overlay.Height)
		sinks = append(sinks, ov)
		ui = a
	}

	pipe := analyzer.New(
		source, recognizer, chartDetect, quotes, news,
		sentiment.NewScorer(sentimentOptions(cfg)),
		strategy.NewEngine(strategyOptions(cfg)),
		rec, sinks,
		analyzer.Options{
			Cooldown:      time.Duration(cfg.Trigger.CooldownSeconds * float64(time.Second)),
			HeadlineLimit: 10,
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	analyze := func(ctx context.Context) error {
		_, err := pipe.Analyze(ctx)
		return err
	}

	if cfg.Trigger.CronSpec != "" {
		ct, err := trigger.NewCronTrigger(ctx, cfg.Trigger.CronSpec, analyze)
		if err != nil {
			log.Fatalf("[FATAL] cron trigger: %v", err)
		}
		ct.Start()
		defer ct.Stop()
	}

	go trigger.NewStdinTrigger(analyze).Run(ctx)

	// Keyword sets and fusion thresholds apply on the next trigger after a
	// config file change.
	go func() {
		if err := config.Watch(cfgPath, func(next *config.Config) {
			pipe.SetEvaluators(
				sentiment.NewScorer(sentimentOptions(next)),
				strategy.NewEngine(strategyOptions(next)),
			)
		}); err != nil {
			log.Printf("[WARN] config watch: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Println("[INFO] ticker-scout is running. Press Ctrl+C to stop.")

	if ui != nil {
		go func() {
			<-sigCh
			cancel()
			ui.Quit()
		}()
		ov.Show()
		ui.Run()
	} else {
		<-sigCh
		cancel()
	}
	log.Println("[INFO] ticker-scout stopped")
}

func charBounds(cfg *config.Config) vision.CharBounds {
	return vision.CharBounds{
		MinWidth:  cfg.OCR.MinCharWidth,
		MaxWidth:  cfg.OCR.MaxCharWidth,
		MinHeight: cfg.OCR.MinCharHeight,
		MaxHeight: cfg.OCR.MaxCharHeight,
	}
}

func chartOptions(cfg *config.Config) chart.Options {
	opts := chart.DefaultOptions()
	opts.Votes = cfg.Chart.HoughVotes
	opts.MinLineLength = cfg.Chart.MinLineLength
	opts.MaxLineGap = cfg.Chart.MaxLineGap
	opts.MinSegments = cfg.Chart.MinSegments
	opts.HorizontalFracMin = cfg.Chart.HorizontalFrac
	opts.VerticalFracMax = cfg.Chart.VerticalFrac
	opts.GridEpsilonPct = cfg.Chart.GridEpsilonPct
	opts.GridRectThreshold = cfg.Chart.GridRectCount
	opts.GridBoost = cfg.Chart.GridBoost
	opts.ConfidenceFloor = cfg.Chart.ConfidenceFloor
	return opts
}

func sentimentOptions(cfg *config.Config) sentiment.Options {
	return sentiment.Options{
		PositiveKeywords: cfg.Sentiment.PositiveKeywords,
		NegativeKeywords: cfg.Sentiment.NegativeKeywords,
		PositiveCutoff:   cfg.Sentiment.PositiveCutoff,
		NegativeCutoff:   cfg.Sentiment.NegativeCutoff,
	}
}

func strategyOptions(cfg *config.Config) strategy.Options {
	return strategy.Options{
		TrendThresholdPct:    cfg.Strategy.TrendThresholdPct,
		VolumeThresholdPct:   cfg.Strategy.VolumeThresholdPct,
		SentimentThreshold:   cfg.Strategy.SentimentThreshold,
		TrendDelta:           cfg.Strategy.TrendDelta,
		VolumeDelta:          cfg.Strategy.VolumeDelta,
		SentimentDelta:       cfg.Strategy.SentimentDelta,
		AgreementDelta:       cfg.Strategy.AgreementDelta,
		ContradictionPenalty: cfg.Strategy.ContradictionPenalty,
	}
}
