// Package recorder persists analysis results for later review.
package recorder

import "ticker-scout/internal/model"

// Recorder persists one row per completed analysis.
type Recorder interface {
	RecordAnalysis(res *model.AnalysisResult) error
	Close() error
}
