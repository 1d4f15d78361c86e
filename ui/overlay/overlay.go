// Package overlay provides a small always-visible window showing the latest
// analysis result.
package overlay

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"ticker-scout/internal/model"
)

// Overlay is a result sink rendered as a compact fyne window.
type Overlay struct {
	fyne.Window
	app fyne.App

	status         *widget.Label
	ticker         *widget.Label
	price          *widget.Label
	sentiment      *widget.Label
	recommendation *widget.Label
}

// New creates the overlay window.
func New(fyneApp fyne.App, width, height int) *Overlay {
	win := fyneApp.NewWindow("Ticker Scout")

	o := &Overlay{
		Window:         win,
		app:            fyneApp,
		status:         widget.NewLabel("Ready"),
		ticker:         widget.NewLabel("--"),
		price:          widget.NewLabel(""),
		sentiment:      widget.NewLabel(""),
		recommendation: widget.NewLabel(""),
	}
	o.ticker.TextStyle = fyne.TextStyle{Bold: true}
	o.recommendation.TextStyle = fyne.TextStyle{Bold: true}

	win.SetContent(container.NewVBox(
		o.ticker,
		o.price,
		o.sentiment,
		o.recommendation,
		widget.NewSeparator(),
		o.status,
	))
	win.Resize(fyne.NewSize(float32(width), float32(height)))
	return o
}

// UpdateStatus replaces the status line.
func (o *Overlay) UpdateStatus(status string) {
	o.status.SetText(status)
}

// Publish renders the latest analysis result.
func (o *Overlay) Publish(res *model.AnalysisResult) {
	o.ticker.SetText(res.Ticker)
	if snap := res.Snapshot; snap != nil {
		o.price.SetText(fmt.Sprintf("%.2f (%+.2f%% 5d)", snap.Price, snap.FiveDayTrendPct))
	} else {
		o.price.SetText("price unavailable")
	}
	o.sentiment.SetText(fmt.Sprintf("sentiment %.1f (%s)", res.Sentiment.Score, res.Sentiment.Label))
	o.recommendation.SetText(fmt.Sprintf("%s  %d%%", res.Recommendation.Action, res.Recommendation.Confidence))
}
