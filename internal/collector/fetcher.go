// Package collector fetches market data and news headlines for a symbol.
package collector

import (
	"context"

	"ticker-scout/internal/model"
)

// QuoteFetcher retrieves recent daily bars for a symbol.
type QuoteFetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error)
	Name() string
}

// HeadlineFetcher retrieves recent news headlines for a symbol.
// Implementations return an empty slice, not an error, when headlines are
// simply unavailable.
type HeadlineFetcher interface {
	FetchHeadlines(ctx context.Context, symbol string, limit int) ([]string, error)
	Name() string
}
