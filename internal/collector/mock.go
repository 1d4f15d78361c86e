package collector

import (
	"context"

	"ticker-scout/internal/model"
)

// MockQuoteFetcher returns canned bars, for tests and offline runs.
type MockQuoteFetcher struct {
	Bars []model.OHLCV
	Err  error
}

func (m *MockQuoteFetcher) Name() string { return "mock-quotes" }

func (m *MockQuoteFetcher) FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	bars := m.Bars
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// MockHeadlineFetcher returns canned headlines.
type MockHeadlineFetcher struct {
	Headlines []string
	Err       error
}

func (m *MockHeadlineFetcher) Name() string { return "mock-news" }

func (m *MockHeadlineFetcher) FetchHeadlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Headlines) > limit {
		return m.Headlines[:limit], nil
	}
	return m.Headlines, nil
}
