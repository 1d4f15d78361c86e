package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// NewsFetcher retrieves headlines from the NewsAPI "everything" endpoint.
// Without an API key it degrades to returning no headlines rather than
// failing the analysis.
type NewsFetcher struct {
	Client *http.Client
	APIKey string
}

// NewNewsFetcher creates a fetcher, optionally routed through a proxy.
func NewNewsFetcher(apiKey, proxyURL string) *NewsFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &NewsFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		APIKey: apiKey,
	}
}

func (f *NewsFetcher) Name() string { return "newsapi" }

type newsResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

// FetchHeadlines returns up to limit recent headlines mentioning the symbol.
func (f *NewsFetcher) FetchHeadlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	if f.APIKey == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("q", symbol+" stock")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", fmt.Sprintf("%d", limit))
	q.Set("language", "en")
	u := "https://newsapi.org/v2/everything?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", f.APIKey)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: status %d, body: %s", resp.StatusCode, string(body))
	}

	var nr newsResponse
	if err := json.Unmarshal(body, &nr); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}
	if nr.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", nr.Message)
	}

	headlines := make([]string, 0, len(nr.Articles))
	for _, a := range nr.Articles {
		if a.Title != "" {
			headlines = append(headlines, a.Title)
		}
	}
	return headlines, nil
}
