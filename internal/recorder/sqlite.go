package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"ticker-scout/internal/model"
)

// SQLiteRecorder persists analysis results to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers do not block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			ticker             TEXT NOT NULL,
			price              REAL,
			price_change_pct   REAL,
			five_day_trend_pct REAL,
			latest_volume      REAL,
			volume_trend_pct   REAL,
			sentiment_score    REAL,
			sentiment_label    TEXT,
			action             TEXT,
			confidence         INTEGER,
			metadata           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ts ON analyses(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_ticker ON analyses(ticker)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordAnalysis inserts one row per analysis. Snapshot columns stay NULL
// when price data was unavailable.
func (r *SQLiteRecorder) RecordAnalysis(res *model.AnalysisResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var price, changePct, trendPct, volume, volumeTrend sql.NullFloat64
	if snap := res.Snapshot; snap != nil {
		price = sql.NullFloat64{Float64: snap.Price, Valid: true}
		changePct = sql.NullFloat64{Float64: snap.PriceChangePct, Valid: true}
		trendPct = sql.NullFloat64{Float64: snap.FiveDayTrendPct, Valid: true}
		volume = sql.NullFloat64{Float64: snap.LatestVolume, Valid: true}
		volumeTrend = sql.NullFloat64{Float64: snap.VolumeTrendPct, Valid: true}
	}

	meta := ""
	if len(res.Metadata) > 0 {
		if b, err := json.Marshal(res.Metadata); err == nil {
			meta = string(b)
		}
	}

	_, err := r.db.Exec(`INSERT INTO analyses
		(timestamp, ticker, price, price_change_pct, five_day_trend_pct,
		 latest_volume, volume_trend_pct,
		 sentiment_score, sentiment_label, action, confidence, metadata)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		res.Timestamp.Unix(), res.Ticker,
		price, changePct, trendPct, volume, volumeTrend,
		res.Sentiment.Score, string(res.Sentiment.Label),
		string(res.Recommendation.Action), res.Recommendation.Confidence,
		meta,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
