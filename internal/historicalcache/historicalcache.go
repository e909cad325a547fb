// Package historicalcache persists and replays the historical quote
// files a replay run reads from disk: one gzip-compressed JSON file per
// (security, start, end, granularity) tuple, named
// "{stock|etf}_{code}_{start}_{end}_{granularity}.json.gz", plus a short-TTL
// in-memory cache of the parsed result so adjacent ticks within one replay
// run don't re-parse the same file. Distinct from, and layered above, the
// contractual cache.TTLCache the engine's live-mode providers use.
package historicalcache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/calendar"
	"github.com/etfarb/arbscan/internal/domain"
)

// Kind distinguishes a stock file from an ETF file in the cache layout's
// filename prefix.
type Kind string

const (
	Stock Kind = "stock"
	ETF   Kind = "etf"
)

// record is the on-disk quote shape. It carries high/low, which the
// engine's in-process Quote does not model, and omits Quote's premium,
// price window and seal amount.
type record struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Volume    int64   `json:"volume"`
	Amount    float64 `json:"amount"`
	IsLimitUp bool    `json:"is_limit_up"`
	Timestamp string  `json:"timestamp"`
}

// Store reads and writes the historical cache layout under dir, with a
// TTL-bounded in-memory layer over the parsed file contents.
type Store struct {
	dir    string
	mem    *gocache.Cache
	logger *zap.Logger
}

// NewStore builds a Store rooted at dir, caching parsed files for ttl.
func NewStore(dir string, ttl time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{
		dir:    dir,
		mem:    gocache.New(ttl, ttl*2),
		logger: logger,
	}
}

func fileName(kind Kind, code, start, end string, granularity calendar.Granularity) string {
	return fmt.Sprintf("%s_%s_%s_%s_%s.json.gz", kind, code, start, end, granularity)
}

func timestampLayout(granularity calendar.Granularity) string {
	if granularity.IsDaily() {
		return "2006-01-02"
	}
	return "2006-01-02 15:04:05"
}

// Write gzip-compresses quotes (keyed by formatted timestamp) to the cache
// layout's file for (kind, code, start, end, granularity), overwriting any
// existing file and dropping any cached parse of it.
func (s *Store) Write(kind Kind, code, start, end string, granularity calendar.Granularity, quotes map[string]domain.Quote) error {
	layout := timestampLayout(granularity)
	records := make(map[string]record, len(quotes))
	for key, q := range quotes {
		records[key] = record{
			Code:      q.Code,
			Name:      q.Name,
			Price:     q.Price,
			ChangePct: q.ChangePct,
			Volume:    q.Volume,
			Amount:    q.Amount,
			IsLimitUp: q.IsLimitUp,
			Timestamp: q.Timestamp.Format(layout),
		}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("historicalcache: creating dir %s: %w", s.dir, err)
	}
	path := filepath.Join(s.dir, fileName(kind, code, start, end, granularity))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("historicalcache: creating %s: %w", path, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if err := json.NewEncoder(gz).Encode(records); err != nil {
		gz.Close()
		return fmt.Errorf("historicalcache: encoding %s: %w", path, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("historicalcache: closing gzip writer for %s: %w", path, err)
	}

	s.mem.Delete(path)
	return nil
}

// Load parses the cache layout's file for (kind, code, start, end,
// granularity) into a map keyed by "YYYYMMDD" date (or, for intraday
// granularities, by the same key truncated to its date component), so
// callers can feed it directly into provider.NewHistoricalProvider's
// date-keyed quote map. A cache hit within the TTL skips the file read
// and gzip decompression entirely.
func (s *Store) Load(kind Kind, code, start, end string, granularity calendar.Granularity) (map[string]domain.Quote, error) {
	path := filepath.Join(s.dir, fileName(kind, code, start, end, granularity))

	if cached, ok := s.mem.Get(path); ok {
		return cached.(map[string]domain.Quote), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("historicalcache: opening %s: %w", path, err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("historicalcache: reading gzip header of %s: %w", path, err)
	}
	defer gz.Close()

	var records map[string]record
	if err := json.NewDecoder(gz).Decode(&records); err != nil {
		return nil, fmt.Errorf("historicalcache: decoding %s: %w", path, err)
	}

	layout := timestampLayout(granularity)
	quotes := make(map[string]domain.Quote, len(records))
	for key, r := range records {
		ts, err := time.Parse(layout, r.Timestamp)
		if err != nil {
			s.logger.Warn("historicalcache: skipping record with unparsable timestamp",
				zap.String("file", path), zap.String("key", key), zap.String("timestamp", r.Timestamp))
			continue
		}
		quotes[ts.Format("20060102")] = domain.Quote{
			Code:      r.Code,
			Name:      r.Name,
			Price:     r.Price,
			ChangePct: r.ChangePct,
			Volume:    r.Volume,
			Amount:    r.Amount,
			IsLimitUp: r.IsLimitUp,
			Timestamp: ts,
		}
	}

	s.mem.Set(path, quotes, gocache.DefaultExpiration)
	return quotes, nil
}
