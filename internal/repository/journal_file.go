package repository

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/etfarb/arbscan/internal/clock"
	"github.com/etfarb/arbscan/internal/domain"
	arberrors "github.com/etfarb/arbscan/internal/errors"
)

// JournalFileRepository is a persistent SignalRepository backed by a
// newline-delimited JSON journal file, written atomically (temp file +
// rename) on every mutation. Grounded on
// original_source/backend/signal/repository.py's FileSignalRepository,
// adapted from its single json.dump snapshot to one JSON object per line
// (cheaper to append-scan, same atomic-replace durability guarantee).
type JournalFileRepository struct {
	mu      sync.Mutex
	path    string
	signals []domain.TradingSignal
	logger  *zap.Logger
}

// NewJournalFileRepository opens (and if present, loads) the journal at
// path. A missing file is not an error: the repository starts empty.
func NewJournalFileRepository(path string, logger *zap.Logger) (*JournalFileRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &JournalFileRepository{path: path, logger: logger}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JournalFileRepository) load() error {
	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return arberrors.Wrap(err, arberrors.RepositoryIO, "opening signal journal").WithDetail("path", r.path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var s domain.TradingSignal
		if err := json.Unmarshal(line, &s); err != nil {
			r.logger.Warn("skipping malformed journal line", zap.Error(err))
			continue
		}
		r.signals = append(r.signals, s)
	}
	if err := scanner.Err(); err != nil {
		return arberrors.Wrap(err, arberrors.RepositoryIO, "reading signal journal").WithDetail("path", r.path)
	}
	r.logger.Info("loaded signal journal", zap.Int("count", len(r.signals)), zap.String("path", r.path))
	return nil
}

// Save implements SignalRepository. The in-memory index is updated first
// and unconditionally; a failed persist is logged and reported through
// the returned bool, but never rolls back the in-memory append.
func (r *JournalFileRepository) Save(signal domain.TradingSignal) bool {
	r.mu.Lock()
	r.signals = append(r.signals, signal)
	err := r.persistLocked()
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("signal journal write failed", zap.Error(err))
		return false
	}
	return true
}

// SaveAll implements SignalRepository, persisting once for the whole batch.
func (r *JournalFileRepository) SaveAll(signals []domain.TradingSignal) {
	r.mu.Lock()
	r.signals = append(r.signals, signals...)
	err := r.persistLocked()
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("signal journal batch write failed", zap.Error(err), zap.Int("count", len(signals)))
	}
}

// GetAll implements SignalRepository.
func (r *JournalFileRepository) GetAll() []domain.TradingSignal {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TradingSignal, len(r.signals))
	copy(out, r.signals)
	return out
}

// Get implements SignalRepository.
func (r *JournalFileRepository) Get(signalID string) (domain.TradingSignal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.signals {
		if s.SignalID == signalID {
			return s, true
		}
	}
	return domain.TradingSignal{}, false
}

// GetToday implements SignalRepository.
func (r *JournalFileRepository) GetToday() []domain.TradingSignal {
	today := clock.Active().Now(clock.CHINA)
	y, m, d := today.Date()

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.TradingSignal
	for _, s := range r.signals {
		sy, sm, sd := s.Timestamp.In(clock.CHINA).Date()
		if sy == y && sm == m && sd == d {
			out = append(out, s)
		}
	}
	return out
}

// GetRecent implements SignalRepository.
func (r *JournalFileRepository) GetRecent(limit int) []domain.TradingSignal {
	r.mu.Lock()
	sorted := make([]domain.TradingSignal, len(r.signals))
	copy(sorted, r.signals)
	r.mu.Unlock()

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	if limit >= 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

// Clear implements SignalRepository, truncating the persisted journal too.
func (r *JournalFileRepository) Clear() {
	r.mu.Lock()
	r.signals = nil
	err := r.persistLocked()
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("signal journal clear failed", zap.Error(err))
	}
}

// Count implements SignalRepository.
func (r *JournalFileRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.signals)
}

// persistLocked rewrites the whole journal to a temp file in the same
// directory, then renames it over the original. Must be called with
// r.mu held.
func (r *JournalFileRepository) persistLocked() error {
	dir := filepath.Dir(r.path)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return arberrors.Wrap(err, arberrors.RepositoryIO, "creating journal directory").WithDetail("dir", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return arberrors.Wrap(err, arberrors.RepositoryIO, "creating journal temp file").WithDetail("dir", dir)
	}
	tmpPath := tmp.Name()

	writeErr := func() error {
		w := bufio.NewWriter(tmp)
		enc := json.NewEncoder(w)
		for _, s := range r.signals {
			if err := enc.Encode(s); err != nil {
				return err
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
		return tmp.Sync()
	}()
	tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return arberrors.Wrap(writeErr, arberrors.RepositoryIO, "writing journal temp file").WithDetail("path", tmpPath)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return arberrors.Wrap(err, arberrors.RepositoryIO, "renaming journal into place").WithDetail("path", r.path)
	}
	return nil
}
