package repository

import (
	"sort"
	"sync"

	"github.com/etfarb/arbscan/internal/clock"
	"github.com/etfarb/arbscan/internal/domain"
)

// InMemoryRepository stores signals in a guarded slice. Reference
// semantics ported from
// original_source/backend/signal/memory_repository.py's
// InMemorySignalRepository.
type InMemoryRepository struct {
	mu      sync.Mutex
	signals []domain.TradingSignal
}

// NewInMemoryRepository builds an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

// Save implements SignalRepository.
func (r *InMemoryRepository) Save(signal domain.TradingSignal) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, signal)
	return true
}

// SaveAll implements SignalRepository.
func (r *InMemoryRepository) SaveAll(signals []domain.TradingSignal) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, signals...)
}

// GetAll implements SignalRepository, returning a defensive copy.
func (r *InMemoryRepository) GetAll() []domain.TradingSignal {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TradingSignal, len(r.signals))
	copy(out, r.signals)
	return out
}

// Get implements SignalRepository.
func (r *InMemoryRepository) Get(signalID string) (domain.TradingSignal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.signals {
		if s.SignalID == signalID {
			return s, true
		}
	}
	return domain.TradingSignal{}, false
}

// GetToday implements SignalRepository, comparing calendar dates in the
// China timezone against the active clock.
func (r *InMemoryRepository) GetToday() []domain.TradingSignal {
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

// GetRecent implements SignalRepository: the limit most recent signals,
// newest first.
func (r *InMemoryRepository) GetRecent(limit int) []domain.TradingSignal {
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

// Clear implements SignalRepository.
func (r *InMemoryRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = nil
}

// Count implements SignalRepository.
func (r *InMemoryRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.signals)
}
