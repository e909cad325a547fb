package provider

import (
	"context"
	"sort"
	"sync"

	"github.com/etfarb/arbscan/internal/domain"
)

// MemoryProvider is a live-mode reference implementation: quotes and
// holdings are held in process memory and updated by callers (e.g. a
// poller reading a vendor feed). Grounded on the teacher's in-memory
// adapter idiom for dependency-light test doubles.
type MemoryProvider struct {
	mu       sync.RWMutex
	quotes   map[string]domain.Quote
	holdings map[string][]domain.HoldingEntry
}

// NewMemoryProvider builds an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		quotes:   make(map[string]domain.Quote),
		holdings: make(map[string][]domain.HoldingEntry),
	}
}

// SetQuote installs or replaces the quote for code.
func (p *MemoryProvider) SetQuote(code string, q domain.Quote) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quotes[code] = q
}

// SetHoldings installs the full set of ETFs holding securityCode.
func (p *MemoryProvider) SetHoldings(securityCode string, entries []domain.HoldingEntry) {
	sorted := make([]domain.HoldingEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Weight > sorted[j].Weight })

	p.mu.Lock()
	defer p.mu.Unlock()
	p.holdings[securityCode] = sorted
}

// Quote implements QuoteProvider.
func (p *MemoryProvider) Quote(_ context.Context, code string) (*domain.Quote, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	q, ok := p.quotes[code]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

// HoldingsFor implements HoldingProvider.
func (p *MemoryProvider) HoldingsFor(_ context.Context, securityCode string) ([]domain.HoldingEntry, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.holdings[securityCode], nil
}
