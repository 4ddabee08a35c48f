package rate

import (
	"context"
	"slices"
	"sync"
	"time"

	"currencytracker/internal/domain"
)

// Book owns the currency collection. Refreshes run one at a time on a copy of
// the records, which is swapped in afterwards, so readers never wait on the feed.
type Book struct {
	refreshMu sync.Mutex

	mu          sync.RWMutex
	records     []*domain.Currency
	lastSuccess time.Time
}

func NewBook(records []*domain.Currency) *Book {
	return &Book{records: cloneRecords(records)}
}

// Refresh runs the integrator against the collection and records the time of
// the last fresh outcome. A stale outcome reports the previous success time.
func (b *Book) Refresh(ctx context.Context, integrator *Integrator) Outcome {
	b.refreshMu.Lock()
	defer b.refreshMu.Unlock()

	working := b.Currencies()
	out := integrator.Refresh(ctx, working)

	b.mu.Lock()
	defer b.mu.Unlock()
	if out.Stale {
		out.LastSuccessAt = b.lastSuccess
		return out
	}
	b.records = working
	if !out.LastSuccessAt.IsZero() {
		b.lastSuccess = out.LastSuccessAt
	}
	return out
}

// Currencies returns copies of the records in collection order.
func (b *Book) Currencies() []*domain.Currency {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneRecords(b.records)
}

// Currency finds a record by its id.
func (b *Book) Currency(id int) (*domain.Currency, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	idx := slices.IndexFunc(b.records, func(c *domain.Currency) bool { return c.ID() == id })
	if idx < 0 {
		return nil, false
	}
	cp := *b.records[idx]
	return &cp, true
}

func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records)
}

func (b *Book) LastSuccess() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastSuccess
}

func cloneRecords(records []*domain.Currency) []*domain.Currency {
	out := make([]*domain.Currency, 0, len(records))
	for _, rec := range records {
		cp := *rec
		out = append(out, &cp)
	}
	return out
}
