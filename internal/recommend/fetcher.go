package recommend

import (
	"context"
	"sync"

	"cart-service/internal/models"
)

// Fetcher runs recommendation lookups with last-request-wins semantics:
// each Fetch bumps a generation counter, and a lookup that finishes after a
// newer request has started does not overwrite the shared current result.
// The superseded caller still receives its own result; only the shared
// snapshot is protected from going backwards.
type Fetcher struct {
	svc *Service

	mu        sync.Mutex
	gen       uint64
	productID string
	category  string
	current   []models.Product
}

// NewFetcher wraps a recommendation service.
func NewFetcher(svc *Service) *Fetcher {
	return &Fetcher{svc: svc}
}

// Fetch resolves recommendations for the context product, bounded by ctx.
func (f *Fetcher) Fetch(ctx context.Context, productID, category string) []models.Product {
	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.productID = productID
	f.category = category
	f.mu.Unlock()

	products := f.svc.For(ctx, productID, category)

	f.mu.Lock()
	if gen == f.gen {
		f.current = products
	}
	f.mu.Unlock()

	return products
}

// Current returns the most recently completed non-superseded result and
// its context product.
func (f *Fetcher) Current() (string, string, []models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Product, len(f.current))
	copy(out, f.current)
	return f.productID, f.category, out
}
