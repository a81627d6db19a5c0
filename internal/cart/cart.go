package cart

import (
	"context"
	"sync"

	"cart-service/internal/models"
	"cart-service/internal/util"

	"go.uber.org/zap"
)

// Persister loads and saves the full cart state as a single record.
// Save overwrites wholesale; Load's second return reports whether a
// persisted record existed at all.
type Persister interface {
	Load(ctx context.Context) ([]models.CartLine, bool, error)
	Save(ctx context.Context, lines []models.CartLine) error
}

// Store owns the cart state. All mutations run to completion under a single
// lock and synchronously persist the resulting state; derived values are
// never cached. There is exactly one logical writer, so no cross-instance
// coordination is needed.
type Store struct {
	mu        sync.Mutex
	lines     []models.CartLine
	persister Persister
	logger    *zap.Logger
}

// NewStore creates a cart store and restores any previously persisted
// state. A missing or malformed persisted record falls back to an empty
// cart; NewStore itself never fails.
func NewStore(ctx context.Context, persister Persister) *Store {
	s := &Store{
		persister: persister,
		logger:    util.GetLogger(),
	}

	lines, found, err := persister.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to restore cart state, starting empty", zap.Error(err))
		return s
	}
	if found {
		s.lines = lines
		s.logger.Info("Cart state restored", zap.Int("lines", len(lines)))
	}
	return s
}

// lock guards the state and fails fast on a zero-value store: using the
// cart before NewStore is a wiring bug, not a runtime data issue.
func (s *Store) lock() {
	if s.persister == nil {
		panic("cart: store used before initialization")
	}
	s.mu.Lock()
}

func (s *Store) unlock() {
	s.mu.Unlock()
}

// normalizeQuantity coerces invalid quantities to the documented default.
func normalizeQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	return quantity
}

// Add merges quantity into an existing line for the product, or appends a
// new line. A merged line keeps its original price/name snapshot and its
// position in the sequence. Non-positive quantities are treated as 1.
func (s *Store) Add(ctx context.Context, product *models.Product, quantity int) {
	s.lock()
	defer s.unlock()

	quantity = normalizeQuantity(quantity)

	for i := range s.lines {
		if s.lines[i].ProductID == product.ID {
			s.lines[i].Quantity += quantity
			s.persist(ctx)
			return
		}
	}

	s.lines = append(s.lines, models.NewCartLine(product, quantity))
	s.persist(ctx)
}

// Remove deletes the line for the product id. Removing an absent id is a
// no-op, not an error.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.lock()
	defer s.unlock()
	s.removeLocked(ctx, productID)
}

func (s *Store) removeLocked(ctx context.Context, productID string) {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero
// or less removes the line; an absent id is a no-op and never creates a
// line.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) {
	s.lock()
	defer s.unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, productID)
		return
	}

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart and persists the empty state. The persisted record
// is overwritten, not deleted.
func (s *Store) Clear(ctx context.Context) {
	s.lock()
	defer s.unlock()

	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the current line sequence in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.lock()
	defer s.unlock()

	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// ItemCount returns the sum of quantities over all lines.
func (s *Store) ItemCount() int {
	s.lock()
	defer s.unlock()

	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// persist writes the full state. Mutations never visibly fail: a write
// error loses at most this one mutation on restart, which is acceptable
// for cart state, so it is logged and counted rather than returned.
func (s *Store) persist(ctx context.Context) {
	if err := s.persister.Save(ctx, s.lines); err != nil {
		util.CartPersistFailedTotal.Inc()
		s.logger.Error("Failed to persist cart state", zap.Error(err))
		return
	}
	util.CartPersistTotal.Inc()
}
