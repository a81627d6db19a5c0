package cart

import (
	"context"
	"encoding/json"

	"cart-service/internal/models"
)

// MemoryPersister keeps the serialized cart in process memory. It backs
// tests and runs without a Redis endpoint; it still exercises the full
// serialize/deserialize path so round-trip behavior matches production.
type MemoryPersister struct {
	blob []byte
}

// NewMemoryPersister creates an empty in-memory persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

// Load decodes the stored blob. A malformed blob reports as not found so
// the store falls back to an empty cart.
func (m *MemoryPersister) Load(_ context.Context) ([]models.CartLine, bool, error) {
	if m.blob == nil {
		return nil, false, nil
	}
	var lines []models.CartLine
	if err := json.Unmarshal(m.blob, &lines); err != nil {
		return nil, false, nil
	}
	return lines, true, nil
}

// Save overwrites the stored blob with the full line sequence.
func (m *MemoryPersister) Save(_ context.Context, lines []models.CartLine) error {
	blob, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	m.blob = blob
	return nil
}
