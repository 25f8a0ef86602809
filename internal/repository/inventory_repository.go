package repository

import (
	"sort"

	"github.com/Lixing-Zhang/vending-machine/internal/models"
)

// InventoryRepository defines the interface for item stock access
type InventoryRepository interface {
	Get(sel models.Selection) (models.Item, bool)
	Set(sel models.Selection, item models.Item)
	Selections() []models.Selection
}

// InMemoryInventoryRepository implements InventoryRepository with a plain map.
// It is not safe for concurrent use on its own; the ledger that owns it
// serializes every access.
type InMemoryInventoryRepository struct {
	items map[models.Selection]models.Item
}

// NewInMemoryInventoryRepository creates a repository holding a copy of items
func NewInMemoryInventoryRepository(items map[models.Selection]models.Item) *InMemoryInventoryRepository {
	copied := make(map[models.Selection]models.Item, len(items))
	for sel, item := range items {
		copied[sel] = item
	}

	return &InMemoryInventoryRepository{
		items: copied,
	}
}

// Get returns the record for sel
func (r *InMemoryInventoryRepository) Get(sel models.Selection) (models.Item, bool) {
	item, exists := r.items[sel]
	return item, exists
}

// Set replaces the record for sel. The key set is fixed at construction,
// so unknown selections are ignored.
func (r *InMemoryInventoryRepository) Set(sel models.Selection, item models.Item) {
	if _, exists := r.items[sel]; !exists {
		return
	}
	r.items[sel] = item
}

// Selections returns the stocked selections in display order
func (r *InMemoryInventoryRepository) Selections() []models.Selection {
	selections := make([]models.Selection, 0, len(r.items))
	for sel := range r.items {
		selections = append(selections, sel)
	}
	sort.Slice(selections, func(i, j int) bool {
		return selections[i].DisplayIndex() < selections[j].DisplayIndex()
	})
	return selections
}

// Len returns the number of stocked selections
func (r *InMemoryInventoryRepository) Len() int {
	return len(r.items)
}
