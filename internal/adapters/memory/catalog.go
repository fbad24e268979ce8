package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/query"
)

// Catalog - снимок каталога в памяти. Поиск идет по нему, а события
// из очереди обновляют его на месте. Читатели получают копию среза,
// поэтому запрос никогда не видит каталог в промежуточном состоянии.
//
// Изменения применяются по правилу "последняя запись выигрывает" по UpdatedAt:
// повторно доставленное старое событие не затирает более новое состояние,
// а надгробия удаленных объявлений не дают старому upsert их воскресить.
type Catalog struct {
	mu         sync.RWMutex
	byID       map[string]domain.Listing
	tombstones map[string]time.Time
	ordered    []domain.Listing
	version    uint64
}

func NewCatalog() *Catalog {
	return &Catalog{
		byID:       make(map[string]domain.Listing),
		tombstones: make(map[string]time.Time),
	}
}

// All возвращает объявления от новых к старым, при равной дате - по ID
func (c *Catalog) All(_ context.Context) ([]domain.Listing, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.ordered), nil
}

func (c *Catalog) GetByID(_ context.Context, id string) (*domain.Listing, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	l, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("listing %q: %w", id, domain.ErrListingNotFound)
	}
	return &l, nil
}

// Upsert молча пропускает версию старше сохраненной или удаления
func (c *Catalog) Upsert(_ context.Context, listing domain.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.byID[listing.ID]; ok && listing.UpdatedAt.Before(current.UpdatedAt) {
		return nil
	}
	if deletedAt, ok := c.tombstones[listing.ID]; ok {
		if !listing.UpdatedAt.After(deletedAt) {
			return nil
		}
		delete(c.tombstones, listing.ID)
	}

	c.byID[listing.ID] = listing
	c.rebuildLocked()
	return nil
}

// Delete отсутствующего объявления - не ошибка, события могут приходить повторно.
// Удаление, случившееся раньше последнего обновления, не применяется.
func (c *Catalog) Delete(_ context.Context, id string, deletedAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.tombstones[id]; !ok || deletedAt.After(prev) {
		c.tombstones[id] = deletedAt
	}

	current, ok := c.byID[id]
	if !ok || deletedAt.Before(current.UpdatedAt) {
		return nil
	}
	delete(c.byID, id)
	c.rebuildLocked()
	return nil
}

// ReplaceAll атомарно заменяет весь каталог и забывает надгробия
func (c *Catalog) ReplaceAll(_ context.Context, listings []domain.Listing) error {
	byID := make(map[string]domain.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = byID
	c.tombstones = make(map[string]time.Time)
	c.rebuildLocked()
	return nil
}

// Len - количество объявлений в каталоге
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// Version растет при каждом изменении каталога
func (c *Catalog) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// rebuildLocked пересобирает упорядоченный срез после изменения.
func (c *Catalog) rebuildLocked() {
	ordered := make([]domain.Listing, 0, len(c.byID))
	for _, l := range c.byID {
		ordered = append(ordered, l)
	}
	slices.SortFunc(ordered, func(a, b domain.Listing) int {
		if r := b.CreatedAt.Compare(a.CreatedAt); r != 0 {
			return r
		}
		return query.CompareIDs(a.ID, b.ID)
	})
	c.ordered = ordered
	c.version++
}
