// Package memory implementa los repositorios y el TxRunner en memoria.
// Sirve para DB_DRIVER=memory (demo local) y para los tests de casos de uso.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-kardex/internal/domain"
	"github.com/jhoicas/Inventario-kardex/internal/domain/entity"
	"github.com/jhoicas/Inventario-kardex/internal/domain/repository"
)

const defaultLockTimeout = 5 * time.Second

// Store estado compartido. Las transacciones se serializan con txSem (equivalente
// al bloqueo de fila de Postgres, con el mismo timeout); mu protege los mapas.
type Store struct {
	txSem       chan struct{}
	lockTimeout time.Duration

	mu         sync.RWMutex
	companies  map[string]*entity.Company
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	suppliers  map[string]*entity.Supplier
	inventory  map[repository.InventoryKey]*entity.Inventory
	movements  []*entity.Movement
	kardex     []*entity.KardexEntry
	audit      []entity.AuditEvent
	seq        int64
}

// NewStore crea un almacén vacío. lockTimeout <= 0 usa 5s.
func NewStore(lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &Store{
		txSem:       make(chan struct{}, 1),
		lockTimeout: lockTimeout,
		companies:   make(map[string]*entity.Company),
		products:    make(map[string]*entity.Product),
		warehouses:  make(map[string]*entity.Warehouse),
		suppliers:   make(map[string]*entity.Supplier),
		inventory:   make(map[repository.InventoryKey]*entity.Inventory),
	}
}

// acquire espera el turno de transacción; vencido el timeout devuelve ErrLockContention.
func (s *Store) acquire(ctx context.Context) error {
	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()
	select {
	case s.txSem <- struct{}{}:
		return nil
	case <-timer.C:
		return domain.ErrLockContention
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() { <-s.txSem }

// commit aplica lo escrito por la transacción.
func (s *Store) commit(t *tx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, inv := range t.inventory {
		s.inventory[k] = inv
	}
	for id, p := range t.products {
		s.products[id] = p
	}
	for id, w := range t.warehouses {
		s.warehouses[id] = w
	}
	s.movements = append(s.movements, t.movements...)
	s.kardex = append(s.kardex, t.kardex...)
	s.seq = max(s.seq, t.seq)
}

func cloneInventory(i *entity.Inventory) *entity.Inventory {
	c := *i
	if i.MaxStock != nil {
		v := *i.MaxStock
		c.MaxStock = &v
	}
	if i.LastMovement != nil {
		v := *i.LastMovement
		c.LastMovement = &v
	}
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	if p.DeletedAt != nil {
		v := *p.DeletedAt
		c.DeletedAt = &v
	}
	return &c
}

func cloneWarehouse(w *entity.Warehouse) *entity.Warehouse {
	c := *w
	if w.DeletedAt != nil {
		v := *w.DeletedAt
		c.DeletedAt = &v
	}
	return &c
}

func cloneSupplier(s *entity.Supplier) *entity.Supplier {
	c := *s
	if s.DeletedAt != nil {
		v := *s.DeletedAt
		c.DeletedAt = &v
	}
	return &c
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	c := *m
	return &c
}

func cloneKardex(k *entity.KardexEntry) *entity.KardexEntry {
	c := *k
	return &c
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
