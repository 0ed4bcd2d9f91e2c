// Package memory implementa el repositorio de clientes en memoria (desarrollo local y tests).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo guarda copias de los clientes en un mapa. Los índices únicos de email y CPF se
// verifican dentro del lock, igual que lo haría el almacén real.
type CustomerRepo struct {
	mu      sync.RWMutex
	byID    map[string]entity.Customer
	now     func() time.Time
	pingErr error
}

// NewCustomerRepository construye el repositorio vacío.
func NewCustomerRepository() *CustomerRepo {
	return &CustomerRepo{
		byID: make(map[string]entity.Customer),
		now:  time.Now,
	}
}

// WithClock reemplaza el reloj usado para RegisteredAt.
func (r *CustomerRepo) WithClock(now func() time.Time) *CustomerRepo {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
	return r
}

// WithPingError fuerza a Ping a devolver err.
func (r *CustomerRepo) WithPingError(err error) *CustomerRepo {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pingErr = err
	return r
}

// Len número de clientes guardados.
func (r *CustomerRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func (r *CustomerRepo) FindAll(_ context.Context) ([]*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Customer, 0, len(r.byID))
	for _, c := range r.byID {
		c := c
		list = append(list, &c)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].RegisteredAt.Equal(list[j].RegisteredAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].RegisteredAt.After(list[j].RegisteredAt)
	})
	return list, nil
}

func (r *CustomerRepo) FindByID(_ context.Context, id string) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *CustomerRepo) FindByEmailOrTaxID(_ context.Context, email, taxID, excludeID string) (*entity.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.conflict(email, taxID, excludeID); ok {
		return &c, nil
	}
	return nil, nil
}

func (r *CustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conflict(customer.Email, customer.TaxID, ""); ok {
		return domain.ErrDuplicate
	}
	customer.ID = uuid.New().String()
	customer.RegisteredAt = r.now().UTC()
	r.byID[customer.ID] = *customer
	return nil
}

func (r *CustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[customer.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.conflict(customer.Email, customer.TaxID, customer.ID); ok {
		return domain.ErrDuplicate
	}
	customer.RegisteredAt = stored.RegisteredAt
	r.byID[customer.ID] = *customer
	return nil
}

func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *CustomerRepo) Ping(_ context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pingErr
}

// conflict requiere r.mu tomado.
func (r *CustomerRepo) conflict(email, taxID, excludeID string) (entity.Customer, bool) {
	for id, c := range r.byID {
		if id == excludeID {
			continue
		}
		if c.Email == email || c.TaxID == taxID {
			return c, true
		}
	}
	return entity.Customer{}, false
}
