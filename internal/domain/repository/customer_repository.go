package repository

import (
	"context"

	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
//
// FindByID, Update y Delete devuelven domain.ErrNotFound si el id no existe (un id mal formado
// cuenta como inexistente). Create y Update devuelven domain.ErrDuplicate cuando el índice único
// de email o CPF rechaza la escritura.
type CustomerRepository interface {
	// FindAll devuelve todos los clientes ordenados por RegisteredAt descendente.
	FindAll(ctx context.Context) ([]*entity.Customer, error)
	FindByID(ctx context.Context, id string) (*entity.Customer, error)
	// FindByEmailOrTaxID devuelve cualquier cliente con ese email o ese CPF, ignorando excludeID
	// si no está vacío. Devuelve nil, nil si no hay coincidencias.
	FindByEmailOrTaxID(ctx context.Context, email, taxID, excludeID string) (*entity.Customer, error)
	// Create asigna ID y RegisteredAt y persiste el cliente.
	Create(ctx context.Context, customer *entity.Customer) error
	// Update reemplaza los campos mutables; RegisteredAt no se escribe.
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
