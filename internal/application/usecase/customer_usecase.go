package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/cadastro-clientes/internal/application/dto"
	"github.com/jhoicas/cadastro-clientes/internal/application/validation"
	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD del cadastro de clientes.
//
// Errores devueltos: *domain.ValidationError (datos inválidos), domain.ErrDuplicate (email o CPF
// ya usados), domain.ErrNotFound (id inexistente); cualquier otro es falla del almacén.
type CustomerUseCase struct {
	repo   repository.CustomerRepository
	schema *validation.CustomerSchema
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, schema *validation.CustomerSchema) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, schema: schema}
}

// List devuelve todos los clientes, más recientes primero.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCustomerResponse(c))
	}
	return out, nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(c), nil
}

// Create valida, verifica unicidad de email/CPF y persiste un nuevo cliente.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.schema.Validate(in.ToEntity())
	if err != nil {
		return nil, err
	}
	if err := uc.ensureUnique(ctx, customer, ""); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, &customer); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(&customer), nil
}

// Update aplica los campos presentes sobre el cliente guardado, valida el resultado completo
// y verifica unicidad contra los demás clientes.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	current, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := in.ToChanges().Apply(*current)
	customer, err := uc.schema.Validate(merged)
	if err != nil {
		return nil, err
	}
	customer.ID = current.ID
	customer.RegisteredAt = current.RegisteredAt

	if err := uc.ensureUnique(ctx, customer, current.ID); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, &customer); err != nil {
		return nil, err
	}
	return dto.NewCustomerResponse(&customer), nil
}

// Delete elimina un cliente de forma permanente.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Ping verifica la conexión con el almacén.
func (uc *CustomerUseCase) Ping(ctx context.Context) error {
	return uc.repo.Ping(ctx)
}

// ensureUnique es la consulta previa a la escritura. No es atómica con la escritura:
// el índice único del almacén sigue siendo la garantía final.
func (uc *CustomerUseCase) ensureUnique(ctx context.Context, c entity.Customer, excludeID string) error {
	existing, err := uc.repo.FindByEmailOrTaxID(ctx, c.Email, c.TaxID, excludeID)
	if err != nil {
		return fmt.Errorf("verificar unicidad: %w", err)
	}
	if existing != nil {
		return domain.ErrDuplicate
	}
	return nil
}
