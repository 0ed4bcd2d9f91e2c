package usecase

import (
	"context"

	"github.com/jhoicas/cadastro-clientes/internal/application/dto"
)

// CustomerSheetGenerator puerto para generar la ficha cadastral en PDF.
type CustomerSheetGenerator interface {
	GenerateCustomerSheet(ctx context.Context, c *dto.CustomerResponse) ([]byte, error)
}

// CustomerSheetUseCase obtiene el cliente y genera su ficha.
type CustomerSheetUseCase struct {
	customers *CustomerUseCase
	gen       CustomerSheetGenerator
}

// NewCustomerSheetUseCase construye el caso de uso.
func NewCustomerSheetUseCase(customers *CustomerUseCase, gen CustomerSheetGenerator) *CustomerSheetUseCase {
	return &CustomerSheetUseCase{customers: customers, gen: gen}
}

// Generate devuelve los bytes del PDF; domain.ErrNotFound si el cliente no existe.
func (uc *CustomerSheetUseCase) Generate(ctx context.Context, id string) ([]byte, error) {
	c, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.gen.GenerateCustomerSheet(ctx, c)
}
