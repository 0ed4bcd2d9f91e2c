package dto

import (
	"time"

	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
)

// CustomerRequest body para POST /customers (sin _id ni dataCadastro).
type CustomerRequest struct {
	Name    string         `json:"nome"`
	Email   string         `json:"email"`
	Phone   string         `json:"telefone"`
	TaxID   string         `json:"cpf"`
	Address AddressRequest `json:"endereco"`
}

// AddressRequest dirección en el body.
type AddressRequest struct {
	Street       string `json:"rua"`
	Number       string `json:"numero"`
	Complement   string `json:"complemento,omitempty"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"estado"`
	PostalCode   string `json:"cep"`
}

// ToEntity convierte el request en un Customer candidato (sin normalizar).
func (r CustomerRequest) ToEntity() entity.Customer {
	return entity.Customer{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		TaxID: r.TaxID,
		Address: entity.Address{
			Street:       r.Address.Street,
			Number:       r.Address.Number,
			Complement:   r.Address.Complement,
			Neighborhood: r.Address.Neighborhood,
			City:         r.Address.City,
			State:        r.Address.State,
			PostalCode:   r.Address.PostalCode,
		},
	}
}

// UpdateCustomerRequest body parcial para PUT /customers/{id}. Campos ausentes no se modifican.
type UpdateCustomerRequest struct {
	Name    *string               `json:"nome"`
	Email   *string               `json:"email"`
	Phone   *string               `json:"telefone"`
	TaxID   *string               `json:"cpf"`
	Address *UpdateAddressRequest `json:"endereco"`
}

// UpdateAddressRequest dirección parcial.
type UpdateAddressRequest struct {
	Street       *string `json:"rua"`
	Number       *string `json:"numero"`
	Complement   *string `json:"complemento"`
	Neighborhood *string `json:"bairro"`
	City         *string `json:"cidade"`
	State        *string `json:"estado"`
	PostalCode   *string `json:"cep"`
}

// ToChanges convierte el request en actualizaciones nombradas.
func (r UpdateCustomerRequest) ToChanges() entity.CustomerChanges {
	ch := entity.CustomerChanges{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		TaxID: r.TaxID,
	}
	if r.Address != nil {
		ch.Address = &entity.AddressChanges{
			Street:       r.Address.Street,
			Number:       r.Address.Number,
			Complement:   r.Address.Complement,
			Neighborhood: r.Address.Neighborhood,
			City:         r.Address.City,
			State:        r.Address.State,
			PostalCode:   r.Address.PostalCode,
		}
	}
	return ch
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID           string          `json:"_id"`
	Name         string          `json:"nome"`
	Email        string          `json:"email"`
	Phone        string          `json:"telefone"`
	TaxID        string          `json:"cpf"`
	Address      AddressResponse `json:"endereco"`
	RegisteredAt time.Time       `json:"dataCadastro"`
}

// AddressResponse dirección en respuestas.
type AddressResponse struct {
	Street       string `json:"rua"`
	Number       string `json:"numero"`
	Complement   string `json:"complemento,omitempty"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"estado"`
	PostalCode   string `json:"cep"`
}

// NewCustomerResponse mapea la entidad a la respuesta.
func NewCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
		TaxID: c.TaxID,
		Address: AddressResponse{
			Street:       c.Address.Street,
			Number:       c.Address.Number,
			Complement:   c.Address.Complement,
			Neighborhood: c.Address.Neighborhood,
			City:         c.Address.City,
			State:        c.Address.State,
			PostalCode:   c.Address.PostalCode,
		},
		RegisteredAt: c.RegisteredAt,
	}
}
