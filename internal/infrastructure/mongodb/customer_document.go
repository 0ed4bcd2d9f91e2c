package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
)

// Nombres de campo en la colección.
const (
	fieldID           = "_id"
	fieldEmail        = "email"
	fieldTaxID        = "cpf"
	fieldRegisteredAt = "dataCadastro"
)

// customerDocument documento guardado en la colección "clientes".
type customerDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"nome"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"telefone"`
	TaxID        string             `bson:"cpf"`
	Address      addressDocument    `bson:"endereco"`
	RegisteredAt time.Time          `bson:"dataCadastro"`
}

type addressDocument struct {
	Street       string `bson:"rua"`
	Number       string `bson:"numero"`
	Complement   string `bson:"complemento,omitempty"`
	Neighborhood string `bson:"bairro"`
	City         string `bson:"cidade"`
	State        string `bson:"estado"`
	PostalCode   string `bson:"cep"`
}

// mutableFields son los campos que Update reescribe. dataCadastro no está.
type mutableFields struct {
	Name    string          `bson:"nome"`
	Email   string          `bson:"email"`
	Phone   string          `bson:"telefone"`
	TaxID   string          `bson:"cpf"`
	Address addressDocument `bson:"endereco"`
}

func toDocument(c *entity.Customer) customerDocument {
	return customerDocument{
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		TaxID:        c.TaxID,
		Address:      toAddressDocument(c.Address),
		RegisteredAt: c.RegisteredAt,
	}
}

func toMutableFields(c *entity.Customer) mutableFields {
	return mutableFields{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		TaxID:   c.TaxID,
		Address: toAddressDocument(c.Address),
	}
}

func toAddressDocument(a entity.Address) addressDocument {
	return addressDocument{
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
	}
}

func (d customerDocument) toEntity() *entity.Customer {
	return &entity.Customer{
		ID:    d.ID.Hex(),
		Name:  d.Name,
		Email: d.Email,
		Phone: d.Phone,
		TaxID: d.TaxID,
		Address: entity.Address{
			Street:       d.Address.Street,
			Number:       d.Address.Number,
			Complement:   d.Address.Complement,
			Neighborhood: d.Address.Neighborhood,
			City:         d.Address.City,
			State:        d.Address.State,
			PostalCode:   d.Address.PostalCode,
		},
		RegisteredAt: d.RegisteredAt.UTC(),
	}
}
