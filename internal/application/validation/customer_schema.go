// Package validation implementa el esquema de validación del cadastro de clientes.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
)

// Mensajes por ruta de campo (formato wire). Se usa un único mensaje por campo sin importar
// qué regla falló.
var messages = map[string]string{
	"nome":            "Nome deve ter pelo menos 3 caracteres",
	"email":           "Email inválido",
	"telefone":        "Telefone inválido",
	"cpf":             "CPF deve ter 11 dígitos",
	"endereco.rua":    "Rua é obrigatória",
	"endereco.numero": "Número é obrigatório",
	"endereco.bairro": "Bairro é obrigatório",
	"endereco.cidade": "Cidade é obrigatória",
	"endereco.estado": "Use a sigla do estado (2 letras)",
	"endereco.cep":    "CEP deve ter 8 dígitos, sem hífen",
}

type customerInput struct {
	Name    string       `json:"nome" validate:"min=3"`
	Email   string       `json:"email" validate:"required,email"`
	Phone   string       `json:"telefone" validate:"min=10"`
	TaxID   string       `json:"cpf" validate:"len=11,number"`
	Address addressInput `json:"endereco"`
}

type addressInput struct {
	Street       string `json:"rua" validate:"min=3"`
	Number       string `json:"numero" validate:"min=1"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro" validate:"min=2"`
	City         string `json:"cidade" validate:"min=2"`
	State        string `json:"estado" validate:"len=2"`
	PostalCode   string `json:"cep" validate:"len=8,number"`
}

// CustomerSchema valida y normaliza clientes. Se construye una vez al arrancar y es seguro
// para uso concurrente.
type CustomerSchema struct {
	v *validator.Validate
}

// NewCustomerSchema construye el esquema.
func NewCustomerSchema() *CustomerSchema {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomerSchema{v: v}
}

// Normalize recorta espacios en todos los campos y pasa el email a minúsculas.
func Normalize(c entity.Customer) entity.Customer {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = cases.Lower(language.Und).String(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.TaxID = strings.TrimSpace(c.TaxID)
	a := &c.Address
	a.Street = strings.TrimSpace(a.Street)
	a.Number = strings.TrimSpace(a.Number)
	a.Complement = strings.TrimSpace(a.Complement)
	a.Neighborhood = strings.TrimSpace(a.Neighborhood)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	return c
}

// Validate normaliza c y comprueba cada campo de forma independiente.
// Devuelve el cliente normalizado o un *domain.ValidationError con todas las violaciones.
func (s *CustomerSchema) Validate(c entity.Customer) (entity.Customer, error) {
	c = Normalize(c)
	in := customerInput{
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
		TaxID: c.TaxID,
		Address: addressInput{
			Street:       c.Address.Street,
			Number:       c.Address.Number,
			Complement:   c.Address.Complement,
			Neighborhood: c.Address.Neighborhood,
			City:         c.Address.City,
			State:        c.Address.State,
			PostalCode:   c.Address.PostalCode,
		},
	}

	err := s.v.Struct(in)
	if err == nil {
		return c, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return entity.Customer{}, err
	}
	verr := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		field := fieldPath(fe.Namespace())
		verr.Violations = append(verr.Violations, domain.FieldViolation{
			Field:   field,
			Message: message(field),
		})
	}
	return entity.Customer{}, verr
}

// fieldPath quita el nombre del struct raíz: "customerInput.endereco.rua" -> "endereco.rua".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(field string) string {
	if m, ok := messages[field]; ok {
		return m
	}
	return "Valor inválido"
}
