package entity

import "time"

// Customer representa un cliente registrado (cadastro de clientes).
type Customer struct {
	ID           string
	Name         string
	Email        string // siempre en minúsculas
	Phone        string
	TaxID        string // CPF, 11 dígitos
	Address      Address
	RegisteredAt time.Time // se asigna al crear y no cambia nunca
}

// Address dirección embebida del cliente. Complement es el único campo opcional.
type Address struct {
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string // sigla UF, 2 letras
	PostalCode   string // CEP, 8 dígitos
}
