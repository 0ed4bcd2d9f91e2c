package entity

// CustomerChanges conjunto de actualizaciones nombradas sobre un Customer existente.
// Un campo nil no se modifica.
type CustomerChanges struct {
	Name    *string
	Email   *string
	Phone   *string
	TaxID   *string
	Address *AddressChanges
}

// AddressChanges actualizaciones campo a campo de la dirección.
type AddressChanges struct {
	Street       *string
	Number       *string
	Complement   *string
	Neighborhood *string
	City         *string
	State        *string
	PostalCode   *string
}

// Apply devuelve una copia de current con los cambios aplicados.
// ID y RegisteredAt nunca se tocan.
func (ch CustomerChanges) Apply(current Customer) Customer {
	next := current
	set(&next.Name, ch.Name)
	set(&next.Email, ch.Email)
	set(&next.Phone, ch.Phone)
	set(&next.TaxID, ch.TaxID)
	if ch.Address != nil {
		next.Address = ch.Address.Apply(current.Address)
	}
	return next
}

// Apply devuelve una copia de current con los cambios de dirección aplicados.
func (ch AddressChanges) Apply(current Address) Address {
	next := current
	set(&next.Street, ch.Street)
	set(&next.Number, ch.Number)
	set(&next.Complement, ch.Complement)
	set(&next.Neighborhood, ch.Neighborhood)
	set(&next.City, ch.City)
	set(&next.State, ch.State)
	set(&next.PostalCode, ch.PostalCode)
	return next
}

// IsEmpty indica que no hay ningún cambio.
func (ch CustomerChanges) IsEmpty() bool {
	return ch.Name == nil && ch.Email == nil && ch.Phone == nil && ch.TaxID == nil && ch.Address == nil
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
