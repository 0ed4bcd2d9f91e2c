package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cadastro-clientes/internal/application/dto"
	"github.com/jhoicas/cadastro-clientes/internal/infrastructure/pdf"
)

func TestGenerateCustomerSheet(t *testing.T) {
	gen := pdf.NewMarotoSheetGenerator(time.UTC)
	c := &dto.CustomerResponse{
		ID: "abc", Name: "Ana Silva", Email: "ana@x.com", Phone: "11999999999", TaxID: "12345678901",
		Address: dto.AddressResponse{
			Street: "Rua A", Number: "10", Complement: "apto 2", Neighborhood: "Centro",
			City: "São Paulo", State: "SP", PostalCode: "01000000",
		},
		RegisteredAt: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
	}

	out, err := gen.GenerateCustomerSheet(context.Background(), c)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un documento PDF")
}
