package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cadastro-clientes/internal/application/dto"
	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
	"github.com/jhoicas/cadastro-clientes/internal/application/validation"
	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
	"github.com/jhoicas/cadastro-clientes/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func anaRequest() dto.CustomerRequest {
	return dto.CustomerRequest{
		Name:  "Ana Silva",
		Email: "ana@x.com",
		Phone: "11999999999",
		TaxID: "12345678901",
		Address: dto.AddressRequest{
			Street: "Rua A", Number: "10", Neighborhood: "Centro",
			City: "SP", State: "SP", PostalCode: "01000000",
		},
	}
}

func newUseCase() (*usecase.CustomerUseCase, *memory.CustomerRepo) {
	repo := memory.NewCustomerRepository()
	return usecase.NewCustomerUseCase(repo, validation.NewCustomerSchema()), repo
}

func strPtr(s string) *string { return &s }

// failingRepo simula un almacén caído.
type failingRepo struct{ err error }

func (f failingRepo) FindAll(context.Context) ([]*entity.Customer, error) { return nil, f.err }
func (f failingRepo) FindByID(context.Context, string) (*entity.Customer, error) {
	return nil, f.err
}
func (f failingRepo) FindByEmailOrTaxID(context.Context, string, string, string) (*entity.Customer, error) {
	return nil, f.err
}
func (f failingRepo) Create(context.Context, *entity.Customer) error { return f.err }
func (f failingRepo) Update(context.Context, *entity.Customer) error { return f.err }
func (f failingRepo) Delete(context.Context, string) error           { return f.err }
func (f failingRepo) Ping(context.Context) error                     { return f.err }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Valido(t *testing.T) {
	uc, repo := newUseCase()
	before := time.Now().UTC()

	out, err := uc.Create(context.Background(), anaRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Ana Silva", out.Name)
	assert.Equal(t, "12345678901", out.TaxID)
	assert.Equal(t, "01000000", out.Address.PostalCode)
	assert.False(t, out.RegisteredAt.Before(before), "dataCadastro debe ser la hora de creación")
	assert.Equal(t, 1, repo.Len())
}

func TestCreate_NomeCurto(t *testing.T) {
	uc, repo := newUseCase()
	in := anaRequest()
	in.Name = "Al"

	_, err := uc.Create(context.Background(), in)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("nome"))
	assert.Equal(t, 0, repo.Len())
}

func TestCreate_EmailDuplicadoSinDistinguirMayusculas(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, anaRequest())
	require.NoError(t, err)

	second := anaRequest()
	second.Email = "ANA@X.COM"
	second.TaxID = "99999999999"
	_, err = uc.Create(ctx, second)

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 1, repo.Len())
}

func TestCreate_CPFDuplicado(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, anaRequest())
	require.NoError(t, err)

	second := anaRequest()
	second.Email = "outra@x.com"
	_, err = uc.Create(ctx, second)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_ConcurrenteMismoEmail(t *testing.T) {
	uc, repo := newUseCase()
	const n = 8

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := anaRequest()
			in.TaxID = []string{
				"10000000001", "10000000002", "10000000003", "10000000004",
				"10000000005", "10000000006", "10000000007", "10000000008",
			}[i]
			_, errs[i] = uc.Create(context.Background(), in)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrDuplicate)
	}
	assert.Equal(t, 1, ok, "exactamente una creación debe tener éxito")
	assert.Equal(t, 1, repo.Len())
}

func TestCreate_FallaDelAlmacen(t *testing.T) {
	boom := errors.New("conexión rechazada")
	uc := usecase.NewCustomerUseCase(failingRepo{err: boom}, validation.NewCustomerSchema())

	_, err := uc.Create(context.Background(), anaRequest())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_MismosEmailYCPF(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, anaRequest())
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateCustomerRequest{
		Name:  strPtr("Ana Souza"),
		Email: strPtr(created.Email),
		TaxID: strPtr(created.TaxID),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", out.Name)
	assert.Equal(t, created.ID, out.ID)
	assert.True(t, created.RegisteredAt.Equal(out.RegisteredAt), "dataCadastro no cambia")
}

func TestUpdate_ParcialCombinaDireccion(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, anaRequest())
	require.NoError(t, err)

	out, err := uc.Update(ctx, created.ID, dto.UpdateCustomerRequest{
		Address: &dto.UpdateAddressRequest{City: strPtr("Campinas"), Complement: strPtr("casa 2")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Campinas", out.Address.City)
	assert.Equal(t, "casa 2", out.Address.Complement)
	assert.Equal(t, "Rua A", out.Address.Street, "los campos no enviados se conservan")
	assert.Equal(t, "Ana Silva", out.Name)
}

func TestUpdate_ValidaElResultadoCompleto(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, anaRequest())
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, dto.UpdateCustomerRequest{Name: strPtr("Al")})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"nome"}, keys(verr.Fields()))

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", got.Name, "un update inválido no modifica el registro")
}

func TestUpdate_ColisionConOtroCliente(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, anaRequest())
	require.NoError(t, err)

	other := anaRequest()
	other.Email = "bia@x.com"
	other.TaxID = "22222222222"
	bia, err := uc.Create(ctx, other)
	require.NoError(t, err)

	_, err = uc.Update(ctx, bia.ID, dto.UpdateCustomerRequest{Email: strPtr("Ana@x.com")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUpdate_NoExiste(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Update(context.Background(), "nao-existe", dto.UpdateCustomerRequest{Name: strPtr("Ana Souza")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / Get / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestList_VacioNoEsNil(t *testing.T) {
	uc, _ := newUseCase()

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDelete_NoExisteNoModifica(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, anaRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, "nao-existe"), domain.ErrNotFound)
	assert.Equal(t, 1, repo.Len())
}

func TestDelete_Existente(t *testing.T) {
	uc, repo := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, anaRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.Equal(t, 0, repo.Len())
	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ficha PDF
// ──────────────────────────────────────────────────────────────────────────────

type stubSheet struct{ got *dto.CustomerResponse }

func (s *stubSheet) GenerateCustomerSheet(_ context.Context, c *dto.CustomerResponse) ([]byte, error) {
	s.got = c
	return []byte("%PDF-stub"), nil
}

func TestSheet_Generate(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	created, err := uc.Create(ctx, anaRequest())
	require.NoError(t, err)

	gen := &stubSheet{}
	sheet := usecase.NewCustomerSheetUseCase(uc, gen)

	out, err := sheet.Generate(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), out)
	assert.Equal(t, created.ID, gen.got.ID)

	_, err = sheet.Generate(ctx, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
