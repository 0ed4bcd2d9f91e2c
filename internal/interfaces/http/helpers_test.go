package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
	"github.com/jhoicas/cadastro-clientes/internal/application/validation"
	"github.com/jhoicas/cadastro-clientes/internal/domain/entity"
	"github.com/jhoicas/cadastro-clientes/internal/domain/repository"
	"github.com/jhoicas/cadastro-clientes/internal/infrastructure/memory"
	"github.com/jhoicas/cadastro-clientes/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/cadastro-clientes/internal/interfaces/http"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const anaJSON = `{
  "nome": "Ana Silva",
  "email": "ana@x.com",
  "telefone": "11999999999",
  "cpf": "12345678901",
  "endereco": {"rua": "Rua A", "numero": "10", "bairro": "Centro", "cidade": "SP", "estado": "SP", "cep": "01000000"}
}`

// fixedClock fecha de cadastro determinista para las vistas.
var fixedClock = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

// buildTestApp arma la aplicación completa sobre el repositorio dado:
// config de servidor, requestid, log de peticiones y todas las rutas.
func buildTestApp(t *testing.T, repo repository.CustomerRepository) *fiber.App {
	t.Helper()
	uc := usecase.NewCustomerUseCase(repo, validation.NewCustomerSchema())
	sheets := usecase.NewCustomerSheetUseCase(uc, pdf.NewMarotoSheetGenerator(time.UTC))
	views, err := apphttp.NewRenderer(time.UTC)
	require.NoError(t, err, "las plantillas embebidas deben parsear")

	app := fiber.New(apphttp.ServerConfig("cadastro-clientes-test"))
	app.Use(requestid.New())
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		CustomerUC:    uc,
		CustomerSheet: sheets,
		Views:         views,
		Logger:        logger.Nop(),
		ServiceName:   "cadastro-clientes-test",
		StoreDriver:   "memory",
	})
	return app
}

func newMemoryApp(t *testing.T) (*fiber.App, *memory.CustomerRepo) {
	t.Helper()
	repo := memory.NewCustomerRepository().WithClock(fixedClock)
	return buildTestApp(t, repo), repo
}

// doJSON lanza una petición con body JSON (vacío si body == "").
func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// doForm envía un formulario urlencoded como lo haría el navegador.
func doForm(t *testing.T, app *fiber.App, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err := io.Copy(&buf, resp.Body)
	require.NoError(t, err)
	return buf.String()
}

// createAna crea el cliente de ejemplo por la API y devuelve su _id.
func createAna(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/customers", anaJSON)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var out map[string]interface{}
	decode(t, resp, &out)
	id, _ := out["_id"].(string)
	require.NotEmpty(t, id)
	return id
}

func anaForm() url.Values {
	return url.Values{
		"nome":                 {"Ana Silva"},
		"email":                {"ana@x.com"},
		"telefone":             {"11999999999"},
		"cpf":                  {"12345678901"},
		"endereco.rua":         {"Rua A"},
		"endereco.numero":      {"10"},
		"endereco.complemento": {""},
		"endereco.bairro":      {"Centro"},
		"endereco.cidade":      {"SP"},
		"endereco.estado":      {"SP"},
		"endereco.cep":         {"01000000"},
	}
}

// brokenRepo simula un almacén que falla en todas las operaciones.
type brokenRepo struct{ err error }

func (b brokenRepo) FindAll(context.Context) ([]*entity.Customer, error) { return nil, b.err }
func (b brokenRepo) FindByID(context.Context, string) (*entity.Customer, error) {
	return nil, b.err
}
func (b brokenRepo) FindByEmailOrTaxID(context.Context, string, string, string) (*entity.Customer, error) {
	return nil, b.err
}
func (b brokenRepo) Create(context.Context, *entity.Customer) error { return b.err }
func (b brokenRepo) Update(context.Context, *entity.Customer) error { return b.err }
func (b brokenRepo) Delete(context.Context, string) error           { return b.err }
func (b brokenRepo) Ping(context.Context) error                     { return b.err }
