package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/cadastro-clientes/internal/application/dto"
	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
)

type listView struct {
	Customers []*dto.CustomerResponse
}

type customerView struct {
	Customer *dto.CustomerResponse
}

type formView struct {
	Title  string
	Action string
	Submit string
	Form   dto.CustomerRequest
	Errors map[string]string
	Error  string
}

type messageView struct {
	Title   string
	Message string
}

// ViewHandler páginas HTML del cadastro (lista, detalle, formularios, confirmación).
type ViewHandler struct {
	uc    *usecase.CustomerUseCase
	views *Renderer
	log   *logger.Logger
}

// NewViewHandler construye el handler.
func NewViewHandler(uc *usecase.CustomerUseCase, views *Renderer, log *logger.Logger) *ViewHandler {
	return &ViewHandler{uc: uc, views: views, log: log}
}

// Home GET /
func (h *ViewHandler) Home(c *fiber.Ctx) error {
	return h.views.Render(c, fiber.StatusOK, pageHome, nil)
}

// List GET /clientes
func (h *ViewHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		h.storeFailure(c, "list", err)
		return h.message(c, fiber.StatusInternalServerError, msgListFailed, "")
	}
	return h.views.Render(c, fiber.StatusOK, pageList, listView{Customers: list})
}

// Detail GET /clientes/:id
func (h *ViewHandler) Detail(c *fiber.Ctx) error {
	return h.withCustomer(c, "detail", func(out *dto.CustomerResponse) error {
		return h.views.Render(c, fiber.StatusOK, pageDetail, customerView{Customer: out})
	})
}

// NewForm GET /clientes/cadastro
func (h *ViewHandler) NewForm(c *fiber.Ctx) error {
	return h.views.Render(c, fiber.StatusOK, pageForm, createForm(dto.CustomerRequest{}))
}

// Create POST /clientes/cadastro
func (h *ViewHandler) Create(c *fiber.Ctx) error {
	in := readForm(c)
	if _, err := h.uc.Create(c.UserContext(), in); err != nil {
		view := createForm(in)
		return h.formFailure(c, "create", view, err, msgCreateConflict, msgCreateFailed)
	}
	return c.Redirect("/clientes", fiber.StatusSeeOther)
}

// EditForm GET /clientes/:id/editar
func (h *ViewHandler) EditForm(c *fiber.Ctx) error {
	return h.withCustomer(c, "edit", func(out *dto.CustomerResponse) error {
		return h.views.Render(c, fiber.StatusOK, pageForm, editForm(out.ID, requestFrom(out)))
	})
}

// Update POST /clientes/:id/editar
func (h *ViewHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	in := readForm(c)
	if _, err := h.uc.Update(c.UserContext(), id, fullUpdate(in)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.message(c, fiber.StatusNotFound, msgNotFound, "")
		}
		return h.formFailure(c, "update", editForm(id, in), err, msgUpdateConflict, msgUpdateFailed)
	}
	return c.Redirect("/clientes", fiber.StatusSeeOther)
}

// ConfirmDelete GET /clientes/:id/remover
func (h *ViewHandler) ConfirmDelete(c *fiber.Ctx) error {
	return h.withCustomer(c, "confirm", func(out *dto.CustomerResponse) error {
		return h.views.Render(c, fiber.StatusOK, pageConfirm, customerView{Customer: out})
	})
}

// Delete POST /clientes/:id/remover
func (h *ViewHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.message(c, fiber.StatusNotFound, msgNotFound, "")
		}
		h.storeFailure(c, "delete", err)
		return h.message(c, fiber.StatusInternalServerError, msgDeleteFailed, "")
	}
	return c.Redirect("/clientes", fiber.StatusSeeOther)
}

// withCustomer carga el cliente del path o responde con la página de no encontrado.
func (h *ViewHandler) withCustomer(c *fiber.Ctx, op string, fn func(*dto.CustomerResponse) error) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return h.message(c, fiber.StatusNotFound, msgNotFound, "")
		}
		h.storeFailure(c, op, err)
		return h.message(c, fiber.StatusInternalServerError, msgGetFailed, "")
	}
	return fn(out)
}

// formFailure vuelve a mostrar el formulario con los valores enviados y el error correspondiente.
func (h *ViewHandler) formFailure(c *fiber.Ctx, op string, view formView, err error, conflictMsg, failedMsg string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		view.Errors = verr.Fields()
		view.Error = msgInvalidData
		return h.views.Render(c, fiber.StatusBadRequest, pageForm, view)
	case errors.Is(err, domain.ErrDuplicate):
		view.Error = conflictMsg
		return h.views.Render(c, fiber.StatusBadRequest, pageForm, view)
	}
	h.storeFailure(c, op, err)
	view.Error = failedMsg
	return h.views.Render(c, fiber.StatusInternalServerError, pageForm, view)
}

func (h *ViewHandler) message(c *fiber.Ctx, status int, title, msg string) error {
	return h.views.Render(c, status, pageMessage, messageView{Title: title, Message: msg})
}

func (h *ViewHandler) storeFailure(c *fiber.Ctx, op string, err error) {
	h.log.Error().
		Err(err).
		Str("op", op).
		Str("id", c.Params("id")).
		Str("request_id", requestID(c)).
		Msg("vista de clientes fallida")
}

func createForm(in dto.CustomerRequest) formView {
	return formView{Title: "Cadastrar Novo Cliente", Action: "/clientes/cadastro", Submit: "Cadastrar", Form: in}
}

func editForm(id string, in dto.CustomerRequest) formView {
	return formView{Title: "Editar Cliente", Action: "/clientes/" + id + "/editar", Submit: "Atualizar", Form: in}
}

// readForm lee el formulario urlencoded; las claves del endereço usan notación con punto.
// FormValue apunta al buffer de fasthttp, que se reutiliza entre peticiones: cada valor se copia.
func readForm(c *fiber.Ctx) dto.CustomerRequest {
	field := func(key string) string { return utils.CopyString(c.FormValue(key)) }
	return dto.CustomerRequest{
		Name:  field("nome"),
		Email: field("email"),
		Phone: field("telefone"),
		TaxID: field("cpf"),
		Address: dto.AddressRequest{
			Street:       field("endereco.rua"),
			Number:       field("endereco.numero"),
			Complement:   field("endereco.complemento"),
			Neighborhood: field("endereco.bairro"),
			City:         field("endereco.cidade"),
			State:        field("endereco.estado"),
			PostalCode:   field("endereco.cep"),
		},
	}
}

// fullUpdate el formulario de edición siempre envía el registro completo.
func fullUpdate(in dto.CustomerRequest) dto.UpdateCustomerRequest {
	a := in.Address
	return dto.UpdateCustomerRequest{
		Name:  &in.Name,
		Email: &in.Email,
		Phone: &in.Phone,
		TaxID: &in.TaxID,
		Address: &dto.UpdateAddressRequest{
			Street:       &a.Street,
			Number:       &a.Number,
			Complement:   &a.Complement,
			Neighborhood: &a.Neighborhood,
			City:         &a.City,
			State:        &a.State,
			PostalCode:   &a.PostalCode,
		},
	}
}

func requestFrom(out *dto.CustomerResponse) dto.CustomerRequest {
	return dto.CustomerRequest{
		Name:  out.Name,
		Email: out.Email,
		Phone: out.Phone,
		TaxID: out.TaxID,
		Address: dto.AddressRequest{
			Street:       out.Address.Street,
			Number:       out.Address.Number,
			Complement:   out.Address.Complement,
			Neighborhood: out.Address.Neighborhood,
			City:         out.Address.City,
			State:        out.Address.State,
			PostalCode:   out.Address.PostalCode,
		},
	}
}
