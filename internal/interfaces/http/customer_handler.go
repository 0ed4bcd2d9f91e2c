package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cadastro-clientes/internal/application/dto"
	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
	"github.com/jhoicas/cadastro-clientes/internal/domain"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
)

// Mensajes de la API JSON (portugués, visibles al cliente).
const (
	msgInvalidBody     = "Corpo da requisição inválido"
	msgInvalidData     = "Dados inválidos"
	msgNotFound        = "Cliente não encontrado"
	msgCreateConflict  = "Já existe um cliente com este email ou CPF"
	msgUpdateConflict  = "Email ou CPF já cadastrado para outro cliente"
	msgListFailed      = "Erro ao buscar clientes"
	msgGetFailed       = "Erro ao buscar cliente"
	msgCreateFailed    = "Erro ao criar cliente"
	msgUpdateFailed    = "Erro ao atualizar cliente"
	msgDeleteFailed    = "Erro ao remover cliente"
	msgDeleted         = "Cliente removido com sucesso"
	msgSheetFailed     = "Erro ao gerar ficha do cliente"
	msgInternalFailure = "Erro interno do servidor"
)

// CustomerHandler maneja las peticiones HTTP JSON de clientes.
type CustomerHandler struct {
	uc     *usecase.CustomerUseCase
	sheets *usecase.CustomerSheetUseCase
	log    *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, sheets *usecase.CustomerSheetUseCase, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, sheets: sheets, log: log}
}

// List godoc
// @Summary      Listar clientes
// @Description  Devuelve todos los clientes, más recientes primero.
// @Tags         customers
// @Produce      json
// @Success      200  {array}   dto.CustomerResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		h.storeFailure(c, "list", err)
		return fail(c, fiber.StatusInternalServerError, msgListFailed)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, msgNotFound)
		}
		h.storeFailure(c, "get", err)
		return fail(c, fiber.StatusInternalServerError, msgGetFailed)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		if resp, ok := validationResponse(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return fail(c, fiber.StatusBadRequest, msgCreateConflict)
		}
		h.storeFailure(c, "create", err)
		return fail(c, fiber.StatusInternalServerError, msgCreateFailed)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Description  Aplica los campos presentes sobre el registro guardado y valida el resultado completo.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del cliente"
// @Param        body  body      dto.UpdateCustomerRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		if resp, ok := validationResponse(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		}
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return fail(c, fiber.StatusNotFound, msgNotFound)
		case errors.Is(err, domain.ErrDuplicate):
			return fail(c, fiber.StatusBadRequest, msgUpdateConflict)
		}
		h.storeFailure(c, "update", err)
		return fail(c, fiber.StatusInternalServerError, msgUpdateFailed)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, msgNotFound)
		}
		h.storeFailure(c, "delete", err)
		return fail(c, fiber.StatusInternalServerError, msgDeleteFailed)
	}
	return c.JSON(dto.MessageResponse{Message: msgDeleted})
}

// Sheet godoc
// @Summary      Ficha del cliente en PDF
// @Tags         customers
// @Produce      application/pdf
// @Param        id   path      string  true  "ID del cliente"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /customers/{id}/pdf [get]
func (h *CustomerHandler) Sheet(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.sheets.Generate(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fail(c, fiber.StatusNotFound, msgNotFound)
		}
		h.storeFailure(c, "sheet", err)
		return fail(c, fiber.StatusInternalServerError, msgSheetFailed)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="cliente-%s.pdf"`, id))
	return c.Send(pdf)
}

func (h *CustomerHandler) storeFailure(c *fiber.Ctx, op string, err error) {
	h.log.Error().
		Err(err).
		Str("op", op).
		Str("id", c.Params("id")).
		Str("request_id", requestID(c)).
		Msg("operación de clientes fallida")
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}

// validationResponse arma el 400 con el detalle por campo si err es de validación.
func validationResponse(err error) (dto.ErrorResponse, bool) {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return dto.ErrorResponse{}, false
	}
	return dto.ErrorResponse{Error: msgInvalidData, Details: verr.Fields()}, true
}
