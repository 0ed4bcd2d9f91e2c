package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger almacén con verificación de conexión.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler GET /health.
type HealthHandler struct {
	store   Pinger
	service string
	driver  string
}

// NewHealthHandler construye el handler; driver es el STORE_DRIVER activo.
func NewHealthHandler(store Pinger, service, driver string) *HealthHandler {
	return &HealthHandler{store: store, service: service, driver: driver}
}

// Check godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	body := fiber.Map{"status": "ok", "service": h.service, "store": h.driver}
	if err := h.store.Ping(ctx); err != nil {
		body["status"] = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(body)
	}
	return c.JSON(body)
}
