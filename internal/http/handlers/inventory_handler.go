package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"threadline/internal/services"
	"threadline/internal/validate"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// GET /api/v1/availability?productId=&size=
// Reports sellable quantity: raw stock minus live holds.
func (h *InventoryHandler) Check(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if _, okID := validate.ID(productID); !okID {
		return badRequest(c, "missing or invalid productId")
	}
	size, okSize := validate.Size(c.Query("size"))
	if !okSize {
		return badRequest(c, "invalid size")
	}

	avail, err := h.Inv.CheckAvailability(productID, size)
	if err != nil {
		return fail(c, "availability.check.fail", err)
	}
	return ok(c, fiber.Map{"availability": avail})
}
