package handlers

import (
	"github.com/gofiber/fiber/v2"

	"threadline/internal/services"
	"threadline/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartLineReq struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// POST /api/v1/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req cartLineReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	pid, okID := validate.ID(req.ProductID)
	if !okID {
		return badRequest(c, "invalid productId")
	}
	size, okSize := validate.Size(req.Size)
	if !okSize {
		return badRequest(c, "invalid size")
	}
	if err := h.Cart.Add(ownerID(c), pid, size, validate.Qty(req.Quantity)); err != nil {
		return fail(c, "cart.add.fail", err)
	}
	return ok(c, nil)
}

// POST /api/v1/cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	var req cartLineReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	pid, okID := validate.ID(req.ProductID)
	if !okID {
		return badRequest(c, "invalid productId")
	}
	size, okSize := validate.Size(req.Size)
	if !okSize {
		return badRequest(c, "invalid size")
	}
	if err := h.Cart.Remove(ownerID(c), pid, size); err != nil {
		return fail(c, "cart.remove.fail", err)
	}
	return ok(c, nil)
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(ownerID(c)); err != nil {
		return fail(c, "cart.clear.fail", err)
	}
	return ok(c, nil)
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ownerID(c))
	if err != nil {
		return fail(c, "cart.view.fail", err)
	}
	return ok(c, fiber.Map{"cart": cv})
}
