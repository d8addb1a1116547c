package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "threadline/internal/log"
	"threadline/internal/services"
	"threadline/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

type placeOrderReq struct {
	PaymentRef string `json:"paymentRef"`
}

// POST /api/v1/orders settles the caller's cart into a paid order.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req placeOrderReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid json")
		}
	}

	order, items, err := h.Order.PlaceFromCart(ownerID(c), req.PaymentRef)
	if err != nil {
		return fail(c, "order.place.fail", err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": order.ID, "total": order.Total, "items": len(items),
	})
	return ok(c, fiber.Map{"order": order, "items": items})
}

// GET /api/v1/orders/:id is visible to the owner or an admin only.
func (h *OrderHandler) View(c *fiber.Ctx) error {
	oid, okID := validate.ID(c.Params("id"))
	if !okID {
		return badRequest(c, "invalid order id")
	}
	order, items, err := h.Order.Get(oid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "order not found"})
	}
	u := currentUser(c)
	if order.OwnerID != u.ID && u.Role != "ADMIN" {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "order not found"})
	}
	return ok(c, fiber.Map{"order": order, "items": items})
}

// GET /api/v1/orders
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Order.History(ownerID(c))
	if err != nil {
		return fail(c, "order.history.fail", err)
	}
	return ok(c, fiber.Map{"orders": orders})
}
