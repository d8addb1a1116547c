package handlers

import (
	"github.com/gofiber/fiber/v2"

	"threadline/internal/domain"
	applog "threadline/internal/log"
	"threadline/internal/repos"
	"threadline/internal/validate"
)

type AdminHandler struct {
	Inv    *repos.InventoryRepo
	Orders *repos.OrderRepo
}

// GET /api/v1/admin/inventory
func (h *AdminHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.Inv.ListAll()
	if err != nil {
		return fail(c, "admin.inventory.list.fail", err)
	}
	return ok(c, fiber.Map{"inventory": rows})
}

type upsertQtyReq struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Qty       int    `json:"qty"`
}

// POST /api/v1/admin/inventory
func (h *AdminHandler) UpsertInventory(c *fiber.Ctx) error {
	var req upsertQtyReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	pid, okID := validate.ID(req.ProductID)
	size, okSize := validate.Size(req.Size)
	if !okID || !okSize || req.Qty < 0 {
		return badRequest(c, "invalid input")
	}
	if err := h.Inv.UpsertQty(pid, size, req.Qty); err != nil {
		return fail(c, "admin.inventory.save.fail", err)
	}
	applog.Audit(c, "admin.inventory.save", map[string]any{"product": pid, "size": size, "qty": req.Qty})
	return ok(c, nil)
}

// GET /api/v1/admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.ListLatest(100)
	if err != nil {
		return fail(c, "admin.orders.list.fail", err)
	}
	return ok(c, fiber.Map{"orders": ords})
}

type statusReq struct {
	Status string `json:"status"`
}

// POST /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return badRequest(c, "invalid order id")
	}
	var req statusReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid json")
	}
	if !domain.ValidOrderStatus(req.Status) {
		return badRequest(c, "invalid status")
	}
	if err := h.Orders.UpdateStatus(id, domain.OrderStatus(req.Status)); err != nil {
		return fail(c, "admin.orders.update.fail", err)
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": req.Status})
	return ok(c, nil)
}
