package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "threadline/internal/log"
	"threadline/internal/services"
	"threadline/internal/validate"
)

type ReservationHandler struct {
	Res *services.ReservationService
}

type reserveReq struct {
	ProductID  string `json:"productId"`
	Size       string `json:"size"`
	Quantity   int    `json:"quantity"`
	TTLMinutes int    `json:"ttlMinutes"`
}

// POST /api/v1/reservations
func (h *ReservationHandler) Reserve(c *fiber.Ctx) error {
	var req reserveReq
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

	ttl := time.Duration(validate.TTLMinutes(req.TTLMinutes)) * time.Minute
	res, err := h.Res.Reserve(ownerID(c), pid, size, validate.Qty(req.Quantity), ttl)
	if err != nil {
		return fail(c, "reservation.create.fail", err)
	}
	applog.Audit(c, "reservation.create", map[string]any{
		"reservation_id": res.ID, "product": res.ProductID, "size": res.Size, "qty": res.Qty,
	})
	return ok(c, fiber.Map{"reservation": res})
}

type releaseReq struct {
	ProductID string  `json:"productId"`
	Size      *string `json:"size"` // pointer: "" is a real size key, absence means "any"
}

// DELETE /api/v1/reservations
func (h *ReservationHandler) Release(c *fiber.Ctx) error {
	var req releaseReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid json")
		}
	}
	if req.ProductID != "" {
		if _, okID := validate.ID(req.ProductID); !okID {
			return badRequest(c, "invalid productId")
		}
	}
	if err := h.Res.Release(ownerID(c), req.ProductID, req.Size); err != nil {
		return fail(c, "reservation.release.fail", err)
	}
	applog.Audit(c, "reservation.release", map[string]any{"product": req.ProductID})
	return ok(c, nil)
}

// GET /api/v1/reservations
func (h *ReservationHandler) List(c *fiber.Ctx) error {
	live, err := h.Res.ListLive(ownerID(c))
	if err != nil {
		return fail(c, "reservation.list.fail", err)
	}
	return ok(c, fiber.Map{"reservations": live})
}

// POST /api/v1/reservations/confirm
func (h *ReservationHandler) Confirm(c *fiber.Ctx) error {
	confirmed, err := h.Res.Confirm(ownerID(c))
	if err != nil {
		return fail(c, "reservation.confirm.fail", err)
	}
	applog.Audit(c, "reservation.confirm", map[string]any{"count": len(confirmed)})
	return ok(c, fiber.Map{"confirmed": confirmed})
}
