package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"threadline/internal/services"
	"threadline/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "product not found"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"ok": false, "error": "product not found"})
	}
	return ok(c, fiber.Map{"product": p})
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	products, err := h.Catalog.ListProducts(page, 20)
	if err != nil {
		return fail(c, "products.list.fail", err)
	}
	return ok(c, fiber.Map{"products": products})
}
