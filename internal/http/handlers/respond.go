package handlers

import (
	"github.com/gofiber/fiber/v2"

	"threadline/internal/domain"
	applog "threadline/internal/log"
)

func ok(c *fiber.Ctx, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["ok"] = true
	return c.JSON(data)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "error": msg})
}

// fail maps an error onto the API contract: business errors become
// 400s with their message, everything else a generic 500 so storage
// internals never leak. Settlement is all-or-nothing, so a 500 is
// safe to retry.
func fail(c *fiber.Ctx, action string, err error) error {
	if domain.IsBusinessErr(err) {
		applog.Security(c, action, map[string]any{"error": err.Error()})
		return badRequest(c, err.Error())
	}
	applog.Error(c, action, err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"ok": false, "error": "something went wrong, please retry",
	})
}
