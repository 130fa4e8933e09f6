package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Legacy response bodies, kept byte-compatible with existing clients.
const (
	msgUserNotFound = "Could not find user"
	msgNoUsers      = "No users"
)

// Options controls how handlers encode absence and invalid input.
type Options struct {
	// LegacyResponses reproduces the historical wire format: plain text with
	// status 200 for unknown users and empty user lists, and status 500 for
	// invalid input.
	LegacyResponses bool
}

func (o Options) userNotFound(c *fiber.Ctx) error {
	if o.LegacyResponses {
		return c.SendString(msgUserNotFound)
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": msgUserNotFound,
	})
}

func (o Options) invalidInput(c *fiber.Ctx, legacyMessage string, details map[string]string) error {
	if o.LegacyResponses {
		return serverError(c, legacyMessage)
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "Invalid request",
		"details": details,
	})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": message,
	})
}
