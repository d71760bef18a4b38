package controllers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// decodeNameParam returns the :name route parameter with percent-encoding
// undone; course titles contain spaces and Cyrillic.
func decodeNameParam(c *fiber.Ctx) (string, error) {
	return url.PathUnescape(c.Params("name"))
}
