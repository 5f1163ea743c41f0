package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parsePage reads the 1-based "page" query parameter. Anything unparsable or
// below 1 is page 1.
func parsePage(c *fiber.Ctx) int {
	if v := strings.TrimSpace(c.Query("page")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 1
}
