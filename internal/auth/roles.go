package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequirePermission gates a route on the resolved account's role.
// It must run after Authenticate.
func RequirePermission(action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		account, _ := AccountFromContext(c)
		if err := Authorize(account, action); err != nil {
			return err
		}
		return c.Next()
	}
}
