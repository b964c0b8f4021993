// file: internals/helpers/auth/locals.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys hydrated by the JWT middleware.
const (
	LocUserID = "user_id"
	LocRole   = "user_role"
)

// GetUserIDFromLocals returns the authenticated caller's id, used only for
// audit stamping (created_by / marked_by).
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user id missing from token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user id in token is not a UUID")
	}
	return id, nil
}

// UserIDPtrFromLocals is the lenient variant for optional stamping.
func UserIDPtrFromLocals(c *fiber.Ctx) *uuid.UUID {
	id, err := GetUserIDFromLocals(c)
	if err != nil {
		return nil
	}
	return &id
}

func GetRoleFromLocals(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocRole).(string); ok {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return ""
}
