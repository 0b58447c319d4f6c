package api

import (
	"github.com/crumbworks/pantryplan/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	authCookieName = "pantryplan_auth"
	contextUserKey = "current_user"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
