package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"
	config "github.com/reservapp/reservapp/configs"
	"github.com/reservapp/reservapp/internal/api/handlers"
	"github.com/reservapp/reservapp/internal/service"
	"github.com/reservapp/reservapp/pkg/utils"
)

type AuthMiddleware struct {
	s   service.UserService
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config, service service.UserService) *AuthMiddleware {
	return &AuthMiddleware{s: service, cfg: cfg}
}

func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(m.cfg.CookieName)

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing session cookie",
			})
		}

		claims, err := utils.ValidateToken(m.cfg.SecretKey, tokenString)
		if err != nil {
			c.Cookie(&fiber.Cookie{
				Name:   m.cfg.CookieName,
				Value:  "",
				Path:   "/",
				MaxAge: -1, // Delete cookie
			})

			log.Printf("Token validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals("user_id", claims.UserID)
		return c.Next()
	}
}

// AdminMiddleware loads the authenticated user and rejects non-admins. It
// must run after AuthMiddleware.
func (m *AuthMiddleware) AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := handlers.GetUserID(c)

		user, err := m.s.GetUserInfo(c.Context(), userID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid session",
			})
		}

		if !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}
