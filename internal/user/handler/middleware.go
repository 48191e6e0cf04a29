package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Dayasagar88/Chai-or-Nodejs/internal/apperror"
	"github.com/Dayasagar88/Chai-or-Nodejs/internal/user/service"
)

const localUserID = "userID"

// RequireAuth verifies the access token from the Authorization header or the
// access cookie and stores the caller's user id in locals. Downstream
// handlers treat that id as trusted input.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(accessCookie)
		if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}

		if tokenString == "" {
			return respondError(c, apperror.Unauthorized("unauthorized request"))
		}

		claims, err := h.tokens.Verify(tokenString, service.AccessToken)
		if err != nil {
			return respondError(c, apperror.Unauthorized("invalid access token"))
		}

		c.Locals(localUserID, claims.UserID)

		return c.Next()
	}
}
