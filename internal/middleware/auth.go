// Package middleware provides authentication, logging, and rate-limiting
// middleware for the application.
package middleware

import (
	"strconv"
	"strings"

	"photogram/internal/config"
	"photogram/internal/models"
	"photogram/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired returns a middleware that enforces bearer-token authentication
// and loads the authenticated user into the request context.
//
// Any failure (missing header, malformed token, bad signature, expiry, or a
// token referencing a user that no longer exists) responds with HTTP 501 and
// "Please authenticate." — the status the original API shipped with, kept
// for client compatibility.
func AuthRequired(cfg *config.Config, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return unauthenticated(c)
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return unauthenticated(c)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthenticated(c)
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return unauthenticated(c)
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return unauthenticated(c)
		}

		user, err := users.GetByID(c.Context(), uint(userID))
		if err != nil {
			return unauthenticated(c)
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)

		return c.Next()
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func unauthenticated(c *fiber.Ctx) error {
	return models.RespondWithError(c, fiber.StatusNotImplemented,
		models.NewUnauthenticatedError("Please authenticate."))
}

// CurrentUser returns the authenticated user stored by AuthRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
