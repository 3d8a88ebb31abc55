package server

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/piwi3910/RoomCraft/internal/session"
)

type localsKey int

const sessionLocal localsKey = iota

// bearerToken extracts the token from an "Authorization: Bearer" header.
func bearerToken(c fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// requireSession resolves the bearer token to its designer session.
func (s *Server) requireSession(c fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid authorization header"})
	}
	sess, ok := s.lookup(token)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"error": "unknown or expired session"})
	}
	c.Locals(sessionLocal, sess)
	return c.Next()
}

func sessionFrom(c fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionLocal).(*session.Session)
	return sess
}
