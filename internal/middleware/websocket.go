package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const maxGameIDLength = 64

// WebSocketUpgrade only lets genuine upgrade requests for a well-formed game
// id and a known player through. Must run after EnsurePlayerID.
func WebSocketUpgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		gameID := c.Params("gameId")
		if !validGameID(gameID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "a game ID of at most 64 non-space characters is required",
			})
		}

		playerID, _ := c.Locals("playerID").(string)
		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "player ID is required",
			})
		}

		// The upgraded connection only sees locals, not the route.
		c.Locals("wsGameID", gameID)
		c.Locals("wsPlayerID", playerID)
		return c.Next()
	}
}

func validGameID(id string) bool {
	return id != "" && len(id) <= maxGameIDLength && !strings.ContainsAny(id, " \t\r\n/")
}
