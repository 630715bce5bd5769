// helpers.go — small utilities shared across handlers: date parsing at the API
// boundary and the post-mutation live broadcast.
package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwayleague/backend/internal/engine"
	"github.com/fairwayleague/backend/internal/store"
	"github.com/fairwayleague/backend/internal/websocket"
)

// dateLayout is the wire format for round dates: "YYYY-MM-DD".
const dateLayout = "2006-01-02"

// parseDate parses a required wire date. An empty string defaults to today —
// the common case of logging a round right after playing it.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dateLayout, s)
}

// badRequest writes a 400 with a consistent error body.
func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// serverError writes a 500. The underlying error is deliberately not echoed to
// the client; it travels through the request logger instead.
func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
}

// broadcastStandings recomputes the live leaderboard and pushes it to every
// connected standings viewer. Called after every successful mutation. Failures
// here never fail the request — the write already committed; viewers will
// catch up on their next page load.
func broadcastStandings(st store.Store, hub *websocket.Hub, cfg engine.Config) {
	if hub == nil {
		return
	}
	players, err := st.LoadAllPlayers()
	if err != nil {
		return
	}
	rounds, err := st.LoadAllRounds()
	if err != nil {
		return
	}
	awards := engine.ComputeAwards(players, rounds, cfg)
	rows := engine.ComputeStandings(players, rounds, awards)

	if data, err := json.Marshal(rows); err == nil {
		hub.Broadcast(websocket.TopicStandings, data)
	}
	if data, err := json.Marshal(fiber.Map{"event": "history_changed"}); err == nil {
		hub.Broadcast(websocket.TopicHistory, data)
	}
}
