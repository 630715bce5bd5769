// players.go — roster management: list, register, and remove players.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwayleague/backend/internal/engine"
	"github.com/fairwayleague/backend/internal/store"
	"github.com/fairwayleague/backend/internal/websocket"
)

// PlayerResponse is what we send back for a roster entry. A dedicated response
// struct (instead of the raw GORM model) controls exactly what is serialized.
type PlayerResponse struct {
	Name             string  `json:"name"`
	Handicap         float64 `json:"handicap"`
	StartingHandicap float64 `json:"starting_handicap"`
	TotalRP          float64 `json:"total_rp"`
	RoundsPlayed     int     `json:"rounds_played"`
}

// CreatePlayerRequest is the JSON body we expect on POST /api/v1/players.
// Handicap is a *float64 so "field missing" is distinguishable from 0.0 —
// a missing handicap is rejected rather than silently treated as scratch.
type CreatePlayerRequest struct {
	Name     string   `json:"name"`
	Handicap *float64 `json:"handicap"`
}

// GetPlayers returns a handler for GET /api/v1/players: the full roster,
// highest total RP first.
func GetPlayers(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		players, err := st.LoadAllPlayers()
		if err != nil {
			return serverError(c, "failed to fetch players")
		}
		resp := make([]PlayerResponse, 0, len(players))
		for _, p := range players {
			resp = append(resp, PlayerResponse{
				Name:             p.Name,
				Handicap:         p.Handicap,
				StartingHandicap: p.StartingHandicap,
				TotalRP:          p.TotalRP,
				RoundsPlayed:     p.RoundsPlayed,
			})
		}
		return c.JSON(resp)
	}
}

// CreatePlayer returns a handler for POST /api/v1/players.
// Registers a new player whose current handicap also becomes their starting
// handicap — the baseline the Rocket award measures improvement against.
func CreatePlayer(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreatePlayerRequest
		// BodyParser rejects non-numeric handicaps outright: malformed numbers
		// must never reach the scoring logic as a silent zero.
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if req.Name == "" {
			return badRequest(c, "name is required")
		}
		if req.Handicap == nil {
			return badRequest(c, "handicap is required")
		}
		if *req.Handicap < 0 || *req.Handicap > 54 {
			return badRequest(c, "handicap must be between 0 and 54")
		}

		if err := st.CreatePlayer(req.Name, *req.Handicap); err != nil {
			if errors.Is(err, store.ErrPlayerExists) {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"error": "a player with that name already exists",
				})
			}
			return serverError(c, "failed to create player")
		}

		return c.Status(fiber.StatusCreated).JSON(PlayerResponse{
			Name:             req.Name,
			Handicap:         *req.Handicap,
			StartingHandicap: *req.Handicap,
		})
	}
}

// DeletePlayer returns a handler for DELETE /api/v1/players/:name.
// Removing a player cascades to all their match records; the live standings
// broadcast afterwards reflects the shrunken league.
func DeletePlayer(st store.Store, hub *websocket.Hub, cfg engine.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		if err := st.DeletePlayer(name); err != nil {
			if errors.Is(err, store.ErrPlayerNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
			}
			return serverError(c, "failed to delete player")
		}
		broadcastStandings(st, hub, cfg)
		return c.JSON(fiber.Map{"deleted": name})
	}
}
