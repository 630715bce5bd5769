// standings.go — the read side: live standings and the hall of fame.
// Both are recomputed from the full history on every request. No caching, no
// stored award state — the holder you see is always derived from what's in the
// database right now.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fairwayleague/backend/internal/engine"
	"github.com/fairwayleague/backend/internal/store"
)

// AwardResponse is one trophy's state for the hall-of-fame view.
// Exactly one of Holder / Tied is populated for a contested trophy; both are
// empty when the trophy is vacant (Stat then says why, e.g. "Min 3 Wins").
// A tied trophy lists every claimant — the API never picks one arbitrarily.
type AwardResponse struct {
	Key    string   `json:"key"`    // Stable identifier: "Sniper", "Rock", ...
	Title  string   `json:"title"`  // Display name: "The Sniper", ...
	Holder string   `json:"holder,omitempty"`
	Tied   []string `json:"tied,omitempty"`
	Reason string   `json:"reason,omitempty"` // How the tie-break landed
	Stat   string   `json:"stat"`             // The winning number, or the vacancy reason
	Bonus  float64  `json:"bonus"`            // RP overlay granted to the holder
}

// GetStandings returns a handler for GET /api/v1/standings: the ranked
// leaderboard with floating award bonuses layered on top.
func GetStandings(st store.Store, cfg engine.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		players, err := st.LoadAllPlayers()
		if err != nil {
			return serverError(c, "failed to load players")
		}
		rounds, err := st.LoadAllRounds()
		if err != nil {
			return serverError(c, "failed to load match history")
		}

		awards := engine.ComputeAwards(players, rounds, cfg)
		return c.JSON(engine.ComputeStandings(players, rounds, awards))
	}
}

// GetAwards returns a handler for GET /api/v1/awards: the current hall of
// fame, in a fixed display order.
func GetAwards(st store.Store, cfg engine.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		players, err := st.LoadAllPlayers()
		if err != nil {
			return serverError(c, "failed to load players")
		}
		rounds, err := st.LoadAllRounds()
		if err != nil {
			return serverError(c, "failed to load match history")
		}

		snap := engine.ComputeAwards(players, rounds, cfg)
		order := []engine.Award{engine.AwardSniper, engine.AwardRock, engine.AwardConqueror, engine.AwardRocket}
		resp := make([]AwardResponse, 0, len(order))
		for _, a := range order {
			state := snap.Awards[a]
			resp = append(resp, AwardResponse{
				Key:    string(a),
				Title:  a.Title(),
				Holder: state.Holder,
				Tied:   state.Tied,
				Reason: state.Reason,
				Stat:   state.Stat,
				Bonus:  state.Bonus,
			})
		}
		return c.JSON(resp)
	}
}
