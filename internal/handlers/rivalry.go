// rivalry.go — the grudge-match formats: 1v1 duels and 2v2 alliances.
// Rivalry matches don't touch handicaps and don't use Stableford scoring; they
// move fixed RP stakes and are recorded as match groups like everything else,
// so the same delete/undo path applies.
package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fairwayleague/backend/internal/engine"
	"github.com/fairwayleague/backend/internal/models"
	"github.com/fairwayleague/backend/internal/store"
	"github.com/fairwayleague/backend/internal/websocket"
)

// DuelSideRequest is one duel participant on the wire.
type DuelSideRequest struct {
	Name    string `json:"name"`
	Strokes *int   `json:"strokes"` // Total gross strokes; pointer so missing ≠ 0
}

// SubmitDuelRequest is the JSON body for POST /api/v1/duels.
type SubmitDuelRequest struct {
	Date    string          `json:"date"`   // "YYYY-MM-DD"; empty = today
	Course  string          `json:"course"` // Required
	Player1 DuelSideRequest `json:"player1"`
	Player2 DuelSideRequest `json:"player2"`
}

// SubmitDuelResponse reports the resolved duel.
type SubmitDuelResponse struct {
	MatchGroupID string                `json:"match_group_id"`
	Winner       string                `json:"winner"` // Empty on an absolute tie
	Reason       string                `json:"reason"`
	Stakes       float64               `json:"stakes"`
	Results      []RoundResultResponse `json:"results"`
}

// SubmitDuel returns a handler for POST /api/v1/duels.
// Lower strokes wins; a stroke tie goes to the underdog (higher handicap);
// stakes are ±10 for an underdog win, ±5 for a favorite win, 0 on a full tie.
func SubmitDuel(st store.Store, hub *websocket.Hub, cfg engine.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SubmitDuelRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if req.Course == "" {
			return badRequest(c, "course is required")
		}
		if req.Player1.Strokes == nil || req.Player2.Strokes == nil {
			return badRequest(c, "strokes are required for both players")
		}
		if *req.Player1.Strokes <= 0 || *req.Player2.Strokes <= 0 {
			return badRequest(c, "strokes must be positive")
		}
		date, err := parseDate(req.Date)
		if err != nil {
			return badRequest(c, "date must be in YYYY-MM-DD format")
		}

		p1, err := st.GetPlayer(req.Player1.Name)
		if err != nil {
			return badRequest(c, fmt.Sprintf("unknown player: %q", req.Player1.Name))
		}
		p2, err := st.GetPlayer(req.Player2.Name)
		if err != nil {
			return badRequest(c, fmt.Sprintf("unknown player: %q", req.Player2.Name))
		}

		outcome, err := engine.ResolveDuel(
			engine.DuelSide{Name: p1.Name, Strokes: *req.Player1.Strokes, Handicap: p1.Handicap},
			engine.DuelSide{Name: p2.Name, Strokes: *req.Player2.Strokes, Handicap: p2.Handicap},
			cfg,
		)
		if err != nil {
			return badRequest(c, err.Error())
		}

		season := engine.SeasonOf(date)
		course := req.Course + " (Duel)"
		records := []models.MatchRecord{
			duelRecord(p1, *req.Player1.Strokes, outcome.RP1, outcome.Notes1, date, season, course),
			duelRecord(p2, *req.Player2.Strokes, outcome.RP2, outcome.Notes2, date, season, course),
		}

		groupID, err := st.AppendRoundGroup(records)
		if err != nil {
			return serverError(c, "failed to save duel")
		}

		broadcastStandings(st, hub, cfg)
		return c.Status(fiber.StatusCreated).JSON(SubmitDuelResponse{
			MatchGroupID: groupID.String(),
			Winner:       outcome.Winner,
			Reason:       outcome.Reason,
			Stakes:       outcome.Stakes,
			Results: []RoundResultResponse{
				{Name: p1.Name, RPEarned: outcome.RP1, NewHandicap: p1.Handicap, Notes: outcome.Notes1},
				{Name: p2.Name, RPEarned: outcome.RP2, NewHandicap: p2.Handicap, Notes: outcome.Notes2},
			},
		})
	}
}

// duelRecord builds one duel row. Handicaps don't move in rivalry formats, so
// NewHandicap just restates the player's current one.
func duelRecord(p models.Player, strokes int, rp float64, notes string, date time.Time, season, course string) models.MatchRecord {
	return models.MatchRecord{
		PlayerName:  p.Name,
		Date:        date,
		Season:      season,
		Course:      course,
		MatchType:   models.MatchTypeDuel,
		GrossScore:  strokes,
		RPEarned:    rp,
		NewHandicap: p.Handicap,
		Notes:       notes,
		IsRivalry:   true,
	}
}

// AllianceTeamRequest is one 2v2 team on the wire: exactly two named players.
type AllianceTeamRequest struct {
	Players  []string `json:"players"`
	HolesWon *int     `json:"holes_won"`
}

// SubmitAllianceRequest is the JSON body for POST /api/v1/alliances.
type SubmitAllianceRequest struct {
	Date  string              `json:"date"` // "YYYY-MM-DD"; empty = today
	TeamA AllianceTeamRequest `json:"team_a"`
	TeamB AllianceTeamRequest `json:"team_b"`
}

// SubmitAllianceResponse reports the resolved 2v2.
type SubmitAllianceResponse struct {
	MatchGroupID string                `json:"match_group_id"`
	Winner       string                `json:"winner"` // "A", "B", or "" on a tie
	Results      []RoundResultResponse `json:"results"`
}

// SubmitAlliance returns a handler for POST /api/v1/alliances.
// More holes won takes the match at flat ±5 RP per player; a player's
// first-ever alliance appearance also earns the one-time Duo Debut bonus,
// win or lose.
func SubmitAlliance(st store.Store, hub *websocket.Hub, cfg engine.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SubmitAllianceRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if len(req.TeamA.Players) != 2 || len(req.TeamB.Players) != 2 {
			return badRequest(c, "each team needs exactly 2 players")
		}
		if req.TeamA.HolesWon == nil || req.TeamB.HolesWon == nil {
			return badRequest(c, "holes_won is required for both teams")
		}
		holesA, holesB := *req.TeamA.HolesWon, *req.TeamB.HolesWon
		if holesA < 0 || holesA > 18 || holesB < 0 || holesB > 18 {
			return badRequest(c, "holes_won must be between 0 and 18")
		}
		date, err := parseDate(req.Date)
		if err != nil {
			return badRequest(c, "date must be in YYYY-MM-DD format")
		}

		// Resolve all four players and find the alliance debutants before the
		// match is recorded — recording first would make everyone a veteran.
		names := []string{req.TeamA.Players[0], req.TeamA.Players[1], req.TeamB.Players[0], req.TeamB.Players[1]}
		roster := make(map[string]models.Player, 4)
		debutants := make(map[string]bool, 4)
		for _, n := range names {
			p, err := st.GetPlayer(n)
			if err != nil {
				return badRequest(c, fmt.Sprintf("unknown player: %q", n))
			}
			roster[n] = p
			played, err := st.HasPlayedAlliance(n)
			if err != nil {
				return serverError(c, "failed to check alliance history")
			}
			debutants[n] = !played
		}

		results, err := engine.ResolveAlliance(engine.AllianceInput{
			TeamA:     [2]string{names[0], names[1]},
			TeamB:     [2]string{names[2], names[3]},
			HolesA:    holesA,
			HolesB:    holesB,
			Debutants: debutants,
		}, cfg)
		if err != nil {
			return badRequest(c, err.Error())
		}

		season := engine.SeasonOf(date)
		records := make([]models.MatchRecord, 0, 4)
		resp := SubmitAllianceResponse{}
		switch {
		case holesA > holesB:
			resp.Winner = "A"
		case holesB > holesA:
			resp.Winner = "B"
		}
		for _, r := range results {
			p := roster[r.Name]
			records = append(records, models.MatchRecord{
				PlayerName:  r.Name,
				Date:        date,
				Season:      season,
				Course:      "2v2 Match",
				MatchType:   models.MatchTypeAlliance,
				GrossScore:  r.HolesWon, // team holes won, recorded per player
				RPEarned:    r.RP,
				NewHandicap: p.Handicap, // unchanged in rivalry formats
				Notes:       r.Notes,
				IsRivalry:   true,
			})
			resp.Results = append(resp.Results, RoundResultResponse{
				Name:        r.Name,
				RPEarned:    r.RP,
				NewHandicap: p.Handicap,
				Notes:       r.Notes,
			})
		}

		groupID, err := st.AppendRoundGroup(records)
		if err != nil {
			return serverError(c, "failed to save alliance match")
		}
		resp.MatchGroupID = groupID.String()

		broadcastStandings(st, hub, cfg)
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}
