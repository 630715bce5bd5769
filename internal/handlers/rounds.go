// rounds.go — submitting and deleting Stableford rounds (solo or simultaneous
// group). This is where a scorecard becomes persisted RP: the handler loads
// state, feeds the pure engine, and writes the engine's verdict back as one
// atomic match group.
package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fairwayleague/backend/internal/engine"
	"github.com/fairwayleague/backend/internal/models"
	"github.com/fairwayleague/backend/internal/store"
	"github.com/fairwayleague/backend/internal/websocket"
)

// RoundEntryRequest is one player's scorecard within a submission.
// Numeric fields are pointers so a missing score is rejected instead of being
// silently scored as zero.
type RoundEntryRequest struct {
	Name        string `json:"name"`
	GrossScore  *int   `json:"gross_score"`
	Stableford  *int   `json:"stableford"`
	CleanSheet  bool   `json:"clean_sheet"`
	HoleInOne   bool   `json:"hole_in_one"`
	RoadWarrior bool   `json:"road_warrior"` // First time playing this course
}

// SubmitRoundRequest is the JSON body for POST /api/v1/rounds.
// A solo round is simply a cohort of one.
type SubmitRoundRequest struct {
	Date        string              `json:"date"`         // "YYYY-MM-DD"; empty = today
	Course      string              `json:"course"`       // Required
	HolesPlayed int                 `json:"holes_played"` // 9 or 18; 0 defaults to 18
	Players     []RoundEntryRequest `json:"players"`
}

// RoundResultResponse reports one player's outcome from a submission.
type RoundResultResponse struct {
	Name        string  `json:"name"`
	RPEarned    float64 `json:"rp_earned"`
	NewHandicap float64 `json:"new_handicap"`
	Notes       string  `json:"notes"`
}

// SubmitRoundResponse is the 201 body: the group id (the handle for undo)
// plus every player's outcome.
type SubmitRoundResponse struct {
	MatchGroupID string                `json:"match_group_id"`
	Season       string                `json:"season"`
	Results      []RoundResultResponse `json:"results"`
}

// SubmitRound returns a handler for POST /api/v1/rounds.
//
// Flow: validate the boundary → load roster (handicaps + the pre-submission RP
// snapshot) → engine.ScoreGroup → persist all rows as one match group →
// broadcast fresh standings. The engine never sees unvalidated input and the
// store write is all-or-nothing.
func SubmitRound(st store.Store, hub *websocket.Hub, cfg engine.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req SubmitRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if req.Course == "" {
			return badRequest(c, "course is required")
		}
		if len(req.Players) == 0 {
			return badRequest(c, "at least one player is required")
		}
		if req.HolesPlayed == 0 {
			req.HolesPlayed = 18
		}
		if req.HolesPlayed != 9 && req.HolesPlayed != 18 {
			return badRequest(c, "holes_played must be 9 or 18")
		}
		date, err := parseDate(req.Date)
		if err != nil {
			return badRequest(c, "date must be in YYYY-MM-DD format")
		}

		// Resolve every submitted name against the roster before scoring
		// anything: a submission with an unknown player commits nothing.
		players, err := st.LoadAllPlayers()
		if err != nil {
			return serverError(c, "failed to load players")
		}
		roster := make(map[string]models.Player, len(players))
		for _, p := range players {
			roster[p.Name] = p
		}

		entries := make([]engine.GroupEntry, 0, len(req.Players))
		for _, e := range req.Players {
			p, ok := roster[e.Name]
			if !ok {
				return badRequest(c, fmt.Sprintf("unknown player: %q", e.Name))
			}
			if e.Stableford == nil {
				return badRequest(c, fmt.Sprintf("stableford score is required for %q", e.Name))
			}
			if *e.Stableford < 0 || *e.Stableford > 60 {
				return badRequest(c, fmt.Sprintf("stableford score for %q must be between 0 and 60", e.Name))
			}
			if e.GrossScore == nil {
				return badRequest(c, fmt.Sprintf("gross score is required for %q", e.Name))
			}
			if *e.GrossScore < 0 {
				return badRequest(c, fmt.Sprintf("gross score for %q cannot be negative", e.Name))
			}
			entries = append(entries, engine.GroupEntry{
				Name:        e.Name,
				Stableford:  *e.Stableford,
				Handicap:    p.Handicap,
				CleanSheet:  e.CleanSheet,
				HoleInOne:   e.HoleInOne,
				RoadWarrior: e.RoadWarrior,
			})
		}

		results, err := engine.ScoreGroup(entries, req.HolesPlayed, engine.RPSnapshot(players), nil, cfg)
		if err != nil {
			return badRequest(c, err.Error())
		}

		season := engine.SeasonOf(date)
		records := make([]models.MatchRecord, 0, len(req.Players))
		resp := SubmitRoundResponse{Season: season}
		for _, e := range req.Players {
			res := results[e.Name]
			records = append(records, models.MatchRecord{
				PlayerName:  e.Name,
				Date:        date,
				Season:      season,
				Course:      req.Course,
				MatchType:   models.MatchTypeStandard,
				GrossScore:  *e.GrossScore,
				Stableford:  *e.Stableford,
				RPEarned:    res.TotalRP,
				NewHandicap: res.NewHandicap,
				Notes:       res.Notes,
				CleanSheet:  e.CleanSheet,
				HoleInOne:   e.HoleInOne,
			})
			resp.Results = append(resp.Results, RoundResultResponse{
				Name:        e.Name,
				RPEarned:    res.TotalRP,
				NewHandicap: res.NewHandicap,
				Notes:       res.Notes,
			})
		}

		groupID, err := st.AppendRoundGroup(records)
		if err != nil {
			return serverError(c, "failed to save round")
		}
		resp.MatchGroupID = groupID.String()

		broadcastStandings(st, hub, cfg)
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// DeleteRoundGroup returns a handler for DELETE /api/v1/rounds/:groupID.
// Deleting is a compensating transaction: every affected player's RP and
// rounds-played revert to their pre-submission values before the rows go.
func DeleteRoundGroup(st store.Store, hub *websocket.Hub, cfg engine.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groupID, err := uuid.Parse(c.Params("groupID"))
		if err != nil {
			return badRequest(c, "invalid match group id")
		}
		if err := st.DeleteRoundGroup(groupID); err != nil {
			if errors.Is(err, store.ErrGroupNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "match group not found"})
			}
			return serverError(c, "failed to delete match group")
		}
		broadcastStandings(st, hub, cfg)
		return c.JSON(fiber.Map{"deleted": groupID.String()})
	}
}
