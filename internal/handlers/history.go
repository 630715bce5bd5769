// history.go — the match history view, grouped into submissions. Each group is
// the unit of display and of undo: the DELETE endpoint in rounds.go takes the
// match_group_id shown here.
package handlers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fairwayleague/backend/internal/models"
	"github.com/fairwayleague/backend/internal/store"
)

// HistoryRecordResponse is one player's row within a match group.
type HistoryRecordResponse struct {
	PlayerName  string  `json:"player_name"`
	GrossScore  int     `json:"gross_score"` // Strokes; holes won for alliance rows
	Stableford  int     `json:"stableford"`
	RPEarned    float64 `json:"rp_earned"`
	NewHandicap float64 `json:"new_handicap"`
	Notes       string  `json:"notes"`
	CleanSheet  bool    `json:"clean_sheet"`
	HoleInOne   bool    `json:"hole_in_one"`
}

// HistoryGroupResponse is one submission: every row sharing a match group id.
type HistoryGroupResponse struct {
	MatchGroupID string                  `json:"match_group_id"`
	Date         string                  `json:"date"`
	Season       string                  `json:"season"`
	Course       string                  `json:"course"`
	MatchType    string                  `json:"match_type"`
	Records      []HistoryRecordResponse `json:"records"`
}

// GetHistory returns a handler for GET /api/v1/history: all submissions,
// newest first, each with its full set of player rows.
func GetHistory(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rounds, err := st.LoadAllRounds()
		if err != nil {
			return serverError(c, "failed to load match history")
		}

		// Bucket rows by group id, remembering first-seen order — the store
		// returns newest first, so group order falls out naturally.
		byGroup := make(map[uuid.UUID][]models.MatchRecord)
		var order []uuid.UUID
		for _, rec := range rounds {
			if _, ok := byGroup[rec.MatchGroupID]; !ok {
				order = append(order, rec.MatchGroupID)
			}
			byGroup[rec.MatchGroupID] = append(byGroup[rec.MatchGroupID], rec)
		}

		resp := make([]HistoryGroupResponse, 0, len(order))
		for _, id := range order {
			recs := byGroup[id]
			// Highest scorer first within a group, the way a scoreboard reads.
			sort.SliceStable(recs, func(i, j int) bool {
				return recs[i].Stableford > recs[j].Stableford
			})

			group := HistoryGroupResponse{
				MatchGroupID: id.String(),
				Date:         recs[0].Date.UTC().Format(time.DateOnly),
				Season:       recs[0].Season,
				Course:       recs[0].Course,
				MatchType:    string(recs[0].MatchType),
			}
			for _, rec := range recs {
				group.Records = append(group.Records, HistoryRecordResponse{
					PlayerName:  rec.PlayerName,
					GrossScore:  rec.GrossScore,
					Stableford:  rec.Stableford,
					RPEarned:    rec.RPEarned,
					NewHandicap: rec.NewHandicap,
					Notes:       rec.Notes,
					CleanSheet:  rec.CleanSheet,
					HoleInOne:   rec.HoleInOne,
				})
			}
			resp = append(resp, group)
		}
		return c.JSON(resp)
	}
}
