// standings.go — the live leaderboard. Like the awards, standings are a pure
// derivation: cumulative RP is summed from the full match history on every
// read and the floating award bonuses are layered on top as a display-only
// overlay. Nothing here is cached or persisted, so there is nothing to go
// stale — only recomputation cost, which is trivial at league scale.
package engine

import (
	"sort"

	"github.com/fairwayleague/backend/internal/models"
)

// StandingsRow is one leaderboard line.
type StandingsRow struct {
	Rank         int      `json:"rank"`
	Name         string   `json:"name"`
	Handicap     float64  `json:"handicap"`
	RoundsPlayed int      `json:"rounds_played"`
	BaseRP       float64  `json:"base_rp"`     // Sum of rp_earned across the player's history
	AwardBonus   float64  `json:"award_bonus"` // Ephemeral overlay from currently-held trophies
	TotalRP      float64  `json:"total_rp"`    // BaseRP + AwardBonus; the ranking key
	Awards       []string `json:"awards"`      // Trophies this player currently holds
}

// ComputeStandings builds the ranked leaderboard from the full player roster,
// the full match history, and a freshly computed awards snapshot. Every player
// appears, even with zero rounds. Ties on total RP are ordered by name so the
// output is deterministic.
func ComputeStandings(players []models.Player, history []models.MatchRecord, awards AwardsSnapshot) []StandingsRow {
	base := make(map[string]float64, len(players))
	roundCount := make(map[string]int, len(players))
	for _, rec := range history {
		base[rec.PlayerName] += rec.RPEarned
		roundCount[rec.PlayerName]++
	}

	held := make(map[string][]string, len(players))
	for _, a := range []Award{AwardSniper, AwardRock, AwardConqueror, AwardRocket} {
		if state, ok := awards.Awards[a]; ok && state.Holder != "" {
			held[state.Holder] = append(held[state.Holder], a.Title())
		}
	}

	rows := make([]StandingsRow, 0, len(players))
	for _, p := range players {
		bonus := awards.Bonuses[p.Name]
		rows = append(rows, StandingsRow{
			Name:         p.Name,
			Handicap:     p.Handicap,
			RoundsPlayed: roundCount[p.Name],
			BaseRP:       base[p.Name],
			AwardBonus:   bonus,
			TotalRP:      base[p.Name] + bonus,
			Awards:       held[p.Name],
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRP != rows[j].TotalRP {
			return rows[i].TotalRP > rows[j].TotalRP
		}
		return rows[i].Name < rows[j].Name
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// RPSnapshot maps each player to their cumulative RP as currently persisted.
// This is the pre-submission standings snapshot the group bonus calculator
// needs: giant-slayer comparisons must use standings as they were BEFORE the
// round being scored, never values the engine is in the middle of producing.
func RPSnapshot(players []models.Player) map[string]float64 {
	snap := make(map[string]float64, len(players))
	for _, p := range players {
		snap[p.Name] = p.TotalRP
	}
	return snap
}
