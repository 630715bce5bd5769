package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwayleague/backend/internal/models"
)

func TestComputeStandings(t *testing.T) {
	date, _ := time.Parse("2006-01-02", "2026-02-01")
	rec := func(name string, rp float64) models.MatchRecord {
		return models.MatchRecord{
			ID: uuid.New(), MatchGroupID: uuid.New(), PlayerName: name,
			Date: date, MatchType: models.MatchTypeStandard, RPEarned: rp,
		}
	}
	players := []models.Player{
		{Name: "Alice", Handicap: 14},
		{Name: "Bob", Handicap: 20},
		{Name: "Carol", Handicap: 18},
	}

	t.Run("base RP is summed from history", func(t *testing.T) {
		history := []models.MatchRecord{
			rec("Alice", 10), rec("Alice", 6), rec("Bob", 12),
		}
		rows := ComputeStandings(players, history, AwardsSnapshot{})
		require.Len(t, rows, 3)

		assert.Equal(t, "Alice", rows[0].Name)
		assert.Equal(t, 1, rows[0].Rank)
		assert.Equal(t, 16.0, rows[0].BaseRP)
		assert.Equal(t, 16.0, rows[0].TotalRP)
		assert.Equal(t, 2, rows[0].RoundsPlayed)

		assert.Equal(t, "Bob", rows[1].Name)
		assert.Equal(t, "Carol", rows[2].Name)
		assert.Zero(t, rows[2].TotalRP)
	})

	t.Run("award bonuses overlay the ranking without touching base RP", func(t *testing.T) {
		history := []models.MatchRecord{rec("Alice", 10), rec("Bob", 8)}
		awards := AwardsSnapshot{
			Awards: map[Award]AwardState{
				AwardSniper: {Holder: "Bob", Bonus: 5},
			},
			Bonuses: map[string]float64{"Bob": 5},
		}
		rows := ComputeStandings(players, history, awards)

		assert.Equal(t, "Bob", rows[0].Name)
		assert.Equal(t, 8.0, rows[0].BaseRP)
		assert.Equal(t, 5.0, rows[0].AwardBonus)
		assert.Equal(t, 13.0, rows[0].TotalRP)
		assert.Equal(t, []string{"The Sniper"}, rows[0].Awards)

		assert.Equal(t, "Alice", rows[1].Name)
		assert.Empty(t, rows[1].Awards)
	})

	t.Run("ties on total RP are ordered by name", func(t *testing.T) {
		history := []models.MatchRecord{rec("Carol", 7), rec("Bob", 7)}
		rows := ComputeStandings(players, history, AwardsSnapshot{})
		assert.Equal(t, "Bob", rows[0].Name)
		assert.Equal(t, "Carol", rows[1].Name)
		assert.Equal(t, "Alice", rows[2].Name)
		assert.Equal(t, []int{1, 2, 3}, []int{rows[0].Rank, rows[1].Rank, rows[2].Rank})
	})
}

func TestRPSnapshot(t *testing.T) {
	snap := RPSnapshot([]models.Player{
		{Name: "Alice", TotalRP: 42.5},
		{Name: "Bob"},
	})
	assert.Equal(t, map[string]float64{"Alice": 42.5, "Bob": 0}, snap)
}
