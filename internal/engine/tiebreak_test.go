package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fairwayleague/backend/internal/models"
)

func sharedRound(t *testing.T, day string, course string, scores map[string]int) []models.MatchRecord {
	t.Helper()
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatal(err)
	}
	group := uuid.New()
	var recs []models.MatchRecord
	for name, s := range scores {
		recs = append(recs, models.MatchRecord{
			ID:           uuid.New(),
			MatchGroupID: group,
			PlayerName:   name,
			Date:         date,
			Course:       course,
			MatchType:    models.MatchTypeStandard,
			Stableford:   s,
		})
	}
	return recs
}

func TestResolveTie(t *testing.T) {
	t.Run("no candidates", func(t *testing.T) {
		out := ResolveTie(nil, nil)
		assert.Empty(t, out.Winner)
		assert.Empty(t, out.Tied)
		assert.Equal(t, "No Candidates", out.Reason)
	})

	t.Run("single candidate wins outright", func(t *testing.T) {
		out := ResolveTie([]string{"Alice"}, nil)
		assert.Equal(t, "Alice", out.Winner)
		assert.Equal(t, "Clear Winner", out.Reason)
		assert.True(t, out.Resolved())
	})

	t.Run("no history at all", func(t *testing.T) {
		out := ResolveTie([]string{"Alice", "Bob"}, nil)
		assert.Empty(t, out.Winner)
		assert.Equal(t, []string{"Alice", "Bob"}, out.Tied)
		assert.Equal(t, "No History", out.Reason)
		assert.False(t, out.Resolved())
	})

	t.Run("head-to-head record decides", func(t *testing.T) {
		history := sharedRound(t, "2026-03-01", "Pine Valley", map[string]int{
			"Alice": 38, "Bob": 34, "Carol": 30,
		})
		out := ResolveTie([]string{"Alice", "Bob", "Carol"}, history)
		assert.Equal(t, "Alice", out.Winner)
		assert.Equal(t, "Won H2H (1 wins)", out.Reason)
	})

	t.Run("multiple meetings accumulate wins", func(t *testing.T) {
		var history []models.MatchRecord
		history = append(history, sharedRound(t, "2026-03-01", "Pine Valley", map[string]int{"Alice": 38, "Bob": 34})...)
		history = append(history, sharedRound(t, "2026-03-08", "Pine Valley", map[string]int{"Alice": 30, "Bob": 36})...)
		history = append(history, sharedRound(t, "2026-03-15", "Links End", map[string]int{"Alice": 31, "Bob": 35})...)

		out := ResolveTie([]string{"Alice", "Bob"}, history)
		assert.Equal(t, "Bob", out.Winner)
		assert.Equal(t, "Won H2H (2 wins)", out.Reason)
	})

	t.Run("rounds with one candidate present do not count", func(t *testing.T) {
		var history []models.MatchRecord
		history = append(history, sharedRound(t, "2026-03-01", "Pine Valley", map[string]int{"Alice": 38, "Dave": 30})...)
		history = append(history, sharedRound(t, "2026-03-08", "Links End", map[string]int{"Bob": 40, "Dave": 28})...)

		out := ResolveTie([]string{"Alice", "Bob"}, history)
		assert.Empty(t, out.Winner)
		assert.Equal(t, []string{"Alice", "Bob"}, out.Tied)
		assert.Equal(t, "Tie Unresolved (Never played together)", out.Reason)
	})

	t.Run("equal records stay tied", func(t *testing.T) {
		var history []models.MatchRecord
		history = append(history, sharedRound(t, "2026-03-01", "Pine Valley", map[string]int{"Alice": 38, "Bob": 30})...)
		history = append(history, sharedRound(t, "2026-03-08", "Pine Valley", map[string]int{"Alice": 29, "Bob": 37})...)

		out := ResolveTie([]string{"Alice", "Bob"}, history)
		assert.Empty(t, out.Winner)
		assert.Equal(t, []string{"Alice", "Bob"}, out.Tied)
		assert.Equal(t, "Tie Unresolved (Equal H2H record)", out.Reason)
	})

	t.Run("in-round tie gives both a head-to-head win", func(t *testing.T) {
		var history []models.MatchRecord
		history = append(history, sharedRound(t, "2026-03-01", "Pine Valley", map[string]int{"Alice": 36, "Bob": 36})...)
		history = append(history, sharedRound(t, "2026-03-08", "Pine Valley", map[string]int{"Alice": 38, "Bob": 31})...)

		out := ResolveTie([]string{"Alice", "Bob"}, history)
		assert.Equal(t, "Alice", out.Winner)
		assert.Equal(t, "Won H2H (2 wins)", out.Reason)
	})

	t.Run("legacy rows group by date and course", func(t *testing.T) {
		date, _ := time.Parse("2006-01-02", "2025-11-02")
		history := []models.MatchRecord{
			{PlayerName: "Alice", Date: date, Course: "Old Course", Stableford: 39},
			{PlayerName: "Bob", Date: date, Course: "Old Course", Stableford: 33},
			// Same day, different course: a separate round that must not merge in.
			{PlayerName: "Bob", Date: date, Course: "Links End", Stableford: 45},
		}
		out := ResolveTie([]string{"Alice", "Bob"}, history)
		assert.Equal(t, "Alice", out.Winner)
		assert.Equal(t, "Won H2H (1 wins)", out.Reason)
	})

	t.Run("deterministic over repeated calls", func(t *testing.T) {
		var history []models.MatchRecord
		for i, day := range []string{"2026-01-04", "2026-01-11", "2026-01-18"} {
			history = append(history, sharedRound(t, day, "Pine Valley", map[string]int{
				"Alice": 30 + i, "Bob": 33 - i, "Carol": 31,
			})...)
		}
		first := ResolveTie([]string{"Alice", "Bob", "Carol"}, history)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, ResolveTie([]string{"Alice", "Bob", "Carol"}, history))
		}
	})
}
