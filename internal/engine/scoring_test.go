package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScoreRound(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("solo 18-hole round at 40 points", func(t *testing.T) {
		got := ScoreRound(RoundInput{Stableford: 40, HolesPlayed: 18}, cfg)
		// 2 participation + 8 performance (4 over target, doubled)
		assert.Equal(t, 10.0, got.RP)
		assert.Equal(t, "Stbl Perf (+8), Part (+2)", got.Trail)
	})

	t.Run("performance grows 2 RP per point above target", func(t *testing.T) {
		for s := 36; s <= 50; s++ {
			got := ScoreRound(RoundInput{Stableford: s, HolesPlayed: 18}, cfg)
			assert.Equal(t, 2.0+float64(s-36)*2, got.RP, "stableford %d", s)
		}
	})

	t.Run("deficits are dampened to half magnitude", func(t *testing.T) {
		// diff = -9 halves to -4.5 and rounds away from zero to -5
		got := ScoreRound(RoundInput{Stableford: 27, HolesPlayed: 18}, cfg)
		assert.Equal(t, -5.0+2.0, got.RP)
		assert.Contains(t, got.Trail, "Stbl Perf (-5)")
	})

	t.Run("half-integer deficits round away from zero", func(t *testing.T) {
		cases := []struct {
			stableford int
			perf       float64
		}{
			{35, -1}, // diff -1 → -0.5 → -1
			{33, -2}, // diff -3 → -1.5 → -2
			{31, -3}, // diff -5 → -2.5 → -3
			{34, -1}, // diff -2 → -1 exactly
		}
		for _, tc := range cases {
			got := ScoreRound(RoundInput{Stableford: tc.stableford, HolesPlayed: 18}, cfg)
			assert.Equal(t, tc.perf+cfg.Participation18, got.RP, "stableford %d", tc.stableford)
		}
	})

	t.Run("9-hole rounds use target 18 and half participation", func(t *testing.T) {
		got := ScoreRound(RoundInput{Stableford: 20, HolesPlayed: 9}, cfg)
		// +4 performance (2 over, doubled), +1 participation
		assert.Equal(t, 5.0, got.RP)
		assert.Contains(t, got.Trail, "Part (+1)")
	})

	t.Run("flat bonuses stack arithmetically", func(t *testing.T) {
		got := ScoreRound(RoundInput{
			Stableford:  40,
			HolesPlayed: 18,
			CleanSheet:  true,
			HoleInOne:   true,
			RoadWarrior: true,
		}, cfg)
		assert.Equal(t, 24.0, got.RP) // 8 + 2 + 2 + 2 + 10
		assert.Contains(t, got.Trail, "Road Warrior (+2)")
		assert.Contains(t, got.Trail, "Clean Sheet (+2)")
		assert.Contains(t, got.Trail, "Hole-in-One (+10)")
	})

	t.Run("group bonuses pass through with their notes", func(t *testing.T) {
		got := ScoreRound(RoundInput{
			Stableford:  38,
			HolesPlayed: 18,
			BonusRP:     3,
			BonusNotes:  []string{"Winner of Day (+3)"},
		}, cfg)
		assert.Equal(t, 4.0+2.0+3.0, got.RP)
		assert.Equal(t, "Stbl Perf (+4), Part (+2), Winner of Day (+3)", got.Trail)
	})

	t.Run("participation cap clamps to remaining headroom", func(t *testing.T) {
		capped := cfg
		capped.ParticipationSeasonCap = 20

		got := ScoreRound(RoundInput{Stableford: 36, HolesPlayed: 18, SeasonParticipation: 19}, capped)
		assert.Equal(t, 1.0, got.RP) // only 1 RP of headroom left
		assert.Contains(t, got.Trail, "Part (+1)")

		got = ScoreRound(RoundInput{Stableford: 36, HolesPlayed: 18, SeasonParticipation: 20}, capped)
		assert.Equal(t, 0.0, got.RP)
		assert.NotContains(t, got.Trail, "Part")

		// Never negative, even if the banked total somehow overshot the cap.
		got = ScoreRound(RoundInput{Stableford: 36, HolesPlayed: 18, SeasonParticipation: 25}, capped)
		assert.Equal(t, 0.0, got.RP)
	})
}

func TestNewHandicap(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("band table", func(t *testing.T) {
		cases := []struct {
			current    float64
			stableford int
			want       float64
		}{
			{18.0, 40, 16.0}, // ≥40 band cuts 2
			{18.0, 45, 16.0},
			{18.0, 39, 17.0}, // 37–39 cuts 1
			{18.0, 37, 17.0},
			{18.0, 36, 18.0}, // 27–36 unchanged
			{18.0, 27, 18.0},
			{18.0, 26, 19.0}, // <27 adds 1
			{18.0, 0, 19.0},
		}
		for _, tc := range cases {
			got := NewHandicap(tc.current, tc.stableford, cfg)
			assert.Equal(t, tc.want, got, "hcp %.1f score %d", tc.current, tc.stableford)
		}
	})

	t.Run("monotonically non-increasing in stableford score", func(t *testing.T) {
		for _, current := range []float64{5.0, 18.0, 36.0, 40.0, 50.0} {
			prev := NewHandicap(current, 0, cfg)
			for s := 1; s <= 60; s++ {
				next := NewHandicap(current, s, cfg)
				assert.LessOrEqual(t, next, prev, "hcp %.1f score %d", current, s)
				prev = next
			}
		}
	})

	t.Run("sandbagger rule cuts by the overshoot", func(t *testing.T) {
		assert.Equal(t, 35.0, NewHandicap(40.0, 41, cfg)) // 5 over target
		assert.Equal(t, 40.0, NewHandicap(40.0, 30, cfg)) // at/below target falls back to the band table
		assert.Equal(t, 41.0, NewHandicap(40.0, 20, cfg))
	})

	t.Run("sandbagger cut can be capped", func(t *testing.T) {
		capped := cfg
		capped.SandbaggerMaxCut = 10
		assert.Equal(t, 40.0, NewHandicap(50.0, 50, capped)) // raw cut 14, capped at 10
		assert.Equal(t, 36.0, NewHandicap(50.0, 50, cfg))    // uncapped default
	})

	t.Run("floored at zero", func(t *testing.T) {
		assert.Equal(t, 0.0, NewHandicap(1.5, 44, cfg))
		for s := 0; s <= 60; s++ {
			assert.GreaterOrEqual(t, NewHandicap(0.5, s, cfg), 0.0)
		}
	})

	t.Run("rounded to one decimal", func(t *testing.T) {
		assert.Equal(t, 12.3, NewHandicap(14.3, 40, cfg))
	})
}

func TestSeasonOf(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2026-01-15", "Season 1"},
		{"2026-03-31", "Season 1"},
		{"2026-04-25", "Season 2"},
		{"2026-06-20", "Season 2"},
		{"2026-06-21", "Kings Cup"},
		{"2026-06-30", "Kings Cup"},
		{"2026-07-01", "Season 3"},
		{"2026-09-30", "Season 3"},
		{"2026-10-01", "Season 4"},
		{"2026-12-20", "Season 4"},
		{"2026-12-21", "Finals"},
		{"2026-12-31", "Finals"},
	}
	for _, tc := range cases {
		d, err := time.Parse("2006-01-02", tc.date)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, SeasonOf(d), tc.date)
	}
}

func TestFmtRP(t *testing.T) {
	cases := map[float64]string{
		3:         "3",
		1.5:       "1.5",
		4.0 / 3.0: "1.33",
		-5:        "-5",
	}
	for v, want := range cases {
		assert.Equal(t, want, fmtRP(v), fmt.Sprintf("%v", v))
	}
}
