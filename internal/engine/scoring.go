// scoring.go — per-player scoring rules: raw round performance → RP, and the
// handicap adjustment state machine. These are the leaf rules everything else
// (group bonuses, standings) builds on.
package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// RoundInput is one player's raw performance in a single Stableford round,
// plus any group-level bonus RP that was computed for them beforehand.
type RoundInput struct {
	Stableford  int  // Stableford points scored (0–60)
	HolesPlayed int  // 18 or 9; decides the target and the participation credit
	CleanSheet  bool // No zero-point hole
	HoleInOne   bool
	RoadWarrior bool // First time playing this course

	// BonusRP carries group-level bonuses (winner-of-the-day share, giant slayer)
	// into the single scoring pass, so rounding is applied exactly once to the
	// whole amount rather than per term.
	BonusRP    float64
	BonusNotes []string

	// SeasonParticipation is how much participation credit the player has already
	// banked this season. Only consulted when Config.ParticipationSeasonCap is set.
	SeasonParticipation float64
}

// RoundScore is the scored outcome of one round: the signed RP total and a
// human-readable trail of every contributing term. The trail is for history
// display and audits only — nothing ever parses it back.
type RoundScore struct {
	RP    float64
	Trail string
}

// stablefordTarget returns the par Stableford score for a round: 36 points over
// 18 holes (2 per hole), 18 over 9.
func stablefordTarget(holes int) int {
	return holes * 2
}

// ScoreRound converts one player's raw round into base RP.
//
// The performance term is asymmetric on purpose:
//   - at or above target, every extra point is worth 2 RP ("double-down")
//   - below target, the deficit is halved and rounded half-away-from-zero,
//     so bad days sting but don't crater a player's total (−9 → −5)
//
// Participation is credited unconditionally (showing up is the point of the
// league), and the flat bonuses stack on top with no overall cap.
func ScoreRound(in RoundInput, cfg Config) RoundScore {
	target := stablefordTarget(in.HolesPlayed)
	diff := in.Stableford - target

	var trail []string
	var total float64

	// 1. Performance
	var perf float64
	if diff >= 0 {
		perf = float64(diff) * 2
		trail = append(trail, fmt.Sprintf("Stbl Perf (+%g)", perf))
	} else {
		perf = math.Round(float64(diff) / 2)
		trail = append(trail, fmt.Sprintf("Stbl Perf (%g)", perf))
	}
	total += perf

	// 2. Participation (optionally capped per season)
	part := cfg.Participation18
	if in.HolesPlayed <= 9 {
		part = cfg.Participation9
	}
	if cfg.ParticipationSeasonCap > 0 {
		headroom := cfg.ParticipationSeasonCap - in.SeasonParticipation
		if headroom < 0 {
			headroom = 0
		}
		if part > headroom {
			part = headroom
		}
	}
	if part > 0 {
		total += part
		trail = append(trail, fmt.Sprintf("Part (+%s)", fmtRP(part)))
	}

	// 3. Group-level bonuses computed by the caller (pot share, giant slayer)
	total += in.BonusRP
	trail = append(trail, in.BonusNotes...)

	// 4. Individual flat bonuses
	if in.RoadWarrior {
		total += cfg.RoadWarriorBonus
		trail = append(trail, fmt.Sprintf("Road Warrior (+%s)", fmtRP(cfg.RoadWarriorBonus)))
	}
	if in.CleanSheet {
		total += cfg.CleanSheetBonus
		trail = append(trail, fmt.Sprintf("Clean Sheet (+%s)", fmtRP(cfg.CleanSheetBonus)))
	}
	if in.HoleInOne {
		total += cfg.HoleInOneBonus
		trail = append(trail, fmt.Sprintf("Hole-in-One (+%s)", fmtRP(cfg.HoleInOneBonus)))
	}

	return RoundScore{RP: total, Trail: strings.Join(trail, ", ")}
}

// NewHandicap derives a player's handicap after a round from their current
// handicap and Stableford score.
//
// Players above the sandbagger threshold are handled outside the band table:
// beating target proves the handicap is inflated, so it's cut by the full
// overshoot (optionally capped). Everyone else moves by the first matching
// band in Config.HandicapBands. The result is rounded to one decimal and
// never drops below zero.
func NewHandicap(current float64, stableford int, cfg Config) float64 {
	next := current

	if current > cfg.SandbaggerThreshold && stableford > stablefordTarget(18) {
		cut := float64(stableford - stablefordTarget(18))
		if cfg.SandbaggerMaxCut > 0 && cut > cfg.SandbaggerMaxCut {
			cut = cfg.SandbaggerMaxCut
		}
		next = current - cut
	} else {
		for _, band := range cfg.HandicapBands {
			if stableford >= band.MinScore && stableford <= band.MaxScore {
				next = current + band.Delta
				break
			}
		}
	}

	next = math.Round(next*10) / 10
	if next < 0 {
		next = 0.0
	}
	return next
}

// SeasonOf maps a date onto the league calendar. The year is split into four
// numbered seasons with two short special windows: the Kings Cup in late June
// and the Finals in late December.
func SeasonOf(t time.Time) string {
	m, d := t.Month(), t.Day()
	switch {
	case m <= time.March:
		return "Season 1"
	case m <= time.May || (m == time.June && d <= 20):
		return "Season 2"
	case m == time.June: // June 21–30
		return "Kings Cup"
	case m <= time.September:
		return "Season 3"
	case m <= time.November || (m == time.December && d <= 20):
		return "Season 4"
	default: // December 21–31
		return "Finals"
	}
}

// fmtRP renders an RP amount without trailing zeros: 3 → "3", 1.5 → "1.5".
// Pot splits can produce fractional shares (a three-way split of 4 is 1.33…)
// and the note trail should read naturally either way, so display values are
// rounded to two decimals and then trimmed. Only the trail is rounded — the
// RP arithmetic itself keeps the exact value.
func fmtRP(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
