// group.go — bonus rules for a cohort of players who played the same round at
// the same time: the winner-of-the-day pot, giant slayer bonuses, and the final
// per-player RP/handicap results for a submission.
package engine

import (
	"fmt"
	"sort"
)

// GroupEntry is one cohort member's raw performance for a simultaneous round.
type GroupEntry struct {
	Name        string
	Stableford  int
	Handicap    float64 // Current handicap, used to derive the post-round handicap
	CleanSheet  bool
	HoleInOne   bool
	RoadWarrior bool
}

// PlayerResult is the engine's verdict for one cohort member: what to persist.
type PlayerResult struct {
	TotalRP     float64
	Notes       string
	NewHandicap float64
}

// ScoreGroup scores a whole simultaneous cohort (a solo round is just a cohort
// of one). On top of each player's individual round score it applies:
//
//  1. Winner of the day: the highest Stableford score in the cohort wins a pot
//     sized by the cohort (2/4/6 RP for 2/3/4+ players, halved over 9 holes).
//     Tied winners split the pot evenly — fractional shares are fine — and
//     their notes carry a "(Tie)" marker.
//  2. Giant slayer: +1 RP for every out-scored opponent who ranked above the
//     player on the standings BEFORE this submission.
//
// priorRP is that pre-submission standings snapshot (name → cumulative RP).
// Passing it in explicitly — rather than re-reading live standings mid-way —
// keeps the calculation pure: the same inputs always produce the same bonuses,
// no matter how far through a batch of submissions we are.
//
// seasonParticipation (optional, may be nil) maps each player to the
// participation credit already banked this season; only consulted when the
// participation cap is enabled in cfg.
func ScoreGroup(entries []GroupEntry, holesPlayed int, priorRP map[string]float64, seasonParticipation map[string]float64, cfg Config) (map[string]PlayerResult, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("empty cohort")
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("cohort entry with empty player name")
		}
		if seen[e.Name] {
			return nil, fmt.Errorf("player %q appears twice in the cohort", e.Name)
		}
		seen[e.Name] = true
	}

	// Winner(s) of the day: everyone who hit the cohort's highest Stableford score.
	highest := entries[0].Stableford
	for _, e := range entries[1:] {
		if e.Stableford > highest {
			highest = e.Stableford
		}
	}
	winners := make(map[string]bool)
	for _, e := range entries {
		if e.Stableford == highest {
			winners[e.Name] = true
		}
	}

	pot := potFor(len(entries), cfg)
	if holesPlayed <= 9 {
		pot /= 2
	}
	share := 0.0
	if pot > 0 {
		share = pot / float64(len(winners))
	}
	isTie := len(winners) > 1

	results := make(map[string]PlayerResult, len(entries))
	for _, e := range entries {
		var bonus float64
		var notes []string

		// A. Winner of the day (split pot). Only meaningful with opposition.
		if winners[e.Name] && len(entries) >= 2 && share > 0 {
			bonus += share
			tie := ""
			if isTie {
				tie = " (Tie)"
			}
			notes = append(notes, fmt.Sprintf("Winner of Day%s (+%s)", tie, fmtRP(share)))
		}

		// B. Giant slayer: out-scoring someone who outranked you, one RP apiece.
		slain := 0.0
		myRP := priorRP[e.Name]
		for _, opp := range entries {
			if opp.Name == e.Name {
				continue
			}
			if e.Stableford > opp.Stableford && priorRP[opp.Name] > myRP {
				slain += cfg.GiantSlayerBonus
			}
		}
		if slain > 0 {
			bonus += slain
			notes = append(notes, fmt.Sprintf("Giant Slayer (+%s)", fmtRP(slain)))
		}

		score := ScoreRound(RoundInput{
			Stableford:          e.Stableford,
			HolesPlayed:         holesPlayed,
			CleanSheet:          e.CleanSheet,
			HoleInOne:           e.HoleInOne,
			RoadWarrior:         e.RoadWarrior,
			BonusRP:             bonus,
			BonusNotes:          notes,
			SeasonParticipation: seasonParticipation[e.Name],
		}, cfg)

		results[e.Name] = PlayerResult{
			TotalRP:     score.RP,
			Notes:       score.Trail,
			NewHandicap: NewHandicap(e.Handicap, e.Stableford, cfg),
		}
	}
	return results, nil
}

// potFor looks up the winner-of-the-day pot for a cohort size. Tiers are
// checked largest-first so the first match wins.
func potFor(players int, cfg Config) float64 {
	tiers := make([]PotTier, len(cfg.PotTiers))
	copy(tiers, cfg.PotTiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MinPlayers > tiers[j].MinPlayers })
	for _, t := range tiers {
		if players >= t.MinPlayers {
			return t.Pot
		}
	}
	return 0
}
