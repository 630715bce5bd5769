// awards.go — the floating seasonal trophies ("Hall of Fame"). Nothing here is
// ever persisted: every call recomputes the holders from the full history, so
// logging one more round can silently move a trophy to a new player. That is
// the intended behavior — the trophies float.
package engine

import (
	"fmt"
	"sort"

	"github.com/fairwayleague/backend/internal/models"
)

// Award identifies one of the four floating trophies.
type Award string

const (
	AwardSniper    Award = "Sniper"    // Lowest gross score
	AwardRock      Award = "Rock"      // Best Stableford average
	AwardConqueror Award = "Conqueror" // Most wins
	AwardRocket    Award = "Rocket"    // Best handicap improvement
)

// Title returns the trophy's display name.
func (a Award) Title() string { return "The " + string(a) }

// AwardState is one trophy's outcome for a single recomputation pass.
// A vacant trophy (nobody eligible) has neither Holder nor Tied set — that is
// a normal state, not an error. An unresolved tie lists every tied name and
// withholds the bonus; callers must show all of them.
type AwardState struct {
	Holder string   // Sole holder, or "" if vacant or tied
	Tied   []string // Tied claimants when head-to-head couldn't separate them
	Reason string   // How the holder was decided (tie-break reason)
	Stat   string   // Display stat: the winning number, or why the trophy is vacant
	Bonus  float64  // RP overlay granted to the holder (0 unless Holder is set)
}

// AwardsSnapshot is the outcome of one full award recomputation: the state of
// every trophy plus the per-player bonus-RP overlay for the standings view.
// The overlay is ephemeral — it is never written back to any player record.
type AwardsSnapshot struct {
	Awards  map[Award]AwardState
	Bonuses map[string]float64
}

// ComputeAwards recomputes all four floating trophies from scratch.
//
// The function is pure and idempotent: identical players+history in, identical
// holders and bonuses out, with no hidden state between calls. Each trophy is
// computed independently, so one player can hold several at once and each
// bonus stacks on their displayed standing.
func ComputeAwards(players []models.Player, history []models.MatchRecord, cfg Config) AwardsSnapshot {
	snap := AwardsSnapshot{
		Awards:  make(map[Award]AwardState, 4),
		Bonuses: make(map[string]float64, len(players)),
	}

	// Stroke-play rounds only: rivalry rows don't track a meaningful gross or
	// Stableford score, and the noise floor drops malformed legacy entries.
	var strokePlay []models.MatchRecord
	for _, rec := range history {
		if rec.MatchType == models.MatchTypeStandard && rec.GrossScore > cfg.GrossNoiseFloor {
			strokePlay = append(strokePlay, rec)
		}
	}

	snap.award(AwardSniper, sniper(strokePlay, cfg), history, cfg.SniperBonus)
	snap.award(AwardRock, rock(strokePlay, cfg), history, cfg.RockBonus)
	snap.award(AwardConqueror, conqueror(history, cfg), history, cfg.ConquerorBonus)
	snap.award(AwardRocket, rocket(players, cfg), history, cfg.RocketBonus)

	return snap
}

// contenders is the intermediate result of one trophy's eligibility pass:
// either a set of tied candidates with the winning stat, or a vacancy reason.
type contenders struct {
	names  []string
	stat   string
	vacant string // non-empty = trophy is vacant this pass, with this display reason
}

// award runs the shared finish for a trophy: head-to-head tie-break, bonus
// grant, and state recording.
func (s *AwardsSnapshot) award(a Award, c contenders, history []models.MatchRecord, bonus float64) {
	if c.vacant != "" {
		s.Awards[a] = AwardState{Stat: c.vacant}
		return
	}

	outcome := ResolveTie(c.names, history)
	state := AwardState{Reason: outcome.Reason, Stat: c.stat}
	if outcome.Resolved() {
		state.Holder = outcome.Winner
		state.Bonus = bonus
		s.Bonuses[outcome.Winner] += bonus
	} else {
		state.Tied = outcome.Tied
	}
	s.Awards[a] = state
}

// sniper finds the lowest gross score on record.
func sniper(strokePlay []models.MatchRecord, cfg Config) contenders {
	if len(strokePlay) == 0 {
		return contenders{vacant: "No Rounds"}
	}
	min := strokePlay[0].GrossScore
	for _, rec := range strokePlay[1:] {
		if rec.GrossScore < min {
			min = rec.GrossScore
		}
	}
	set := make(map[string]bool)
	for _, rec := range strokePlay {
		if rec.GrossScore == min {
			set[rec.PlayerName] = true
		}
	}
	return contenders{names: sortedNames(set), stat: fmt.Sprintf("%d", min)}
}

// rock finds the best mean Stableford score among players with enough rounds.
func rock(strokePlay []models.MatchRecord, cfg Config) contenders {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, rec := range strokePlay {
		sums[rec.PlayerName] += rec.Stableford
		counts[rec.PlayerName]++
	}

	best := -1.0
	avgs := make(map[string]float64)
	for name, n := range counts {
		if n < cfg.RockMinRounds {
			continue
		}
		avg := float64(sums[name]) / float64(n)
		avgs[name] = avg
		if avg > best {
			best = avg
		}
	}
	if len(avgs) == 0 {
		return contenders{vacant: fmt.Sprintf("Min %d Rounds", cfg.RockMinRounds)}
	}

	set := make(map[string]bool)
	for name, avg := range avgs {
		if avg == best {
			set[name] = true
		}
	}
	return contenders{names: sortedNames(set), stat: fmt.Sprintf("%.2f", best)}
}

// conqueror finds the player with the most wins across every format, requiring
// a minimum win count before the trophy is handed out at all.
func conqueror(history []models.MatchRecord, cfg Config) contenders {
	wins := CountWins(history)

	best := 0
	eligible := make(map[string]int)
	for name, w := range wins {
		if w < cfg.ConquerorMinWins {
			continue
		}
		eligible[name] = w
		if w > best {
			best = w
		}
	}
	if len(eligible) == 0 {
		return contenders{vacant: fmt.Sprintf("Min %d Wins", cfg.ConquerorMinWins)}
	}

	set := make(map[string]bool)
	for name, w := range eligible {
		if w == best {
			set[name] = true
		}
	}
	return contenders{names: sortedNames(set), stat: fmt.Sprintf("%d", best)}
}

// rocket finds the biggest positive handicap drop since registration among
// players with enough rounds. Nobody improving means a vacant trophy.
func rocket(players []models.Player, cfg Config) contenders {
	eligible := false
	best := 0.0
	progress := make(map[string]float64)
	for _, p := range players {
		if p.RoundsPlayed < cfg.RocketMinRounds {
			continue
		}
		eligible = true
		prog := p.StartingHandicap - p.Handicap
		progress[p.Name] = prog
		if prog > best {
			best = prog
		}
	}
	if !eligible {
		return contenders{vacant: fmt.Sprintf("Min %d Rnds", cfg.RocketMinRounds)}
	}
	if best <= 0 {
		return contenders{vacant: "No Drop"}
	}

	set := make(map[string]bool)
	for name, prog := range progress {
		if prog == best {
			set[name] = true
		}
	}
	return contenders{names: sortedNames(set), stat: fmt.Sprintf("-%.1f", best)}
}

// CountWins tallies each player's wins across the whole history. A win is
// derived from the rows themselves, never from parsing note strings:
//
//   - standard cohort of 2+: best Stableford score (sole or joint) is a win
//   - duel: fewer strokes wins; on a stroke tie the stakes already decided it,
//     so the row holding positive RP is the winner
//   - alliance: the team with more holes won; both its players get the win
//
// Solo rounds don't count — there was nobody to beat.
func CountWins(history []models.MatchRecord) map[string]int {
	wins := make(map[string]int)
	for _, round := range groupRounds(history) {
		if len(round) < 2 {
			continue
		}
		switch round[0].MatchType {
		case models.MatchTypeStandard:
			best := round[0].Stableford
			for _, rec := range round[1:] {
				if rec.Stableford > best {
					best = rec.Stableford
				}
			}
			for _, rec := range round {
				if rec.Stableford == best {
					wins[rec.PlayerName]++
				}
			}

		case models.MatchTypeDuel:
			if len(round) != 2 {
				continue
			}
			a, b := round[0], round[1]
			switch {
			case a.GrossScore < b.GrossScore:
				wins[a.PlayerName]++
			case b.GrossScore < a.GrossScore:
				wins[b.PlayerName]++
			case a.RPEarned > b.RPEarned:
				wins[a.PlayerName]++
			case b.RPEarned > a.RPEarned:
				wins[b.PlayerName]++
			}

		case models.MatchTypeAlliance:
			// GrossScore on an alliance row is that player's team holes won.
			best, worst := round[0].GrossScore, round[0].GrossScore
			for _, rec := range round[1:] {
				if rec.GrossScore > best {
					best = rec.GrossScore
				}
				if rec.GrossScore < worst {
					worst = rec.GrossScore
				}
			}
			if best == worst { // tied match
				continue
			}
			for _, rec := range round {
				if rec.GrossScore == best {
					wins[rec.PlayerName]++
				}
			}
		}
	}
	return wins
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
