// tiebreak.go — head-to-head tie resolution. When several players are level on
// some award metric, the league settles it by who actually beat whom when they
// were on the course at the same time.
package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/fairwayleague/backend/internal/models"
)

// TieOutcome is the result of a head-to-head resolution. Exactly one of Winner
// or Tied is populated (both empty only for the no-candidates case). An
// unresolved tie is NOT an error: callers must display every name in Tied and
// never pick one arbitrarily.
type TieOutcome struct {
	Winner string   // Single resolved winner, or "" if none
	Tied   []string // Residual tied set when no single winner emerges
	Reason string   // Why the resolution ended the way it did
}

// Resolved reports whether a single winner emerged.
func (t TieOutcome) Resolved() bool { return t.Winner != "" }

// ResolveTie settles a tie between candidates using the full match history:
// every historical round that contained two or more of the candidates counts as
// a head-to-head meeting, and whoever posted the round's best Stableford score
// among the candidates present takes a head-to-head win (all of them, if they
// tied within the round too). Most head-to-head wins takes the tie.
//
// Determinism matters here — the award engine calls this for every trophy on
// every recomputation, so the same history must always give the same answer.
// The function only reads its arguments; the Tied slice preserves the
// candidates' input order.
func ResolveTie(candidates []string, history []models.MatchRecord) TieOutcome {
	if len(candidates) == 0 {
		return TieOutcome{Reason: "No Candidates"}
	}
	if len(candidates) == 1 {
		return TieOutcome{Winner: candidates[0], Reason: "Clear Winner"}
	}
	if len(history) == 0 {
		return TieOutcome{Tied: candidates, Reason: "No History"}
	}

	candidate := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		candidate[c] = true
	}

	wins := make(map[string]int, len(candidates))
	met := false

	for _, round := range groupRounds(history) {
		// Which candidates were in this round?
		var present []models.MatchRecord
		for _, rec := range round {
			if candidate[rec.PlayerName] {
				present = append(present, rec)
			}
		}
		if len(present) < 2 {
			continue
		}
		met = true

		best := present[0].Stableford
		for _, rec := range present[1:] {
			if rec.Stableford > best {
				best = rec.Stableford
			}
		}
		for _, rec := range present {
			if rec.Stableford == best {
				wins[rec.PlayerName]++
			}
		}
	}

	if !met {
		return TieOutcome{Tied: candidates, Reason: "Tie Unresolved (Never played together)"}
	}

	maxWins := 0
	for _, w := range wins {
		if w > maxWins {
			maxWins = w
		}
	}
	var best []string
	for _, c := range candidates { // input order keeps the result stable
		if wins[c] == maxWins {
			best = append(best, c)
		}
	}

	if len(best) == 1 {
		return TieOutcome{Winner: best[0], Reason: fmt.Sprintf("Won H2H (%d wins)", maxWins)}
	}
	return TieOutcome{Tied: best, Reason: "Tie Unresolved (Equal H2H record)"}
}

// groupRounds buckets the history into rounds. Rows normally share a match
// group id; legacy rows predating group ids fall back to date+course, which
// was how simultaneous play was identified before the id existed.
func groupRounds(history []models.MatchRecord) map[string][]models.MatchRecord {
	rounds := make(map[string][]models.MatchRecord)
	for _, rec := range history {
		key := rec.MatchGroupID.String()
		if rec.MatchGroupID == uuid.Nil {
			key = rec.Date.Format("2006-01-02") + "|" + rec.Course
		}
		rounds[key] = append(rounds[key], rec)
	}
	return rounds
}
