// rivalry.go — 1v1 duel and 2v2 alliance resolution. Rivalry formats don't use
// Stableford scoring or touch handicaps: they move fixed RP stakes between the
// participants based purely on who won.
package engine

import "fmt"

// DuelSide is one participant in a 1v1 duel.
type DuelSide struct {
	Name     string
	Strokes  int     // Total gross strokes for the round
	Handicap float64 // Current handicap, used for the tie-break and stake sizing
}

// DuelOutcome is a resolved duel. Winner is empty on an absolute tie.
// RP1/RP2 and Notes1/Notes2 line up with the two DuelSide arguments in order.
type DuelOutcome struct {
	Winner string
	Reason string
	Stakes float64
	RP1    float64
	RP2    float64
	Notes1 string
	Notes2 string
}

// ResolveDuel decides a 1v1 duel:
//
//   - fewer gross strokes wins outright ("Lower Strokes")
//   - a stroke tie goes to the HIGHER handicap — the underdog earned the tie
//     against a stronger player ("Tie-Breaker (Underdog)")
//   - equal strokes and equal handicaps is an absolute tie: nothing changes hands
//
// Stakes scale with the upset: an underdog win moves ±DuelUpsetStake, a
// favorite win only ±DuelStake. The loser's RP is the exact negative of the
// winner's, so a duel never mints or destroys RP.
func ResolveDuel(p1, p2 DuelSide, cfg Config) (DuelOutcome, error) {
	if p1.Name == "" || p2.Name == "" {
		return DuelOutcome{}, fmt.Errorf("both duel players must be named")
	}
	if p1.Name == p2.Name {
		return DuelOutcome{}, fmt.Errorf("a duel needs two different players, got %q twice", p1.Name)
	}

	out := DuelOutcome{}
	switch {
	case p1.Strokes < p2.Strokes:
		out.Winner, out.Reason = p1.Name, "Lower Strokes"
	case p2.Strokes < p1.Strokes:
		out.Winner, out.Reason = p2.Name, "Lower Strokes"
	case p1.Handicap > p2.Handicap:
		out.Winner, out.Reason = p1.Name, "Tie-Breaker (Underdog)"
	case p2.Handicap > p1.Handicap:
		out.Winner, out.Reason = p2.Name, "Tie-Breaker (Underdog)"
	default:
		out.Reason = "Absolute Tie"
		out.Notes1, out.Notes2 = "Duel Tie", "Duel Tie"
		return out, nil
	}

	// Stake size depends on whether the winner went in as the underdog.
	winnerHcp, loserHcp := p1.Handicap, p2.Handicap
	if out.Winner == p2.Name {
		winnerHcp, loserHcp = p2.Handicap, p1.Handicap
	}
	out.Stakes = cfg.DuelStake
	if winnerHcp > loserHcp {
		out.Stakes = cfg.DuelUpsetStake
	}

	if out.Winner == p1.Name {
		out.RP1, out.RP2 = out.Stakes, -out.Stakes
	} else {
		out.RP1, out.RP2 = -out.Stakes, out.Stakes
	}
	out.Notes1 = duelNote(out.RP1)
	out.Notes2 = duelNote(out.RP2)
	return out, nil
}

func duelNote(rp float64) string {
	if rp > 0 {
		return fmt.Sprintf("Duel Win (+%s)", fmtRP(rp))
	}
	return fmt.Sprintf("Duel Loss (%s)", fmtRP(rp))
}

// AllianceInput is a 2v2 alliance match: two named teams and how many holes
// each team won. Debutants marks players making their first-ever alliance
// appearance (looked up from history by the caller); they receive the one-time
// Duo Debut bonus regardless of the match result.
type AllianceInput struct {
	TeamA     [2]string
	TeamB     [2]string
	HolesA    int
	HolesB    int
	Debutants map[string]bool
}

// AllianceResult is the outcome for one of the four alliance participants.
type AllianceResult struct {
	Name     string
	OnTeamA  bool
	HolesWon int // Their team's holes-won count, recorded on their row
	RP       float64
	Notes    string
}

// ResolveAlliance decides a 2v2 alliance: more holes won takes the match, and
// every player on the winning team gains AllianceStake RP while every loser
// drops the same amount. Equal holes is a tie worth nothing. Stakes are flat —
// handicaps play no part in team matches.
//
// Results are returned in submission order: team A's two players, then team B's.
func ResolveAlliance(in AllianceInput, cfg Config) ([]AllianceResult, error) {
	names := []string{in.TeamA[0], in.TeamA[1], in.TeamB[0], in.TeamB[1]}
	seen := make(map[string]bool, 4)
	for _, n := range names {
		if n == "" {
			return nil, fmt.Errorf("an alliance needs two full teams of two players")
		}
		if seen[n] {
			return nil, fmt.Errorf("player %q appears on more than one alliance slot", n)
		}
		seen[n] = true
	}

	var winRP, loseRP float64
	tie := in.HolesA == in.HolesB
	if !tie {
		winRP, loseRP = cfg.AllianceStake, -cfg.AllianceStake
	}

	results := make([]AllianceResult, 0, 4)
	for i, n := range names {
		onA := i < 2
		holes := in.HolesA
		if !onA {
			holes = in.HolesB
		}

		var rp float64
		var note string
		switch {
		case tie:
			note = "Alliance Tie"
		case (onA && in.HolesA > in.HolesB) || (!onA && in.HolesB > in.HolesA):
			rp = winRP
			note = fmt.Sprintf("Alliance Win (+%s)", fmtRP(winRP))
		default:
			rp = loseRP
			note = fmt.Sprintf("Alliance Loss (%s)", fmtRP(loseRP))
		}

		if in.Debutants[n] {
			rp += cfg.DuoDebutBonus
			note += fmt.Sprintf(", Duo Debut (+%s)", fmtRP(cfg.DuoDebutBonus))
		}

		results = append(results, AllianceResult{
			Name:     n,
			OnTeamA:  onA,
			HolesWon: holes,
			RP:       rp,
			Notes:    note,
		})
	}
	return results, nil
}
