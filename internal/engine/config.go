// Package engine implements the league's ranking & awards rules as pure functions.
//
// Nothing in this package touches the network or the database. Every function takes
// plain inputs (scores, players, match history, a Config) and returns plain outputs
// (RP deltas, note trails, award holders). The HTTP handlers read state through
// internal/store, call into here, and persist the results — which keeps every rule
// in this package unit-testable with no infrastructure at all.
//
// All tunable numbers live in Config below rather than being scattered through the
// rule code as literals. League rules get argued about and revised between seasons;
// a single table of knobs makes each revision a one-line diff.
package engine

// HandicapBand is one row of the handicap adjustment table: if a round's Stableford
// score falls in [MinScore, MaxScore], the player's handicap moves by Delta.
// Bands are evaluated top-down and the first match wins, so the table can be
// reordered or refined (e.g. adding a ≥45 → −5.0 band) without touching code.
type HandicapBand struct {
	MinScore int     // Inclusive lower bound on the Stableford score
	MaxScore int     // Inclusive upper bound
	Delta    float64 // Signed handicap change; negative = handicap cut
}

// PotTier is one row of the winner-of-the-day pot table: a cohort of at least
// MinPlayers simultaneous players plays for a pot of Pot RP. Tiers are evaluated
// top-down (largest MinPlayers first) and the first match wins.
type PotTier struct {
	MinPlayers int
	Pot        float64
}

// Config holds every tunable rule parameter in one place.
// Use DefaultConfig() for the league's current rule book; tests and rule
// experiments construct variants by tweaking individual fields.
type Config struct {
	// --- Scoring (per-player, per-round) ---

	Participation18 float64 // Unconditional credit for completing an 18-hole round
	Participation9  float64 // Unconditional credit for completing a 9-hole round

	// ParticipationSeasonCap limits how much participation credit a player can
	// accumulate per season. 0 disables the cap. When enabled, the marginal credit
	// is clamped to the remaining headroom and never goes negative.
	ParticipationSeasonCap float64

	CleanSheetBonus  float64 // No zero-point hole in the round
	HoleInOneBonus   float64
	RoadWarriorBonus float64 // First round at a course new to the player

	// --- Handicap adjustment ---

	HandicapBands []HandicapBand

	// SandbaggerThreshold: a player whose handicap exceeds this is treated under
	// the sandbagger rule instead of the band table — scoring above target cuts
	// their handicap by the full overshoot.
	SandbaggerThreshold float64
	// SandbaggerMaxCut caps the sandbagger overshoot cut. 0 means uncapped.
	SandbaggerMaxCut float64

	// --- Group bonuses ---

	PotTiers         []PotTier // Winner-of-the-day pot by cohort size; halved for 9-hole rounds
	GiantSlayerBonus float64   // Per higher-ranked opponent out-scored in the same cohort

	// --- Rivalry stakes ---

	DuelStake      float64 // ±RP when the favorite (lower handicap) wins a duel
	DuelUpsetStake float64 // ±RP when the underdog (higher handicap) wins a duel
	AllianceStake  float64 // ±RP per player in a decided 2v2 alliance
	DuoDebutBonus  float64 // One-time credit on a player's first alliance appearance

	// --- Seasonal awards ---

	GrossNoiseFloor  int     // Gross scores at or below this are ignored by gross-based awards
	SniperBonus      float64 // "The Sniper": lowest gross score
	RockMinRounds    int     // Eligibility threshold for "The Rock"
	RockBonus        float64 // "The Rock": best scoring average
	ConquerorMinWins int     // Eligibility threshold for "The Conqueror"
	ConquerorBonus   float64 // "The Conqueror": most wins
	RocketMinRounds  int     // Eligibility threshold for "The Rocket"
	RocketBonus      float64 // "The Rocket": best handicap improvement
}

// DefaultConfig returns the league's current rule book.
func DefaultConfig() Config {
	return Config{
		Participation18:        2,
		Participation9:         1,
		ParticipationSeasonCap: 0, // no cap

		CleanSheetBonus:  2,
		HoleInOneBonus:   10,
		RoadWarriorBonus: 2,

		HandicapBands: []HandicapBand{
			{MinScore: 40, MaxScore: maxStableford, Delta: -2.0},
			{MinScore: 37, MaxScore: 39, Delta: -1.0},
			{MinScore: 27, MaxScore: 36, Delta: 0},
			{MinScore: 0, MaxScore: 26, Delta: +1.0},
		},
		SandbaggerThreshold: 36,
		SandbaggerMaxCut:    0, // uncapped

		PotTiers: []PotTier{
			{MinPlayers: 4, Pot: 6},
			{MinPlayers: 3, Pot: 4},
			{MinPlayers: 2, Pot: 2},
		},
		GiantSlayerBonus: 1,

		DuelStake:      5,
		DuelUpsetStake: 10,
		AllianceStake:  5,
		DuoDebutBonus:  5,

		GrossNoiseFloor:  20,
		SniperBonus:      5,
		RockMinRounds:    5,
		RockBonus:        10,
		ConquerorMinWins: 3,
		ConquerorBonus:   10,
		RocketMinRounds:  3,
		RocketBonus:      10,
	}
}

// maxStableford is a practical ceiling for Stableford scores (the record form caps
// entry at 60); used as the open upper bound of the top handicap band.
const maxStableford = 60
