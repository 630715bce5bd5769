// Package models defines the data structures (models) that map to database tables.
// GORM uses these structs to generate SQL queries and map database rows back to Go values.
// The struct field tags (the backtick strings like `gorm:"..."`) tell GORM how to handle
// each field: its column type, constraints, default values, and indexes.
//
// The data model represents a recreational golf league with a ranking-points (RP) economy:
//   - Players register once and carry a live handicap plus accumulated RP
//   - Every submission (a solo round, a multi-player group round, a 1v1 duel, or a
//     2v2 alliance) produces one MatchRecord row PER PLAYER involved
//   - All rows from one submission share a match_group_id so the whole submission
//     can be displayed — and deleted — as a single unit
//
// Standings and seasonal awards are NOT stored anywhere. They are recomputed from the
// full players + match_records tables on every read (see internal/engine), which keeps
// the database free of derived state that could drift out of sync.
package models

import (
	"time"

	// uuid provides universally unique identifiers. Here it identifies a match group:
	// the set of rows created by one submission. Generating it in the application
	// (instead of the database) lets the whole group be built before the first insert.
	"github.com/google/uuid"
)

// --- Enums ---
// Go doesn't have a built-in enum keyword, so we simulate them using a named string type
// plus constants. This gives us type safety — you can't accidentally pass a MatchType
// where a plain string is expected — while keeping values human-readable in the database.

// MatchType describes which format a MatchRecord was produced by.
type MatchType string

const (
	MatchTypeStandard MatchType = "standard" // Stableford stroke play: solo or simultaneous group
	MatchTypeDuel     MatchType = "duel"     // 1v1 rivalry: raw strokes, fixed RP stakes
	MatchTypeAlliance MatchType = "alliance" // 2v2 rivalry: holes won per team, fixed RP stakes
)

// --- Models ---
// Each struct below maps to a database table. GORM uses the struct name (snake_cased and
// pluralized) as the table name by default: Player -> players, MatchRecord -> match_records.

// Player is a registered league member.
//
// Name is the primary key: the league identifies players by display name and the
// engine references them the same way, so there is no separate surrogate id to join
// through. Handicap and TotalRP are the only mutable columns — both move on every
// submission and are reversed when a match group is deleted.
//
// StartingHandicap never changes after registration. It is the baseline for the
// "best handicap improvement" seasonal award (starting minus current).
type Player struct {
	Name             string    `gorm:"primaryKey"`         // Unique display name, e.g. "Tom"
	Handicap         float64   `gorm:"not null"`           // Current handicap; re-derived after every round
	StartingHandicap float64   `gorm:"not null"`           // Handicap at registration; award baseline
	TotalRP          float64   `gorm:"not null;default:0"` // Sum of rp_earned across all match records
	RoundsPlayed     int       `gorm:"not null;default:0"` // How many match records this player appears in
	CreatedAt        time.Time // GORM automatically sets this on create
	UpdatedAt        time.Time // GORM automatically updates this on every save
}

// MatchRecord is one player's row in one submission. A solo round produces 1 row,
// a duel 2, an alliance 4, and a group round one per cohort member — all sharing
// the same MatchGroupID.
//
// Rows are immutable once written. Fixing a mistake means deleting the whole group
// (which reverses every affected player's RP and rounds played) and submitting it
// again — partial edits would let player aggregates drift away from the sum of
// their history.
type MatchRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MatchGroupID uuid.UUID `gorm:"type:uuid;not null;index"` // Groups all rows of one submission
	PlayerName   string    `gorm:"not null;index"`           // References players.name
	Date         time.Time `gorm:"not null"`                 // Day the round was played
	Season       string    `gorm:"not null"`                 // Derived from Date by the league calendar (engine.SeasonOf)
	Course       string    `gorm:"not null"`                 // Course name; rivalry rows get a descriptive label instead
	MatchType    MatchType `gorm:"type:match_type;not null;default:'standard'"`
	GrossScore   int       `gorm:"not null;default:0"`     // Total strokes. Duels hold strokes; alliances hold holes won
	Stableford   int       `gorm:"not null;default:0"`     // Stableford points; 0 for rivalry formats that don't track it
	RPEarned     float64   `gorm:"not null"`               // Signed RP delta applied to the player by this row
	NewHandicap  float64   `gorm:"not null"`               // Player's handicap after this round was applied
	Notes        string    `gorm:"not null;default:''"`    // Human-readable derivation trail, e.g. "Stbl Perf (+8), Part (+2)"
	CleanSheet   bool      `gorm:"not null;default:false"` // No zero-point hole in the round
	HoleInOne    bool      `gorm:"not null;default:false"`
	IsRivalry    bool      `gorm:"not null;default:false"` // True for duel and alliance rows
	CreatedAt    time.Time
}
