// Package store is the engine's persistence collaborator: it loads the full
// player roster and match history, and applies submissions and deletions as
// atomic units. The engine itself never touches a database — handlers read
// through this interface, run the pure engine, and write the results back
// through it.
//
// Two implementations live here: GormStore (PostgreSQL via GORM, the real one)
// and FakeStore (in-memory, used by tests and useful for local experiments).
package store

import (
	"errors"

	"github.com/google/uuid"

	"github.com/fairwayleague/backend/internal/models"
)

var (
	// ErrPlayerNotFound is returned when a named player doesn't exist.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrPlayerExists is returned when registering a name that's already taken.
	ErrPlayerExists = errors.New("player already exists")
	// ErrGroupNotFound is returned when deleting a match group id with no rows.
	ErrGroupNotFound = errors.New("match group not found")
)

// Store is the contract between the engine's callers and persistence.
//
// AppendRoundGroup and DeleteRoundGroup are the only mutations of league
// state, and both are transactional: all rows of a group plus every affected
// player's aggregates (handicap, total RP, rounds played) succeed or fail
// together. Recomputing standings is always safe to re-run because reads
// derive everything from these two tables.
type Store interface {
	// LoadAllPlayers returns the full roster, ordered by descending total RP.
	LoadAllPlayers() ([]models.Player, error)
	// LoadAllRounds returns the full match history, newest first.
	LoadAllRounds() ([]models.MatchRecord, error)
	// GetPlayer looks up one player by name; ErrPlayerNotFound if absent.
	GetPlayer(name string) (models.Player, error)

	// CreatePlayer registers a new player. The starting handicap doubles as the
	// baseline for handicap-improvement tracking. ErrPlayerExists on collision.
	CreatePlayer(name string, handicap float64) error
	// DeletePlayer removes a player and cascades to all their match records.
	DeletePlayer(name string) error

	// AppendRoundGroup atomically persists one submission: it stamps every
	// record with a fresh match group id, inserts the rows, and applies each
	// player's deltas (handicap ← record's NewHandicap, total RP += RPEarned,
	// rounds played += 1). Returns the group id.
	AppendRoundGroup(records []models.MatchRecord) (uuid.UUID, error)
	// DeleteRoundGroup reverses one submission: each affected player's RP and
	// rounds-played contributions are subtracted back out, then the rows are
	// removed. A player who no longer exists is skipped (their reversal is
	// logged, not an error). ErrGroupNotFound if the id matches nothing.
	DeleteRoundGroup(id uuid.UUID) error

	// HasPlayedAlliance reports whether the player has ever appeared in a 2v2
	// alliance match — the Duo Debut bonus triggers on their first.
	HasPlayedAlliance(name string) (bool, error)
}
