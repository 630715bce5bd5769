package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairwayleague/backend/internal/models"
)

func record(name string, rp, newHcp float64) models.MatchRecord {
	date, _ := time.Parse("2006-01-02", "2026-02-01")
	return models.MatchRecord{
		PlayerName:  name,
		Date:        date,
		Season:      "Season 1",
		Course:      "Pine Valley",
		MatchType:   models.MatchTypeStandard,
		GrossScore:  82,
		Stableford:  36,
		RPEarned:    rp,
		NewHandicap: newHcp,
	}
}

func TestFakeStorePlayers(t *testing.T) {
	s := NewFakeStore()

	t.Run("create and fetch", func(t *testing.T) {
		require.NoError(t, s.CreatePlayer("Alice", 18))
		p, err := s.GetPlayer("Alice")
		require.NoError(t, err)
		assert.Equal(t, 18.0, p.Handicap)
		assert.Equal(t, 18.0, p.StartingHandicap)
		assert.Zero(t, p.TotalRP)
	})

	t.Run("duplicate names are rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.CreatePlayer("Alice", 10), ErrPlayerExists)
	})

	t.Run("missing players surface the sentinel", func(t *testing.T) {
		_, err := s.GetPlayer("Nobody")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
		assert.ErrorIs(t, s.DeletePlayer("Nobody"), ErrPlayerNotFound)
	})

	t.Run("roster is ordered by total RP", func(t *testing.T) {
		require.NoError(t, s.CreatePlayer("Bob", 20))
		_, err := s.AppendRoundGroup([]models.MatchRecord{record("Bob", 12, 19)})
		require.NoError(t, err)

		players, err := s.LoadAllPlayers()
		require.NoError(t, err)
		require.Len(t, players, 2)
		assert.Equal(t, "Bob", players[0].Name)
	})

	t.Run("deleting a player cascades to their records", func(t *testing.T) {
		require.NoError(t, s.DeletePlayer("Bob"))
		rounds, err := s.LoadAllRounds()
		require.NoError(t, err)
		assert.Empty(t, rounds)
	})
}

func TestFakeStoreRoundGroups(t *testing.T) {
	newStore := func(t *testing.T) *FakeStore {
		t.Helper()
		s := NewFakeStore()
		require.NoError(t, s.CreatePlayer("Alice", 18))
		require.NoError(t, s.CreatePlayer("Bob", 22))
		return s
	}

	t.Run("append applies every player's deltas", func(t *testing.T) {
		s := newStore(t)
		groupID, err := s.AppendRoundGroup([]models.MatchRecord{
			record("Alice", 10, 16),
			record("Bob", 2, 22),
		})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, groupID)

		alice, _ := s.GetPlayer("Alice")
		assert.Equal(t, 10.0, alice.TotalRP)
		assert.Equal(t, 16.0, alice.Handicap)
		assert.Equal(t, 1, alice.RoundsPlayed)

		rounds, err := s.LoadAllRounds()
		require.NoError(t, err)
		require.Len(t, rounds, 2)
		for _, rec := range rounds {
			assert.Equal(t, groupID, rec.MatchGroupID)
			assert.NotEqual(t, uuid.Nil, rec.ID)
		}
	})

	t.Run("an unknown player aborts the whole group", func(t *testing.T) {
		s := newStore(t)
		_, err := s.AppendRoundGroup([]models.MatchRecord{
			record("Alice", 10, 16),
			record("Ghost", 5, 20),
		})
		require.ErrorIs(t, err, ErrPlayerNotFound)

		// Nothing was applied.
		alice, _ := s.GetPlayer("Alice")
		assert.Zero(t, alice.TotalRP)
		assert.Zero(t, alice.RoundsPlayed)
		rounds, _ := s.LoadAllRounds()
		assert.Empty(t, rounds)
	})

	t.Run("delete round-trips RP and round counts exactly", func(t *testing.T) {
		s := newStore(t)
		groupID, err := s.AppendRoundGroup([]models.MatchRecord{
			record("Alice", 10, 16),
			record("Bob", -5, 22),
		})
		require.NoError(t, err)

		require.NoError(t, s.DeleteRoundGroup(groupID))

		alice, _ := s.GetPlayer("Alice")
		bob, _ := s.GetPlayer("Bob")
		assert.Zero(t, alice.TotalRP)
		assert.Zero(t, alice.RoundsPlayed)
		assert.Zero(t, bob.TotalRP)
		assert.Zero(t, bob.RoundsPlayed)

		rounds, _ := s.LoadAllRounds()
		assert.Empty(t, rounds)
	})

	t.Run("deleting an unknown group errors without side effects", func(t *testing.T) {
		s := newStore(t)
		_, err := s.AppendRoundGroup([]models.MatchRecord{record("Alice", 10, 16)})
		require.NoError(t, err)

		assert.ErrorIs(t, s.DeleteRoundGroup(uuid.New()), ErrGroupNotFound)
		alice, _ := s.GetPlayer("Alice")
		assert.Equal(t, 10.0, alice.TotalRP)
	})

	t.Run("a deleted player is skipped during reversal", func(t *testing.T) {
		s := newStore(t)
		groupID, err := s.AppendRoundGroup([]models.MatchRecord{
			record("Alice", 10, 16),
			record("Bob", 4, 21),
		})
		require.NoError(t, err)

		require.NoError(t, s.DeletePlayer("Bob"))
		require.NoError(t, s.DeleteRoundGroup(groupID))

		alice, _ := s.GetPlayer("Alice")
		assert.Zero(t, alice.TotalRP)
	})

	t.Run("rounds come back newest first", func(t *testing.T) {
		s := newStore(t)
		first := record("Alice", 2, 18)
		first.Course = "Old Course"
		_, err := s.AppendRoundGroup([]models.MatchRecord{first})
		require.NoError(t, err)

		second := record("Alice", 4, 18)
		second.Course = "Links End"
		_, err = s.AppendRoundGroup([]models.MatchRecord{second})
		require.NoError(t, err)

		rounds, err := s.LoadAllRounds()
		require.NoError(t, err)
		require.Len(t, rounds, 2)
		assert.Equal(t, "Links End", rounds[0].Course)
	})
}

func TestFakeStoreHasPlayedAlliance(t *testing.T) {
	s := NewFakeStore()
	require.NoError(t, s.CreatePlayer("Alice", 18))

	played, err := s.HasPlayedAlliance("Alice")
	require.NoError(t, err)
	assert.False(t, played)

	rec := record("Alice", 5, 18)
	rec.MatchType = models.MatchTypeAlliance
	_, err = s.AppendRoundGroup([]models.MatchRecord{rec})
	require.NoError(t, err)

	played, err = s.HasPlayedAlliance("Alice")
	require.NoError(t, err)
	assert.True(t, played)
}
