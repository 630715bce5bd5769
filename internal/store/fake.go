// fake.go — an in-memory Store with the same transactional semantics as the
// real one. Tests use it to exercise submission/deletion round-trips without a
// database; it's also handy for poking at rule changes locally.
package store

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/fairwayleague/backend/internal/models"
)

// FakeStore keeps players and match records in memory. Safe for concurrent
// use, though tests are single-threaded in practice.
type FakeStore struct {
	mu      sync.Mutex
	players map[string]*models.Player
	rounds  []models.MatchRecord
}

// NewFakeStore returns an empty in-memory store.
func NewFakeStore() *FakeStore {
	return &FakeStore{players: make(map[string]*models.Player)}
}

func (s *FakeStore) LoadAllPlayers() ([]models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalRP != out[j].TotalRP {
			return out[i].TotalRP > out[j].TotalRP
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *FakeStore) LoadAllRounds() ([]models.MatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Newest first, matching the real store's ordering.
	out := make([]models.MatchRecord, len(s.rounds))
	for i, rec := range s.rounds {
		out[len(s.rounds)-1-i] = rec
	}
	return out, nil
}

func (s *FakeStore) GetPlayer(name string) (models.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[name]
	if !ok {
		return models.Player{}, ErrPlayerNotFound
	}
	return *p, nil
}

func (s *FakeStore) CreatePlayer(name string, handicap float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[name]; ok {
		return ErrPlayerExists
	}
	s.players[name] = &models.Player{
		Name:             name,
		Handicap:         handicap,
		StartingHandicap: handicap,
	}
	return nil
}

func (s *FakeStore) DeletePlayer(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[name]; !ok {
		return ErrPlayerNotFound
	}
	delete(s.players, name)
	kept := s.rounds[:0]
	for _, rec := range s.rounds {
		if rec.PlayerName != name {
			kept = append(kept, rec)
		}
	}
	s.rounds = kept
	return nil
}

func (s *FakeStore) AppendRoundGroup(records []models.MatchRecord) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(records) == 0 {
		return uuid.Nil, fmt.Errorf("empty match group")
	}
	// All-or-nothing, like the real transaction: verify every player first.
	for _, rec := range records {
		if _, ok := s.players[rec.PlayerName]; !ok {
			return uuid.Nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, rec.PlayerName)
		}
	}
	groupID := uuid.New()
	for i := range records {
		records[i].MatchGroupID = groupID
		if records[i].ID == uuid.Nil {
			records[i].ID = uuid.New()
		}
		s.rounds = append(s.rounds, records[i])

		p := s.players[records[i].PlayerName]
		p.Handicap = records[i].NewHandicap
		p.TotalRP += records[i].RPEarned
		p.RoundsPlayed++
	}
	return groupID, nil
}

func (s *FakeStore) DeleteRoundGroup(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	kept := s.rounds[:0]
	for _, rec := range s.rounds {
		if rec.MatchGroupID != id {
			kept = append(kept, rec)
			continue
		}
		found = true
		if p, ok := s.players[rec.PlayerName]; ok {
			p.TotalRP -= rec.RPEarned
			p.RoundsPlayed--
		}
		// A missing player is skipped silently, matching the real store.
	}
	if !found {
		return ErrGroupNotFound
	}
	s.rounds = kept
	return nil
}

func (s *FakeStore) HasPlayedAlliance(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.rounds {
		if rec.PlayerName == name && rec.MatchType == models.MatchTypeAlliance {
			return true, nil
		}
	}
	return false, nil
}
