// gorm.go — the PostgreSQL implementation of Store, built on GORM.
// Multi-row mutations use db.Transaction so a failed insert or update rolls
// back the whole submission: a match group must never be half-applied.
package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/fairwayleague/backend/internal/models"
)

// GormStore implements Store against a *gorm.DB handle.
type GormStore struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewGormStore wraps a GORM handle. The logger records non-fatal oddities like
// skipped reversals for deleted players.
func NewGormStore(db *gorm.DB, log *logrus.Logger) *GormStore {
	return &GormStore{db: db, log: log}
}

func (s *GormStore) LoadAllPlayers() ([]models.Player, error) {
	var players []models.Player
	if err := s.db.Order("total_rp DESC, name ASC").Find(&players).Error; err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}
	return players, nil
}

func (s *GormStore) LoadAllRounds() ([]models.MatchRecord, error) {
	var rounds []models.MatchRecord
	if err := s.db.Order("date DESC, created_at DESC").Find(&rounds).Error; err != nil {
		return nil, fmt.Errorf("loading match history: %w", err)
	}
	return rounds, nil
}

func (s *GormStore) GetPlayer(name string) (models.Player, error) {
	var player models.Player
	err := s.db.First(&player, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Player{}, ErrPlayerNotFound
	}
	if err != nil {
		return models.Player{}, fmt.Errorf("loading player %q: %w", name, err)
	}
	return player, nil
}

func (s *GormStore) CreatePlayer(name string, handicap float64) error {
	var count int64
	if err := s.db.Model(&models.Player{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return fmt.Errorf("checking player %q: %w", name, err)
	}
	if count > 0 {
		return ErrPlayerExists
	}
	player := models.Player{
		Name:             name,
		Handicap:         handicap,
		StartingHandicap: handicap, // baseline for handicap-improvement tracking
	}
	if err := s.db.Create(&player).Error; err != nil {
		return fmt.Errorf("creating player %q: %w", name, err)
	}
	return nil
}

// DeletePlayer removes the player and every match record they appear in.
// The cascade is deliberate: orphaned records would distort group history and
// head-to-head resolution for everyone who ever played with them.
func (s *GormStore) DeletePlayer(name string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Player{}, "name = ?", name)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPlayerNotFound
		}
		return tx.Delete(&models.MatchRecord{}, "player_name = ?", name).Error
	})
}

func (s *GormStore) AppendRoundGroup(records []models.MatchRecord) (uuid.UUID, error) {
	if len(records) == 0 {
		return uuid.Nil, fmt.Errorf("empty match group")
	}
	groupID := uuid.New()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			records[i].MatchGroupID = groupID
			if err := tx.Create(&records[i]).Error; err != nil {
				return err
			}
			// Apply the player's deltas in the same transaction: new handicap,
			// earned RP, one more round on the tally.
			res := tx.Model(&models.Player{}).
				Where("name = ?", records[i].PlayerName).
				Updates(map[string]interface{}{
					"handicap":      records[i].NewHandicap,
					"total_rp":      gorm.Expr("total_rp + ?", records[i].RPEarned),
					"rounds_played": gorm.Expr("rounds_played + 1"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Submissions for unknown players must commit nothing.
				return fmt.Errorf("%w: %s", ErrPlayerNotFound, records[i].PlayerName)
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("appending match group: %w", err)
	}
	return groupID, nil
}

// DeleteRoundGroup is a compensating transaction: it subtracts each row's RP
// and rounds-played contribution from its player, then removes the rows.
// It does NOT try to restore handicaps — handicap history isn't invertible
// once later rounds have moved it, so the league rule is that deleting an old
// group keeps handicaps where they are.
func (s *GormStore) DeleteRoundGroup(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var records []models.MatchRecord
		if err := tx.Find(&records, "match_group_id = ?", id).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return ErrGroupNotFound
		}

		for _, rec := range records {
			res := tx.Model(&models.Player{}).
				Where("name = ?", rec.PlayerName).
				Updates(map[string]interface{}{
					"total_rp":      gorm.Expr("total_rp - ?", rec.RPEarned),
					"rounds_played": gorm.Expr("rounds_played - 1"),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// The player was deleted since this group was recorded. Their
				// aggregates are gone with them — skip the reversal and log it.
				s.log.WithFields(logrus.Fields{
					"player":      rec.PlayerName,
					"match_group": id,
				}).Warn("skipping RP reversal for deleted player")
			}
		}

		return tx.Delete(&models.MatchRecord{}, "match_group_id = ?", id).Error
	})
}

func (s *GormStore) HasPlayedAlliance(name string) (bool, error) {
	var count int64
	err := s.db.Model(&models.MatchRecord{}).
		Where("player_name = ? AND match_type = ?", name, models.MatchTypeAlliance).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("checking alliance history for %q: %w", name, err)
	}
	return count > 0, nil
}
