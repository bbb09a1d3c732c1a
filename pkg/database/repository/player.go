package repository

import (
	"github.com/calliope-rpg/calliope/pkg/database/models"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayerRepository handles database operations for the Player model
type PlayerRepository struct {
	db *gorm.DB
}

func NewPlayerRepository(db *gorm.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Add inserts a participation row. The (game, user) pair is unique, so
// adding the same player twice comes back as a named conflict.
func (r *PlayerRepository) Add(gameID uuid.UUID, userID string) error {
	player := models.Player{GameID: gameID, UserID: userID}
	if err := r.db.Create(&player).Error; err != nil {
		if isDuplicate(err) {
			return tabletop.Conflict("player")
		}
		return tabletop.Internal(err)
	}
	return nil
}

// Remove deletes a participation row and reports whether one existed.
func (r *PlayerRepository) Remove(gameID uuid.UUID, userID string) (bool, error) {
	result := r.db.Where("game_id = ? AND user_id = ?", gameID, userID).Delete(&models.Player{})
	if result.Error != nil {
		return false, tabletop.Internal(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Get returns the player row for (game, user), or nil when none exists.
func (r *PlayerRepository) Get(gameID uuid.UUID, userID string) (*models.Player, error) {
	var player models.Player
	err := r.db.First(&player, "game_id = ? AND user_id = ?", gameID, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, tabletop.Internal(err)
	}
	return &player, nil
}

// Bind assigns a character to userID's player row in the character's own
// game. Fails with NotFound when the user holds no row there (the caller
// turns that into a "not a player" message), and with a conflict when
// another player already holds the character.
func (r *PlayerRepository) Bind(characterID uuid.UUID, userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var character models.Character
		if err := tx.First(&character, "id = ?", characterID).Error; err != nil {
			return wrap(err, "Character")
		}

		result := tx.Model(&models.Player{}).
			Where("game_id = ? AND user_id = ?", character.GameID, userID).
			Update("character_id", characterID)
		if result.Error != nil {
			if isDuplicate(result.Error) {
				return tabletop.Conflict("character")
			}
			return tabletop.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return tabletop.NotFound("Player")
		}
		return nil
	})
}

// Release clears any assignment of the character and reports whether one
// was held.
func (r *PlayerRepository) Release(characterID uuid.UUID) (bool, error) {
	result := r.db.Model(&models.Player{}).
		Where("character_id = ?", characterID).
		Update("character_id", nil)
	if result.Error != nil {
		return false, tabletop.Internal(result.Error)
	}
	return result.RowsAffected > 0, nil
}
