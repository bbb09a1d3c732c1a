package repository

import (
	"github.com/calliope-rpg/calliope/pkg/database/models"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CharacterRepository handles database operations for the Character model
type CharacterRepository struct {
	db *gorm.DB
}

func NewCharacterRepository(db *gorm.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Create inserts a character and, when the author holds a character-less
// player row in the game, assigns the new character to them in the same
// transaction. Returns whether the auto-assignment happened.
func (r *CharacterRepository) Create(character *models.Character) (bool, error) {
	autoAssigned := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(character).Error; err != nil {
			if isDuplicate(err) {
				return tabletop.Conflict("name")
			}
			return tabletop.Internal(err)
		}

		result := tx.Model(&models.Player{}).
			Where("game_id = ? AND user_id = ? AND character_id IS NULL",
				character.GameID, character.AuthorID).
			Update("character_id", character.ID)
		if result.Error != nil {
			return tabletop.Internal(result.Error)
		}
		autoAssigned = result.RowsAffected > 0
		return nil
	})
	return autoAssigned, err
}

func (r *CharacterRepository) GetByID(guildID string, id uuid.UUID) (*models.Character, error) {
	var character models.Character
	if err := r.db.First(&character, "id = ? AND guild_id = ?", id, guildID).Error; err != nil {
		return nil, wrap(err, "Character")
	}
	return &character, nil
}

// Update edits the mutable fields and returns the updated row.
func (r *CharacterRepository) Update(guildID string, id uuid.UUID, name string, pronouns, description, image *string) (*models.Character, error) {
	character, err := r.GetByID(guildID, id)
	if err != nil {
		return nil, err
	}

	character.Name = name
	character.Pronouns = pronouns
	character.Description = description
	character.Image = image

	if err := r.db.Save(character).Error; err != nil {
		if isDuplicate(err) {
			return nil, tabletop.Conflict("name")
		}
		return nil, tabletop.Internal(err)
	}
	return character, nil
}

// Delete removes a character; any player assignment to it is cleared by the
// foreign key, the player row itself stays.
func (r *CharacterRepository) Delete(guildID string, id uuid.UUID) error {
	result := r.db.Where("id = ? AND guild_id = ?", id, guildID).Delete(&models.Character{})
	if result.Error != nil {
		return tabletop.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return tabletop.NotFound("Character")
	}
	return nil
}

// AssignedUserID returns the user currently holding the character, or ""
// when nobody does.
func (r *CharacterRepository) AssignedUserID(id uuid.UUID) (string, error) {
	var userIDs []string
	err := r.db.Model(&models.Player{}).
		Where("character_id = ?", id).
		Limit(1).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return "", tabletop.Internal(err)
	}
	if len(userIDs) == 0 {
		return "", nil
	}
	return userIDs[0], nil
}

// Search returns up to limit characters in the guild matching partial by
// name. Every caller may read characters.
func (r *CharacterRepository) Search(guildID, partial string, limit int) ([]models.Character, error) {
	var characters []models.Character
	query := r.db.Where("guild_id = ?", guildID)
	if partial != "" {
		query = query.Where("name ILIKE ?", "%"+partial+"%")
	}
	if err := query.Order("name").Limit(limit).Find(&characters).Error; err != nil {
		return nil, tabletop.Internal(err)
	}
	return characters, nil
}

// SearchEditable returns the characters the caller may manage: all of them
// for a moderator, otherwise the ones they authored, hold, or whose game
// they own. Mirrors the authorization rules exactly.
func (r *CharacterRepository) SearchEditable(guildID, partial, userID string, moderator bool, limit int) ([]models.Character, error) {
	if moderator {
		return r.Search(guildID, partial, limit)
	}

	var characters []models.Character
	query := r.db.Where("guild_id = ?", guildID).
		Where(`author_id = @user
			OR EXISTS (SELECT 1 FROM players WHERE players.character_id = characters.id AND players.user_id = @user)
			OR EXISTS (SELECT 1 FROM games WHERE games.id = characters.game_id AND games.owner_id = @user)`,
			map[string]interface{}{"user": userID})
	if partial != "" {
		query = query.Where("name ILIKE ?", "%"+partial+"%")
	}
	if err := query.Order("name").Limit(limit).Find(&characters).Error; err != nil {
		return nil, tabletop.Internal(err)
	}
	return characters, nil
}

// SearchAssigned returns the characters currently held by the caller.
func (r *CharacterRepository) SearchAssigned(guildID, partial, userID string, limit int) ([]models.Character, error) {
	var characters []models.Character
	query := r.db.Where("guild_id = ?", guildID).
		Where("EXISTS (SELECT 1 FROM players WHERE players.character_id = characters.id AND players.user_id = ?)", userID)
	if partial != "" {
		query = query.Where("name ILIKE ?", "%"+partial+"%")
	}
	if err := query.Order("name").Limit(limit).Find(&characters).Error; err != nil {
		return nil, tabletop.Internal(err)
	}
	return characters, nil
}

// SearchClaimable returns unheld characters from games the caller plays in.
func (r *CharacterRepository) SearchClaimable(guildID, partial, userID string, limit int) ([]models.Character, error) {
	var characters []models.Character
	query := r.db.Where("guild_id = ?", guildID).
		Where("NOT EXISTS (SELECT 1 FROM players WHERE players.character_id = characters.id)").
		Where("EXISTS (SELECT 1 FROM players WHERE players.game_id = characters.game_id AND players.user_id = ?)", userID)
	if partial != "" {
		query = query.Where("name ILIKE ?", "%"+partial+"%")
	}
	if err := query.Order("name").Limit(limit).Find(&characters).Error; err != nil {
		return nil, tabletop.Internal(err)
	}
	return characters, nil
}
