package repository

import (
	"github.com/calliope-rpg/calliope/pkg/database/models"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameRepository handles database operations for the Game model
type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

// RosterEntry is one roster row for the activation engine: a participant and
// the name of their assigned character, if any.
type RosterEntry struct {
	UserID        string
	CharacterName string
}

// Create inserts a game, naming the conflicting field (title, abbreviation
// or channel) when a per-guild uniqueness constraint rejects it.
func (r *GameRepository) Create(game *models.Game) error {
	if err := r.db.Create(game).Error; err != nil {
		if isDuplicate(err) {
			return tabletop.Conflict(r.conflictField(game))
		}
		return tabletop.Internal(err)
	}
	return nil
}

func (r *GameRepository) conflictField(game *models.Game) string {
	var count int64
	r.db.Model(&models.Game{}).
		Where("guild_id = ? AND abbreviation = ?", game.GuildID, game.Abbreviation).
		Count(&count)
	if count > 0 {
		return "abbreviation"
	}
	if game.ChannelID != nil {
		count = 0
		r.db.Model(&models.Game{}).
			Where("guild_id = ? AND channel_id = ?", game.GuildID, *game.ChannelID).
			Count(&count)
		if count > 0 {
			return "channel"
		}
	}
	return "title"
}

func (r *GameRepository) GetByID(guildID string, id uuid.UUID) (*models.Game, error) {
	var game models.Game
	if err := r.db.First(&game, "id = ? AND guild_id = ?", id, guildID).Error; err != nil {
		return nil, wrap(err, "Game")
	}
	return &game, nil
}

// GetByChannel looks up the game bound to channelID as its home channel.
func (r *GameRepository) GetByChannel(guildID, channelID string) (*models.Game, error) {
	var game models.Game
	err := r.db.First(&game, "guild_id = ? AND channel_id = ?", guildID, channelID).Error
	if err != nil {
		return nil, wrap(err, "Game")
	}
	return &game, nil
}

// Update edits the mutable fields and returns the updated row.
func (r *GameRepository) Update(guildID string, id uuid.UUID, title, abbreviation string, description, image *string) (*models.Game, error) {
	game, err := r.GetByID(guildID, id)
	if err != nil {
		return nil, err
	}

	game.Title = title
	game.Abbreviation = abbreviation
	game.Description = description
	game.Image = image

	if err := r.db.Save(game).Error; err != nil {
		if isDuplicate(err) {
			return nil, tabletop.Conflict(r.conflictField(game))
		}
		return nil, tabletop.Internal(err)
	}
	return game, nil
}

// Delete removes a game; characters and player rows cascade with it.
func (r *GameRepository) Delete(guildID string, id uuid.UUID) error {
	result := r.db.Where("id = ? AND guild_id = ?", id, guildID).Delete(&models.Game{})
	if result.Error != nil {
		return tabletop.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return tabletop.NotFound("Game")
	}
	return nil
}

// Transfer moves ownership to newOwnerID in one transaction. When the old
// owner stays on as a player they gain a roster row; the new owner's roster
// row, if any, is dropped since the owner is always in the game implicitly.
func (r *GameRepository) Transfer(guildID string, id uuid.UUID, newOwnerID string, ownerLeaves bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, "id = ? AND guild_id = ?", id, guildID).Error; err != nil {
			return wrap(err, "Game")
		}

		if !ownerLeaves {
			player := models.Player{GameID: id, UserID: game.OwnerID}
			if err := tx.Create(&player).Error; err != nil && !isDuplicate(err) {
				return tabletop.Internal(err)
			}
		}

		if err := tx.Model(&models.Game{}).
			Where("id = ? AND guild_id = ?", id, guildID).
			Update("owner_id", newOwnerID).Error; err != nil {
			return tabletop.Internal(err)
		}

		if err := tx.Where("game_id = ? AND user_id = ?", id, newOwnerID).
			Delete(&models.Player{}).Error; err != nil {
			return tabletop.Internal(err)
		}
		return nil
	})
}

// SetChannel binds a home channel. At most one game per channel, so a taken
// channel comes back as a named conflict.
func (r *GameRepository) SetChannel(guildID string, id uuid.UUID, channelID string) error {
	result := r.db.Model(&models.Game{}).
		Where("id = ? AND guild_id = ?", id, guildID).
		Update("channel_id", channelID)
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return tabletop.Conflict("channel")
		}
		return tabletop.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return tabletop.NotFound("Game")
	}
	return nil
}

func (r *GameRepository) UnsetChannel(guildID string, id uuid.UUID) error {
	result := r.db.Model(&models.Game{}).
		Where("id = ? AND guild_id = ?", id, guildID).
		Update("channel_id", nil)
	if result.Error != nil {
		return tabletop.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return tabletop.NotFound("Game")
	}
	return nil
}

func (r *GameRepository) SetSystem(guildID string, id, systemID uuid.UUID) error {
	result := r.db.Model(&models.Game{}).
		Where("id = ? AND guild_id = ?", id, guildID).
		Update("system_id", systemID)
	if result.Error != nil {
		return tabletop.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return tabletop.NotFound("Game")
	}
	return nil
}

func (r *GameRepository) UnsetSystem(guildID string, id uuid.UUID) error {
	result := r.db.Model(&models.Game{}).
		Where("id = ? AND guild_id = ?", id, guildID).
		Update("system_id", nil)
	if result.Error != nil {
		return tabletop.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return tabletop.NotFound("Game")
	}
	return nil
}

// Roster returns every player row for a game together with the assigned
// character's name (empty when unassigned).
func (r *GameRepository) Roster(gameID uuid.UUID) ([]RosterEntry, error) {
	var entries []RosterEntry
	err := r.db.Model(&models.Player{}).
		Select("players.user_id, COALESCE(characters.name, '') AS character_name").
		Joins("LEFT JOIN characters ON characters.id = players.character_id").
		Where("players.game_id = ?", gameID).
		Scan(&entries).Error
	if err != nil {
		return nil, tabletop.Internal(err)
	}
	return entries, nil
}

// PlayerIDs returns the user ids of every player row for a game.
func (r *GameRepository) PlayerIDs(gameID uuid.UUID) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Player{}).
		Where("game_id = ?", gameID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, tabletop.Internal(err)
	}
	return ids, nil
}

// Search returns up to limit games in the guild matching partial against
// title or abbreviation. Every caller may read games.
func (r *GameRepository) Search(guildID, partial string, limit int) ([]models.Game, error) {
	var games []models.Game
	query := r.db.Where("guild_id = ?", guildID)
	if partial != "" {
		query = query.Where("title ILIKE ? OR abbreviation ILIKE ?", "%"+partial+"%", "%"+partial+"%")
	}
	if err := query.Order("title").Limit(limit).Find(&games).Error; err != nil {
		return nil, tabletop.Internal(err)
	}
	return games, nil
}

// SearchEditable returns the games the caller may manage: all of them for a
// moderator, otherwise only the ones they own.
func (r *GameRepository) SearchEditable(guildID, partial, userID string, moderator bool, limit int) ([]models.Game, error) {
	if moderator {
		return r.Search(guildID, partial, limit)
	}

	var games []models.Game
	query := r.db.Where("guild_id = ? AND owner_id = ?", guildID, userID)
	if partial != "" {
		query = query.Where("title ILIKE ? OR abbreviation ILIKE ?", "%"+partial+"%", "%"+partial+"%")
	}
	if err := query.Order("title").Limit(limit).Find(&games).Error; err != nil {
		return nil, tabletop.Internal(err)
	}
	return games, nil
}

// SearchJoined returns the games the caller participates in, as owner or as
// a player.
func (r *GameRepository) SearchJoined(guildID, partial, userID string, limit int) ([]models.Game, error) {
	var games []models.Game
	query := r.db.Where("guild_id = ?", guildID).
		Where("owner_id = ? OR EXISTS (SELECT 1 FROM players WHERE players.game_id = games.id AND players.user_id = ?)", userID, userID)
	if partial != "" {
		query = query.Where("title ILIKE ? OR abbreviation ILIKE ?", "%"+partial+"%", "%"+partial+"%")
	}
	if err := query.Order("title").Limit(limit).Find(&games).Error; err != nil {
		return nil, tabletop.Internal(err)
	}
	return games, nil
}
