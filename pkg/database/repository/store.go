package repository

import (
	"github.com/calliope-rpg/calliope/pkg/database/models"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TabletopStore backs the resolver and the authorizer with live database
// reads. It implements tabletop.ResolverStore and tabletop.FactSource; every
// call hits the store so ownership changes are always observed.
type TabletopStore struct {
	db *gorm.DB
}

func NewTabletopStore(db *gorm.DB) *TabletopStore {
	return &TabletopStore{db: db}
}

func (s *TabletopStore) GameByChannel(guildID, channelID string) (uuid.UUID, bool, error) {
	var ids []uuid.UUID
	err := s.db.Model(&models.Game{}).
		Where("guild_id = ? AND channel_id = ?", guildID, channelID).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return uuid.Nil, false, tabletop.Internal(err)
	}
	if len(ids) == 0 {
		return uuid.Nil, false, nil
	}
	return ids[0], true, nil
}

func (s *TabletopStore) CharacterGame(guildID string, characterID uuid.UUID) (uuid.UUID, error) {
	var character models.Character
	err := s.db.First(&character, "id = ? AND guild_id = ?", characterID, guildID).Error
	if err != nil {
		return uuid.Nil, wrap(err, "Character")
	}
	return character.GameID, nil
}

func (s *TabletopStore) PlayerAssignment(gameID uuid.UUID, userID string) (*tabletop.Assignment, error) {
	var player models.Player
	err := s.db.First(&player, "game_id = ? AND user_id = ?", gameID, userID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, tabletop.Internal(err)
	}
	return &tabletop.Assignment{CharacterID: player.CharacterID}, nil
}

func (s *TabletopStore) GameFacts(guildID string, gameID uuid.UUID) (tabletop.GameFacts, error) {
	var game models.Game
	err := s.db.First(&game, "id = ? AND guild_id = ?", gameID, guildID).Error
	if err != nil {
		return tabletop.GameFacts{}, wrap(err, "Game")
	}
	return tabletop.GameFacts{OwnerID: game.OwnerID}, nil
}

func (s *TabletopStore) CharacterFacts(guildID string, characterID uuid.UUID) (tabletop.CharacterFacts, error) {
	var character models.Character
	err := s.db.First(&character, "id = ? AND guild_id = ?", characterID, guildID).Error
	if err != nil {
		return tabletop.CharacterFacts{}, wrap(err, "Character")
	}

	var game models.Game
	if err := s.db.First(&game, "id = ?", character.GameID).Error; err != nil {
		return tabletop.CharacterFacts{}, wrap(err, "Game")
	}

	var holders []string
	err = s.db.Model(&models.Player{}).
		Where("character_id = ?", characterID).
		Limit(1).
		Pluck("user_id", &holders).Error
	if err != nil {
		return tabletop.CharacterFacts{}, tabletop.Internal(err)
	}

	facts := tabletop.CharacterFacts{
		AuthorID:    character.AuthorID,
		GameOwnerID: game.OwnerID,
	}
	if len(holders) > 0 {
		facts.AssignedUserID = holders[0]
	}
	return facts, nil
}

func (s *TabletopStore) IsMember(guildID string, gameID uuid.UUID, userID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.Player{}).
		Where("game_id = ? AND user_id = ?", gameID, userID).
		Count(&count).Error
	if err != nil {
		return false, tabletop.Internal(err)
	}
	if count > 0 {
		return true, nil
	}

	// The owner is in the game without needing a player row.
	err = s.db.Model(&models.Game{}).
		Where("id = ? AND guild_id = ? AND owner_id = ?", gameID, guildID, userID).
		Count(&count).Error
	if err != nil {
		return false, tabletop.Internal(err)
	}
	return count > 0, nil
}
