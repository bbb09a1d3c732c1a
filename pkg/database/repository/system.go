package repository

import (
	"github.com/calliope-rpg/calliope/pkg/database/models"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemRepository handles database operations for the System model
type SystemRepository struct {
	db *gorm.DB
}

func NewSystemRepository(db *gorm.DB) *SystemRepository {
	return &SystemRepository{db: db}
}

// Create inserts a system, failing with a field-named conflict when the
// guild already has one with the same title or abbreviation. Concurrent
// creates are arbitrated by the unique constraints, not by a lock.
func (r *SystemRepository) Create(system *models.System) error {
	if err := r.db.Create(system).Error; err != nil {
		if isDuplicate(err) {
			return tabletop.Conflict(r.conflictField(system.GuildID, system.Title, system.Abbreviation))
		}
		return tabletop.Internal(err)
	}
	return nil
}

// conflictField names which unique constraint an insert collided with.
func (r *SystemRepository) conflictField(guildID, title, abbreviation string) string {
	var count int64
	r.db.Model(&models.System{}).
		Where("guild_id = ? AND abbreviation = ?", guildID, abbreviation).
		Count(&count)
	if count > 0 {
		return "abbreviation"
	}
	return "title"
}

func (r *SystemRepository) GetByID(guildID string, id uuid.UUID) (*models.System, error) {
	var system models.System
	if err := r.db.First(&system, "id = ? AND guild_id = ?", id, guildID).Error; err != nil {
		return nil, wrap(err, "System")
	}
	return &system, nil
}

// Update edits the mutable fields and returns the updated row.
func (r *SystemRepository) Update(guildID string, id uuid.UUID, title, abbreviation string, description, image *string) (*models.System, error) {
	system, err := r.GetByID(guildID, id)
	if err != nil {
		return nil, err
	}

	system.Title = title
	system.Abbreviation = abbreviation
	system.Description = description
	system.Image = image

	if err := r.db.Save(system).Error; err != nil {
		if isDuplicate(err) {
			return nil, tabletop.Conflict(r.conflictField(guildID, title, abbreviation))
		}
		return nil, tabletop.Internal(err)
	}
	return system, nil
}

// Delete removes a system. Referencing games are detached (system reference
// cleared) by the foreign key, not deleted.
func (r *SystemRepository) Delete(guildID string, id uuid.UUID) error {
	result := r.db.Where("id = ? AND guild_id = ?", id, guildID).Delete(&models.System{})
	if result.Error != nil {
		return tabletop.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return tabletop.NotFound("System")
	}
	return nil
}

// Search returns up to limit systems in the guild matching the partial
// string against title or abbreviation. Every caller may read systems.
func (r *SystemRepository) Search(guildID, partial string, limit int) ([]models.System, error) {
	var systems []models.System
	query := r.db.Where("guild_id = ?", guildID)
	if partial != "" {
		query = query.Where("title ILIKE ? OR abbreviation ILIKE ?", "%"+partial+"%", "%"+partial+"%")
	}
	if err := query.Order("title").Limit(limit).Find(&systems).Error; err != nil {
		return nil, tabletop.Internal(err)
	}
	return systems, nil
}
