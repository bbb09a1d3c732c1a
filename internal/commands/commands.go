package commands

import (
	"github.com/calliope-rpg/calliope/pkg/database/repository"
	"github.com/calliope-rpg/calliope/pkg/embed"
	"github.com/calliope-rpg/calliope/pkg/tabletop"
	"gorm.io/gorm"
)

// Shared command dependencies, wired once at startup by Initialize.
var (
	systemRepo    *repository.SystemRepository
	gameRepo      *repository.GameRepository
	characterRepo *repository.CharacterRepository
	playerRepo    *repository.PlayerRepository
	store         *repository.TabletopStore
	resolver      *tabletop.Resolver
	authorizer    *tabletop.Authorizer
	confirmer     *tabletop.Confirmer
	embeds        embed.TabletopEmbedBuilder
)

// Initialize wires the command handlers to the database and to the pending
// confirmation registry. Must be called before any handler runs.
func Initialize(db *gorm.DB, c *tabletop.Confirmer) {
	systemRepo = repository.NewSystemRepository(db)
	gameRepo = repository.NewGameRepository(db)
	characterRepo = repository.NewCharacterRepository(db)
	playerRepo = repository.NewPlayerRepository(db)
	store = repository.NewTabletopStore(db)
	resolver = tabletop.NewResolver(store)
	authorizer = tabletop.NewAuthorizer(store)
	confirmer = c
	embeds = embed.CreateTabletopEmbeds()
}
