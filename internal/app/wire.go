// Package app wires repositories and domain services into the web layer.
package app

import (
	"fmt"

	"github.com/embark-app/embark/internal/clock"
	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/domain/achievements"
	"github.com/embark-app/embark/internal/domain/items"
	"github.com/embark-app/embark/internal/domain/quests"
	"github.com/embark-app/embark/internal/domain/users"
	"github.com/embark-app/embark/internal/gateways/database/repositories"
	"github.com/embark-app/embark/internal/http/handlers"
	"github.com/embark-app/embark/internal/locks"
	"github.com/uptrace/bun"
)

// Deps are the external resources the services run against. Images may
// be nil when object storage is not configured.
type Deps struct {
	DB      bun.IDB
	Pinger  handlers.Pinger
	Clock   clock.Clock
	Images  items.ImageStore
	Game    config.GameConfig
	Version string
}

// NewWebApp builds every service over one store.
func NewWebApp(deps Deps) (*handlers.WebApp, error) {
	userLocks, err := locks.NewKeyed(deps.Game.LockCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create user locks: %w", err)
	}

	userRepo := repositories.NewUserRepository(deps.DB)
	questRepo := repositories.NewQuestRepository(deps.DB)
	attemptRepo := repositories.NewUserQuestRepository(deps.DB)
	itemRepo := repositories.NewItemRepository(deps.DB)
	achievementRepo := repositories.NewAchievementRepository(deps.DB)

	evaluator := achievements.NewEvaluator(achievementRepo, attemptRepo, questRepo, itemRepo, deps.Clock)

	itemOpts := []items.Option{items.WithCollectionChecker(evaluator)}
	if deps.Images != nil {
		itemOpts = append(itemOpts, items.WithImageStore(deps.Images))
	}
	itemService := items.NewService(itemRepo, userRepo, userLocks, deps.Clock, itemOpts...)

	ledger := users.NewLedger(userRepo, deps.Clock)
	engine := quests.NewEngine(questRepo, attemptRepo, userRepo, userLocks, deps.Clock, deps.Game)

	return &handlers.WebApp{
		DB:           deps.Pinger,
		Users:        users.NewService(userRepo, deps.Clock),
		Ledger:       ledger,
		Catalog:      quests.NewCatalog(questRepo, attemptRepo, deps.Clock),
		Engine:       engine,
		Rewarder:     quests.NewRewarder(engine, ledger, itemService, evaluator),
		Items:        itemService,
		Achievements: achievements.NewService(achievementRepo, userRepo, deps.Clock),
		Version:      deps.Version,
	}, nil
}
