// Package handlers implements the JSON API on top of the domain services.
package handlers

import (
	"context"
	"time"

	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/domain/achievements"
	"github.com/embark-app/embark/internal/domain/items"
	"github.com/embark-app/embark/internal/domain/quests"
	"github.com/embark-app/embark/internal/domain/users"
	"github.com/embark-app/embark/internal/http/utils"
	"github.com/gofiber/fiber/v2"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// WebApp holds the services the handlers call.
type WebApp struct {
	DB           Pinger
	Users        *users.Service
	Ledger       *users.Ledger
	Catalog      *quests.Catalog
	Engine       *quests.Engine
	Rewarder     *quests.Rewarder
	Items        *items.Service
	Achievements *achievements.Service
	Version      string
}

func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), config.HealthCheckTimeout)
		defer cancel()

		if err := webApp.DB.Ping(ctx); err != nil {
			return utils.SendServiceUnavailable(c, "database unreachable")
		}
		return utils.SendSuccess(c, fiber.Map{
			"status":  "healthy",
			"version": webApp.Version,
			"time":    time.Now().UTC(),
		}, "Health check successful")
	}
}

func page(c *fiber.Ctx) (limit, offset int, err error) {
	if limit, err = utils.QueryInt(c, "limit", config.DefaultPageSize); err != nil {
		return 0, 0, err
	}
	if offset, err = utils.QueryInt(c, "offset", 0); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
