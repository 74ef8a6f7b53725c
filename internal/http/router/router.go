// Package router assembles the fiber application.
package router

import (
	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/http/handlers"
	"github.com/embark-app/embark/internal/http/middleware"
	"github.com/embark-app/embark/internal/http/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// New builds the app with global middleware and every route registered.
func New(cfg config.WebConfig, webApp *handlers.WebApp) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      config.AppName,
		ServerHeader: config.AppName,
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    config.MaxUploadSize + 1024*1024,
	})

	app.Use(recover.New())
	app.Use(middleware.LoggingMiddleware())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	setupRoutes(app, webApp)
	return app
}

func setupRoutes(app *fiber.App, webApp *handlers.WebApp) {
	app.Get("/health", handlers.HealthCheck(webApp))

	users := app.Group("/users")
	users.Post("/", handlers.CreateUser(webApp))
	users.Get("/", handlers.ListUsers(webApp))
	users.Get("/by-username/:username", handlers.GetUserByUsername(webApp))
	users.Get("/:userId", handlers.GetUser(webApp))
	users.Post("/:userId/stats", handlers.ApplyStatsDelta(webApp))

	users.Get("/:userId/quests/active", handlers.ListActiveQuests(webApp))
	users.Get("/:userId/quests/history", handlers.QuestHistory(webApp))
	users.Post("/:userId/quests", handlers.StartQuest(webApp))
	users.Post("/:userId/quests/:userQuestId/complete", handlers.CompleteQuest(webApp))
	users.Delete("/:userId/quests/:userQuestId", handlers.AbandonQuest(webApp))

	users.Get("/:userId/items", handlers.ListUserItems(webApp))
	users.Post("/:userId/items", handlers.PurchaseItem(webApp))
	users.Post("/:userId/items/:itemId/award", handlers.AwardItem(webApp))
	users.Put("/:userId/items/:userItemId/featured", handlers.SetFeaturedItem(webApp))

	users.Get("/:userId/achievements", handlers.ListUserAchievements(webApp))
	users.Get("/:userId/title", handlers.GetActiveTitle(webApp))
	users.Put("/:userId/title", handlers.SetActiveTitle(webApp))

	quests := app.Group("/quests")
	quests.Get("/", handlers.ListQuests(webApp))
	quests.Get("/search", handlers.SearchQuests(webApp))
	quests.Get("/:questId", handlers.GetQuest(webApp))
	quests.Post("/", handlers.CreateQuest(webApp))
	quests.Put("/:questId", handlers.UpdateQuest(webApp))
	quests.Delete("/:questId", handlers.DeleteQuest(webApp))

	items := app.Group("/items")
	items.Get("/", handlers.ListItems(webApp))
	items.Get("/:itemId", handlers.GetItem(webApp))
	items.Post("/", handlers.CreateItem(webApp))
	items.Post("/:itemId/image", handlers.UploadItemImage(webApp))

	app.Get("/achievements", handlers.ListAchievements(webApp))

	app.Use(func(c *fiber.Ctx) error {
		return utils.SendNotFound(c, "Route not found")
	})
}
