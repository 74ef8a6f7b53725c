package handlers

import (
	"github.com/embark-app/embark/internal/http/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ListAchievements(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := webApp.Achievements.List(c.UserContext())
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, list, "")
	}
}

func ListUserAchievements(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		list, err := webApp.Achievements.UserAchievements(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, list, "")
	}
}

func GetActiveTitle(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		title, err := webApp.Achievements.ActiveTitle(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, title, "")
	}
}

type setTitleRequest struct {
	AchievementID *uuid.UUID `json:"achievement_id"`
}

// SetActiveTitle sets or, with a null achievement_id, clears the title.
func SetActiveTitle(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		var req setTitleRequest
		if err := utils.ParseBody(c, &req); err != nil {
			return err
		}
		ok, err := webApp.Achievements.SetActiveTitle(c.UserContext(), userID, req.AchievementID)
		if err != nil {
			return err
		}
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "achievement is not unlocked")
		}
		return utils.SendSuccess(c, fiber.Map{"achievement_id": req.AchievementID}, "Title updated")
	}
}
