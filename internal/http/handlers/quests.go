package handlers

import (
	"github.com/embark-app/embark/internal/domain/quests"
	"github.com/embark-app/embark/internal/http/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ListQuests(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := page(c)
		if err != nil {
			return err
		}
		tier, err := utils.QueryInt(c, "tier", 0)
		if err != nil {
			return err
		}
		list, err := webApp.Catalog.List(c.UserContext(), tier, limit, offset)
		if err != nil {
			return err
		}
		return utils.SendPaginated(c, list, &utils.PaginationInfo{Limit: limit, Offset: offset, Count: len(list)}, "")
	}
}

func SearchQuests(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := utils.QueryInt(c, "limit", 20)
		if err != nil {
			return err
		}
		list, err := webApp.Catalog.Search(c.UserContext(), c.Query("q"), limit)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, list, "")
	}
}

func GetQuest(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := utils.ParamUUID(c, "questId")
		if err != nil {
			return err
		}
		quest, err := webApp.Catalog.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, quest, "")
	}
}

func CreateQuest(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in quests.QuestInput
		if err := utils.ParseBody(c, &in); err != nil {
			return err
		}
		quest, err := webApp.Catalog.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return utils.SendCreated(c, quest, "Quest created")
	}
}

func UpdateQuest(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := utils.ParamUUID(c, "questId")
		if err != nil {
			return err
		}
		var in quests.QuestInput
		if err := utils.ParseBody(c, &in); err != nil {
			return err
		}
		quest, err := webApp.Catalog.Update(c.UserContext(), id, in)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, quest, "Quest updated")
	}
}

func DeleteQuest(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := utils.ParamUUID(c, "questId")
		if err != nil {
			return err
		}
		if err := webApp.Catalog.Delete(c.UserContext(), id); err != nil {
			return err
		}
		return utils.SendNoContent(c)
	}
}

type startQuestRequest struct {
	QuestID uuid.UUID `json:"quest_id"`
}

func StartQuest(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		var req startQuestRequest
		if err := utils.ParseBody(c, &req); err != nil {
			return err
		}
		if req.QuestID == uuid.Nil {
			return fiber.NewError(fiber.StatusBadRequest, "quest_id is required")
		}
		uq, err := webApp.Engine.Start(c.UserContext(), userID, req.QuestID)
		if err != nil {
			return err
		}
		return utils.SendCreated(c, uq, "Quest started")
	}
}

func ListActiveQuests(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		active, err := webApp.Engine.ListActive(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, active, "")
	}
}

// CompleteQuest completes an attempt and reports the rewards granted.
func CompleteQuest(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		userQuestID, err := utils.ParamUUID(c, "userQuestId")
		if err != nil {
			return err
		}
		result, err := webApp.Rewarder.CompleteAndReward(c.UserContext(), userID, userQuestID)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, result, "Quest completed")
	}
}

func AbandonQuest(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		userQuestID, err := utils.ParamUUID(c, "userQuestId")
		if err != nil {
			return err
		}
		if err := webApp.Engine.Abandon(c.UserContext(), userID, userQuestID); err != nil {
			return err
		}
		return utils.SendNoContent(c)
	}
}

func QuestHistory(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		limit, err := utils.QueryInt(c, "limit", 0)
		if err != nil {
			return err
		}
		history, err := webApp.Engine.History(c.UserContext(), userID, limit)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, history, "")
	}
}
