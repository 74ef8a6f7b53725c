package handlers

import (
	"github.com/embark-app/embark/internal/http/utils"
	"github.com/gofiber/fiber/v2"
)

type createUserRequest struct {
	Username string `json:"username"`
}

type statsDeltaRequest struct {
	GloryDelta int64 `json:"glory_delta"`
	XPDelta    int64 `json:"xp_delta"`
}

func CreateUser(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createUserRequest
		if err := utils.ParseBody(c, &req); err != nil {
			return err
		}
		user, err := webApp.Users.Create(c.UserContext(), req.Username)
		if err != nil {
			return err
		}
		return utils.SendCreated(c, user, "User created")
	}
}

func ListUsers(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := page(c)
		if err != nil {
			return err
		}
		list, err := webApp.Users.List(c.UserContext(), limit, offset)
		if err != nil {
			return err
		}
		return utils.SendPaginated(c, list, &utils.PaginationInfo{Limit: limit, Offset: offset, Count: len(list)}, "")
	}
}

// GetUser returns the user with level progress.
func GetUser(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		profile, err := webApp.Users.Profile(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, profile, "")
	}
}

func GetUserByUsername(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := webApp.Users.GetByUsername(c.UserContext(), c.Params("username"))
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, user, "")
	}
}

// ApplyStatsDelta is the administrative glory/xp adjustment.
func ApplyStatsDelta(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		var req statsDeltaRequest
		if err := utils.ParseBody(c, &req); err != nil {
			return err
		}
		user, err := webApp.Ledger.ApplyDelta(c.UserContext(), userID, req.GloryDelta, req.XPDelta)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, user, "Stats updated")
	}
}
