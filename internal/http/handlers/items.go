package handlers

import (
	"io"

	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/domain/items"
	"github.com/embark-app/embark/internal/http/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ListItems(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := page(c)
		if err != nil {
			return err
		}
		tier, err := utils.QueryInt(c, "tier", 0)
		if err != nil {
			return err
		}
		list, err := webApp.Items.List(c.UserContext(), tier, limit, offset)
		if err != nil {
			return err
		}
		return utils.SendPaginated(c, list, &utils.PaginationInfo{Limit: limit, Offset: offset, Count: len(list)}, "")
	}
}

func GetItem(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := utils.ParamUUID(c, "itemId")
		if err != nil {
			return err
		}
		item, err := webApp.Items.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, item, "")
	}
}

func CreateItem(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in items.CreateInput
		if err := utils.ParseBody(c, &in); err != nil {
			return err
		}
		item, err := webApp.Items.Create(c.UserContext(), in)
		if err != nil {
			return err
		}
		return utils.SendCreated(c, item, "Item created")
	}
}

// UploadItemImage accepts a multipart "image" file.
func UploadItemImage(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := utils.ParamUUID(c, "itemId")
		if err != nil {
			return err
		}
		header, err := c.FormFile("image")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "image file is required")
		}
		if header.Size > config.MaxUploadSize {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, "image is too large")
		}

		file, err := header.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "unable to read image")
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "unable to read image")
		}

		item, err := webApp.Items.UploadImage(c.UserContext(), id, header.Header.Get("Content-Type"), data)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, item, "Image uploaded")
	}
}

func ListUserItems(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		owned, err := webApp.Items.UserItems(c.UserContext(), userID)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, owned, "")
	}
}

type purchaseRequest struct {
	ItemID uuid.UUID `json:"item_id"`
}

func PurchaseItem(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		var req purchaseRequest
		if err := utils.ParseBody(c, &req); err != nil {
			return err
		}
		if req.ItemID == uuid.Nil {
			return fiber.NewError(fiber.StatusBadRequest, "item_id is required")
		}
		result, err := webApp.Items.Purchase(c.UserContext(), userID, req.ItemID)
		if err != nil {
			return err
		}
		return utils.SendCreated(c, result, "Item purchased")
	}
}

func SetFeaturedItem(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		userItemID, err := utils.ParamUUID(c, "userItemId")
		if err != nil {
			return err
		}
		ui, err := webApp.Items.SetFeatured(c.UserContext(), userID, userItemID)
		if err != nil {
			return err
		}
		return utils.SendSuccess(c, ui, "Featured item updated")
	}
}

// AwardItem grants an item without charge. Awarding an owned item is a
// no-op that returns null data.
func AwardItem(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := utils.ParamUUID(c, "userId")
		if err != nil {
			return err
		}
		itemID, err := utils.ParamUUID(c, "itemId")
		if err != nil {
			return err
		}
		ui, err := webApp.Items.Award(c.UserContext(), userID, itemID)
		if err != nil {
			return err
		}
		if ui == nil {
			return utils.SendSuccess(c, nil, "Item already owned")
		}
		return utils.SendCreated(c, ui, "Item awarded")
	}
}
