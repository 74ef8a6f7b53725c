package items

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/clock"
	"github.com/embark-app/embark/internal/config"
	"github.com/embark-app/embark/internal/gateways/database/models"
	"github.com/embark-app/embark/internal/locks"
	"github.com/google/uuid"
)

type Service struct {
	repository Repository
	wallet     Wallet
	collection CollectionChecker
	images     ImageStore
	locks      *locks.Keyed
	clock      clock.Clock
	pick       func(n int) int
}

type Option func(*Service)

// WithCollectionChecker enables the collection check after purchases.
func WithCollectionChecker(c CollectionChecker) Option {
	return func(s *Service) { s.collection = c }
}

func WithImageStore(store ImageStore) Option {
	return func(s *Service) { s.images = store }
}

// WithPicker replaces the random index source used for tier rewards.
func WithPicker(pick func(n int) int) Option {
	return func(s *Service) { s.pick = pick }
}

func NewService(repository Repository, wallet Wallet, userLocks *locks.Keyed, clk clock.Clock, opts ...Option) *Service {
	s := &Service{
		repository: repository,
		wallet:     wallet,
		locks:      userLocks,
		clock:      clk,
		pick:       rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PurchaseResult is returned by Purchase. Warnings lists best-effort steps
// that failed after the purchase itself succeeded.
type PurchaseResult struct {
	UserItem            *models.UserItem    `json:"user_item"`
	Price               int64               `json:"price"`
	NewGloryBalance     int64               `json:"new_glory_balance"`
	UnlockedAchievement *models.Achievement `json:"unlocked_achievement"`
	Warnings            []string            `json:"warnings,omitempty"`
}

// Award grants an item. It returns nil without error when the user already
// owns it.
func (s *Service) Award(ctx context.Context, userID, itemID uuid.UUID) (*models.UserItem, error) {
	item, err := s.repository.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.wallet.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	ui := &models.UserItem{
		ID:         uuid.New(),
		UserID:     userID,
		ItemID:     itemID,
		AcquiredAt: s.clock.Now(),
	}
	inserted, err := s.repository.AddUserItem(ctx, ui)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, nil
	}
	ui.Item = item

	slog.Info("Item awarded",
		slog.String("type", "quest"),
		slog.String("user_id", userID.String()),
		slog.String("item", item.Name),
	)
	return ui, nil
}

// AwardRandomFromTier awards one item of the tier, preferring items the user
// does not own yet. It returns nil when the tier has no items or when the
// chosen item was already owned.
func (s *Service) AwardRandomFromTier(ctx context.Context, userID uuid.UUID, tier int) (*models.UserItem, error) {
	pool, err := s.repository.ListByTier(ctx, tier)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, nil
	}

	owned, err := s.repository.OwnedItemIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	ownedSet := make(map[uuid.UUID]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}

	candidates := make([]*models.Item, 0, len(pool))
	for _, item := range pool {
		if _, ok := ownedSet[item.ID]; !ok {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		candidates = pool
	}

	chosen := candidates[s.pick(len(candidates))]
	return s.Award(ctx, userID, chosen.ID)
}

// Purchase spends glory on an item. Ownership is checked before any
// deduction, and the balance check and deduction are a single conditional
// write. The deduction does not count toward lifetime glory.
func (s *Service) Purchase(ctx context.Context, userID, itemID uuid.UUID) (*PurchaseResult, error) {
	const op = "items.Purchase"

	item, err := s.repository.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID.String())
	defer unlock()

	owned, err := s.repository.HasItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if owned {
		return nil, apperr.Newf(apperr.KindAlreadyOwned, op, "item %s is already owned", item.Name)
	}

	user, err := s.wallet.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.TotalGlory < item.Price {
		return nil, insufficientFunds(op, item.Price, user.TotalGlory)
	}

	now := s.clock.Now()
	deducted, err := s.wallet.DeductGlory(ctx, userID, item.Price, now)
	if err != nil {
		return nil, err
	}
	if !deducted {
		return nil, insufficientFunds(op, item.Price, user.TotalGlory)
	}

	ui := &models.UserItem{
		ID:         uuid.New(),
		UserID:     userID,
		ItemID:     itemID,
		AcquiredAt: now,
	}
	inserted, err := s.repository.AddUserItem(ctx, ui)
	if err != nil {
		// Charged without the item; the store has no cross-table rollback.
		slog.Error("Item write failed after glory deduction",
			slog.String("type", "error"),
			slog.String("user_id", userID.String()),
			slog.String("item_id", itemID.String()),
			slog.Int64("price", item.Price),
			slog.Any("error", err),
		)
		return nil, err
	}
	if !inserted {
		// Awarded concurrently between the ownership check and our insert.
		if err := s.wallet.RefundGlory(ctx, userID, item.Price, s.clock.Now()); err != nil {
			return nil, err
		}
		return nil, apperr.Newf(apperr.KindAlreadyOwned, op, "item %s is already owned", item.Name)
	}
	ui.Item = item

	result := &PurchaseResult{UserItem: ui, Price: item.Price}

	updated, err := s.wallet.GetByID(ctx, userID)
	if err != nil {
		result.NewGloryBalance = user.TotalGlory - item.Price
		result.Warnings = append(result.Warnings, "balance refresh failed: "+err.Error())
	} else {
		result.NewGloryBalance = updated.TotalGlory
	}

	if s.collection != nil {
		achievement, err := s.collection.CheckCollection(ctx, userID)
		if err != nil {
			slog.Error("Collection check failed after purchase",
				slog.String("type", "error"),
				slog.String("user_id", userID.String()),
				slog.Any("error", err),
			)
			result.Warnings = append(result.Warnings, "collection check failed: "+err.Error())
		} else {
			result.UnlockedAchievement = achievement
		}
	}

	slog.Info("Item purchased",
		slog.String("type", "quest"),
		slog.String("user_id", userID.String()),
		slog.String("item", item.Name),
		slog.Int64("price", item.Price),
		slog.Int64("balance", result.NewGloryBalance),
	)
	return result, nil
}

func insufficientFunds(op string, price, balance int64) error {
	return apperr.Newf(apperr.KindInsufficientFunds, op, "item costs %d glory, balance is %d", price, balance)
}

// CreateInput describes a new catalog item. The price follows the tier.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	RarityTier  int    `json:"rarity_tier"`
	RarityStars int    `json:"rarity_stars"`
	ImageURL    string `json:"image_url"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Item, error) {
	const op = "items.Create"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation(op, "name is required")
	}
	if !config.ValidTier(in.RarityTier) {
		return nil, apperr.Newf(apperr.KindValidation, op, "rarity tier must be %d to %d", config.MinTier, config.MaxTier)
	}
	stars := in.RarityStars
	if stars == 0 {
		stars = 1
	}
	if stars < config.MinTier || stars > config.MaxTier {
		return nil, apperr.Newf(apperr.KindValidation, op, "rarity stars must be %d to %d", config.MinTier, config.MaxTier)
	}

	item := &models.Item{
		ID:          uuid.New(),
		Name:        name,
		Description: in.Description,
		RarityTier:  in.RarityTier,
		RarityStars: stars,
		Price:       models.PriceForTier(in.RarityTier),
		ImageURL:    in.ImageURL,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repository.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, tier, limit, offset int) ([]*models.Item, error) {
	if tier != 0 && !config.ValidTier(tier) {
		return nil, apperr.Newf(apperr.KindValidation, "items.List", "tier must be %d to %d", config.MinTier, config.MaxTier)
	}
	return s.repository.List(ctx, tier, limit, offset)
}

func (s *Service) UserItems(ctx context.Context, userID uuid.UUID) ([]*models.UserItem, error) {
	if _, err := s.wallet.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repository.ListUserItems(ctx, userID)
}

// SetFeatured marks one owned item as featured, clearing any other.
func (s *Service) SetFeatured(ctx context.Context, userID, userItemID uuid.UUID) (*models.UserItem, error) {
	return s.repository.SetFeatured(ctx, userID, userItemID)
}

var ErrImagesDisabled = errors.New("item image storage is not configured")

// UploadImage stores artwork for an item and records its URL.
func (s *Service) UploadImage(ctx context.Context, itemID uuid.UUID, contentType string, data []byte) (*models.Item, error) {
	if s.images == nil {
		return nil, ErrImagesDisabled
	}
	if len(data) == 0 {
		return nil, apperr.Validation("items.UploadImage", "image is empty")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, apperr.Validation("items.UploadImage", "file must be an image")
	}

	item, err := s.repository.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	url, err := s.images.UploadItemImage(ctx, itemID, contentType, data)
	if err != nil {
		return nil, apperr.Transient("items.UploadImage", apperr.EntityItem, err)
	}
	if err := s.repository.SetImageURL(ctx, itemID, url); err != nil {
		return nil, err
	}
	item.ImageURL = url
	return item, nil
}
