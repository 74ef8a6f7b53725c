package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description,notnull" json:"description"`
	RarityTier  int       `bun:"rarity_tier,notnull" json:"rarity_tier"`
	RarityStars int       `bun:"rarity_stars,notnull,default:1" json:"rarity_stars"`
	Price       int64     `bun:"price,notnull" json:"price"`
	ImageURL    string    `bun:"image_url,nullzero" json:"image_url,omitempty"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
}

type UserItem struct {
	bun.BaseModel `bun:"table:user_items,alias:ui"`

	ID         uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	UserID     uuid.UUID `bun:"user_id,notnull,type:uuid" json:"user_id"`
	ItemID     uuid.UUID `bun:"item_id,notnull,type:uuid" json:"item_id"`
	AcquiredAt time.Time `bun:"acquired_at,notnull" json:"acquired_at"`
	IsFeatured bool      `bun:"is_featured,notnull" json:"is_featured"`

	Item *Item `bun:"rel:belongs-to,join:item_id=id" json:"item,omitempty"`
}

// itemPrices is the glory price of an item by rarity tier.
var itemPrices = map[int]int64{
	1: 100,
	2: 250,
	3: 500,
	4: 1000,
	5: 2500,
	6: 5000,
}

// PriceForTier returns the purchase price for a tier, or 0 for an unknown tier.
func PriceForTier(tier int) int64 {
	return itemPrices[tier]
}
