package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID                  uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Username            string     `bun:"username,notnull,unique" json:"username"`
	TotalGlory          int64      `bun:"total_glory,notnull,default:0" json:"total_glory"`
	TotalXP             int64      `bun:"total_xp,notnull,default:0" json:"total_xp"`
	Level               int        `bun:"level,notnull,default:1" json:"level"`
	LifetimeGloryGained int64      `bun:"lifetime_glory_gained,notnull,default:0" json:"lifetime_glory_gained"`
	ActiveTitleID       *uuid.UUID `bun:"active_title_id,type:uuid" json:"active_title_id"`
	CreatedAt           time.Time  `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt           time.Time  `bun:"updated_at,notnull" json:"updated_at"`
}
