package config

import "time"

// Application-wide constants organized by domain

// Quest rules
const (
	MaxActiveQuests = 4

	MinTier = 1
	MaxTier = 6

	DefaultQuestTimeLimitHours = 24
	MinQuestTimeLimitHours     = 1

	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 100
)

// Pagination
const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

// Users
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
)

// Database and Performance Constants
const (
	DefaultQueryTimeout = 30 * time.Second
	BatchQueryTimeout   = 30 * time.Second
	HealthCheckTimeout  = 5 * time.Second

	// Per-user lock registry size
	CacheSize = 10000
)

// HTTP server
const (
	DefaultHTTPPort = 8000
	ShutdownTimeout = 10 * time.Second
	MaxUploadSize   = 5 * 1024 * 1024
	AppName         = "Embark"
)

// TierNames maps rarity tiers to display names.
var TierNames = map[int]string{
	1: "Common",
	2: "Uncommon",
	3: "Rare",
	4: "Epic",
	5: "Legendary",
	6: "Mythic",
}

// ValidTier reports whether tier is within the rarity range.
func ValidTier(tier int) bool {
	return tier >= MinTier && tier <= MaxTier
}
