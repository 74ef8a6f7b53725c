// Package leveling maps cumulative xp to a level in 1..100 using a fixed
// table of level thresholds.
package leveling

import (
	"fmt"
	"sort"
)

// Progress describes where a total xp value sits within its level.
type Progress struct {
	Level           int     `json:"level"`
	TotalXP         int64   `json:"total_xp"`
	XPIntoLevel     int64   `json:"xp_into_level"`
	XPToNextLevel   int64   `json:"xp_to_next_level"`
	ProgressPercent float64 `json:"progress_percent"`
}

// LevelForXP returns the largest level whose threshold is <= xp.
// Negative xp is treated as level 1.
func LevelForXP(xp int64) int {
	if xp < 0 {
		return 1
	}
	// index of the first threshold strictly greater than xp
	idx := sort.Search(MaxLevel, func(i int) bool { return cumulativeXP[i] > xp })
	return idx
}

// XPToNextLevel returns the xp still needed for the next level, or 0 at the cap.
func XPToNextLevel(xp int64) int64 {
	level := LevelForXP(xp)
	if level >= MaxLevel {
		return 0
	}
	return XPForLevel(level+1) - max(xp, 0)
}

// XPIntoLevel returns the xp earned since the current level's threshold.
func XPIntoLevel(xp int64) int64 {
	if xp < 0 {
		return 0
	}
	return xp - XPForLevel(LevelForXP(xp))
}

// ProgressPercent returns progress toward the next level in [0, 100].
func ProgressPercent(xp int64) float64 {
	level := LevelForXP(xp)
	if level >= MaxLevel {
		return 100
	}
	span := XPForLevel(level+1) - XPForLevel(level)
	return float64(XPIntoLevel(xp)) / float64(span) * 100
}

// XPForLevel returns the cumulative xp required to reach level, clamping
// the level into 1..MaxLevel.
func XPForLevel(level int) int64 {
	if level < 1 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return cumulativeXP[level-1]
}

func ProgressFor(xp int64) Progress {
	return Progress{
		Level:           LevelForXP(xp),
		TotalXP:         xp,
		XPIntoLevel:     XPIntoLevel(xp),
		XPToNextLevel:   XPToNextLevel(xp),
		ProgressPercent: ProgressPercent(xp),
	}
}

func validateTable(table []int64) error {
	if len(table) != MaxLevel {
		return fmt.Errorf("leveling: table has %d entries, want %d", len(table), MaxLevel)
	}
	if table[0] != 0 {
		return fmt.Errorf("leveling: first threshold is %d, want 0", table[0])
	}
	for i := 1; i < len(table); i++ {
		if table[i] <= table[i-1] {
			return fmt.Errorf("leveling: threshold for level %d (%d) is not above level %d (%d)",
				i+1, table[i], i, table[i-1])
		}
	}
	return nil
}
