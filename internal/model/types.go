// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// MysteryCategory identifies one of the fixed groups of mysteries.
type MysteryCategory int

// Mystery categories in canonical order.
const (
	Joyful MysteryCategory = iota
	Sorrowful
	Glorious
	Luminous
	SevenSorrows
)

var categoryKeys = [...]string{"joyful", "sorrowful", "glorious", "luminous", "seven-sorrows"}

var categoryTitles = [...]string{
	"Joyful Mysteries",
	"Sorrowful Mysteries",
	"Glorious Mysteries",
	"Luminous Mysteries",
	"Seven Sorrows of Mary",
}

// AllCategories returns every category in canonical order.
func AllCategories() []MysteryCategory {
	return []MysteryCategory{Joyful, Sorrowful, Glorious, Luminous, SevenSorrows}
}

// Valid reports whether c is a member of the enumeration.
func (c MysteryCategory) Valid() bool {
	return c >= Joyful && c <= SevenSorrows
}

// String returns the stable key used in storage and on the command line.
func (c MysteryCategory) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryKeys[c]
}

// Title returns the display name.
func (c MysteryCategory) Title() string {
	if !c.Valid() {
		return c.String()
	}
	return categoryTitles[c]
}

// ParseCategory maps a key such as "sorrowful" or "seven-sorrows" to a category.
func ParseCategory(s string) (MysteryCategory, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	if key == "sevensorrows" {
		key = "seven-sorrows"
	}
	for i, k := range categoryKeys {
		if k == key {
			return MysteryCategory(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mystery category %q (use one of: %s)", s, strings.Join(categoryKeys[:], ", "))
}

// DisplayMode selects how bilingual texts are rendered.
type DisplayMode int

// Display modes.
const (
	PrimaryOnly DisplayMode = iota
	SecondaryOnly
	PrimaryThenSecondary
	SecondaryThenPrimary
)

var displayModeKeys = [...]string{"primary", "secondary", "primary-secondary", "secondary-primary"}

// AllDisplayModes returns every display mode in cycling order.
func AllDisplayModes() []DisplayMode {
	return []DisplayMode{PrimaryOnly, SecondaryOnly, PrimaryThenSecondary, SecondaryThenPrimary}
}

// String returns the stable key used for the persisted setting.
func (m DisplayMode) String() string {
	if m < PrimaryOnly || m > SecondaryThenPrimary {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return displayModeKeys[m]
}

// Next returns the following mode, wrapping around.
func (m DisplayMode) Next() DisplayMode {
	return DisplayMode((int(m) + 1) % len(displayModeKeys))
}

// ParseDisplayMode maps a key such as "primary-secondary" to a mode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, k := range displayModeKeys {
		if k == key {
			return DisplayMode(i), nil
		}
	}
	return PrimaryOnly, fmt.Errorf("unknown display mode %q (use one of: %s)", s, strings.Join(displayModeKeys[:], ", "))
}

// BilingualText holds one prayer in two parallel languages, line by line.
type BilingualText struct {
	Primary   string
	Secondary string
}

// PrayerSessionRecord captures a completed prayer session.
type PrayerSessionRecord struct {
	ID              int64
	UID             string
	Category        MysteryCategory
	CompletedAt     time.Time
	DurationSeconds *int
	MeditationType  *string
}

// StreakState is derived from the session log on demand.
type StreakState struct {
	CurrentStreak int
	LongestStreak int
}

// Config defines prayer session settings.
type Config struct {
	Category      MysteryCategory
	Mode          DisplayMode
	PrimaryLang   string
	SecondaryLang string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Category   *MysteryCategory
	Since      *time.Time
	RecentDays int
}
