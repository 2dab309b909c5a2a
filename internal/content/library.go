// Package content provides the prayer texts and mystery sets.
package content

import (
	"embed"
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/lumen/internal/model"
)

//go:embed data/*.toml
var dataFS embed.FS

// Prayer ids used by the rosary sequence.
const (
	SignOfCross   = "sign-of-cross"
	Creed         = "creed"
	OurFather     = "our-father"
	HailMary      = "hail-mary"
	GloryBe       = "glory-be"
	Fatima        = "fatima"
	HailHolyQueen = "hail-holy-queen"
	FinalPrayer   = "final-prayer"
)

// Prayer is one bilingual prayer record.
type Prayer struct {
	ID    string
	Title string
	Text  model.BilingualText
}

// Mystery is one scene meditated upon during a decade.
type Mystery struct {
	Number    int
	Title     string
	Reference string
	Fruit     string
}

// CategoryInfo carries display metadata for a mystery category.
type CategoryInfo struct {
	Category  model.MysteryCategory
	Name      string
	Days      string
	Opening   string
	Closing   string
	HailMarys int
	Mysteries []Mystery
}

type prayerFile struct {
	Prayers map[string]prayerEntry `toml:"prayers"`
}

type prayerEntry struct {
	Title     string `toml:"title"`
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
}

type mysteryFile struct {
	Categories map[string]categoryEntry `toml:"categories"`
}

type categoryEntry struct {
	Name      string         `toml:"name"`
	Days      string         `toml:"days"`
	Opening   string         `toml:"opening"`
	Closing   string         `toml:"closing"`
	HailMarys int            `toml:"hail-marys"`
	Mysteries []mysteryEntry `toml:"mysteries"`
}

type mysteryEntry struct {
	Title     string `toml:"title"`
	Reference string `toml:"reference"`
	Fruit     string `toml:"fruit"`
}

// overrideFile is the optional user file; both sections may appear.
type overrideFile struct {
	Prayers    map[string]prayerEntry   `toml:"prayers"`
	Categories map[string]categoryEntry `toml:"categories"`
}

// Library is a read-only lookup over prayers and mystery sets.
type Library struct {
	prayers    map[string]Prayer
	categories map[model.MysteryCategory]CategoryInfo
}

// Default loads the embedded library.
func Default() (*Library, error) {
	var pf prayerFile
	if _, err := toml.DecodeFS(dataFS, "data/prayers.toml", &pf); err != nil {
		return nil, fmt.Errorf("failed to decode prayers: %w", err)
	}
	var mf mysteryFile
	if _, err := toml.DecodeFS(dataFS, "data/mysteries.toml", &mf); err != nil {
		return nil, fmt.Errorf("failed to decode mysteries: %w", err)
	}
	lib := &Library{
		prayers:    map[string]Prayer{},
		categories: map[model.MysteryCategory]CategoryInfo{},
	}
	lib.mergePrayers(pf.Prayers)
	if err := lib.mergeCategories(mf.Categories); err != nil {
		return nil, err
	}
	for _, c := range model.AllCategories() {
		if _, ok := lib.categories[c]; !ok {
			return nil, fmt.Errorf("missing mysteries for %s", c)
		}
	}
	return lib, nil
}

// LoadOverrides merges a user TOML file on top of the library. A missing file
// is not an error.
func (l *Library) LoadOverrides(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat content overrides: %w", err)
	}
	var of overrideFile
	if _, err := toml.DecodeFile(path, &of); err != nil {
		return fmt.Errorf("failed to decode content overrides: %w", err)
	}
	l.mergePrayers(of.Prayers)
	return l.mergeCategories(of.Categories)
}

func (l *Library) mergePrayers(entries map[string]prayerEntry) {
	for id, e := range entries {
		title := e.Title
		if title == "" {
			title = l.prayers[id].Title
		}
		l.prayers[id] = Prayer{
			ID:    id,
			Title: title,
			Text: model.BilingualText{
				Primary:   e.Primary,
				Secondary: e.Secondary,
			},
		}
	}
}

func (l *Library) mergeCategories(entries map[string]categoryEntry) error {
	for key, e := range entries {
		category, err := model.ParseCategory(key)
		if err != nil {
			return fmt.Errorf("mysteries: %w", err)
		}
		info := CategoryInfo{
			Category:  category,
			Name:      e.Name,
			Days:      e.Days,
			Opening:   e.Opening,
			Closing:   e.Closing,
			HailMarys: e.HailMarys,
		}
		if info.Name == "" {
			info.Name = category.Title()
		}
		if info.Opening == "" {
			info.Opening = Creed
		}
		if info.Closing == "" {
			info.Closing = HailHolyQueen
		}
		if info.HailMarys <= 0 {
			info.HailMarys = 10
		}
		for i, m := range e.Mysteries {
			info.Mysteries = append(info.Mysteries, Mystery{
				Number:    i + 1,
				Title:     m.Title,
				Reference: m.Reference,
				Fruit:     m.Fruit,
			})
		}
		if len(info.Mysteries) == 0 {
			return fmt.Errorf("mysteries: %s has no mysteries", key)
		}
		l.categories[category] = info
	}
	return nil
}

// Prayer looks up a prayer by id.
func (l *Library) Prayer(id string) (Prayer, bool) {
	p, ok := l.prayers[id]
	return p, ok
}

// PrayerIDs lists the known prayer ids in sorted order.
func (l *Library) PrayerIDs() []string {
	ids := make([]string, 0, len(l.prayers))
	for id := range l.prayers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Category returns the metadata for a category.
func (l *Library) Category(c model.MysteryCategory) CategoryInfo {
	return l.categories[c]
}

// Mysteries returns the mysteries of a category in order.
func (l *Library) Mysteries(c model.MysteryCategory) []Mystery {
	info := l.categories[c]
	out := make([]Mystery, len(info.Mysteries))
	copy(out, info.Mysteries)
	return out
}
