// Package rosary builds the ordered prayer steps of one Rosary.
package rosary

import (
	"fmt"

	"github.com/verte-zerg/lumen/internal/content"
	"github.com/verte-zerg/lumen/internal/model"
)

// Step is one prayer said during the Rosary.
type Step struct {
	Index    int
	PrayerID string
	Title    string
	// Mystery is set for every step of a decade.
	Mystery *content.Mystery
	// Repeat counts Hail Marys within their group, starting at 1. Of is the
	// group size; both are zero for prayers said once.
	Repeat int
	Of     int
}

// Label returns a short heading such as "Hail Mary (3/10)".
func (s Step) Label() string {
	if s.Of > 0 {
		return fmt.Sprintf("%s (%d/%d)", s.Title, s.Repeat, s.Of)
	}
	return s.Title
}

// Sequence is the full ordered list of steps for one category.
type Sequence struct {
	Category model.MysteryCategory
	Name     string
	Steps    []Step
}

type builder struct {
	lib   *content.Library
	steps []Step
}

// Build lays out the Rosary for category. The Seven Sorrows chaplet uses its
// own opening and closing prayers and seven Hail Marys per sorrow without the
// Glory Be and Fatima prayer.
func Build(category model.MysteryCategory, lib *content.Library) (Sequence, error) {
	info := lib.Category(category)
	if len(info.Mysteries) == 0 {
		return Sequence{}, fmt.Errorf("no mysteries for %s", category)
	}
	b := &builder{lib: lib}

	b.add(content.SignOfCross, nil, 0, 0)
	b.add(info.Opening, nil, 0, 0)
	chaplet := category == model.SevenSorrows
	if !chaplet {
		b.add(content.OurFather, nil, 0, 0)
		for i := 1; i <= 3; i++ {
			b.add(content.HailMary, nil, i, 3)
		}
		b.add(content.GloryBe, nil, 0, 0)
	}

	for i := range info.Mysteries {
		mystery := info.Mysteries[i]
		b.add(content.OurFather, &mystery, 0, 0)
		for n := 1; n <= info.HailMarys; n++ {
			b.add(content.HailMary, &mystery, n, info.HailMarys)
		}
		if !chaplet {
			b.add(content.GloryBe, &mystery, 0, 0)
			b.add(content.Fatima, &mystery, 0, 0)
		}
	}

	b.add(info.Closing, nil, 0, 0)
	if !chaplet {
		b.add(content.FinalPrayer, nil, 0, 0)
	}
	b.add(content.SignOfCross, nil, 0, 0)

	for _, s := range b.steps {
		if _, ok := lib.Prayer(s.PrayerID); !ok {
			return Sequence{}, fmt.Errorf("prayer %q not found", s.PrayerID)
		}
	}
	return Sequence{Category: category, Name: info.Name, Steps: b.steps}, nil
}

func (b *builder) add(prayerID string, mystery *content.Mystery, repeat, of int) {
	title := prayerID
	if p, ok := b.lib.Prayer(prayerID); ok && p.Title != "" {
		title = p.Title
	}
	b.steps = append(b.steps, Step{
		Index:    len(b.steps),
		PrayerID: prayerID,
		Title:    title,
		Mystery:  mystery,
		Repeat:   repeat,
		Of:       of,
	})
}

// Progress returns the percentage of steps completed before pos.
func (s Sequence) Progress(pos int) int {
	if len(s.Steps) == 0 || pos <= 0 {
		return 0
	}
	if pos >= len(s.Steps) {
		return 100
	}
	return pos * 100 / len(s.Steps)
}

// Decade returns the 1-based mystery number active at pos, or 0 outside the
// decades.
func (s Sequence) Decade(pos int) int {
	if pos < 0 || pos >= len(s.Steps) || s.Steps[pos].Mystery == nil {
		return 0
	}
	return s.Steps[pos].Mystery.Number
}
