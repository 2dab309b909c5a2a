package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lumen/internal/bilingual"
	"github.com/verte-zerg/lumen/internal/model"
)

func TestDefaultLibrary(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)

	for _, id := range []string{SignOfCross, Creed, OurFather, HailMary, GloryBe, Fatima, HailHolyQueen, FinalPrayer} {
		p, ok := lib.Prayer(id)
		require.True(t, ok, "missing prayer %s", id)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Text.Primary)
		assert.NotEmpty(t, p.Text.Secondary)
	}

	for _, c := range model.AllCategories() {
		info := lib.Category(c)
		assert.NotEmpty(t, info.Name)
		want := 5
		if c == model.SevenSorrows {
			want = 7
		}
		assert.Len(t, lib.Mysteries(c), want, "category %s", c)
	}
	assert.Equal(t, 7, lib.Category(model.SevenSorrows).HailMarys)
	assert.Equal(t, "seven-sorrows-opening", lib.Category(model.SevenSorrows).Opening)
	assert.Equal(t, 10, lib.Category(model.Joyful).HailMarys)
	assert.Equal(t, Creed, lib.Category(model.Joyful).Opening)
}

func TestDefaultPrayersPairLineByLine(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)
	for _, id := range []string{SignOfCross, Creed, OurFather, HailMary, GloryBe, Fatima, HailHolyQueen, FinalPrayer} {
		p, _ := lib.Prayer(id)
		primary := strings.Split(p.Text.Primary, "\n")
		secondary := strings.Split(p.Text.Secondary, "\n")
		assert.Len(t, secondary, len(primary), "prayer %s lines must correspond", id)
	}

	hail, _ := lib.Prayer(HailMary)
	out := bilingual.Format(hail.Text, model.PrimaryThenSecondary)
	assert.True(t, strings.HasPrefix(out, "Hail Mary, full of grace,"+bilingual.Separator+"Ave Maria, gratia plena,"))
}

func TestMysteriesAreNumbered(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)
	ms := lib.Mysteries(model.Sorrowful)
	require.Len(t, ms, 5)
	assert.Equal(t, 1, ms[0].Number)
	assert.Equal(t, "The Agony in the Garden", ms[0].Title)
	assert.Equal(t, 5, ms[4].Number)

	ms[0].Title = "changed"
	assert.Equal(t, "The Agony in the Garden", lib.Mysteries(model.Sorrowful)[0].Title)
}

func TestLoadOverrides(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "content.toml")
	body := `
[prayers.hail-mary]
primary = "Hail Mary"
secondary = "Ave Maria"

[prayers.st-michael]
title = "St. Michael"
primary = "St. Michael the Archangel,\ndefend us in battle."
secondary = "Sancte Michael Archangele,\ndefende nos in proelio."
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	require.NoError(t, lib.LoadOverrides(path))

	hail, ok := lib.Prayer(HailMary)
	require.True(t, ok)
	assert.Equal(t, "Hail Mary", hail.Title)
	assert.Equal(t, "Ave Maria", hail.Text.Secondary)
	assert.Contains(t, lib.PrayerIDs(), "st-michael")
}

func TestLoadOverridesMissingFile(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)
	assert.NoError(t, lib.LoadOverrides(filepath.Join(t.TempDir(), "absent.toml")))
	assert.NoError(t, lib.LoadOverrides(""))
}

func TestLoadOverridesRejectsUnknownCategory(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "content.toml")
	body := "[categories.penitential]\nmysteries = [{ title = \"x\" }]\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	assert.Error(t, lib.LoadOverrides(path))
}
