package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryRoundTrip(t *testing.T) {
	for _, c := range AllCategories() {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestParseCategoryAliases(t *testing.T) {
	for _, in := range []string{"Seven Sorrows", "seven_sorrows", "SEVENSORROWS"} {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, SevenSorrows, got)
	}
	_, err := ParseCategory("penitential")
	assert.Error(t, err)
}

func TestParseDisplayMode(t *testing.T) {
	mode, err := ParseDisplayMode(" Primary-Secondary ")
	require.NoError(t, err)
	assert.Equal(t, PrimaryThenSecondary, mode)

	_, err = ParseDisplayMode("latin")
	assert.Error(t, err)
}

func TestDisplayModeNextWraps(t *testing.T) {
	assert.Equal(t, SecondaryOnly, PrimaryOnly.Next())
	assert.Equal(t, PrimaryOnly, SecondaryThenPrimary.Next())
}

func TestInvalidCategoryString(t *testing.T) {
	assert.Equal(t, "category(9)", MysteryCategory(9).String())
	assert.False(t, MysteryCategory(-1).Valid())
}
