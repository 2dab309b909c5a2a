package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/lumen/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "lumen.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestRecordAndListSessions(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 10, 1, 20, 0, 0, 0, time.Local)
	duration := 1200
	medType := "audio"
	second, err := st.RecordSession(ctx, model.Sorrowful, base.Add(24*time.Hour), &duration, &medType)
	require.NoError(t, err)
	first, err := st.RecordSession(ctx, model.Joyful, base, nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, first.UID)
	assert.NotEqual(t, first.UID, second.UID)

	sessions, err := st.AllSessions(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, first.ID, sessions[0].ID, "sessions must be ordered by completion time")
	assert.Equal(t, model.Joyful, sessions[0].Category)
	assert.True(t, sessions[0].CompletedAt.Equal(base))
	assert.Nil(t, sessions[0].DurationSeconds)
	assert.Nil(t, sessions[0].MeditationType)

	require.NotNil(t, sessions[1].DurationSeconds)
	assert.Equal(t, 1200, *sessions[1].DurationSeconds)
	require.NotNil(t, sessions[1].MeditationType)
	assert.Equal(t, "audio", *sessions[1].MeditationType)
}

func TestListSessionsFilters(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	for i, c := range []model.MysteryCategory{model.Joyful, model.Glorious, model.Joyful} {
		_, err := st.RecordSession(ctx, c, base.AddDate(0, 0, i), nil, nil)
		require.NoError(t, err)
	}

	joyful := model.Joyful
	got, err := st.ListSessions(ctx, model.StatsConfig{Category: &joyful})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	since := base.AddDate(0, 0, 1)
	got, err = st.ListSessions(ctx, model.StatsConfig{Since: &since})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.Glorious, got[0].Category)
}

func TestRecordSessionRejectsInvalidCategory(t *testing.T) {
	st := openTestStore(t)
	_, err := st.RecordSession(context.Background(), model.MysteryCategory(99), time.Now(), nil, nil)
	assert.Error(t, err)
}

func TestDeleteSession(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	rec, err := st.RecordSession(ctx, model.Luminous, time.Now(), nil, nil)
	require.NoError(t, err)

	require.NoError(t, st.DeleteSession(ctx, rec.ID))
	err = st.DeleteSession(ctx, rec.ID)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	sessions, err := st.AllSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDisplayModeSetting(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	mode, err := st.DisplayMode(ctx, model.SecondaryOnly)
	require.NoError(t, err)
	assert.Equal(t, model.SecondaryOnly, mode)

	require.NoError(t, st.SetDisplayMode(ctx, model.PrimaryThenSecondary))
	require.NoError(t, st.SetDisplayMode(ctx, model.SecondaryThenPrimary))
	mode, err = st.DisplayMode(ctx, model.PrimaryOnly)
	require.NoError(t, err)
	assert.Equal(t, model.SecondaryThenPrimary, mode)

	require.NoError(t, st.SetSetting(ctx, KeyDisplayMode, "klingon"))
	mode, err = st.DisplayMode(ctx, model.PrimaryOnly)
	assert.Error(t, err)
	assert.Equal(t, model.PrimaryOnly, mode)
}

func TestSettingMissing(t *testing.T) {
	st := openTestStore(t)
	_, ok, err := st.Setting(context.Background(), KeyConsecrationStart)
	require.NoError(t, err)
	assert.False(t, ok)
}
