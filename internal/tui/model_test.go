package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/verte-zerg/lumen/internal/content"
	"github.com/verte-zerg/lumen/internal/model"
	"github.com/verte-zerg/lumen/internal/schedule"
)

type fakeStore struct {
	sessions  []model.PrayerSessionRecord
	modes     []model.DisplayMode
	recordErr error
}

func (s *fakeStore) RecordSession(_ context.Context, category model.MysteryCategory, completedAt time.Time, durationSeconds *int, meditationType *string) (model.PrayerSessionRecord, error) {
	if s.recordErr != nil {
		return model.PrayerSessionRecord{}, s.recordErr
	}
	rec := model.PrayerSessionRecord{
		ID:              int64(len(s.sessions) + 1),
		Category:        category,
		CompletedAt:     completedAt,
		DurationSeconds: durationSeconds,
		MeditationType:  meditationType,
	}
	s.sessions = append(s.sessions, rec)
	return rec, nil
}

func (s *fakeStore) AllSessions(context.Context) ([]model.PrayerSessionRecord, error) {
	return s.sessions, nil
}

func (s *fakeStore) SetDisplayMode(_ context.Context, mode model.DisplayMode) error {
	s.modes = append(s.modes, mode)
	return nil
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

var testNow = time.Date(2026, time.October, 19, 18, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, st SessionStore, cfg model.Config) *Model {
	t.Helper()
	return newTestModelWithClock(t, st, cfg, schedule.FixedClock(testNow))
}

func newTestModelWithClock(t *testing.T, st SessionStore, cfg model.Config, clock schedule.Clock) *Model {
	t.Helper()
	lib, err := content.Default()
	require.NoError(t, err)
	if cfg.PrimaryLang == "" {
		cfg.PrimaryLang = "en"
	}
	if cfg.SecondaryLang == "" {
		cfg.SecondaryLang = "la"
	}
	m, err := NewModel(Options{
		Config:  cfg,
		Store:   st,
		Library: lib,
		Clock:   clock,
		Logger:  zap.NewNop(),
	})
	require.NoError(t, err)
	return m
}

func press(m *Model, msg tea.KeyMsg) {
	m.Update(msg)
}

func TestAdvanceAndBack(t *testing.T) {
	m := newTestModel(t, &fakeStore{}, model.Config{Category: model.Joyful})

	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 0, m.Position())

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 3, m.Position())

	press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, 2, m.Position())
}

func TestCompletionRecordsSessionOnce(t *testing.T) {
	st := &fakeStore{}
	clock := &stepClock{now: testNow}
	medType := "guided"
	lib, err := content.Default()
	require.NoError(t, err)
	m, err := NewModel(Options{
		Config:         model.Config{Category: model.SevenSorrows},
		Store:          st,
		Library:        lib,
		Clock:          clock,
		MeditationType: &medType,
	})
	require.NoError(t, err)

	clock.now = testNow.Add(20 * time.Minute)
	for i := 0; i < 100; i++ {
		press(m, tea.KeyMsg{Type: tea.KeySpace})
	}

	require.True(t, m.Finished())
	require.Len(t, st.sessions, 1)
	rec := st.sessions[0]
	assert.Equal(t, model.SevenSorrows, rec.Category)
	require.NotNil(t, rec.DurationSeconds)
	assert.Equal(t, 1200, *rec.DurationSeconds)
	assert.Equal(t, "guided", *rec.MeditationType)
	assert.Equal(t, 1, m.streaks.CurrentStreak)
	assert.Contains(t, m.View(), "The Rosary is complete.")

	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.True(t, m.Finished())
}

func TestCompletionRecordFailure(t *testing.T) {
	st := &fakeStore{recordErr: errors.New("disk full")}
	m := newTestModel(t, st, model.Config{Category: model.Luminous})
	for i := 0; i < 100; i++ {
		press(m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	assert.True(t, m.Finished())
	assert.Equal(t, "session not saved", m.errMsg)
}

func TestCycleModePersists(t *testing.T) {
	st := &fakeStore{}
	m := newTestModel(t, st, model.Config{Category: model.Glorious, Mode: model.PrimaryOnly})

	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})

	assert.Equal(t, model.PrimaryThenSecondary, m.Mode())
	assert.Equal(t, []model.DisplayMode{model.SecondaryOnly, model.PrimaryThenSecondary}, st.modes)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, &fakeStore{}, model.Config{Category: model.Joyful})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsMysteryAndText(t *testing.T) {
	m := newTestModel(t, &fakeStore{}, model.Config{Category: model.Joyful, Mode: model.PrimaryOnly})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	for i := 0; i < 7; i++ {
		press(m, tea.KeyMsg{Type: tea.KeySpace})
	}
	view := m.View()
	assert.Contains(t, view, "First Mystery: The Annunciation")
	assert.Contains(t, view, "Our Father")
	assert.False(t, strings.Contains(view, "|||"))
}
