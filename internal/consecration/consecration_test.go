package consecration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPhaseForDay(t *testing.T) {
	cases := []struct {
		day  int
		want Phase
	}{
		{0, NotStarted},
		{1, SpiritOfTheWorld},
		{12, SpiritOfTheWorld},
		{13, KnowledgeOfSelf},
		{19, KnowledgeOfSelf},
		{20, KnowledgeOfMary},
		{26, KnowledgeOfMary},
		{27, KnowledgeOfJesus},
		{33, KnowledgeOfJesus},
		{34, ConsecrationDay},
		{35, Completed},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PhaseForDay(tc.day), "day %d", tc.day)
	}
}

func TestPhaseNamesAreDistinct(t *testing.T) {
	seen := map[string]Phase{}
	for p := NotStarted; p <= Completed; p++ {
		name := p.String()
		require.NotEmpty(t, name)
		prev, dup := seen[name]
		assert.False(t, dup, "%v and %v share name %q", prev, p, name)
		seen[name] = p
	}
	assert.Len(t, seen, 7)
}

func TestPlanDayNumber(t *testing.T) {
	plan := NewPlan(time.Date(2026, time.November, 5, 14, 30, 0, 0, time.UTC))
	assert.Equal(t, day(2026, time.November, 5), plan.Start)

	assert.Equal(t, 0, plan.DayNumber(day(2026, time.November, 4)))
	assert.Equal(t, 1, plan.DayNumber(time.Date(2026, time.November, 5, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 13, plan.DayNumber(day(2026, time.November, 17)))
	assert.Equal(t, KnowledgeOfSelf, plan.Phase(day(2026, time.November, 17)))
	assert.Equal(t, 34, plan.DayNumber(day(2026, time.December, 8)))
	assert.Equal(t, ConsecrationDay, plan.Phase(day(2026, time.December, 8)))
	assert.Equal(t, day(2026, time.December, 8), plan.ConsecrationDate())
}

func TestStartForFeastRoundTrip(t *testing.T) {
	feast := day(2027, time.March, 25)
	start := StartForFeast(feast)
	assert.Equal(t, day(2027, time.February, 20), start)
	assert.Equal(t, feast, NewPlan(start).ConsecrationDate())
}

func TestParsePlan(t *testing.T) {
	plan, err := ParsePlan("2026-11-05", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2026-11-05", plan.Format())

	_, err = ParsePlan("11/05/2026", time.UTC)
	require.Error(t, err)
}

func TestNextFeast(t *testing.T) {
	feast, date := NextFeast(time.Date(2026, time.October, 19, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, "The Immaculate Conception", feast.Name)
	assert.Equal(t, day(2026, time.December, 8), date)

	feast, date = NextFeast(day(2026, time.December, 20))
	assert.Equal(t, "Our Lady of Lourdes", feast.Name)
	assert.Equal(t, day(2027, time.February, 11), date)
}
