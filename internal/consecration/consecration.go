// Package consecration tracks the 33-day preparation for Marian consecration.
package consecration

import (
	"fmt"
	"time"

	"github.com/verte-zerg/lumen/internal/schedule"
)

// PreparationDays is the length of the preparation; the consecration itself
// falls on the following day.
const PreparationDays = 33

// DateLayout is the stored form of a plan's start date.
const DateLayout = "2006-01-02"

// Phase is one stage of the preparation.
type Phase int

// Preparation phases, in the order they are prayed.
const (
	NotStarted Phase = iota
	SpiritOfTheWorld
	KnowledgeOfSelf
	KnowledgeOfMary
	KnowledgeOfJesus
	ConsecrationDay
	Completed
)

func (p Phase) String() string {
	switch p {
	case SpiritOfTheWorld:
		return "Emptying of the spirit of the world"
	case KnowledgeOfSelf:
		return "Knowledge of self"
	case KnowledgeOfMary:
		return "Knowledge of Mary"
	case KnowledgeOfJesus:
		return "Knowledge of Jesus"
	case ConsecrationDay:
		return "Consecration day"
	case Completed:
		return "Completed"
	default:
		return "Not started"
	}
}

// PhaseForDay maps a day number to its phase.
func PhaseForDay(day int) Phase {
	switch {
	case day <= 0:
		return NotStarted
	case day <= 12:
		return SpiritOfTheWorld
	case day <= 19:
		return KnowledgeOfSelf
	case day <= 26:
		return KnowledgeOfMary
	case day <= PreparationDays:
		return KnowledgeOfJesus
	case day == PreparationDays+1:
		return ConsecrationDay
	default:
		return Completed
	}
}

// Plan is a preparation starting on a calendar day.
type Plan struct {
	Start time.Time
}

// NewPlan normalizes start to midnight.
func NewPlan(start time.Time) Plan {
	return Plan{Start: schedule.StartOfDay(start)}
}

// ParsePlan reads a plan stored with DateLayout as a calendar day in loc.
func ParsePlan(raw string, loc *time.Location) (Plan, error) {
	start, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return Plan{}, fmt.Errorf("invalid consecration start %q: %w", raw, err)
	}
	return NewPlan(start), nil
}

// Format returns the stored form of the plan.
func (p Plan) Format() string {
	return p.Start.Format(DateLayout)
}

// DayNumber returns the day of the preparation that now falls on, counting
// the start as day 1. Days before the start are 0.
func (p Plan) DayNumber(now time.Time) int {
	start := p.Start.In(now.Location())
	d := calendarDays(start, now) + 1
	if d < 1 {
		return 0
	}
	return d
}

// Phase returns the phase for now.
func (p Plan) Phase(now time.Time) Phase {
	return PhaseForDay(p.DayNumber(now))
}

// ConsecrationDate is the day after the preparation ends.
func (p Plan) ConsecrationDate() time.Time {
	return p.Start.AddDate(0, 0, PreparationDays)
}

// StartForFeast returns the start date so the consecration falls on feast.
func StartForFeast(feast time.Time) time.Time {
	return schedule.StartOfDay(feast).AddDate(0, 0, -PreparationDays)
}

// Feast is a Marian feast commonly chosen as a consecration date.
type Feast struct {
	Name  string
	Month time.Month
	Day   int
}

// Feasts lists fixed-date feasts in calendar order.
var Feasts = []Feast{
	{Name: "Mary, Mother of God", Month: time.January, Day: 1},
	{Name: "Our Lady of Lourdes", Month: time.February, Day: 11},
	{Name: "The Annunciation", Month: time.March, Day: 25},
	{Name: "Our Lady of Fatima", Month: time.May, Day: 13},
	{Name: "The Visitation", Month: time.May, Day: 31},
	{Name: "The Assumption", Month: time.August, Day: 15},
	{Name: "The Nativity of Mary", Month: time.September, Day: 8},
	{Name: "Our Lady of Sorrows", Month: time.September, Day: 15},
	{Name: "Our Lady of the Rosary", Month: time.October, Day: 7},
	{Name: "The Immaculate Conception", Month: time.December, Day: 8},
	{Name: "Our Lady of Guadalupe", Month: time.December, Day: 12},
}

// NextFeast returns the first feast whose preparation can still begin on or
// after now, with its date.
func NextFeast(now time.Time) (Feast, time.Time) {
	today := schedule.StartOfDay(now)
	for year := today.Year(); ; year++ {
		for _, f := range Feasts {
			date := time.Date(year, f.Month, f.Day, 0, 0, 0, 0, now.Location())
			if !StartForFeast(date).Before(today) {
				return f, date
			}
		}
	}
}

func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
