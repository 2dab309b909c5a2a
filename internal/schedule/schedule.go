// Package schedule maps calendar days to the mysteries prayed on them.
package schedule

import (
	"time"

	"github.com/verte-zerg/lumen/internal/model"
)

// weekdayTable follows the traditional schedule. Luminous and Seven Sorrows
// are never scheduled; they are chosen explicitly.
var weekdayTable = [7]model.MysteryCategory{
	model.Glorious,  // Sunday
	model.Joyful,    // Monday
	model.Sorrowful, // Tuesday
	model.Glorious,  // Wednesday
	model.Joyful,    // Thursday
	model.Sorrowful, // Friday
	model.Joyful,    // Saturday
}

// CategoryForWeekday returns the category for weekday, where 1 is Sunday and
// 7 is Saturday. Values outside 1..7 fall back to Joyful.
func CategoryForWeekday(weekday int) model.MysteryCategory {
	if weekday < 1 || weekday > 7 {
		return model.Joyful
	}
	return weekdayTable[weekday-1]
}

// CategoryForDate applies the weekday table to t's local weekday.
func CategoryForDate(t time.Time) model.MysteryCategory {
	return CategoryForWeekday(int(t.Weekday()) + 1)
}

// CategoryForToday resolves the category for the clock's current day.
func CategoryForToday(clock Clock) model.MysteryCategory {
	return CategoryForDate(clock.Now())
}

// Day is one scheduled calendar day.
type Day struct {
	Date     time.Time
	Category model.MysteryCategory
}

// StartOfDay truncates t to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// Week lists the seven days of the Sunday-anchored week containing start.
func Week(start time.Time) []Day {
	first := StartOfWeek(start)
	days := make([]Day, 0, 7)
	for i := 0; i < 7; i++ {
		date := first.AddDate(0, 0, i)
		days = append(days, Day{Date: date, Category: CategoryForDate(date)})
	}
	return days
}

// Range lists count consecutive days beginning at start's calendar day.
func Range(start time.Time, count int) []Day {
	if count <= 0 {
		return nil
	}
	first := StartOfDay(start)
	days := make([]Day, 0, count)
	for i := 0; i < count; i++ {
		date := first.AddDate(0, 0, i)
		days = append(days, Day{Date: date, Category: CategoryForDate(date)})
	}
	return days
}
