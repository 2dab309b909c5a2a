// Package export writes the schedule and session history as iCalendar files.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/verte-zerg/lumen/internal/content"
	"github.com/verte-zerg/lumen/internal/model"
	"github.com/verte-zerg/lumen/internal/schedule"
)

const (
	prodID = "-//Lumen Viae//Rosary//EN"
	domain = "lumen"
)

// ErrEmptyCalendar is returned when encoding a calendar with no events.
var ErrEmptyCalendar = errors.New("calendar has no events")

func newCalendar(name string) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText("X-WR-CALNAME", name)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	return cal
}

func stamp(now time.Time) *ical.Prop {
	prop := ical.NewProp(ical.PropDateTimeStamp)
	prop.SetDateTime(now.UTC())
	return prop
}

// ScheduleCalendar builds one all-day event per day for weeks weeks from the
// week containing start. lib may be nil, in which case events carry only the
// category name.
func ScheduleCalendar(start time.Time, weeks int, lib *content.Library, clock schedule.Clock) *ical.Calendar {
	if clock == nil {
		clock = schedule.RealClock{}
	}
	cal := newCalendar("Rosary schedule")
	dtStamp := stamp(clock.Now())
	for _, day := range schedule.Range(schedule.StartOfWeek(start), weeks*7) {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("schedule-%s@%s", day.Date.Format("20060102"), domain))
		summary := day.Category.Title()
		if lib != nil {
			info := lib.Category(day.Category)
			if info.Name != "" {
				summary = info.Name
			}
			titles := make([]string, 0, len(info.Mysteries))
			for _, m := range info.Mysteries {
				titles = append(titles, fmt.Sprintf("%d. %s", m.Number, m.Title))
			}
			if len(titles) > 0 {
				event.Props.SetText(ical.PropDescription, strings.Join(titles, "\n"))
			}
		}
		event.Props.SetText(ical.PropSummary, summary)
		event.Props.SetText(ical.PropCategories, day.Category.String())

		dtStart := ical.NewProp(ical.PropDateTimeStart)
		dtStart.SetDate(day.Date)
		event.Props.Set(dtStart)
		dtEnd := ical.NewProp(ical.PropDateTimeEnd)
		dtEnd.SetDate(day.Date.AddDate(0, 0, 1))
		event.Props.Set(dtEnd)
		event.Props.Set(dtStamp)

		cal.Children = append(cal.Children, event.Component)
	}
	return cal
}

// HistoryCalendar builds one event per recorded session.
func HistoryCalendar(records []model.PrayerSessionRecord, clock schedule.Clock) *ical.Calendar {
	if clock == nil {
		clock = schedule.RealClock{}
	}
	cal := newCalendar("Rosary history")
	dtStamp := stamp(clock.Now())
	for _, rec := range records {
		event := ical.NewEvent()
		uid := rec.UID
		if uid == "" {
			uid = fmt.Sprintf("session-%d", rec.ID)
		}
		event.Props.SetText(ical.PropUID, uid+"@"+domain)
		event.Props.SetText(ical.PropSummary, rec.Category.Title())
		event.Props.SetText(ical.PropCategories, rec.Category.String())
		if rec.MeditationType != nil && *rec.MeditationType != "" {
			event.Props.SetText(ical.PropDescription, "Meditation: "+*rec.MeditationType)
		}

		dtStart := ical.NewProp(ical.PropDateTimeStart)
		dtStart.SetDateTime(rec.CompletedAt.UTC())
		event.Props.Set(dtStart)
		if rec.DurationSeconds != nil && *rec.DurationSeconds > 0 {
			duration := ical.NewProp(ical.PropDuration)
			duration.SetDuration(time.Duration(*rec.DurationSeconds) * time.Second)
			event.Props.Set(duration)
		}
		event.Props.Set(dtStamp)

		cal.Children = append(cal.Children, event.Component)
	}
	return cal
}

// Encode writes cal in iCalendar format.
func Encode(w io.Writer, cal *ical.Calendar) error {
	if len(cal.Children) == 0 {
		return ErrEmptyCalendar
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}
