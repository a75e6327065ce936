package calendar

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// Generator turns the address book's birthdays into an iCalendar document
// suitable for import into any calendar client.
type Generator struct {
	Clock book.Clock // Interface for time mocking.

	// FormatSummary allows the console layer to inject localized strings
	// into the generation logic.
	FormatSummary func(name string, age int, yearKnown bool) string
}

// Generate builds the ICS document for every contact with a birthday and
// returns it together with the number of birthdays falling today. Events are
// emitted for the previous, current, and next year so clients can scroll
// without a re-export.
func (g *Generator) Generate(records []*book.Record) ([]byte, int, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Birthdays are defined by the local calendar date of the person, not an
	// absolute UTC timestamp. Local time drives the logic; only the DTSTAMP
	// is written in UTC.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	stats := struct{ total, withBday, today int }{}
	for _, rec := range records {
		stats.total++
		if !rec.HasBirthday() {
			continue
		}
		stats.withBday++

		uidBase := uidFor(rec)
		events, isToday := g.createEvents(rec, now, uidBase)
		if isToday {
			stats.today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompCal,
				config.LogKeyName, string(rec.Name),
				config.LogKeyDOB, rec.Birthday.Format(config.DateFormatFullDash),
			)
		}

		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	g.logSuccess(stats)

	// A VCALENDAR without components is invalid; fall back to the stub so an
	// empty book still exports a file clients accept.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), stats.today, nil
}

// uidFor derives a deterministic event UID base from the contact identity so
// re-exports update events in place instead of duplicating them.
func uidFor(rec *book.Record) string {
	input := fmt.Sprintf(config.FormatHashInput,
		rec.Name, rec.Birthday.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// defaultSummary renders the untranslated event title used when no localized
// formatter is injected. Birthdays always carry a year, so the age is shown.
func defaultSummary(name string, age int) string {
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}

// createEvents generates one all-day event per target year relative to now,
// skipping years before the person was born.
func (g *Generator) createEvents(rec *book.Record, now time.Time, uidBase string) ([]*ical.Event, bool) {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	var events []*ical.Event
	isToday := false

	todayYear, todayMonth, todayDay := now.Date()

	for _, y := range targetYears {
		if y < rec.Birthday.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		age := y - rec.Birthday.Year()

		summary := defaultSummary(string(rec.Name), age)
		if g.FormatSummary != nil {
			summary = g.FormatSummary(string(rec.Name), age, true)
		}
		event.Props.SetText(config.PropSummary, summary)

		eventDate := time.Date(y, rec.Birthday.Month(), rec.Birthday.Day(), 0, 0, 0, 0, loc)

		if y == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		events = append(events, event)
	}
	return events, isToday
}

// logSuccess logs the final statistics of the generation process.
func (g *Generator) logSuccess(stats struct{ total, withBday, today int }) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompCal,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.total),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
}
