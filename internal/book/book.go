package book

import (
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// AddressBook maps contact names to records while preserving insertion
// order. It is not safe for concurrent use; the command loop is the only
// caller.
type AddressBook struct {
	records map[Name]*Record
	order   []Name
}

// New creates an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[Name]*Record)}
}

// Add inserts the record, or overwrites an existing record with the same
// name. Overwriting keeps the record's original position.
func (b *AddressBook) Add(r *Record) {
	if _, exists := b.records[r.Name]; !exists {
		b.order = append(b.order, r.Name)
	}
	b.records[r.Name] = r
}

// Find returns the record for the given name; the boolean is the
// absent-marker (no error for a simple miss).
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[Name(name)]
	return r, ok
}

// Delete removes the record with the given name. Absent names are a no-op.
func (b *AddressBook) Delete(name string) {
	key := Name(name)
	if _, ok := b.records[key]; !ok {
		return
	}
	delete(b.records, key)
	for i, n := range b.order {
		if n == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// All returns the records in insertion order.
func (b *AddressBook) All() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// Len returns the number of records.
func (b *AddressBook) Len() int {
	return len(b.records)
}

// Reminder is one upcoming-birthday entry: the contact and the date the
// reminder falls on, already moved off the weekend for display.
type Reminder struct {
	Name Name
	Date time.Time
}

// UpcomingBirthdays returns, in insertion order, the contacts whose
// birthdays fall within the next seven days (today inclusive, today+7
// exclusive). Each stored observed birthday is re-anchored to the current
// year, or to the next year when it has already passed, and weekend
// candidates are shifted to the following Monday for display only.
func (b *AddressBook) UpcomingBirthdays(today time.Time) []Reminder {
	todayStart := dateOnly(today)
	windowEnd := todayStart.AddDate(0, 0, config.UpcomingWindowDays)

	var out []Reminder
	for _, r := range b.All() {
		if !r.HasBirthday() {
			continue
		}

		candidate := reanchor(r.Birthday, todayStart.Year(), todayStart.Location())
		if candidate.Before(todayStart) {
			candidate = reanchor(r.Birthday, todayStart.Year()+1, todayStart.Location())
		}

		if candidate.Before(todayStart) || !candidate.Before(windowEnd) {
			continue
		}

		// The re-anchored date can land on a weekend even though the stored
		// one never does. Shift for the reminder text; the stored value is
		// untouched. Monday is the target either way, and a candidate already
		// on Monday stays put.
		if wd := candidate.Weekday(); wd == time.Saturday || wd == time.Sunday {
			candidate = NextWeekdayOnOrAfter(candidate, time.Monday)
		}

		out = append(out, Reminder{Name: r.Name, Date: candidate})
	}
	return out
}
