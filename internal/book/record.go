package book

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Record is a single contact: a unique name, an ordered list of phone
// numbers, and an optional birthday. The birthday held here is the observed
// one, already moved off the weekend by AdjustBirthday.
type Record struct {
	Name   Name
	Phones []Phone

	// Birthday is zero when unset.
	Birthday time.Time
}

// NewRecord creates an empty record for the given (validated) name.
func NewRecord(name Name) *Record {
	return &Record{Name: name}
}

// AddPhone validates and appends a phone number.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.Phones = append(r.Phones, p)
	return nil
}

// RemovePhone deletes every occurrence of the given number. Unknown numbers
// are a no-op.
func (r *Record) RemovePhone(raw string) {
	kept := r.Phones[:0]
	for _, p := range r.Phones {
		if string(p) != raw {
			kept = append(kept, p)
		}
	}
	r.Phones = kept
}

// ChangePhone replaces an existing number with a new, validated one.
// The old number must be present.
func (r *Record) ChangePhone(oldRaw, newRaw string) error {
	if !r.hasPhone(oldRaw) {
		return fmt.Errorf("%w: phone %s", ErrNotFound, oldRaw)
	}
	p, err := NewPhone(newRaw)
	if err != nil {
		return err
	}
	for i, existing := range r.Phones {
		if string(existing) == oldRaw {
			r.Phones[i] = p
		}
	}
	return nil
}

func (r *Record) hasPhone(raw string) bool {
	for _, p := range r.Phones {
		if string(p) == raw {
			return true
		}
	}
	return false
}

// SetBirthday stores the observed birthday for the raw date, fully replacing
// any prior value. The weekend shift happens here, once, at write time.
func (r *Record) SetBirthday(raw time.Time) {
	r.Birthday = AdjustBirthday(dateOnly(raw))
}

// HasBirthday reports whether a birthday has been recorded.
func (r *Record) HasBirthday() bool {
	return !r.Birthday.IsZero()
}

// PhoneList renders the phone numbers joined for display.
func (r *Record) PhoneList() string {
	parts := make([]string, len(r.Phones))
	for i, p := range r.Phones {
		parts[i] = string(p)
	}
	return strings.Join(parts, config.PhoneSeparator)
}

// String renders the record for the "all" command.
func (r *Record) String() string {
	return fmt.Sprintf(config.FormatRecord, r.Name, r.PhoneList())
}
