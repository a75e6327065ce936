package book

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Name is a validated contact name. It is the unique key within a book.
type Name string

// NewName validates and builds a contact name. Leading and trailing
// whitespace is rejected rather than trimmed silently: the name is the store
// key and must round-trip exactly.
func NewName(raw string) (Name, error) {
	if strings.TrimSpace(raw) == "" || strings.TrimSpace(raw) != raw {
		return "", fmt.Errorf("%w: name must be a non-empty string", ErrInvalidFormat)
	}
	return Name(raw), nil
}

func (n Name) String() string { return string(n) }

// Phone is a validated phone number: exactly ten ASCII digits.
type Phone string

// NewPhone validates and builds a phone number.
func NewPhone(raw string) (Phone, error) {
	if len(raw) != config.PhoneLength {
		return "", fmt.Errorf("%w: phone number must be %d digits long", ErrInvalidFormat, config.PhoneLength)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: phone number must contain only digits", ErrInvalidFormat)
		}
	}
	return Phone(raw), nil
}

func (p Phone) String() string { return string(p) }

// ParseBirthday parses a user-entered birthday in DD.MM.YYYY form. The strict
// layout is the only textual date format the console accepts.
func ParseBirthday(raw string) (time.Time, error) {
	t, err := time.Parse(config.DateFormatInput, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must use DD.MM.YYYY", ErrInvalidFormat)
	}
	return t, nil
}

// FormatDate renders a date in the DD.MM.YYYY form used for all console output.
func FormatDate(t time.Time) string {
	return t.Format(config.DateFormatInput)
}
