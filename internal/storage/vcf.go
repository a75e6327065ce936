package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// Load reads the address book from a vCard file. A missing file is not an
// error: the bot starts with an empty book on first run. Card order in the
// file becomes insertion order in the book.
func Load(path string) (*book.AddressBook, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info(config.MsgBookMissing,
			config.LogKeyComponent, config.CompStorage,
			config.LogKeyPath, path,
		)
		return book.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBookLoad, err)
	}
	defer func() { _ = f.Close() }()

	b, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrBookLoad, err)
	}

	slog.Info(config.MsgBookLoaded,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyPath, path,
		config.LogKeyCount, b.Len(),
	)
	return b, nil
}

// Decode parses a vCard stream into an address book. Malformed cards are
// skipped with a warning to maximize data recovery; BDAY values are stored
// verbatim (no weekend adjustment here, callers decide).
func Decode(r io.Reader) (*book.AddressBook, error) {
	b := book.New()
	decoder := vcard.NewDecoder(r)

	for {
		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyError, err,
			)
			continue
		}

		rawName := card.Value(config.VCardFN)
		if rawName == "" {
			rawName = card.Value(config.VCardN)
		}
		name, err := book.NewName(rawName)
		if err != nil {
			slog.Warn(config.MsgSkippedNoName,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyValue, rawName,
			)
			continue
		}

		rec := book.NewRecord(name)

		for _, tel := range card.Values(config.VCardTEL) {
			if err := rec.AddPhone(tel); err != nil {
				slog.Debug(config.MsgSkippedCard,
					config.LogKeyComponent, config.CompStorage,
					config.LogKeyName, string(name),
					config.LogKeyValue, tel,
					config.LogKeyError, err,
				)
			}
		}

		if bday := card.Value(config.VCardBDAY); bday != "" {
			if t, err := parseBDAY(bday); err == nil {
				rec.Birthday = t
			} else {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompStorage,
					config.LogKeyName, string(name),
					config.LogKeyValue, bday,
				)
			}
		}

		b.Add(rec)
	}

	return b, nil
}

// Save serializes the address book as a vCard 4.0 stream, one card per
// contact in insertion order. The write goes through a temp file and a
// rename so a crash mid-save never truncates the previous book.
func Save(path string, b *book.AddressBook) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := tmp.Chmod(config.FilePermUserRW); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}

	encoder := vcard.NewEncoder(tmp)
	for _, rec := range b.All() {
		card := make(vcard.Card)
		card.SetValue(config.VCardFN, string(rec.Name))
		for _, phone := range rec.Phones {
			card.AddValue(config.VCardTEL, string(phone))
		}
		if rec.HasBirthday() {
			card.SetValue(config.VCardBDAY, rec.Birthday.Format(config.DateFormatBDAY))
		}
		vcard.ToV4(card)

		if err := encoder.Encode(card); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBookSave, err)
	}

	slog.Info(config.MsgBookSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyPath, path,
		config.LogKeyCount, b.Len(),
	)
	return nil
}

// parseBDAY handles the vCard date layouts written by this app and by common
// exporters. Dates without a year are not representable in the book and are
// rejected.
func parseBDAY(value string) (time.Time, error) {
	layouts := []string{
		config.DateFormatFullBasic,
		config.DateFormatFullDash,
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New(config.ErrDateParse)
}
