package bot

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/calendar"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/storage"
	"github.com/zalando/go-keyring"
)

// addContact handles `add NAME PHONE`: create-or-update semantics, matching
// the store's insert-or-overwrite contract.
func (b *Bot) addContact(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%w: add needs NAME PHONE", book.ErrMissingArguments)
	}

	name, err := book.NewName(args[0])
	if err != nil {
		return "", err
	}

	rec, exists := b.Book.Find(args[0])
	if !exists {
		rec = book.NewRecord(name)
	}
	if err := rec.AddPhone(args[1]); err != nil {
		return "", err
	}
	if exists {
		return b.GetMsg(config.TKeyContactUpdated), nil
	}

	b.Book.Add(rec)
	return b.GetMsg(config.TKeyContactAdded), nil
}

// changePhone handles `change NAME OLD NEW`.
func (b *Bot) changePhone(args []string) (string, error) {
	if len(args) < 3 {
		return "", fmt.Errorf("%w: change needs NAME OLD NEW", book.ErrMissingArguments)
	}

	rec, ok := b.Book.Find(args[0])
	if !ok {
		return "", fmt.Errorf("%w: contact %s", book.ErrNotFound, args[0])
	}
	if err := rec.ChangePhone(args[1], args[2]); err != nil {
		return "", err
	}
	return b.GetMsgData(config.TKeyPhoneChanged, map[string]interface{}{"Name": args[0]}), nil
}

// showPhones handles `phone NAME`.
func (b *Bot) showPhones(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("%w: phone needs NAME", book.ErrMissingArguments)
	}

	rec, ok := b.Book.Find(args[0])
	if !ok {
		return "", fmt.Errorf("%w: contact %s", book.ErrNotFound, args[0])
	}
	return rec.PhoneList(), nil
}

// listAll handles `all`: every record in insertion order.
func (b *Bot) listAll() string {
	records := b.Book.All()
	if len(records) == 0 {
		return b.GetMsg(config.TKeyEmptyBook)
	}

	lines := make([]string, len(records))
	for i, rec := range records {
		lines[i] = rec.String()
	}
	return strings.Join(lines, "\n")
}

// deleteContact handles `delete NAME`.
func (b *Bot) deleteContact(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("%w: delete needs NAME", book.ErrMissingArguments)
	}

	if _, ok := b.Book.Find(args[0]); !ok {
		return "", fmt.Errorf("%w: contact %s", book.ErrNotFound, args[0])
	}
	b.Book.Delete(args[0])
	return b.GetMsgData(config.TKeyContactDeleted, map[string]interface{}{"Name": args[0]}), nil
}

// addBirthday handles `add-birthday NAME DD.MM.YYYY`. The raw date is moved
// off the weekend before storage; only the observed date is kept.
func (b *Bot) addBirthday(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%w: add-birthday needs NAME DATE", book.ErrMissingArguments)
	}

	rec, ok := b.Book.Find(args[0])
	if !ok {
		return "", fmt.Errorf("%w: contact %s", book.ErrNotFound, args[0])
	}

	raw, err := book.ParseBirthday(args[1])
	if err != nil {
		return "", err
	}
	rec.SetBirthday(raw)

	return b.GetMsgData(config.TKeyBirthdayAdded, map[string]interface{}{"Name": args[0]}), nil
}

// showBirthday handles `show-birthday NAME`.
func (b *Bot) showBirthday(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("%w: show-birthday needs NAME", book.ErrMissingArguments)
	}

	rec, ok := b.Book.Find(args[0])
	if !ok {
		return "", fmt.Errorf("%w: contact %s", book.ErrNotFound, args[0])
	}
	if !rec.HasBirthday() {
		return b.GetMsg(config.TKeyBirthdayNotSet), nil
	}
	return book.FormatDate(rec.Birthday), nil
}

// listBirthdays handles `birthdays`: reminders for the seven-day window.
func (b *Bot) listBirthdays() string {
	reminders := b.Book.UpcomingBirthdays(b.Clock.Now())
	if len(reminders) == 0 {
		return b.GetMsg(config.TKeyNoUpcoming)
	}

	lines := make([]string, 0, len(reminders)+1)
	lines = append(lines, b.GetMsg(config.TKeyUpcomingHeader))
	for _, r := range reminders {
		lines = append(lines, fmt.Sprintf(config.FormatReminder, r.Name, book.FormatDate(r.Date)))
	}
	return strings.Join(lines, "\n")
}

// importContacts handles `import SOURCE`: merge contacts from a local .vcf
// file or an http(s) URL. Imported birthdays are raw and get the weekend
// shift applied on the way in.
func (b *Bot) importContacts(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("%w: %s", book.ErrMissingArguments, config.ErrImportSrcEmpty)
	}
	source := args[0]

	reader, err := b.openSource(source)
	if err != nil {
		return "", err
	}
	defer func() { _ = reader.Close() }()

	imported, err := storage.Decode(reader)
	if err != nil {
		return "", err
	}

	count := 0
	for _, rec := range imported.All() {
		if rec.HasBirthday() {
			rec.SetBirthday(rec.Birthday)
		}
		b.Book.Add(rec)
		count++
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompBot,
		config.LogKeySource, source,
		config.LogKeyCount, count,
	)
	return b.GetMsgData(config.TKeyImported, map[string]interface{}{"Count": count}), nil
}

// openSource opens a local path or a remote URL for import. Remote basic-auth
// passwords come from the system keyring, never from the command line.
func (b *Bot) openSource(source string) (io.ReadCloser, error) {
	if !strings.Contains(source, config.SchemeSeparator) {
		return os.Open(source)
	}

	if b.Fetcher == nil {
		return nil, fmt.Errorf("%s", config.ErrFetcherMissing)
	}

	pass := ""
	if b.ImportUser != "" {
		if p, err := keyring.Get(config.KeyringService, b.ImportUser); err == nil {
			pass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyComponent, config.CompBot,
				config.LogKeyUser, b.ImportUser,
				config.LogKeyError, err,
			)
		}
	}

	return b.Fetcher.Fetch(b.Ctx, source, b.ImportUser, pass)
}

// exportCalendar handles `export [PATH]`: write the birthdays as an ICS file.
func (b *Bot) exportCalendar(args []string) (string, error) {
	path := config.DefaultICSFileName
	if len(args) > 0 {
		path = args[0]
	}

	gen := &calendar.Generator{
		Clock:         b.Clock,
		FormatSummary: b.summaryFormatter(),
	}
	data, _, err := gen.Generate(b.Book.All())
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrExportWrite, err)
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompBot,
		config.LogKeyPath, path,
	)
	return b.GetMsgData(config.TKeyExported, map[string]interface{}{"Path": path}), nil
}

// summaryFormatter returns a closure that localizes calendar event summaries.
func (b *Bot) summaryFormatter() func(name string, age int, yearKnown bool) string {
	return func(name string, age int, yearKnown bool) string {
		var msg string
		var err error

		if b.Localizer != nil {
			if age == 0 {
				msg, err = b.Localizer.Localize(&i18n.LocalizeConfig{
					MessageID:    config.TKeyEvtSummaryBirth,
					TemplateData: map[string]interface{}{"Name": name},
				})
			} else {
				msg, err = b.Localizer.Localize(&i18n.LocalizeConfig{
					MessageID:    config.TKeyEvtSummaryAge,
					TemplateData: map[string]interface{}{"Name": name, "Age": age},
				})
			}
		} else {
			err = fmt.Errorf("%s", config.ErrLocNotInit)
		}

		if err != nil || msg == "" {
			if age == 0 {
				return fmt.Sprintf(config.FallbackSummaryBirth, name)
			}
			return fmt.Sprintf(config.FallbackSummaryAge, name, age)
		}
		return msg
	}
}
