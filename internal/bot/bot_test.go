package bot_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/bot"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestBot(t *testing.T) *bot.Bot {
	t.Helper()
	b := bot.New(context.Background(), book.New(), nil)
	b.Out = io.Discard
	b.SetupI18n()
	return b
}

// dispatch runs one line and returns the reply, failing the test if the bot
// wants to quit unexpectedly.
func dispatch(t *testing.T, b *bot.Bot, line string) string {
	t.Helper()
	quit, reply := b.Dispatch(line)
	require.False(t, quit, "command %q should not quit the loop", line)
	return reply
}

func TestDispatch_HelloAndUnknown(t *testing.T) {
	b := newTestBot(t)

	assert.Equal(t, "How can I help you?", dispatch(t, b, "hello"))
	assert.Equal(t, "How can I help you?", dispatch(t, b, "HELLO"), "commands are case-insensitive")
	assert.Equal(t, "Invalid command.", dispatch(t, b, "frobnicate"))
}

func TestDispatch_ExitAndClose(t *testing.T) {
	for _, cmd := range []string{"exit", "close"} {
		b := newTestBot(t)
		quit, reply := b.Dispatch(cmd)
		assert.True(t, quit)
		assert.Equal(t, "Good bye!", reply)
	}
}

func TestDispatch_AddAndPhones(t *testing.T) {
	b := newTestBot(t)

	assert.Equal(t, "Contact added.", dispatch(t, b, "add Alice 1111111111"))
	assert.Equal(t, "Contact updated.", dispatch(t, b, "add Alice 2222222222"))
	assert.Equal(t, "1111111111; 2222222222", dispatch(t, b, "phone Alice"))

	assert.Equal(t, "Phone number changed for Alice.", dispatch(t, b, "change Alice 1111111111 3333333333"))
	assert.Equal(t, "3333333333; 2222222222", dispatch(t, b, "phone Alice"))
}

func TestDispatch_ErrorMessages(t *testing.T) {
	b := newTestBot(t)
	dispatch(t, b, "add Alice 1111111111")

	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"Add too few args", "add Alice", "Invalid input. Please provide all necessary arguments."},
		{"Add bad phone", "add Bob 123", "Invalid input. Please check your input format and try again."},
		{"Change unknown contact", "change Bob 1111111111 2222222222", "Contact not found."},
		{"Change unknown phone", "change Alice 9999999999 2222222222", "Contact not found."},
		{"Phone unknown contact", "phone Bob", "Contact not found."},
		{"Phone no args", "phone", "Invalid input. Please provide all necessary arguments."},
		{"Birthday bad date", "add-birthday Alice 2024-09-14", "Invalid input. Please check your input format and try again."},
		{"Birthday unknown contact", "add-birthday Bob 14.09.2024", "Contact not found."},
		{"Delete unknown contact", "delete Bob", "Contact not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dispatch(t, b, tt.line))
		})
	}
}

func TestDispatch_All(t *testing.T) {
	b := newTestBot(t)

	assert.Equal(t, "The address book is empty.", dispatch(t, b, "all"))

	dispatch(t, b, "add Alice 1111111111")
	dispatch(t, b, "add Bob 2222222222")

	got := dispatch(t, b, "all")
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Contact name: Alice, phones: 1111111111", lines[0])
	assert.Equal(t, "Contact name: Bob, phones: 2222222222", lines[1])
}

func TestDispatch_Delete(t *testing.T) {
	b := newTestBot(t)
	dispatch(t, b, "add Alice 1111111111")

	assert.Equal(t, "Contact Alice deleted.", dispatch(t, b, "delete Alice"))
	assert.Equal(t, "Contact not found.", dispatch(t, b, "phone Alice"))
}

// TestDispatch_BirthdayFlow covers the storage-side weekend shift end to end:
// a raw Saturday birthday is stored and shown as the following Monday.
func TestDispatch_BirthdayFlow(t *testing.T) {
	b := newTestBot(t)
	dispatch(t, b, "add Alice 1111111111")

	assert.Equal(t, "Birthday added for Alice.", dispatch(t, b, "add-birthday Alice 14.09.2024"))
	assert.Equal(t, "16.09.2024", dispatch(t, b, "show-birthday Alice"))

	dispatch(t, b, "add Bob 2222222222")
	assert.Equal(t, "Birthday not set.", dispatch(t, b, "show-birthday Bob"))
}

func TestDispatch_Birthdays(t *testing.T) {
	b := newTestBot(t)
	b.Clock = MockClock{CurrentTime: time.Date(2024, 9, 16, 8, 0, 0, 0, time.UTC)} // Monday

	assert.Equal(t, "No upcoming birthdays within the next week.", dispatch(t, b, "birthdays"))

	dispatch(t, b, "add Alice 1111111111")
	dispatch(t, b, "add-birthday Alice 14.09.2024") // stored as 16.09.2024

	got := dispatch(t, b, "birthdays")
	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Upcoming birthdays within the next week:", lines[0])
	assert.Equal(t, "Alice: 16.09.2024", lines[1])
}

func TestDispatch_ImportLocalFile(t *testing.T) {
	vcf := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:4.0",
		"FN:Imported",
		"TEL:5551234567",
		"BDAY:20240914", // Saturday, raw
		"END:VCARD",
		"",
	}, "\r\n")

	path := filepath.Join(t.TempDir(), "import.vcf")
	require.NoError(t, os.WriteFile(path, []byte(vcf), 0600))

	b := newTestBot(t)
	assert.Equal(t, "Imported 1 contact.", dispatch(t, b, "import "+path))

	assert.Equal(t, "5551234567", dispatch(t, b, "phone Imported"))
	assert.Equal(t, "16.09.2024", dispatch(t, b, "show-birthday Imported"),
		"imported raw birthdays get the weekend shift applied")
}

func TestDispatch_ImportRemote(t *testing.T) {
	vcf := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Remote\r\nTEL:5550000000\r\nEND:VCARD\r\n"

	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, "https://contacts.example.com/all.vcf", "", "").
		Return(io.NopCloser(strings.NewReader(vcf)), nil)

	b := newTestBot(t)
	b.Fetcher = mockFetcher

	assert.Equal(t, "Imported 1 contact.", dispatch(t, b, "import https://contacts.example.com/all.vcf"))
	assert.Equal(t, "5550000000", dispatch(t, b, "phone Remote"))

	mockFetcher.AssertExpectations(t)
}

func TestDispatch_ImportMissingSource(t *testing.T) {
	b := newTestBot(t)
	assert.Equal(t, "Invalid input. Please provide all necessary arguments.", dispatch(t, b, "import"))
}

func TestDispatch_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ics")

	b := newTestBot(t)
	b.Clock = MockClock{CurrentTime: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)}
	dispatch(t, b, "add Alice 1111111111")
	dispatch(t, b, "add-birthday Alice 02.01.1990")

	assert.Equal(t, "Calendar written to "+path+".", dispatch(t, b, "export "+path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Contains(t, string(data), "Alice")
}

func TestDispatch_FrenchLocale(t *testing.T) {
	b := bot.New(context.Background(), book.New(), nil)
	b.Out = io.Discard
	b.Language = "fr"
	b.SetupI18n()

	assert.Equal(t, "Comment puis-je vous aider ?", dispatch(t, b, "hello"))
	assert.Equal(t, "Commande invalide.", dispatch(t, b, "frobnicate"))
}
