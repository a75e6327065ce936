package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client used for vCard imports.
var UserAgent = "Go-AddressBook/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Go Address Book"
	AppID          = "com.github.tartampluch.go-addressbook"
	KeyringService = "com.github.tartampluch.go-addressbook"
	LogFileName    = "app.log"
	HistoryFile    = "history"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the address book file, logs, and exports.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating the app data and cache directories.
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagFile         = "file"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescFile     = "Path of the address book file (.vcf)"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Environment Keys
// -----------------------------------------------------------------------------

const (
	EnvBookFile   = "GO_ADDRESSBOOK_FILE"
	EnvLanguage   = "GO_ADDRESSBOOK_LANG"
	EnvImportUser = "GO_ADDRESSBOOK_IMPORT_USER"
)

// -----------------------------------------------------------------------------
// Console Commands
// -----------------------------------------------------------------------------

const (
	CmdHello        = "hello"
	CmdAdd          = "add"
	CmdChange       = "change"
	CmdPhone        = "phone"
	CmdAll          = "all"
	CmdDelete       = "delete"
	CmdAddBirthday  = "add-birthday"
	CmdShowBirthday = "show-birthday"
	CmdBirthdays    = "birthdays"
	CmdImport       = "import"
	CmdExport       = "export"
	CmdHelp         = "help"
	CmdExit         = "exit"
	CmdClose        = "close"

	Prompt          = "> "
	InterruptPrompt = "^C"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage     = "en"
	DefaultBookFileName = "addressbook.vcf"
	DefaultICSFileName  = "birthdays.ics"

	// UpcomingWindowDays is the reminder window: today plus the next six days.
	UpcomingWindowDays = 7

	// PhoneLength is the required number of digits in a phone number.
	PhoneLength = 10

	PhoneSeparator = "; "

	UIDSalt = "go-addressbook-v1-" // Salt for deterministic UID generation
)

// SupportedLanguages defines the list of available console languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome        = "msg_welcome"
	TKeyGreeting       = "msg_greeting"
	TKeyGoodbye        = "msg_goodbye"
	TKeyHelp           = "msg_help"
	TKeyContactAdded   = "msg_contact_added"
	TKeyContactUpdated = "msg_contact_updated"
	TKeyContactDeleted = "msg_contact_deleted" // Requires Name
	TKeyPhoneChanged   = "msg_phone_changed"   // Requires Name
	TKeyBirthdayAdded  = "msg_birthday_added"  // Requires Name
	TKeyBirthdayNotSet = "msg_birthday_not_set"
	TKeyUpcomingHeader = "msg_upcoming_header"
	TKeyNoUpcoming     = "msg_no_upcoming"
	TKeyEmptyBook      = "msg_empty_book"
	TKeyImported       = "msg_imported" // Requires Count (plural)
	TKeyExported       = "msg_exported" // Requires Path

	TKeyErrNotFound    = "err_contact_not_found"
	TKeyErrInvalid     = "err_invalid_input"
	TKeyErrMissingArgs = "err_missing_arguments"
	TKeyErrUnknownCmd  = "err_invalid_command"
	TKeyErrGeneric     = "err_generic"

	TKeyEvtSummary      = "event_summary"       // Requires Name
	TKeyEvtSummaryAge   = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth = "event_summary_birth" // Requires Name (For age 0)
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Address Book//Calendar//EN"
	ICalCalName = "Birthdays"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goaddressbook"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardFN   = "FN"
	VCardN    = "N"
	VCardTEL  = "TEL"
	VCardBDAY = "BDAY"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// DateFormatInput is the only textual date format accepted from and shown
	// to the user (DD.MM.YYYY).
	DateFormatInput = "02.01.2006"

	// Date layouts used for reading vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"

	// DateFormatBDAY is the layout written for BDAY on save.
	DateFormatBDAY = "20060102"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// FormatRecord renders a contact for the "all" command.
	FormatRecord = "Contact name: %s, phones: %s"

	// FormatReminder renders one entry of the "birthdays" command.
	FormatReminder = "%s: %s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtICS   = ".ics"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	SchemeSeparator     = "://"
	HeaderUserAgent     = "User-Agent"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrBookLoad       = "failed to load address book"
	ErrBookSave       = "failed to save address book"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrVCardEncode    = "failed to encode vCard data"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrImportSrcEmpty = "import source is empty"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrConfigDir      = "could not determine user config dir"
	ErrCreateDir      = "could not create app directory"
	ErrAppFailed      = "application failed unexpectedly"
	ErrReadlineInit   = "failed to initialize console reader"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrLocNotInit     = "localizer not initialized"
	ErrExportWrite    = "failed to write calendar export"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary      = "Birthday: %s"
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"

	// StubVCalendar is the minimal valid iCalendar object used when no events
	// are found. Using a constant avoids hardcoded magic strings in the
	// generation logic.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgLogWarning = "Warning: %s at %s: %v\n"

	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgCtxCancel     = "Context cancelled, leaving command loop"
	MsgBookLoaded    = "Address book loaded"
	MsgBookMissing   = "Address book file not found, starting empty"
	MsgBookSaved     = "Address book saved"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedNoName = "Skipping card without a name"
	MsgGenSuccess    = "Calendar generation successful"
	MsgBdayToday     = "Birthday found today"
	MsgImportDone    = "Import completed"
	MsgExportDone    = "Calendar export written"
	MsgLoopStop      = "Command loop stopped"
	MsgCmdDispatch   = "Dispatching command"
	MsgCmdFailed     = "Command failed"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyPath      = "path"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyName      = "name"
	LogKeyCommand   = "command"
	LogKeySource    = "source"
	LogKeyUser      = "user"
	LogKeyValue     = "value"
	LogKeyCount     = "count"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain    = "main"
	CompBook    = "book"
	CompStorage = "storage"
	CompFetcher = "fetcher"
	CompCal     = "calendar"
	CompBot     = "bot"
	CompI18n    = "i18n"
)
