package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-addressbook/internal/book"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/storage"
)

// Bot is the interactive console assistant. It owns the single in-process
// address book instance and reads commands line by line until exit/close or
// context cancellation.
type Bot struct {
	Book    *book.AddressBook
	Clock   book.Clock
	Fetcher storage.VCardFetcher
	Ctx     context.Context

	// Out receives every user-facing reply. Defaults to os.Stdout; tests
	// swap in a buffer.
	Out io.Writer

	// Language selects the locale for replies (ISO 639-1).
	Language string

	// ImportUser is the basic-auth user for remote imports. Its password
	// lives in the system keyring under the app service name.
	ImportUser string

	// HistoryPath, when set, persists readline history across sessions.
	HistoryPath string

	I18nBundle         *i18n.Bundle
	Localizer          *i18n.Localizer
	SupportedLanguages []string
}

// New constructs the bot and wires dependencies.
func New(ctx context.Context, b *book.AddressBook, fetcher storage.VCardFetcher) *Bot {
	return &Bot{
		Book:     b,
		Clock:    book.RealClock{}, // Default to real clock in production
		Fetcher:  fetcher,
		Ctx:      ctx,
		Out:      os.Stdout,
		Language: config.DefaultLanguage,
	}
}

// Run starts the command loop and blocks until the user leaves or the
// context is cancelled. Malformed input never terminates the loop.
func (b *Bot) Run() error {
	b.SetupI18n()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          config.Prompt,
		HistoryFile:     b.HistoryPath,
		AutoComplete:    commandCompleter(),
		InterruptPrompt: config.InterruptPrompt,
		EOFPrompt:       config.CmdExit,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrReadlineInit, err)
	}
	defer func() { _ = rl.Close() }()

	// Unblock the pending Readline when the process is signalled.
	go func() {
		<-b.Ctx.Done()
		_ = rl.Close()
	}()

	b.println(b.GetMsg(config.TKeyWelcome))

	log := slog.With(config.LogKeyComponent, config.CompBot)

	for {
		if b.Ctx.Err() != nil {
			log.Info(config.MsgCtxCancel)
			return nil
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				break
			}
			continue
		}
		if err != nil {
			// io.EOF on Ctrl+D or when the context goroutine closed the
			// reader. Either way the loop is done.
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		quit, reply := b.Dispatch(line)
		if reply != "" {
			b.println(reply)
		}
		if quit {
			break
		}
	}

	log.Info(config.MsgLoopStop)
	return nil
}

// Dispatch parses one input line, runs the matching command, and returns the
// reply text plus whether the loop should stop. Every domain error is
// converted to a user message here; nothing escapes.
func (b *Bot) Dispatch(line string) (quit bool, reply string) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false, ""
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	slog.Debug(config.MsgCmdDispatch,
		config.LogKeyComponent, config.CompBot,
		config.LogKeyCommand, cmd,
	)

	var err error
	switch cmd {
	case config.CmdExit, config.CmdClose:
		return true, b.GetMsg(config.TKeyGoodbye)
	case config.CmdHello:
		reply = b.GetMsg(config.TKeyGreeting)
	case config.CmdHelp:
		reply = b.GetMsg(config.TKeyHelp)
	case config.CmdAdd:
		reply, err = b.addContact(args)
	case config.CmdChange:
		reply, err = b.changePhone(args)
	case config.CmdPhone:
		reply, err = b.showPhones(args)
	case config.CmdAll:
		reply = b.listAll()
	case config.CmdDelete:
		reply, err = b.deleteContact(args)
	case config.CmdAddBirthday:
		reply, err = b.addBirthday(args)
	case config.CmdShowBirthday:
		reply, err = b.showBirthday(args)
	case config.CmdBirthdays:
		reply = b.listBirthdays()
	case config.CmdImport:
		reply, err = b.importContacts(args)
	case config.CmdExport:
		reply, err = b.exportCalendar(args)
	default:
		reply = b.GetMsg(config.TKeyErrUnknownCmd)
	}

	if err != nil {
		reply = b.errorMessage(cmd, err)
	}
	return false, reply
}

// errorMessage maps the domain error taxonomy to localized user messages.
// Unknown errors are logged and reported generically.
func (b *Bot) errorMessage(cmd string, err error) string {
	switch {
	case errors.Is(err, book.ErrMissingArguments):
		return b.GetMsg(config.TKeyErrMissingArgs)
	case errors.Is(err, book.ErrInvalidFormat):
		return b.GetMsg(config.TKeyErrInvalid)
	case errors.Is(err, book.ErrNotFound):
		return b.GetMsg(config.TKeyErrNotFound)
	default:
		slog.Error(config.MsgCmdFailed,
			config.LogKeyComponent, config.CompBot,
			config.LogKeyCommand, cmd,
			config.LogKeyError, err,
		)
		return b.GetMsg(config.TKeyErrGeneric)
	}
}

func (b *Bot) println(s string) {
	_, _ = fmt.Fprintln(b.Out, s)
}

// commandCompleter builds tab completion over the known command names.
func commandCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(config.CmdHello),
		readline.PcItem(config.CmdAdd),
		readline.PcItem(config.CmdChange),
		readline.PcItem(config.CmdPhone),
		readline.PcItem(config.CmdAll),
		readline.PcItem(config.CmdDelete),
		readline.PcItem(config.CmdAddBirthday),
		readline.PcItem(config.CmdShowBirthday),
		readline.PcItem(config.CmdBirthdays),
		readline.PcItem(config.CmdImport),
		readline.PcItem(config.CmdExport),
		readline.PcItem(config.CmdHelp),
		readline.PcItem(config.CmdExit),
		readline.PcItem(config.CmdClose),
	)
}
