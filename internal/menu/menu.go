// Package menu runs the interactive text menu of the roster manager.
//
// The menu works like a router: numbered entries are registered with
// Handle, each mapped to a Handler built by a factory that closes over
// its dependencies. Run then loops, reloading the roster from storage at
// the top of every iteration and dispatching the user's choice.
//
// Nothing a handler does ends the loop except the exit entry, the end of
// input, or an interrupt. Unexpected handler errors and panics are
// logged and reported, and the menu is shown again.
package menu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
)

const banner = "========== STUDENT MANAGEMENT =========="

// User-facing loop messages.
const (
	MsgChoice      = "Enter your choice: "
	MsgExit        = "Exiting..."
	MsgInterrupted = "Program interrupted. Exiting safely..."
	MsgInvalid     = "Invalid choice. Try again."
)

// Handler performs one menu action on the current roster and returns the
// roster the action leaves behind.
//
// Returning ErrInterrupted or ErrInputClosed (from Console.Ask) ends the
// loop; any other error is reported and the loop continues.
type Handler func(ctx context.Context, c *Console, students []types.Student) ([]types.Student, error)

// Loader supplies the roster at the top of every iteration.
type Loader interface {
	Load() []types.Student
}

type entry struct {
	key     string
	title   string
	handler Handler
}

// Menu is the dispatch table plus the loop state.
type Menu struct {
	console *Console
	loader  Loader
	log     *slog.Logger
	entries []entry
	exitKey string
}

// New returns an empty menu. A nil logger falls back to slog.Default().
func New(console *Console, loader Loader, log *slog.Logger) *Menu {
	if log == nil {
		log = slog.Default()
	}
	return &Menu{console: console, loader: loader, log: log}
}

// Handle registers an entry. Entries are listed in registration order.
func (m *Menu) Handle(key, title string, h Handler) {
	m.entries = append(m.entries, entry{key: key, title: title, handler: h})
}

// HandleExit registers the entry that ends the loop normally.
func (m *Menu) HandleExit(key, title string) {
	m.entries = append(m.entries, entry{key: key, title: title})
	m.exitKey = key
}

// Run loops until the exit entry is chosen, input ends, or ctx is
// cancelled.
func (m *Menu) Run(ctx context.Context) {
	out := m.console.Out()

	for {
		students := m.loader.Load()

		m.printMenu()

		choice, err := m.console.Ask(ctx, MsgChoice)
		if err != nil {
			m.stop(err)
			return
		}

		if m.exitKey != "" && choice == m.exitKey {
			response.Write(out, response.OK(MsgExit))
			return
		}

		e, ok := m.lookup(choice)
		if !ok {
			response.Write(out, response.Failure(MsgInvalid))
			continue
		}

		students, err = m.dispatch(ctx, e, students)
		if errors.Is(err, ErrInterrupted) || errors.Is(err, ErrInputClosed) {
			m.stop(err)
			return
		}
		if err != nil {
			m.log.Error("unexpected error in menu",
				slog.String("choice", choice),
				slog.String("error", err.Error()))
			response.Write(out, response.GeneralError("Unexpected error in menu", err))
			continue
		}

		m.log.Debug("menu action done",
			slog.String("choice", choice),
			slog.Int("students", len(students)))
	}
}

func (m *Menu) printMenu() {
	out := m.console.Out()
	fmt.Fprintln(out)
	fmt.Fprintln(out, banner)
	for _, e := range m.entries {
		fmt.Fprintf(out, "%s. %s\n", e.key, e.title)
	}
}

func (m *Menu) lookup(key string) (entry, bool) {
	for _, e := range m.entries {
		if e.key == key && e.handler != nil {
			return e, true
		}
	}
	return entry{}, false
}

// dispatch runs one handler and turns a panic into an error so a broken
// action never takes the loop down.
func (m *Menu) dispatch(ctx context.Context, e entry, students []types.Student) (out []types.Student, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = students
			err = fmt.Errorf("%s: %v", e.title, r)
		}
	}()
	return e.handler(ctx, m.console, students)
}

func (m *Menu) stop(err error) {
	out := m.console.Out()
	if errors.Is(err, ErrInterrupted) {
		fmt.Fprintln(out)
		response.Write(out, response.OK(MsgInterrupted))
		m.log.Info("menu interrupted")
		return
	}
	fmt.Fprintln(out)
	response.Write(out, response.OK(MsgExit))
	if errors.Is(err, ErrInputClosed) && err != ErrInputClosed {
		m.log.Error("reading input failed, leaving menu",
			slog.String("error", err.Error()))
		return
	}
	m.log.Info("input closed, leaving menu")
}
