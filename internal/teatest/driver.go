// Package teatest drives bubbletea models synchronously in tests.
//
// Instead of running a tea.Program, the Driver calls Update directly and
// executes every returned Cmd in turn, feeding the resulting messages back
// into the model until nothing is left. Cmds that block (cursor blinks,
// tickers) are abandoned after a short timeout.
package teatest

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many follow-up Cmds one message may chain into.
const MaxDrainDepth = 100

// defaultCmdTimeout separates real work (database reads take microseconds
// against in-memory SQLite) from Cmds that wait on timers.
const defaultCmdTimeout = 50 * time.Millisecond

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once tea.Quit has been produced. Later input is dropped.
	Quitting bool

	// Seen lists the type of every message delivered to the model, in order.
	Seen []string

	timeout time.Duration
}

// Option configures the Driver during construction.
type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.deliver(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// WithCmdTimeout overrides how long a single Cmd may run before it is skipped.
func WithCmdTimeout(timeout time.Duration) Option {
	return func(d *Driver) {
		d.timeout = timeout
	}
}

// New creates a Driver for model. Call DrainInit to run the model's Init.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model, timeout: defaultCmdTimeout}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DrainInit executes Init and every message it leads to.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init(), 0)
}

// Send delivers msg and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.drain(d.deliver(msg), 0)
}

// ── keys ─────────────────────────────────────────────────────────────────────

// PressKey sends a single rune.
func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

// Press sends a special key such as tea.KeyTab or tea.KeyEnter.
func (d *Driver) Press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// ── inspection ───────────────────────────────────────────────────────────────

// View returns the model's current rendering.
func (d *Driver) View() string {
	return d.Model.View()
}

// PlainView returns the rendering with ANSI escape sequences removed.
func (d *Driver) PlainView() string {
	return ansiPattern.ReplaceAllString(d.Model.View(), "")
}

// RequireContains fails the test when the plain view lacks any of parts.
func (d *Driver) RequireContains(parts ...string) {
	d.T.Helper()
	view := d.PlainView()
	for _, p := range parts {
		if !strings.Contains(view, p) {
			d.T.Fatalf("view does not contain %q:\n%s", p, view)
		}
	}
}

// SawMessage reports whether a message whose type name contains name was
// delivered to the model.
func (d *Driver) SawMessage(name string) bool {
	for _, s := range d.Seen {
		if strings.Contains(s, name) {
			return true
		}
	}
	return false
}

// ── draining ─────────────────────────────────────────────────────────────────

func (d *Driver) deliver(msg tea.Msg) tea.Cmd {
	d.Seen = append(d.Seen, fmt.Sprintf("%T", msg))
	updated, cmd := d.Model.Update(msg)
	d.Model = updated
	return cmd
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: stopped draining at depth %d", depth)
		return
	}

	msg, ok := d.run(cmd)
	if !ok || msg == nil || isBlink(msg) {
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
		d.deliver(msg)
	default:
		d.drain(d.deliver(msg), depth+1)
	}
}

// run executes cmd on its own goroutine and gives up after the timeout.
func (d *Driver) run(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(d.timeout):
		return nil, false
	}
}

// isBlink matches the unexported cursor blink messages of bubbles/cursor,
// which would otherwise chain into timer Cmds.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
