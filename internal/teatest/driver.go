// Package teatest drives a bubbletea model synchronously in tests: messages
// go straight to Update and returned commands run inline.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds command chains so a self-scheduling model cannot hang a test.
const maxDepth = 50

// cmdTimeout skips commands that wait on timers or I/O.
const cmdTimeout = 20 * time.Millisecond

// Driver is a synchronous harness around a tea.Model.
type Driver struct {
	t     *testing.T
	Model tea.Model

	// Quitting records that the model returned tea.Quit.
	Quitting bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	d.run(model.Init(), 0)
	return d
}

// Send feeds msg through Update and runs whatever it returns. Messages
// after a quit are dropped.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.run(cmd, 0)
}

func (d *Driver) Press(k tea.KeyType) {
	d.t.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) Type(s string) {
	d.t.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (d *Driver) View() string { return d.Model.View() }

func (d *Driver) run(cmd tea.Cmd, depth int) {
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: command chain deeper than %d, stopping", maxDepth)
		return
	}

	msg := runWithTimeout(cmd)
	switch msg := msg.(type) {
	case nil:
	case tea.QuitMsg:
		d.Quitting = true
	case tea.BatchMsg:
		for _, c := range msg {
			d.run(c, depth+1)
		}
	default:
		var next tea.Cmd
		d.Model, next = d.Model.Update(msg)
		d.run(next, depth+1)
	}
}

func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
