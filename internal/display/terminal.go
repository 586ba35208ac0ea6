package display

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// Title is shown above the transcript
	Title = "VFS - Shell"

	defaultWidth  = 80
	defaultHeight = 20
	// chrome is the number of rows taken by the title, border, input, and help lines.
	chrome = 6
)

// Executor runs one submitted line. The text it produces goes to the
// Transcript the terminal was created with. A non-nil error ends the session.
type Executor interface {
	Execute(line string) error
}

// Terminal is the bubbletea model for the interactive surface.
type Terminal struct {
	exec       Executor
	transcript *Transcript
	input      textinput.Model
	viewport   viewport.Model
	keys       KeyMap
	styles     Styles
	quitting   bool
	err        error
}

// NewTerminal creates the model. The transcript should already hold the intro.
func NewTerminal(exec Executor, transcript *Transcript, styles Styles) Terminal {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 1024
	ti.Width = defaultWidth - 4
	ti.TextStyle = styles.Input
	ti.Focus()

	vp := viewport.New(defaultWidth, defaultHeight)

	t := Terminal{
		exec:       exec,
		transcript: transcript,
		input:      ti,
		viewport:   vp,
		keys:       DefaultKeyMap(),
		styles:     styles,
	}
	t.refresh()
	return t
}

// Init implements tea.Model.
func (t Terminal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (t Terminal) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.viewport.Width = msg.Width - 4
		t.viewport.Height = max(msg.Height-chrome, 1)
		t.input.Width = msg.Width - 4
		t.refresh()
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, t.keys.Quit):
			t.quitting = true
			return t, tea.Quit

		case key.Matches(msg, t.keys.Submit):
			line := t.input.Value()
			t.input.Reset()
			if err := t.exec.Execute(line); err != nil {
				displayLogger.Debug("Session ended: %v", err)
				t.err = err
				t.quitting = true
				t.refresh()
				return t, tea.Quit
			}
			t.refresh()
			return t, nil

		case key.Matches(msg, t.keys.ScrollUp), key.Matches(msg, t.keys.ScrollDown):
			var cmd tea.Cmd
			t.viewport, cmd = t.viewport.Update(msg)
			return t, cmd
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// refresh copies the transcript into the viewport and scrolls to the end.
func (t *Terminal) refresh() {
	t.viewport.SetContent(t.transcript.String())
	t.viewport.GotoBottom()
}

// View implements tea.Model.
func (t Terminal) View() string {
	if t.quitting {
		return ""
	}
	help := fmt.Sprintf("%s run • %s quit • %s/%s scroll",
		t.keys.Submit.Help().Key, t.keys.Quit.Help().Key,
		t.keys.ScrollUp.Help().Key, t.keys.ScrollDown.Help().Key)

	return t.styles.Title.Render(Title) + "\n" +
		t.styles.Output.Render(t.viewport.View()) + "\n" +
		t.input.View() + "\n" +
		t.styles.Help.Render(help)
}

// Err returns the error that ended the session, if any.
func (t Terminal) Err() error {
	return t.err
}

// RunTerminal runs the interactive surface until the user quits, the executor
// ends the session, or ctx is cancelled. The executor's ending error is returned.
func RunTerminal(ctx context.Context, exec Executor, transcript *Transcript, styles Styles) error {
	p := tea.NewProgram(
		NewTerminal(exec, transcript, styles),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("terminal failed: %w", err)
	}
	if m, ok := final.(Terminal); ok {
		return m.Err()
	}
	return nil
}
