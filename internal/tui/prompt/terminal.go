package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ellipszist/texport/internal/codec"
	"github.com/ellipszist/texport/internal/tui/styles"
)

// Terminal asks questions with bubbletea programs.
type Terminal struct {
	in         io.Reader
	out        io.Writer
	defaultDir string
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithIO replaces the terminal's input and output streams.
func WithIO(in io.Reader, out io.Writer) TerminalOption {
	return func(t *Terminal) {
		t.in = in
		t.out = out
	}
}

// WithDefaultDir pre-fills the directory prompt.
func WithDefaultDir(dir string) TerminalOption {
	return func(t *Terminal) {
		t.defaultDir = dir
	}
}

// NewTerminal creates a prompter reading from stdin and drawing on stderr.
func NewTerminal(opts ...TerminalOption) *Terminal {
	t := &Terminal{
		in:  os.Stdin,
		out: os.Stderr,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ChooseContainer implements Prompter.
func (t *Terminal) ChooseContainer(ctx context.Context, choices []codec.Container) (codec.Container, error) {
	if len(choices) == 0 {
		return "", ErrCancelled
	}

	final, err := t.run(ctx, newChoiceModel("Choose export file type", choices))
	if err != nil {
		return "", err
	}
	m := final.(choiceModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.Selected(), nil
}

// ChooseDirectory implements Prompter.
func (t *Terminal) ChooseDirectory(ctx context.Context, title string) (string, error) {
	final, err := t.run(ctx, newInputModel(title, t.defaultDir, "enter to confirm, esc to cancel"))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.cancelled || m.Value() == "" {
		return "", ErrCancelled
	}
	return m.Value(), nil
}

// SaveFile implements Prompter.
func (t *Terminal) SaveFile(ctx context.Context, title, suggested string, choices []codec.Container, def codec.Container) (string, error) {
	labels := make([]string, 0, len(choices))
	for _, c := range choices {
		labels = append(labels, fmt.Sprintf("%s (*.%s)", c.Label(), c.Extension()))
	}
	hint := strings.Join(labels, ", ")

	final, err := t.run(ctx, newInputModel(title, WithDefaultExtension(suggested, def), hint))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if m.cancelled || m.Value() == "" {
		return "", ErrCancelled
	}
	return WithDefaultExtension(m.Value(), def), nil
}

func (t *Terminal) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(t.in),
		tea.WithOutput(t.out))

	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("failed to run prompt; %w", err)
	}
	return final, nil
}

// choiceModel picks one container from a list.
type choiceModel struct {
	title     string
	choices   []codec.Container
	cursor    int
	done      bool
	cancelled bool
}

func newChoiceModel(title string, choices []codec.Container) choiceModel {
	return choiceModel{title: title, choices: choices}
}

func (m choiceModel) Init() tea.Cmd {
	return nil
}

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k", "shift+tab":
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.choices) - 1
		}
	case "down", "j", "tab":
		m.cursor++
		if m.cursor >= len(m.choices) {
			m.cursor = 0
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m choiceModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(m.title))
	b.WriteString("\n")
	for i, c := range m.choices {
		if i == m.cursor {
			b.WriteString(styles.Cursor.Render(styles.CursorIndicator + " " + c.Label()))
		} else {
			b.WriteString(styles.Option.Render("  " + c.Label()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.Hint.Render("↑/↓ to move, enter to select, esc to cancel"))
	return styles.Frame.Render(b.String()) + "\n"
}

// Selected returns the highlighted container.
func (m choiceModel) Selected() codec.Container {
	if len(m.choices) == 0 {
		return ""
	}
	return m.choices[m.cursor]
}

// inputModel reads one line of text.
type inputModel struct {
	title     string
	hint      string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newInputModel(title, value, hint string) inputModel {
	ti := textinput.New()
	ti.SetValue(value)
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Focus()

	return inputModel{title: title, hint: hint, input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Hint.Render(m.hint))
	return styles.Frame.Render(b.String()) + "\n"
}

// Value returns the trimmed input.
func (m inputModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}
