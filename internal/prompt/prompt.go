// Package prompt gathers ADR answers interactively from a terminal.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/starford/adrkit/internal/adr"
)

// ErrAborted is returned when the user cancels with esc or ctrl+c.
var ErrAborted = errors.New("prompt: aborted")

const (
	listWidth     = 60
	maxListHeight = 14
)

var (
	markerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6BCB77"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4D96FF"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// Ask asks for a title, then, when candidates is non-empty, whether the
// new ADR supersedes one of them and which. Blank titles and invalid
// answers are asked again. Input that ends before every question is
// answered yields an error wrapping io.EOF.
func Ask(r io.Reader, w io.Writer, candidates []string) (*adr.Answers, error) {
	opts := []tea.ProgramOption{tea.WithOutput(w)}

	var in *eofReader
	if f, ok := r.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		opts = append(opts, tea.WithInput(f))
	} else {
		in = &eofReader{r: r}
		opts = append(opts, tea.WithInput(in))
	}

	p := tea.NewProgram(newModel(candidates), opts...)
	if in != nil {
		in.p = p
	}

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt: %w", err)
	}
	m := final.(model)
	if m.err != nil {
		return nil, m.err
	}
	answers := m.answers
	return &answers, nil
}

// inputClosedMsg reports that a non-terminal input reached EOF. Without
// it the program would wait for keys that never come.
type inputClosedMsg struct{}

// eofReader forwards reads and tells the program when input runs out.
// Bytes returned together with io.EOF are delivered first, since the
// program drops a read's data when it carries an error.
type eofReader struct {
	r   io.Reader
	p   *tea.Program
	eof bool
}

func (e *eofReader) Read(b []byte) (int, error) {
	if !e.eof {
		n, err := e.r.Read(b)
		if !errors.Is(err, io.EOF) {
			return n, err
		}
		e.eof = true
		if n > 0 {
			return n, nil
		}
	}
	e.p.Send(inputClosedMsg{})
	return 0, io.EOF
}

type stage int

const (
	stageTitle stage = iota
	stageConfirm
	stageSelect
)

type candidateItem string

func (i candidateItem) Title() string       { return string(i) }
func (i candidateItem) Description() string { return "" }
func (i candidateItem) FilterValue() string { return string(i) }

type model struct {
	stage      stage
	input      textinput.Model
	list       list.Model
	candidates []string
	answers    adr.Answers
	hint       string
	done       bool
	err        error
}

func newModel(candidates []string) model {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "use jest for testing"
	input.Focus()

	items := make([]list.Item, len(candidates))
	for i, c := range candidates {
		items[i] = candidateItem(c)
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)

	height := len(items) + 2
	if height > maxListHeight {
		height = maxListHeight
	}
	l := list.New(items, delegate, listWidth, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return model{input: input, list: l, candidates: candidates}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done || m.err != nil {
		return m, nil
	}

	switch msg := msg.(type) {
	case inputClosedMsg:
		return m.inputClosed()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.err = ErrAborted
			return m, tea.Quit
		case "enter", "ctrl+j":
			return m.submit()
		}
		if m.stage == stageSelect && msg.Type == tea.KeyRunes && isDigits(msg.Runes) {
			m.jumpTo(string(msg.Runes))
			return m, nil
		}
		if msg.Type == tea.KeySpace {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
		}
		return m.forward(msg)
	}
	return m.forward(msg)
}

// forward hands msg to the component of the current stage.
func (m model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.stage == stageSelect {
		m.list, cmd = m.list.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	switch m.stage {
	case stageTitle:
		m.input.Reset()
		if value == "" {
			m.hint = "Please enter a name."
			return m, nil
		}
		m.hint = ""
		m.answers.Title = value
		if len(m.candidates) == 0 {
			m.done = true
			return m, tea.Quit
		}
		m.stage = stageConfirm
		m.input.Placeholder = ""
		return m, nil

	case stageConfirm:
		m.input.Reset()
		switch strings.ToLower(value) {
		case "y", "yes":
			m.hint = ""
			m.stage = stageSelect
			return m, nil
		case "", "n", "no":
			m.done = true
			return m, tea.Quit
		}
		m.hint = "Please answer y or n."
		return m, nil

	default:
		item, ok := m.list.SelectedItem().(candidateItem)
		if !ok {
			return m, nil
		}
		m.answers.Supersedes = true
		m.answers.SupersededTarget = string(item)
		m.done = true
		return m, tea.Quit
	}
}

// inputClosed accepts a title typed without a trailing newline when it is
// the only question; anything else left unanswered is an EOF error.
func (m model) inputClosed() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.input.Value())
	if m.stage == stageTitle && title != "" && len(m.candidates) == 0 {
		m.answers.Title = title
		m.done = true
		return m, tea.Quit
	}
	m.err = fmt.Errorf("prompt: input closed before all questions were answered: %w", io.EOF)
	return m, tea.Quit
}

// jumpTo moves the cursor to the 1-based position typed by the user.
func (m *model) jumpTo(digits string) {
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 || n > len(m.candidates) {
		m.hint = fmt.Sprintf("Invalid selection %q: choose 1-%d.", digits, len(m.candidates))
		return
	}
	m.hint = ""
	m.list.Select(n - 1)
}

func isDigits(rs []rune) bool {
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(rs) > 0
}

func (m model) View() string {
	var b strings.Builder
	marker := markerStyle.Render("?")

	if m.stage == stageTitle && !m.done {
		fmt.Fprintf(&b, "%s ADR Name %s: %s\n", marker, hintStyle.Render("(ex. use jest for testing)"), m.input.View())
	} else {
		fmt.Fprintf(&b, "%s ADR Name: %s\n", marker, answerStyle.Render(m.answers.Title))
	}

	switch {
	case m.stage == stageConfirm && !m.done:
		fmt.Fprintf(&b, "%s Does this ADR supersede another ADR? %s %s\n", marker, hintStyle.Render("(y/N)"), m.input.View())
	case m.stage == stageSelect && !m.done:
		fmt.Fprintf(&b, "%s Does this ADR supersede another ADR? %s\n", marker, answerStyle.Render("Yes"))
		fmt.Fprintf(&b, "%s Select the ADR that this ADR supersedes: %s\n", marker,
			hintStyle.Render(fmt.Sprintf("(arrows or 1-%d, enter to choose)", len(m.candidates))))
		b.WriteString(m.list.View())
		b.WriteString("\n")
	case m.done && m.answers.Supersedes:
		fmt.Fprintf(&b, "%s Supersedes: %s\n", marker, answerStyle.Render(m.answers.SupersededTarget))
	}

	if m.hint != "" {
		b.WriteString(errorStyle.Render(m.hint))
		b.WriteString("\n")
	}
	return b.String()
}
