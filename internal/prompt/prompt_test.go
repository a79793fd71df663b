package prompt

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

// press feeds msgs to m in order, as the program would.
func press(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestAsk_NoCandidates(t *testing.T) {
	a, err := Ask(strings.NewReader("use jest for testing\n"), io.Discard, nil)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if a.Title != "use jest for testing" || a.Supersedes {
		t.Errorf("answers = %+v", a)
	}
}

func TestAsk_CarriageReturn(t *testing.T) {
	a, err := Ask(strings.NewReader("from a terminal\r"), io.Discard, nil)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if a.Title != "from a terminal" {
		t.Errorf("title = %q", a.Title)
	}
}

func TestAsk_RepeatsBlankTitle(t *testing.T) {
	a, err := Ask(strings.NewReader("\n   \nreal title\n"), io.Discard, nil)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if a.Title != "real title" {
		t.Errorf("title = %q", a.Title)
	}
}

func TestAsk_DeclinesSupersede(t *testing.T) {
	a, err := Ask(strings.NewReader("t\n\n"), io.Discard, []string{"0001-a.md"})
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if a.Supersedes || a.SupersededTarget != "" {
		t.Errorf("answers = %+v", a)
	}
}

func TestAsk_SelectsCandidate(t *testing.T) {
	candidates := []string{"0001-a.md", "0002-b.md", "0003-c.md"}
	cases := map[string]struct {
		in   string
		want string
	}{
		"default":     {"new way\ny\n\n", "0001-a.md"},
		"by number":   {"new way\nmaybe\ny\n3\n", "0003-c.md"},
		"arrow key":   {"new way\nyes\n\x1b[B\n", "0002-b.md"},
		"vim binding": {"new way\nY\nj\n", "0002-b.md"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			a, err := Ask(strings.NewReader(tc.in), io.Discard, candidates)
			if err != nil {
				t.Fatalf("Ask: %v", err)
			}
			if a.Title != "new way" || !a.Supersedes || a.SupersededTarget != tc.want {
				t.Errorf("answers = %+v, want target %s", a, tc.want)
			}
		})
	}
}

func TestAsk_TitleWithoutNewline(t *testing.T) {
	a, err := Ask(strings.NewReader("last line"), io.Discard, nil)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if a.Title != "last line" {
		t.Errorf("title = %q", a.Title)
	}
}

func TestAsk_EOF(t *testing.T) {
	_, err := Ask(strings.NewReader(""), io.Discard, nil)
	if !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want EOF", err)
	}

	_, err = Ask(strings.NewReader("title\ny\n"), io.Discard, []string{"0001-a.md"})
	if !errors.Is(err, io.EOF) {
		t.Errorf("err = %v, want EOF during selection", err)
	}
}

func TestAsk_Interrupt(t *testing.T) {
	_, err := Ask(strings.NewReader("half typed\x03"), io.Discard, nil)
	if !errors.Is(err, ErrAborted) {
		t.Errorf("err = %v, want ErrAborted", err)
	}
}

func TestModel_BlankTitleHint(t *testing.T) {
	m := press(newModel(nil), enter)
	if m.done || m.stage != stageTitle {
		t.Fatalf("blank title accepted: %+v", m.answers)
	}
	if !strings.Contains(m.View(), "Please enter a name.") {
		t.Errorf("view missing hint:\n%s", m.View())
	}

	m = press(m, runes("ok"), enter)
	if !m.done || m.answers.Title != "ok" || m.hint != "" {
		t.Errorf("answers = %+v, hint = %q", m.answers, m.hint)
	}
}

func TestModel_ConfirmRejectsOtherAnswers(t *testing.T) {
	m := press(newModel([]string{"0001-a.md"}), runes("t"), enter, runes("maybe"), enter)
	if m.stage != stageConfirm || m.hint != "Please answer y or n." {
		t.Fatalf("stage = %d, hint = %q", m.stage, m.hint)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	m = press(m, runes("n"), enter)
	if !m.done || m.answers.Supersedes {
		t.Errorf("answers = %+v", m.answers)
	}
}

func TestModel_SelectionHints(t *testing.T) {
	m := press(newModel([]string{"0001-a.md", "0002-b.md"}), runes("t"), enter, runes("y"), enter)
	if m.stage != stageSelect {
		t.Fatalf("stage = %d, want select", m.stage)
	}
	for _, want := range []string{"0001-a.md", "0002-b.md", "Select the ADR that this ADR supersedes"} {
		if !strings.Contains(m.View(), want) {
			t.Errorf("view missing %q:\n%s", want, m.View())
		}
	}

	m = press(m, runes("9"))
	if m.hint != `Invalid selection "9": choose 1-2.` {
		t.Errorf("hint = %q", m.hint)
	}
	if m.list.Index() != 0 {
		t.Errorf("cursor moved on invalid selection: %d", m.list.Index())
	}

	m = press(m, down)
	if m.list.Index() != 1 {
		t.Errorf("cursor = %d after down", m.list.Index())
	}
	m = press(m, runes("1"), enter)
	if m.answers.SupersededTarget != "0001-a.md" || m.hint != "" {
		t.Errorf("answers = %+v, hint = %q", m.answers, m.hint)
	}
}

func TestModel_SpaceKey(t *testing.T) {
	m := press(newModel(nil), runes("use"), tea.KeyMsg{Type: tea.KeySpace}, runes("jest"), enter)
	if m.answers.Title != "use jest" {
		t.Errorf("title = %q", m.answers.Title)
	}
}

func TestModel_IgnoresInputAfterDone(t *testing.T) {
	m := press(newModel(nil), runes("t"), enter, inputClosedMsg{}, esc)
	if m.err != nil || m.answers.Title != "t" {
		t.Errorf("answers = %+v, err = %v", m.answers, m.err)
	}
}
