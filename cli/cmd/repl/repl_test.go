package repl

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/helix/lang"
	"github.com/ardnew/helix/log"
)

func testModel(t *testing.T) model {
	t.Helper()

	return newModel(t.Context(), NewSession(), NewHistory(""), log.Logger{})
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

// send delivers msgs in order and returns the final model and the command
// returned for the last message.
func send(m model, msgs ...tea.Msg) (model, tea.Cmd) {
	var cmd tea.Cmd

	for _, msg := range msgs {
		var next tea.Model

		next, cmd = m.Update(msg)
		m = next.(model)
	}

	return m, cmd
}

func TestModel_Evaluate(t *testing.T) {
	m, cmd := send(testModel(t), runes("let x = 41"), key(tea.KeyEnter))

	if cmd == nil {
		t.Error("no command to echo the input")
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	v, ok := m.session.Env().Lookup("x")
	if !ok || v != lang.Integer(41) {
		t.Errorf("x = %v, %v", v, ok)
	}

	if m.history.Len() != 1 {
		t.Errorf("history length = %d", m.history.Len())
	}
}

func TestModel_Continuation(t *testing.T) {
	m, _ := send(testModel(t), runes("function inc(n) {"), key(tea.KeyEnter))

	if !m.session.Pending() || !strings.Contains(m.input.Prompt, strings.TrimSpace(contPrompt)) {
		t.Fatalf("pending=%v prompt=%q", m.session.Pending(), m.input.Prompt)
	}

	m, _ = send(m, runes("n + 1"), key(tea.KeyEnter), runes("}"), key(tea.KeyEnter))

	if m.session.Pending() || !strings.Contains(m.input.Prompt, strings.TrimSpace(evalPrompt)) {
		t.Fatalf("pending=%v prompt=%q", m.session.Pending(), m.input.Prompt)
	}

	if !isFunction(m.session.Env(), "inc") {
		t.Error("inc not defined")
	}
}

func TestModel_CtrlC(t *testing.T) {
	m, _ := send(testModel(t), runes("if true {"), key(tea.KeyEnter), runes("pri"))

	// The first Ctrl+C discards the input and the pending lines.
	m, _ = send(m, key(tea.KeyCtrlC))

	if m.quitting || m.session.Pending() || m.input.Value() != "" {
		t.Fatalf("quitting=%v pending=%v input=%q",
			m.quitting, m.session.Pending(), m.input.Value())
	}

	m, cmd := send(m, key(tea.KeyCtrlC))
	if !m.quitting || cmd == nil {
		t.Error("Ctrl+C on empty input did not quit")
	}

	if m.View() != "" {
		t.Errorf("View after quit = %q", m.View())
	}
}

func TestModel_TabCompletion(t *testing.T) {
	m, _ := send(testModel(t), runes("let counter = 0"), key(tea.KeyEnter), runes("cou"))

	if len(m.matches) != 1 || m.matches[0].Str != "counter" {
		t.Fatalf("matches = %v", m.matches)
	}

	m, _ = send(m, key(tea.KeyTab))

	if m.input.Value() != "counter" {
		t.Errorf("input = %q", m.input.Value())
	}
}

func TestModel_TabCycle(t *testing.T) {
	m := testModel(t)
	m.session.Env().Define("alpha", lang.Integer(1))
	m.session.Env().Define("alps", lang.Integer(2))

	m, _ = send(m, runes("al"))

	if len(m.matches) < 2 {
		t.Fatalf("matches = %v", m.matches)
	}

	m, _ = send(m, key(tea.KeyTab))
	first := m.input.Value()

	m, _ = send(m, key(tea.KeyTab))
	second := m.input.Value()

	if !m.tabActive || first == second || first == "al" {
		t.Errorf("cycle: %q then %q (active=%v)", first, second, m.tabActive)
	}

	// Esc restores the text typed before cycling.
	m, _ = send(m, key(tea.KeyEsc))

	if m.tabActive || m.input.Value() != "al" || m.mode != modeEval {
		t.Errorf("after Esc: input=%q active=%v mode=%v", m.input.Value(), m.tabActive, m.mode)
	}
}

func TestModel_Modes(t *testing.T) {
	m, _ := send(testModel(t), runes("1 +"), key(tea.KeyEsc))

	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("mode=%v input=%q", m.mode, m.input.Value())
	}

	m, _ = send(m, runes("reset"), key(tea.KeyEnter))

	entry, err := m.history.Entry(m.history.Len() - 1)
	if err != nil || entry != (HistoryEntry{"reset", modeCtrl}) {
		t.Errorf("last history entry = %v, %v", entry, err)
	}

	// Returning to eval mode restores the unfinished expression.
	m, _ = send(m, key(tea.KeyEsc))

	if m.mode != modeEval || m.input.Value() != "1 +" {
		t.Errorf("mode=%v input=%q", m.mode, m.input.Value())
	}
}

func TestModel_Commands(t *testing.T) {
	m := testModel(t)
	m.session.Submit(t.Context(), "let keep = 1")

	m, _ = send(m, key(tea.KeyEsc), runes("list"), key(tea.KeyEnter))
	if m.quitting {
		t.Fatal("list quit")
	}

	if got := m.listBindings(); !strings.Contains(got, "keep") {
		t.Errorf("list = %q", got)
	}

	m, _ = send(m, runes("reset"), key(tea.KeyEnter))
	if m.session.Env().Len() != 0 {
		t.Error("reset kept bindings")
	}

	if got := m.listBindings(); !strings.Contains(got, "no bindings") {
		t.Errorf("list after reset = %q", got)
	}

	m, cmd := send(m, runes("quit"), key(tea.KeyEnter))
	if !m.quitting || cmd == nil {
		t.Error("quit did not quit")
	}
}

func TestModel_HistoryNavigation(t *testing.T) {
	m, _ := send(testModel(t),
		runes("1"), key(tea.KeyEnter),
		key(tea.KeyEsc), runes("help"), key(tea.KeyEnter), key(tea.KeyEsc),
		runes("2"), key(tea.KeyEnter))

	m, _ = send(m, key(tea.KeyUp))
	if m.input.Value() != "2" || m.mode != modeEval {
		t.Fatalf("up 1: input=%q mode=%v", m.input.Value(), m.mode)
	}

	m, _ = send(m, key(tea.KeyUp))
	if m.input.Value() != "help" || m.mode != modeCtrl {
		t.Fatalf("up 2: input=%q mode=%v", m.input.Value(), m.mode)
	}

	m, _ = send(m, key(tea.KeyDown), key(tea.KeyDown))
	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("past newest: input=%q idx=%d", m.input.Value(), m.historyIdx)
	}

	// Shift+Up stays in the current mode.
	m, _ = send(m, key(tea.KeyShiftUp), key(tea.KeyShiftUp))
	if m.input.Value() != "1" || m.mode != modeEval {
		t.Errorf("shift-up: input=%q mode=%v", m.input.Value(), m.mode)
	}
}

func TestModel_Edit(t *testing.T) {
	m := testModel(t)
	m.session.Submit(t.Context(), "let old = 1")

	m, _ = send(m, editDoneMsg{source: "let x = 2\n"})

	if _, ok := m.session.Env().Lookup("old"); ok {
		t.Error("edit did not replace the session")
	}

	m, cmd := send(m, editDeclinedMsg{})
	if !m.quitting || cmd == nil {
		t.Error("declined edit did not quit")
	}
}

func TestModel_HintLine(t *testing.T) {
	m := testModel(t)
	m.session.Env().Define("add", &lang.Function{Name: "add", Params: []string{"a", "b"}})

	if hint := m.hintLine(); !strings.Contains(hint, "Type a statement") {
		t.Errorf("empty hint = %q", hint)
	}

	m, _ = send(m, runes("add(1, "))

	if hint := m.hintLine(); !strings.Contains(hint, "add") || !strings.Contains(hint, "b") {
		t.Errorf("signature hint = %q", hint)
	}
}

func TestFormatResult(t *testing.T) {
	src := "print 1\nnope"
	err := lang.ErrUndefinedVariable.Wrap(errors.New("nope")).
		WithPosition(lang.Position{Line: 2, Column: 1})

	tests := []struct {
		name string
		res  Result
		want []string
	}{
		{"value", Result{Value: lang.Integer(3)}, []string{"3"}},
		{"string_value_quoted", Result{Value: lang.String("a")}, []string{`"a"`}},
		{"nil_hidden", Result{Value: lang.Nil{}}, nil},
		{"output_then_value", Result{Output: "hi\n", Value: lang.Integer(1)}, []string{"hi", "1"}},
		{
			"error_with_snippet",
			Result{Source: src, Output: "1\n", Err: err},
			[]string{"1", "error: 2:1: undefined variable: nope\n  2 | nope\n      ^"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatResult(tt.res)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("formatResult = %q, want %q", got, tt.want)
			}
		})
	}
}
