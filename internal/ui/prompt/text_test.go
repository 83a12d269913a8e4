package prompt

import (
	"strings"
	"testing"

	"charm.land/bubbles/v2/textinput"
	"github.com/charmbracelet/x/ansi"
)

func TestTextInputModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		keys      []string
		value     string
		done      bool
		cancelled bool
	}{
		{"typing then enter", []string{"a", "b", "enter"}, "ab", true, false},
		{"enter on empty", []string{"enter"}, "", true, false},
		{"esc cancels", []string{"x", "esc"}, "x", true, true},
		{"ctrl+c cancels", []string{"ctrl+c"}, "", true, true},
		{"typing only", []string{"z"}, "z", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTextInputModel("Enter value", "FOO", false)
			for _, k := range tt.keys {
				updated, _ := m.Update(keyPress(k))
				m = updated.(textInputModel)
			}
			if got := m.textInput.Value(); got != tt.value {
				t.Errorf("value = %q, want %q", got, tt.value)
			}
			if m.done != tt.done {
				t.Errorf("done = %v, want %v", m.done, tt.done)
			}
			if m.cancelled != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", m.cancelled, tt.cancelled)
			}
		})
	}
}

func TestTextInputModel_Secret(t *testing.T) {
	t.Parallel()

	m := newTextInputModel("API token", "TOKEN", true)
	if m.textInput.EchoMode != textinput.EchoPassword {
		t.Errorf("EchoMode = %v, want EchoPassword", m.textInput.EchoMode)
	}
	if newTextInputModel("Name", "NAME", false).textInput.EchoMode != textinput.EchoNormal {
		t.Error("non-secret input should echo")
	}
}

func TestTextInputModel_View(t *testing.T) {
	t.Parallel()

	m := newTextInputModel("Enter value", "", false)
	if got := ansi.Strip(m.render()); !strings.Contains(got, "Enter value") {
		t.Errorf("view = %q, want the prompt", got)
	}
	if m.View().Content == nil {
		t.Error("View().Content should be set when not done")
	}
	m.done = true
	if m.render() != "" {
		t.Error("view should be empty when done")
	}
}
