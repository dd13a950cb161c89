package prompt

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	default:
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
}

func TestOverwriteModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		key       string
		yes       bool
		done      bool
		cancelled bool
		wantCmd   bool
	}{
		{"y overwrites", "y", true, true, false, true},
		{"n keeps", "n", false, true, false, true},
		{"enter defaults no", "enter", false, true, false, true},
		{"ctrl+c cancels", "ctrl+c", false, true, true, true},
		{"esc cancels", "esc", false, true, true, true},
		{"q cancels", "q", false, true, true, true},
		{"other keys wait", "x", false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := overwriteModel{path: "config.toml"}
			updated, cmd := m.Update(keyPress(tt.key))
			um := updated.(overwriteModel)

			if um.yes != tt.yes {
				t.Errorf("yes = %v, want %v", um.yes, tt.yes)
			}
			if um.done != tt.done {
				t.Errorf("done = %v, want %v", um.done, tt.done)
			}
			if um.cancelled != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", um.cancelled, tt.cancelled)
			}
			if (cmd != nil) != tt.wantCmd {
				t.Errorf("cmd nil = %v, want nil = %v", cmd == nil, !tt.wantCmd)
			}
		})
	}
}

func TestOverwriteModel_IgnoresOtherMessages(t *testing.T) {
	t.Parallel()

	m := overwriteModel{path: "config.toml"}
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd != nil || updated.(overwriteModel).done {
		t.Error("window resize ended the prompt")
	}
}

func TestOverwriteModel_View(t *testing.T) {
	t.Parallel()

	m := overwriteModel{path: "config.toml"}
	if got := m.View().Content; !strings.Contains(got, "config.toml") || !strings.Contains(got, "[y/N]") {
		t.Errorf("View().Content = %q, want path and [y/N]", got)
	}

	m.done = true
	if got := m.View().Content; got != "" {
		t.Errorf("View().Content after answer = %q, want empty", got)
	}
}
