package ui

import (
	"strings"
	"testing"

	catppuccin "github.com/catppuccin/go"
	tea "github.com/charmbracelet/bubbletea"

	"groundwork/internal/provision"
)

func TestNewStylesFallsBackToMocha(t *testing.T) {
	known := NewStyles("latte")
	if known == nil {
		t.Fatal("NewStyles returned nil")
	}
	unknown := NewStyles("nope")
	if unknown.flavor.Base().Hex != catppuccin.Mocha.Base().Hex {
		t.Error("unknown theme should fall back to mocha")
	}
}

func TestProgressModelStepUpdates(t *testing.T) {
	m := newProgressModel(NewStyles("mocha"), "feature/auth")

	next, _ := m.Update(stepMsg(provision.StepVerifying))
	m = next.(progressModel)

	if m.step != provision.StepVerifying {
		t.Errorf("step = %v, want StepVerifying", m.step)
	}
	if !strings.Contains(m.View(), "running baseline tests") {
		t.Errorf("View() missing step label: %q", m.View())
	}
	if !strings.Contains(m.View(), "feature/auth") {
		t.Errorf("View() missing branch: %q", m.View())
	}
}

func TestProgressModelDoneQuits(t *testing.T) {
	m := newProgressModel(NewStyles("mocha"), "feature/auth")

	next, cmd := m.Update(doneMsg(provision.Result{Status: provision.StatusReady}))
	m = next.(progressModel)

	if m.result == nil || m.result.Status != provision.StatusReady {
		t.Errorf("result = %+v", m.result)
	}
	if cmd == nil {
		t.Error("expected quit command after done message")
	}
	if m.View() != "" {
		t.Errorf("View() should be empty after done, got %q", m.View())
	}
}

func TestProgressModelCtrlCCancels(t *testing.T) {
	m := newProgressModel(NewStyles("mocha"), "feature/auth")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(progressModel)

	if !m.canceled {
		t.Error("expected canceled after ctrl+c")
	}
	if cmd == nil {
		t.Error("expected quit command after ctrl+c")
	}
}

func TestConfirmModelKeys(t *testing.T) {
	tests := []struct {
		key      string
		accepted bool
	}{
		{"y", true},
		{"Y", true},
		{"n", false},
		{"q", false},
		{"esc", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := confirmModel{question: "keep it?", styles: NewStyles("mocha")}

			var msg tea.KeyMsg
			switch tt.key {
			case "esc":
				msg = tea.KeyMsg{Type: tea.KeyEsc}
			default:
				msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)}
			}

			next, cmd := m.Update(msg)
			m = next.(confirmModel)

			if !m.answered {
				t.Fatal("expected answered")
			}
			if m.accepted != tt.accepted {
				t.Errorf("accepted = %v, want %v", m.accepted, tt.accepted)
			}
			if cmd == nil {
				t.Error("expected quit command")
			}
		})
	}
}

func TestConfirmModelViewShowsQuestion(t *testing.T) {
	m := confirmModel{question: "keep the worktree?", styles: NewStyles("mocha")}
	if !strings.Contains(m.View(), "keep the worktree?") {
		t.Errorf("View() = %q", m.View())
	}
}
