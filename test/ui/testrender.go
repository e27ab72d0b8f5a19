// Package ui holds helpers for driving and rendering bubbletea models in tests
// without a TTY.
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/ansi"
)

// TestRenderer renders components to plain strings.
type TestRenderer struct {
	// Width and Height are sent to models as a tea.WindowSizeMsg.
	Width  int
	Height int
	// StripColors removes ANSI escape sequences from output.
	StripColors bool
}

// NewTestRenderer creates a renderer for an 80x24 terminal.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{Width: 80, Height: 24}
}

// SetDimensions sets the terminal dimensions for rendering
func (r *TestRenderer) SetDimensions(width, height int) *TestRenderer {
	r.Width = width
	r.Height = height
	return r
}

// DisableColors strips ANSI color codes from output
func (r *TestRenderer) DisableColors() *TestRenderer {
	r.StripColors = true
	return r
}

// RenderModel sizes model to the renderer's terminal and returns its view.
func (r *TestRenderer) RenderModel(model tea.Model) (tea.Model, string) {
	model, _ = model.Update(tea.WindowSizeMsg{Width: r.Width, Height: r.Height})
	out := model.View()
	if r.StripColors {
		out = StripANSI(out)
	}
	return model, out
}

// RenderComponent renders anything with a View, Render or String method.
func (r *TestRenderer) RenderComponent(component any) (string, error) {
	var output string
	switch c := component.(type) {
	case interface{ View() string }:
		output = c.View()
	case interface{ Render() string }:
		output = c.Render()
	case fmt.Stringer:
		output = c.String()
	default:
		return "", fmt.Errorf("component %T does not implement View(), Render(), or String()", component)
	}
	if r.StripColors {
		output = StripANSI(output)
	}
	return output, nil
}

// StripANSI removes ANSI escape sequences from s.
func StripANSI(s string) string {
	var b strings.Builder
	inSeq := false
	for _, c := range s {
		if c == ansi.Marker {
			inSeq = true
			continue
		}
		if inSeq {
			if ansi.IsTerminator(c) {
				inSeq = false
			}
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// MockTerminal feeds synthetic input to a model.
type MockTerminal struct {
	Width  int
	Height int
}

// NewMockTerminal creates a new MockTerminal with default dimensions
func NewMockTerminal() *MockTerminal {
	return &MockTerminal{Width: 80, Height: 24}
}

// SetSize sets the terminal dimensions
func (m *MockTerminal) SetSize(width, height int) *MockTerminal {
	m.Width = width
	m.Height = height
	return m
}

var specialKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"escape":    tea.KeyEscape,
	"space":     tea.KeySpace,
	"tab":       tea.KeyTab,
	"backtab":   tea.KeyShiftTab,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"ctrl+b":    tea.KeyCtrlB,
	"ctrl+c":    tea.KeyCtrlC,
}

// KeyMsg builds the tea.KeyMsg a terminal would report for key.
func KeyMsg(key string) tea.KeyMsg {
	if t, ok := specialKeys[key]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// SimulateKeyPress sends a single key press to model.
func (m *MockTerminal) SimulateKeyPress(model tea.Model, key string) (tea.Model, tea.Cmd) {
	return model.Update(KeyMsg(key))
}

// SimulateKeys sends each key in turn and returns the last command.
func (m *MockTerminal) SimulateKeys(model tea.Model, keys ...string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		model, cmd = m.SimulateKeyPress(model, k)
	}
	return model, cmd
}

// SimulateWindowResize simulates a window resize event
func (m *MockTerminal) SimulateWindowResize(model tea.Model) (tea.Model, tea.Cmd) {
	return model.Update(tea.WindowSizeMsg{Width: m.Width, Height: m.Height})
}
