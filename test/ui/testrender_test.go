package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoModel struct {
	width int
	keys  []string
}

func (m *echoModel) Init() tea.Cmd { return nil }

func (m *echoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		m.keys = append(m.keys, msg.String())
	}
	return m, nil
}

func (m *echoModel) View() string {
	return "\x1b[1m" + strings.Join(m.keys, ",") + "\x1b[0m"
}

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "hello", StripANSI("\x1b[38;5;205mhello\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestRenderModel(t *testing.T) {
	m := &echoModel{}
	r := NewTestRenderer().SetDimensions(100, 30).DisableColors()

	model, out := r.RenderModel(m)

	assert.Equal(t, "", out)
	assert.Equal(t, 100, model.(*echoModel).width)
}

func TestSimulateKeys(t *testing.T) {
	m := &echoModel{}
	term := NewMockTerminal()

	model, _ := term.SimulateKeys(m, "esc", "ctrl+b", "L", "j")

	out, err := NewTestRenderer().DisableColors().RenderComponent(model)
	require.NoError(t, err)
	assert.Equal(t, "esc,ctrl+b,L,j", out)
}

func TestRenderComponentRejectsUnknown(t *testing.T) {
	_, err := NewTestRenderer().RenderComponent(42)
	assert.Error(t, err)
}
