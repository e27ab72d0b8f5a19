package help

import (
	"os"
	"strings"
	"testing"

	"keyclaim/hotkey"
	"keyclaim/keys"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	// Plain text output so assertions don't depend on the terminal.
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func handled() bool { return true }

func sampleChain() *hotkey.Chain {
	c := hotkey.NewChain()
	c.Register(keys.Escape, hotkey.Claim{OwnerID: "modal", Priority: 0, Label: "close dialog", Action: handled})
	c.Register(keys.Escape, hotkey.Claim{OwnerID: "page", Priority: 3, Label: "clear selection", Action: handled})
	c.Register(keys.ToggleCompact, hotkey.Claim{OwnerID: "page", Priority: 3, Action: handled})
	c.Register(keys.Quit, hotkey.Claim{OwnerID: "page", Priority: 3, Action: handled})
	return c
}

func TestGenerateChainHelp(t *testing.T) {
	c := sampleChain()
	c.SetEnabled(keys.Escape, "modal", false)
	g := NewGenerator(c, keys.GlobalKeyStringsMap)

	out := g.GenerateChainHelp()

	assert.Contains(t, out, "Hotkeys")
	assert.Contains(t, out, "escape (esc)")
	assert.Contains(t, out, "quit (ctrl+c, q)")
	assert.Contains(t, out, "close dialog (disabled)")
	assert.Contains(t, out, "clear selection")

	// Navigation comes before Layout, which comes before Other.
	nav := strings.Index(out, "Navigation:")
	lay := strings.Index(out, "Layout:")
	other := strings.Index(out, "Other:")
	assert.True(t, nav >= 0 && nav < lay && lay < other, "unexpected category order:\n%s", out)

	// Claims are listed in dispatch order.
	assert.Less(t, strings.Index(out, "modal"), strings.Index(out, "clear selection"))
}

func TestGenerateChainHelpEmpty(t *testing.T) {
	g := NewGenerator(hotkey.NewChain(), keys.GlobalKeyStringsMap)
	assert.Equal(t, "No hotkeys registered", g.GenerateChainHelp())
}

func TestGenerateStatusLine(t *testing.T) {
	g := NewGenerator(sampleChain(), keys.GlobalKeyStringsMap)

	full := g.GenerateStatusLine(0)
	assert.Equal(t, "esc back • ^b compact • q quit", full)

	short := g.GenerateStatusLine(12)
	assert.LessOrEqual(t, runewidth.StringWidth(short), 12)
	assert.True(t, strings.HasSuffix(short, "…"))
}

func TestValidateChain(t *testing.T) {
	c := sampleChain()
	c.Register(keys.Escape, hotkey.Claim{OwnerID: "menu", Priority: 3, Action: handled})
	table := map[string]keys.LogicalKey{"esc": keys.Escape, "q": keys.Quit}

	issues := NewGenerator(c, table).ValidateChain()

	assert.Len(t, issues, 2)
	assert.Contains(t, issues[0], "Priority tie on escape")
	assert.Contains(t, issues[1], "toggle-compact")
}
