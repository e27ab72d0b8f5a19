package keys

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
)

// LogicalKey is a normalized key identifier, independent of the physical
// keyboard and of the raw string the terminal reports.
type LogicalKey string

const (
	Escape LogicalKey = "escape"
	Enter  LogicalKey = "enter"
	Up     LogicalKey = "up"
	Down   LogicalKey = "down"

	ToggleCompact LogicalKey = "toggle-compact" // flip the desktop sidebar between expanded and compact
	ToggleLock    LogicalKey = "toggle-lock"    // pin the sidebar expanded, or release the pin
	ToggleDrawer  LogicalKey = "toggle-drawer"  // open/close the mobile navigation drawer
	ToggleMenu    LogicalKey = "toggle-menu"    // open/close the user menu
	OpenModal     LogicalKey = "open-modal"

	Help LogicalKey = "help"
	Quit LogicalKey = "quit"
)

// All lists the logical keys in display order.
var All = []LogicalKey{
	Escape, Enter, Up, Down,
	ToggleCompact, ToggleLock, ToggleDrawer, ToggleMenu, OpenModal,
	Help, Quit,
}

// GlobalKeyStringsMap is a global, immutable map of raw bubbletea key strings
// to logical keys.
var GlobalKeyStringsMap = map[string]LogicalKey{
	"esc":    Escape,
	"enter":  Enter,
	"up":     Up,
	"k":      Up,
	"down":   Down,
	"j":      Down,
	"ctrl+b": ToggleCompact,
	"L":      ToggleLock,
	"m":      ToggleDrawer,
	"u":      ToggleMenu,
	"o":      OpenModal,
	"?":      Help,
	"q":      Quit,
	"ctrl+c": Quit,
}

// GlobalkeyBindings is a global, immutable map of LogicalKey to keybinding.
var GlobalkeyBindings = map[LogicalKey]key.Binding{
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "select"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	ToggleCompact: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("^b", "compact"),
	),
	ToggleLock: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "lock sidebar"),
	),
	ToggleDrawer: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "menu drawer"),
	),
	ToggleMenu: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "account"),
	),
	OpenModal: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open dialog"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Parse returns the logical key with the given name.
func Parse(name string) (LogicalKey, bool) {
	for _, k := range All {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// RawKeysFor returns every raw key string mapped to k in table, sorted.
func RawKeysFor(table map[string]LogicalKey, k LogicalKey) []string {
	var raw []string
	for s, lk := range table {
		if lk == k {
			raw = append(raw, s)
		}
	}
	sort.Strings(raw)
	return raw
}
