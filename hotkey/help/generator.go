package help

import (
	"fmt"
	"sort"
	"strings"

	"keyclaim/hotkey"
	"keyclaim/keys"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// Generator creates help content from the hotkey chain
type Generator struct {
	chain *hotkey.Chain
	table map[string]keys.LogicalKey

	// Styles for formatting help content
	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	keyStyle    lipgloss.Style
	descStyle   lipgloss.Style
	warnStyle   lipgloss.Style
}

// NewGenerator creates a new help generator. table is the raw → logical map
// the dispatcher uses, so help shows the keys that actually reach the chain.
func NewGenerator(chain *hotkey.Chain, table map[string]keys.LogicalKey) *Generator {
	return &Generator{
		chain:       chain,
		table:       table,
		titleStyle:  lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#7D56F4")),
		headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#36CFC9")),
		keyStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00")),
		descStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")),
	}
}

// orderedKeys returns the claimed keys grouped by help category.
func (g *Generator) orderedKeys() []keys.LogicalKey {
	claimed := g.chain.Keys()
	position := make(map[keys.LogicalKey]int, len(keys.All))
	for i, k := range keys.All {
		position[k] = i
	}
	sort.SliceStable(claimed, func(i, j int) bool {
		pi := keys.GetCategoryPriority(keys.GetKeyHelp(claimed[i]).Category)
		pj := keys.GetCategoryPriority(keys.GetKeyHelp(claimed[j]).Category)
		if pi != pj {
			return pi < pj
		}
		a, aok := position[claimed[i]]
		b, bok := position[claimed[j]]
		if aok != bok {
			return aok
		}
		return a < b
	})
	return claimed
}

// GenerateChainHelp lists every claimed key with its claims in dispatch order.
func (g *Generator) GenerateChainHelp() string {
	ordered := g.orderedKeys()
	if len(ordered) == 0 {
		return g.titleStyle.Render("No hotkeys registered")
	}

	var content strings.Builder
	content.WriteString(g.titleStyle.Render("Hotkeys"))
	content.WriteString("\n\n")

	var category keys.HelpCategory
	for i, k := range ordered {
		info := keys.GetKeyHelp(k)
		if i == 0 || info.Category != category {
			if i > 0 {
				content.WriteString("\n")
			}
			category = info.Category
			content.WriteString(g.headerStyle.Render(string(category) + ":"))
			content.WriteString("\n")
		}
		content.WriteString(g.formatKey(k, info))
	}
	return content.String()
}

func (g *Generator) formatKey(k keys.LogicalKey, info keys.KeyHelpInfo) string {
	var content strings.Builder

	keyText := string(k)
	if raw := keys.RawKeysFor(g.table, k); len(raw) > 0 {
		keyText += fmt.Sprintf(" (%s)", strings.Join(raw, ", "))
	}
	content.WriteString("  " + g.keyStyle.Render(keyText) + pad(keyText, 24) + g.descStyle.Render(info.Description) + "\n")

	for _, cl := range g.chain.Claims(k) {
		label := cl.Label
		if label == "" {
			label = "-"
		}
		line := fmt.Sprintf("    %3d  %s%s%s", cl.Priority, cl.OwnerID, pad(cl.OwnerID, 16), label)
		if !cl.Enabled() {
			line += g.warnStyle.Render(" (disabled)")
		}
		content.WriteString(line + "\n")
	}
	return content.String()
}

// pad returns the spaces needed to bring s to width display columns.
func pad(s string, width int) string {
	return strings.Repeat(" ", max(1, width-runewidth.StringWidth(s)))
}

// GenerateStatusLine creates a one-line summary of the bindings for claimed
// keys, cut to maxWidth columns when maxWidth > 0.
func (g *Generator) GenerateStatusLine(maxWidth int) string {
	var parts []string
	for _, k := range g.orderedKeys() {
		b, ok := keys.GlobalkeyBindings[k]
		if !ok {
			continue
		}
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s %s", h.Key, h.Desc))
	}
	line := strings.Join(parts, " • ")
	if maxWidth > 0 && runewidth.StringWidth(line) > maxWidth {
		line = truncate.StringWithTail(line, uint(maxWidth), "…")
	}
	return g.descStyle.Render(line)
}

// ValidateChain reports priority ties and claimed keys no raw key reaches.
func (g *Generator) ValidateChain() []string {
	var issues []string
	for _, conflict := range g.chain.DetectConflicts() {
		issues = append(issues, fmt.Sprintf("Priority tie on %s: %d shared by %v (insertion order decides)",
			conflict.Key, conflict.Priority, conflict.Owners))
	}
	for _, k := range g.chain.Keys() {
		if len(keys.RawKeysFor(g.table, k)) == 0 {
			issues = append(issues, fmt.Sprintf("Key %s has claims but no raw key maps to it", k))
		}
	}
	return issues
}
