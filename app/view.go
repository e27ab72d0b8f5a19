package app

import (
	"fmt"
	"strings"

	"keyclaim/layout"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))

	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00"))

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(lipgloss.Color("#444444"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#36CFC9")).
			Padding(0, 1)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#C0392B")).
			Padding(0, 1)
)

// itemList renders items with a marker on the cursor row.
func itemList(items []string, pos int, compact bool) string {
	lines := make([]string, len(items))
	for i, item := range items {
		if compact {
			item = item[:1]
		}
		if i == pos {
			lines[i] = cursorStyle.Render("› " + item)
		} else {
			lines[i] = "  " + item
		}
	}
	return strings.Join(lines, "\n")
}

func (h *Home) headerView() string {
	mode := h.layout.Mode()
	status := string(mode.Type)
	if mode.MobileOpen {
		status += " +drawer"
	}
	account := "[u] account"
	if h.menu.chosen != "" {
		account = fmt.Sprintf("[u] %s", h.menu.chosen)
	}
	left := titleStyle.Render("keyclaim") + "  " + mutedStyle.Render(status)
	gap := max(1, h.width-lipgloss.Width(left)-lipgloss.Width(account))
	return left + strings.Repeat(" ", gap) + account
}

func (h *Home) sidebarView(mode layout.Mode) string {
	compact := mode.Type == layout.DesktopCompact
	content := itemList(navItems, h.page.cursor.pos, compact)
	if mode.Type == layout.DesktopLocked && !compact {
		content += "\n\n" + mutedStyle.Render("(pinned)")
	}
	// The border takes the last column of the sidebar width.
	return sidebarStyle.Width(max(1, mode.SidebarWidth-1)).Render(content)
}

func (h *Home) drawerView() string {
	return boxStyle.Width(max(10, h.width-4)).Render(
		titleStyle.Render("Menu") + "\n\n" + itemList(navItems, h.page.cursor.pos, false))
}

func (h *Home) pageView(width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(h.page.title()))
	b.WriteString("\n\n")
	if h.page.selected < 0 {
		b.WriteString(mutedStyle.Render("Nothing selected. Use ↑/↓ and enter."))
	} else {
		b.WriteString(fmt.Sprintf("Viewing %s. Press esc to clear.", navItems[h.page.selected]))
	}
	return lipgloss.NewStyle().Width(max(1, width)).PaddingLeft(1).Render(b.String())
}

func (h *Home) menuView() string {
	return boxStyle.Render(itemList(userMenuItems, h.menu.cursor.pos, false))
}

func (h *Home) modalView() string {
	buttons := make([]string, len(modalButtons))
	for i, label := range modalButtons {
		if i == h.modal.cursor.pos {
			buttons[i] = cursorStyle.Render("[" + label + "]")
		} else {
			buttons[i] = " " + label + " "
		}
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Dialog"),
		"",
		"Escape closes this dialog before anything else.",
		"",
		strings.Join(buttons, "  "),
	))
}

func (h *Home) footerView() string {
	if h.hint != "" {
		return hintStyle.Render(h.hint)
	}
	return h.help.GenerateStatusLine(h.width)
}

func (h *Home) View() string {
	if h.modal.open {
		return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, h.modalView())
	}
	if h.page.showHelp {
		return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center,
			boxStyle.Render(h.help.GenerateChainHelp()))
	}

	mode := h.layout.Mode()
	var body string
	switch {
	case h.layout.IsNarrow() && mode.MobileOpen:
		body = h.drawerView()
	case h.layout.IsNarrow():
		body = h.pageView(h.width)
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, h.sidebarView(mode), h.pageView(h.width-mode.SidebarWidth))
	}

	rows := []string{h.headerView()}
	if h.menu.open {
		rows = append(rows, lipgloss.PlaceHorizontal(h.width, lipgloss.Right, h.menuView()))
	}
	if f := h.route.Failure(); f != nil {
		rows = append(rows, bannerStyle.Render("error "+f.Error()))
	}
	rows = append(rows, "", body, "", h.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
