package app

import (
	"keyclaim/hotkey"
	"keyclaim/keys"
	"keyclaim/layout"
	"keyclaim/route"
)

// Owners and priorities of the hotkey claims in the app. Lower priority
// values get the key first, so the topmost layer always wins.
const (
	OwnerModal         = "modal"
	OwnerMobileSidebar = "mobile-sidebar"
	OwnerUserMenu      = "user-menu"
	OwnerPage          = "page"

	PriorityModal         = 0
	PriorityMobileSidebar = 1
	PriorityUserMenu      = 2
	PriorityPage          = 3
)

// navItems are the destinations shown in the sidebar and the drawer.
var navItems = []string{"Dashboard", "Projects", "Reports", "Settings"}

type binding struct {
	key   keys.LogicalKey
	claim hotkey.Claim
}

// region is a UI component that takes part in hotkey dispatch.
type region interface {
	owner() string
	priority() int
	bindings() []binding
}

func always() bool { return true }

// unless turns covered into a guard that passes while covered reports false.
func unless(covered func() bool) func() bool {
	return func() bool { return !covered() }
}

// cursor is a wrapping index into n items.
type cursor struct {
	pos int
	n   int
}

func (c *cursor) up() bool {
	c.pos = (c.pos - 1 + c.n) % c.n
	return true
}

func (c *cursor) down() bool {
	c.pos = (c.pos + 1) % c.n
	return true
}

// modal is a two-button dialog. The second button records a route failure.
type modal struct {
	open   bool
	cursor cursor
	slot   *route.Slot
}

var modalButtons = []string{"OK", "Fail route"}

func newModal(slot *route.Slot) *modal {
	return &modal{cursor: cursor{n: len(modalButtons)}, slot: slot}
}

func (m *modal) owner() string { return OwnerModal }
func (m *modal) priority() int { return PriorityModal }

func (m *modal) isOpen() bool { return m.open }

func (m *modal) show() bool {
	m.open = true
	m.cursor.pos = 0
	return true
}

func (m *modal) close() bool {
	m.open = false
	return true
}

func (m *modal) activate() bool {
	if modalButtons[m.cursor.pos] == "Fail route" {
		m.slot.Fail(route.Failure{
			Code:    500,
			Message: "the dialog asked the route to fail",
			Details: map[string]any{"region": OwnerModal},
		})
	}
	return m.close()
}

func (m *modal) bindings() []binding {
	return []binding{
		{keys.Escape, hotkey.Claim{Guard: m.isOpen, Action: m.close, Label: "close dialog"}},
		{keys.Enter, hotkey.Claim{Guard: m.isOpen, Action: m.activate, Label: "press button"}},
		{keys.Up, hotkey.Claim{Guard: m.isOpen, Action: m.cursor.up, Label: "previous button"}},
		{keys.Down, hotkey.Claim{Guard: m.isOpen, Action: m.cursor.down, Label: "next button"}},
		{keys.OpenModal, hotkey.Claim{Guard: func() bool { return !m.open }, Action: m.show, Label: "open dialog"}},
	}
}

// drawer is the navigation drawer used on narrow terminals. Its open state
// lives in the layout controller.
type drawer struct {
	layout  *layout.Controller
	nav     *page
	covered func() bool
}

func (d *drawer) owner() string { return OwnerMobileSidebar }
func (d *drawer) priority() int { return PriorityMobileSidebar }

func (d *drawer) toggle() bool {
	if d.layout.IsMobileOpen() {
		return d.layout.CloseMobile()
	}
	return d.layout.OpenMobile()
}

func (d *drawer) choose() bool {
	d.nav.choose()
	d.layout.CloseMobile()
	return true
}

func (d *drawer) canToggle() bool {
	return d.layout.IsNarrow() && !d.covered()
}

func (d *drawer) bindings() []binding {
	open := d.layout.IsMobileOpen
	return []binding{
		{keys.Escape, hotkey.Claim{Guard: open, Action: d.layout.CloseMobile, Label: "close drawer"}},
		{keys.Enter, hotkey.Claim{Guard: open, Action: d.choose, Label: "go to item"}},
		{keys.Up, hotkey.Claim{Guard: open, Action: d.nav.cursor.up, Label: "previous item"}},
		{keys.Down, hotkey.Claim{Guard: open, Action: d.nav.cursor.down, Label: "next item"}},
		{keys.ToggleDrawer, hotkey.Claim{Guard: d.canToggle, Action: d.toggle, Label: "toggle drawer"}},
	}
}

// userMenu is the account dropdown in the header.
type userMenu struct {
	open    bool
	cursor  cursor
	chosen  string
	covered func() bool
}

var userMenuItems = []string{"Profile", "Switch account", "Sign out"}

func newUserMenu(covered func() bool) *userMenu {
	return &userMenu{cursor: cursor{n: len(userMenuItems)}, covered: covered}
}

func (u *userMenu) owner() string { return OwnerUserMenu }
func (u *userMenu) priority() int { return PriorityUserMenu }

func (u *userMenu) isOpen() bool { return u.open }

func (u *userMenu) toggle() bool {
	u.open = !u.open
	return true
}

func (u *userMenu) close() bool {
	u.open = false
	return true
}

func (u *userMenu) choose() bool {
	u.chosen = userMenuItems[u.cursor.pos]
	return u.close()
}

func (u *userMenu) bindings() []binding {
	return []binding{
		{keys.Escape, hotkey.Claim{Guard: u.isOpen, Action: u.close, Label: "close menu"}},
		{keys.Enter, hotkey.Claim{Guard: u.isOpen, Action: u.choose, Label: "choose entry"}},
		{keys.Up, hotkey.Claim{Guard: u.isOpen, Action: u.cursor.up, Label: "previous entry"}},
		{keys.Down, hotkey.Claim{Guard: u.isOpen, Action: u.cursor.down, Label: "next entry"}},
		{keys.ToggleMenu, hotkey.Claim{Guard: unless(u.covered), Action: u.toggle, Label: "toggle menu"}},
	}
}

// page is the main content area and owns the app-wide shortcuts.
type page struct {
	layout *layout.Controller
	slot   *route.Slot
	// covered reports whether the dialog owns the keyboard.
	covered func() bool

	cursor   cursor
	selected int
	showHelp bool
	quitting bool
}

func newPage(lc *layout.Controller, slot *route.Slot, covered func() bool) *page {
	return &page{layout: lc, slot: slot, covered: covered, cursor: cursor{n: len(navItems)}, selected: -1}
}

func (p *page) owner() string { return OwnerPage }
func (p *page) priority() int { return PriorityPage }

func (p *page) choose() bool {
	p.selected = p.cursor.pos
	return true
}

// clear drops the help screen, the route failure and the selection. It
// reports whether there was anything to clear.
func (p *page) clear() bool {
	cleared := false
	if p.showHelp {
		p.showHelp = false
		cleared = true
	}
	if p.slot.Failed() {
		p.slot.Clear()
		cleared = true
	}
	if p.selected >= 0 {
		p.selected = -1
		cleared = true
	}
	return cleared
}

func (p *page) toggleLock() bool {
	if p.layout.IsLocked() {
		return p.layout.Unlock()
	}
	return p.layout.LockExpanded()
}

func (p *page) toggleHelp() bool {
	p.showHelp = !p.showHelp
	return true
}

func (p *page) quit() bool {
	p.quitting = true
	return true
}

func (p *page) title() string {
	if p.selected < 0 {
		return "Home"
	}
	return navItems[p.selected]
}

func (p *page) bindings() []binding {
	shortcut := unless(p.covered)
	return []binding{
		{keys.Escape, hotkey.Claim{Guard: always, Action: p.clear, Label: "clear page"}},
		{keys.Enter, hotkey.Claim{Action: p.choose, Label: "open item"}},
		{keys.Up, hotkey.Claim{Action: p.cursor.up, Label: "previous item"}},
		{keys.Down, hotkey.Claim{Action: p.cursor.down, Label: "next item"}},
		{keys.ToggleCompact, hotkey.Claim{Guard: shortcut, Action: p.layout.ToggleCompact, Label: "compact sidebar"}},
		{keys.ToggleLock, hotkey.Claim{Guard: shortcut, Action: p.toggleLock, Label: "lock sidebar"}},
		{keys.Help, hotkey.Claim{Guard: shortcut, Action: p.toggleHelp, Label: "help"}},
		{keys.Quit, hotkey.Claim{Guard: shortcut, Action: p.quit, Label: "quit"}},
	}
}
