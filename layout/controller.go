// Package layout holds the single source of truth for the sidebar layout: the
// desktop state (expanded, compact or locked) and the mobile drawer overlay.
//
// State only changes through the Controller's transition methods. A
// transition that would leave the Mode unchanged is a no-op: it returns false
// and publishes nothing.
package layout

import (
	"sync"

	"keyclaim/config"
	"keyclaim/event"
)

// Controller is the layout state machine. Build one per application with
// NewController and pass it to the components that need it.
type Controller struct {
	mu   sync.Mutex
	mode Mode
	// prior is the desktop state to return to on Unlock.
	prior ModeType
	// narrow is true while the terminal is below the mobile breakpoint.
	narrow bool

	cfg config.LayoutConfig
	bus *event.Bus
}

// NewController creates a controller in the expanded (or, with
// cfg.StartCompact, compact) state with the drawer closed.
func NewController(cfg config.LayoutConfig) *Controller {
	c := &Controller{
		cfg: cfg,
		bus: event.NewBus(),
	}
	t := DesktopExpanded
	if cfg.StartCompact {
		t = DesktopCompact
	}
	c.mode = Mode{Type: t, SidebarWidth: c.widthFor(t)}
	return c
}

func (c *Controller) widthFor(t ModeType) int {
	if t == DesktopCompact {
		return c.cfg.CompactWidth
	}
	return c.cfg.ExpandedWidth
}

// transition applies next to the current mode under the lock and publishes
// the change after releasing it, so subscribers may call back into the
// controller.
func (c *Controller) transition(next func(cur Mode) (Mode, bool)) bool {
	c.mu.Lock()
	before := c.mode
	after, ok := next(before)
	if !ok || after == before {
		c.mu.Unlock()
		return false
	}
	c.mode = after
	c.mu.Unlock()

	c.bus.Publish(TopicModeChange, Change{Before: before, After: after})
	return true
}

func (c *Controller) withType(m Mode, t ModeType) Mode {
	m.Type = t
	m.SidebarWidth = c.widthFor(t)
	return m
}

// Mode returns the current layout.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// IsCompact is false while locked.
func (c *Controller) IsCompact() bool {
	return c.Mode().Type == DesktopCompact
}

func (c *Controller) IsLocked() bool {
	return c.Mode().Type == DesktopLocked
}

func (c *Controller) IsMobileOpen() bool {
	return c.Mode().MobileOpen
}

// IsNarrow reports whether the last Resize was below the mobile breakpoint.
func (c *Controller) IsNarrow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.narrow
}

// Expand switches to the expanded desktop state. No-op while locked.
func (c *Controller) Expand() bool {
	return c.transition(func(cur Mode) (Mode, bool) {
		if cur.Type == DesktopLocked {
			return cur, false
		}
		return c.withType(cur, DesktopExpanded), true
	})
}

// Compact switches to the compact desktop state. No-op while locked.
func (c *Controller) Compact() bool {
	return c.transition(func(cur Mode) (Mode, bool) {
		if cur.Type == DesktopLocked {
			return cur, false
		}
		return c.withType(cur, DesktopCompact), true
	})
}

// ToggleCompact flips between expanded and compact. No-op while locked.
func (c *Controller) ToggleCompact() bool {
	return c.transition(func(cur Mode) (Mode, bool) {
		switch cur.Type {
		case DesktopExpanded:
			return c.withType(cur, DesktopCompact), true
		case DesktopCompact:
			return c.withType(cur, DesktopExpanded), true
		}
		return cur, false
	})
}

// LockExpanded pins the sidebar expanded and remembers the current desktop
// state for Unlock.
func (c *Controller) LockExpanded() bool {
	return c.transition(func(cur Mode) (Mode, bool) {
		if cur.Type == DesktopLocked {
			return cur, false
		}
		c.prior = cur.Type
		return c.withType(cur, DesktopLocked), true
	})
}

// Unlock restores the state saved by LockExpanded, expanded if none was saved.
// No-op when not locked.
func (c *Controller) Unlock() bool {
	return c.transition(func(cur Mode) (Mode, bool) {
		if cur.Type != DesktopLocked {
			return cur, false
		}
		restore := c.prior
		if restore == "" || restore == DesktopLocked {
			restore = DesktopExpanded
		}
		c.prior = ""
		return c.withType(cur, restore), true
	})
}

// OpenMobile opens the navigation drawer. Independent of the desktop state.
func (c *Controller) OpenMobile() bool {
	return c.transition(func(cur Mode) (Mode, bool) {
		cur.MobileOpen = true
		return cur, true
	})
}

// CloseMobile closes the navigation drawer.
func (c *Controller) CloseMobile() bool {
	return c.transition(func(cur Mode) (Mode, bool) {
		cur.MobileOpen = false
		return cur, true
	})
}

// Resize applies the responsive breakpoint for a terminal of the given width.
// Growing past the breakpoint closes the drawer. The desktop state is never
// touched, so a lock survives any resize. It returns true when the Mode changed.
func (c *Controller) Resize(width int) bool {
	c.mu.Lock()
	wasNarrow := c.narrow
	c.narrow = width < c.cfg.MobileBreakpoint
	widened := wasNarrow && !c.narrow
	c.mu.Unlock()

	if widened {
		return c.CloseMobile()
	}
	return false
}

// Subscribe registers fn for layout-mode-change events.
func (c *Controller) Subscribe(fn func(Change)) (unsubscribe func()) {
	return event.Subscribe(c.bus, TopicModeChange, fn)
}

// Bus exposes the controller's own bus for subscribers that want the raw envelope.
func (c *Controller) Bus() *event.Bus {
	return c.bus
}

// Snapshot returns the persistable part of the layout.
func (c *Controller) Snapshot() config.LayoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	locked := c.mode.Type == DesktopLocked
	compact := c.mode.Type == DesktopCompact || (locked && c.prior == DesktopCompact)
	return config.LayoutState{Compact: compact, Locked: locked}
}

// Restore moves to a previously saved layout through the normal transitions.
func (c *Controller) Restore(s config.LayoutState) {
	if c.IsLocked() {
		c.Unlock()
	}
	if s.Compact {
		c.Compact()
	} else {
		c.Expand()
	}
	if s.Locked {
		c.LockExpanded()
	}
}
