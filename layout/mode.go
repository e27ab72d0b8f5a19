package layout

import "fmt"

// ModeType is the desktop sidebar state.
type ModeType string

const (
	DesktopExpanded ModeType = "desktop-expanded"
	DesktopCompact  ModeType = "desktop-compact"
	// DesktopLocked pins the sidebar expanded; compact/expand are ignored until unlocked.
	DesktopLocked ModeType = "desktop-locked"
)

// TopicModeChange is published on the controller's bus with a Change payload.
const TopicModeChange = "layout-mode-change"

// Mode is the complete layout state. Two modes are equal when every field is equal.
type Mode struct {
	Type         ModeType
	MobileOpen   bool
	SidebarWidth int
}

func (m Mode) String() string {
	return fmt.Sprintf("%s (sidebar %d, drawer open=%t)", m.Type, m.SidebarWidth, m.MobileOpen)
}

// Change is the payload of a layout-mode-change event.
type Change struct {
	Before Mode
	After  Mode
}
