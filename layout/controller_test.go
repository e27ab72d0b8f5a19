package layout

import (
	"testing"

	"keyclaim/config"
	"keyclaim/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.LayoutConfig {
	return config.LayoutConfig{ExpandedWidth: 30, CompactWidth: 8, MobileBreakpoint: 80}
}

// recorder collects every published change.
type recorder struct {
	changes []Change
}

func record(c *Controller) *recorder {
	r := &recorder{}
	c.Subscribe(func(ch Change) { r.changes = append(r.changes, ch) })
	return r
}

func TestNewController(t *testing.T) {
	c := NewController(testConfig())
	assert.Equal(t, Mode{Type: DesktopExpanded, SidebarWidth: 30}, c.Mode())

	cfg := testConfig()
	cfg.StartCompact = true
	c = NewController(cfg)
	assert.Equal(t, Mode{Type: DesktopCompact, SidebarWidth: 8}, c.Mode())
	assert.True(t, c.IsCompact())
}

func TestDesktopTransitions(t *testing.T) {
	tests := []struct {
		name    string
		start   func(c *Controller)
		apply   func(c *Controller) bool
		want    ModeType
		changed bool
	}{
		{"compact from expanded", func(c *Controller) {}, (*Controller).Compact, DesktopCompact, true},
		{"compact when compact", func(c *Controller) { c.Compact() }, (*Controller).Compact, DesktopCompact, false},
		{"expand from compact", func(c *Controller) { c.Compact() }, (*Controller).Expand, DesktopExpanded, true},
		{"expand when expanded", func(c *Controller) {}, (*Controller).Expand, DesktopExpanded, false},
		{"toggle from expanded", func(c *Controller) {}, (*Controller).ToggleCompact, DesktopCompact, true},
		{"toggle from compact", func(c *Controller) { c.Compact() }, (*Controller).ToggleCompact, DesktopExpanded, true},
		{"compact while locked", func(c *Controller) { c.LockExpanded() }, (*Controller).Compact, DesktopLocked, false},
		{"expand while locked", func(c *Controller) { c.LockExpanded() }, (*Controller).Expand, DesktopLocked, false},
		{"toggle while locked", func(c *Controller) { c.LockExpanded() }, (*Controller).ToggleCompact, DesktopLocked, false},
		{"lock twice", func(c *Controller) { c.LockExpanded() }, (*Controller).LockExpanded, DesktopLocked, false},
		{"unlock when unlocked", func(c *Controller) { c.Compact() }, (*Controller).Unlock, DesktopCompact, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(testConfig())
			tt.start(c)
			r := record(c)

			changed := tt.apply(c)

			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, c.Mode().Type)
			if tt.changed {
				assert.Len(t, r.changes, 1)
			} else {
				assert.Empty(t, r.changes, "a no-op transition must not publish")
			}
		})
	}
}

func TestLockWhileCompact(t *testing.T) {
	c := NewController(testConfig())
	c.Compact()
	require.True(t, c.IsCompact())

	require.True(t, c.LockExpanded())
	assert.False(t, c.IsCompact())
	assert.True(t, c.IsLocked())
	assert.Equal(t, 30, c.Mode().SidebarWidth, "locked sidebar uses the expanded width")

	r := record(c)
	before := c.Mode()
	assert.False(t, c.Compact())
	assert.Equal(t, before, c.Mode())
	assert.Empty(t, r.changes)
}

func TestUnlockRestoresPriorState(t *testing.T) {
	c := NewController(testConfig())
	c.Compact()
	c.LockExpanded()

	require.True(t, c.Unlock())
	assert.False(t, c.IsLocked())
	assert.Equal(t, DesktopCompact, c.Mode().Type)
	assert.Equal(t, 8, c.Mode().SidebarWidth)

	c = NewController(testConfig())
	c.LockExpanded()
	require.True(t, c.Unlock())
	assert.Equal(t, DesktopExpanded, c.Mode().Type)
}

func TestUnlockForgetsPriorState(t *testing.T) {
	c := NewController(testConfig())
	c.Compact()
	c.LockExpanded()
	c.Unlock()
	c.Expand()

	c.LockExpanded()
	c.Unlock()
	assert.Equal(t, DesktopExpanded, c.Mode().Type)
}

func TestMobileOverlayIsIndependent(t *testing.T) {
	c := NewController(testConfig())
	c.LockExpanded()
	r := record(c)

	assert.True(t, c.OpenMobile())
	assert.True(t, c.IsMobileOpen())
	assert.True(t, c.IsLocked())
	assert.False(t, c.OpenMobile(), "opening an open drawer is a no-op")

	assert.True(t, c.CloseMobile())
	assert.False(t, c.IsMobileOpen())
	assert.False(t, c.CloseMobile())

	require.Len(t, r.changes, 2)
	assert.False(t, r.changes[0].Before.MobileOpen)
	assert.True(t, r.changes[0].After.MobileOpen)
	assert.Equal(t, DesktopLocked, r.changes[1].After.Type)
}

func TestChangePayload(t *testing.T) {
	c := NewController(testConfig())
	var got event.Event
	c.Bus().Subscribe(TopicModeChange, func(ev event.Event) { got = ev })

	c.Compact()

	assert.Equal(t, TopicModeChange, got.Type)
	assert.Equal(t, Change{
		Before: Mode{Type: DesktopExpanded, SidebarWidth: 30},
		After:  Mode{Type: DesktopCompact, SidebarWidth: 8},
	}, got.Data)
	assert.False(t, got.Timestamp.IsZero())
}

func TestSecondIdenticalTransitionPublishesNothing(t *testing.T) {
	c := NewController(testConfig())
	c.Compact()
	r := record(c)

	c.Expand()
	c.Expand()

	assert.Len(t, r.changes, 1)
}

func TestSubscriberMayTransition(t *testing.T) {
	c := NewController(testConfig())
	// Whenever the drawer opens, compact the desktop sidebar.
	c.Subscribe(func(ch Change) {
		if ch.After.MobileOpen && !ch.Before.MobileOpen {
			c.Compact()
		}
	})

	require.NotPanics(t, func() { c.OpenMobile() })
	assert.True(t, c.IsCompact())
	assert.True(t, c.IsMobileOpen())
}

func TestResize(t *testing.T) {
	c := NewController(testConfig())

	assert.False(t, c.Resize(120))
	assert.False(t, c.IsNarrow())

	assert.False(t, c.Resize(60))
	assert.True(t, c.IsNarrow())
	c.OpenMobile()

	assert.False(t, c.Resize(70), "staying narrow keeps the drawer open")
	assert.True(t, c.IsMobileOpen())

	assert.True(t, c.Resize(100), "growing past the breakpoint closes the drawer")
	assert.False(t, c.IsMobileOpen())
	assert.False(t, c.IsNarrow())
}

func TestResizeKeepsLock(t *testing.T) {
	c := NewController(testConfig())
	c.LockExpanded()
	c.Resize(40)
	c.Resize(200)
	assert.True(t, c.IsLocked())
}

func TestSnapshotRestore(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Controller)
		want  config.LayoutState
	}{
		{"expanded", func(c *Controller) {}, config.LayoutState{}},
		{"compact", func(c *Controller) { c.Compact() }, config.LayoutState{Compact: true}},
		{"locked from expanded", func(c *Controller) { c.LockExpanded() }, config.LayoutState{Locked: true}},
		{"locked from compact", func(c *Controller) { c.Compact(); c.LockExpanded() }, config.LayoutState{Compact: true, Locked: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewController(testConfig())
			tt.setup(src)
			snap := src.Snapshot()
			assert.Equal(t, tt.want, snap)

			dst := NewController(testConfig())
			dst.Restore(snap)
			assert.Equal(t, src.Mode(), dst.Mode())
			assert.Equal(t, snap, dst.Snapshot())
		})
	}
}
