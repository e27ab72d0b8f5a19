// Package dispatch is the single capture point for key presses. It maps the
// raw key string reported by an input surface to a logical key and hands it
// to the hotkey chain exactly once.
package dispatch

import (
	"sync"
	"time"

	"keyclaim/hotkey"
	"keyclaim/keys"
	"keyclaim/log"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyEvent is one physical key press.
type KeyEvent struct {
	// Seq is assigned by Capture and increases with every event.
	Seq uint64
	Raw string
}

// Result describes what happened to one KeyEvent.
type Result struct {
	Event KeyEvent
	// Mapped is false when the raw key has no logical key. Such events are
	// ignored without reaching the chain.
	Mapped bool
	// Dropped is set when the event's sequence was already dispatched.
	Dropped bool
	hotkey.DispatchResult
}

// Dispatcher translates raw keys and drives the chain.
type Dispatcher struct {
	chain *hotkey.Chain

	mu      sync.Mutex
	table   map[string]keys.LogicalKey
	nextSeq uint64
	// Every seq up to done has been dispatched; ahead holds the dispatched
	// seqs above it.
	done     uint64
	ahead    map[uint64]struct{}
	unmapped *log.Every
}

// New creates a dispatcher over chain using keys.GlobalKeyStringsMap extended
// by overrides. An override for a raw key already in the table replaces it.
func New(chain *hotkey.Chain, overrides map[string]keys.LogicalKey) *Dispatcher {
	table := make(map[string]keys.LogicalKey, len(keys.GlobalKeyStringsMap)+len(overrides))
	for raw, k := range keys.GlobalKeyStringsMap {
		table[raw] = k
	}
	for raw, k := range overrides {
		table[raw] = k
	}
	return &Dispatcher{
		chain:    chain,
		table:    table,
		ahead:    make(map[uint64]struct{}),
		unmapped: log.NewEvery(5 * time.Second),
	}
}

// Table returns a copy of the raw → logical key table.
func (d *Dispatcher) Table() map[string]keys.LogicalKey {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[string]keys.LogicalKey, len(d.table))
	for raw, k := range d.table {
		out[raw] = k
	}
	return out
}

// Lookup returns the logical key for raw.
func (d *Dispatcher) Lookup(raw string) (keys.LogicalKey, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	k, ok := d.table[raw]
	return k, ok
}

// Capture stamps raw with the next sequence number.
func (d *Dispatcher) Capture(raw string) KeyEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextSeq++
	return KeyEvent{Seq: d.nextSeq, Raw: raw}
}

// Dispatch sends ev to the chain once. Captured events may be dispatched in
// any order; an event whose Seq was already dispatched, or was never handed
// out by Capture, is dropped. An event with a zero Seq is captured first.
func (d *Dispatcher) Dispatch(ev KeyEvent) Result {
	if ev.Seq == 0 {
		ev = d.Capture(ev.Raw)
	}

	d.mu.Lock()
	if reason := d.claimSeq(ev.Seq); reason != "" {
		d.mu.Unlock()
		log.WarningLog.Printf("dropping key event %d (%q): %s", ev.Seq, ev.Raw, reason)
		return Result{Event: ev, Dropped: true}
	}
	key, ok := d.table[ev.Raw]
	if !ok {
		if d.unmapped.ShouldLog() {
			log.InfoLog.Printf("ignoring unmapped key %q", ev.Raw)
		}
		d.mu.Unlock()
		return Result{Event: ev}
	}
	d.mu.Unlock()

	// Actions may dispatch or register again, so the chain runs unlocked.
	res := d.chain.Dispatch(key, hotkey.EventContext{Raw: ev.Raw, Seq: ev.Seq})
	return Result{Event: ev, Mapped: true, DispatchResult: res}
}

// claimSeq marks seq as dispatched, or returns why it cannot be. d.mu must be
// held.
func (d *Dispatcher) claimSeq(seq uint64) string {
	if seq > d.nextSeq {
		return "never captured"
	}
	if _, seen := d.ahead[seq]; seen || seq <= d.done {
		return "already dispatched"
	}
	if seq != d.done+1 {
		d.ahead[seq] = struct{}{}
		return ""
	}
	d.done = seq
	for {
		if _, ok := d.ahead[d.done+1]; !ok {
			break
		}
		delete(d.ahead, d.done+1)
		d.done++
	}
	return ""
}

// HandleRaw captures and dispatches a raw key string. It is the scripted
// input surface.
func (d *Dispatcher) HandleRaw(raw string) Result {
	return d.Dispatch(d.Capture(raw))
}

// HandleMsg is the keyboard input surface. Messages other than tea.KeyMsg
// return an unmapped zero Result.
func (d *Dispatcher) HandleMsg(msg tea.Msg) Result {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return Result{}
	}
	return d.HandleRaw(km.String())
}
