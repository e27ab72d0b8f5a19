package hotkey

import "keyclaim/keys"

// Guard decides whether a claim applies to the current runtime state.
type Guard func() bool

// Action handles the key. Returning true consumes the key and stops the chain.
type Action func() bool

// Claim is one component's intent to handle a logical key.
type Claim struct {
	// ID identifies this registration. Generated when empty.
	ID      string
	OwnerID string
	// Priority is ascending: lower runs first.
	Priority int
	// Guard defaults to always true when nil.
	Guard  Guard
	Action Action
	// Label is shown in help output.
	Label string

	enabled bool
	seq     uint64
}

// Enabled reports whether the claim takes part in dispatch.
func (c Claim) Enabled() bool {
	return c.enabled
}

// Seq is the insertion sequence used to break priority ties.
func (c Claim) Seq() uint64 {
	return c.seq
}

// less orders claims by (Priority, seq).
func less(a, b *Claim) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.seq < b.seq
}

// EventContext describes the key event being dispatched.
type EventContext struct {
	// Raw is the key string reported by the input surface, e.g. "esc".
	Raw string
	// Seq is the dispatcher's event sequence number, zero when dispatched directly.
	Seq uint64
}

// DispatchResult reports the outcome of one dispatch.
type DispatchResult struct {
	Key     keys.LogicalKey
	Handled bool
	// ClaimID and OwnerID identify the winning claim when Handled.
	ClaimID string
	OwnerID string
	// Evaluated lists the owners whose guards were evaluated, in order.
	Evaluated []string
	// Errors holds the recovered guard and action failures.
	Errors []error
}
