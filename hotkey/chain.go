// Package hotkey resolves which component handles a logical key.
//
// Each logical key has an ordered chain of claims sorted by (Priority,
// insertion order). Dispatch walks a snapshot of the chain and stops at the
// first enabled claim whose guard passes and whose action reports the key as
// handled. Guard and action panics are recovered, logged, and treated as
// "skip this claim".
package hotkey

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"

	"keyclaim/keys"
	"keyclaim/log"

	"github.com/google/uuid"
)

// Chain is the registry of claims for every logical key.
//
// The lock is never held while guards or actions run, so an action may
// register or unregister claims. Such changes apply from the next dispatch.
type Chain struct {
	mu      sync.Mutex
	claims  map[keys.LogicalKey][]*Claim
	nextSeq uint64
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{
		claims: make(map[keys.LogicalKey][]*Claim),
	}
}

// Register adds claim to the chain for key and returns a function that removes
// exactly this claim. A second registration by the same owner for the same key
// replaces the first; the replacement takes a new insertion position.
func (c *Chain) Register(key keys.LogicalKey, claim Claim) (dispose func()) {
	if claim.OwnerID == "" {
		panic("hotkey claim owner cannot be empty")
	}
	if claim.Action == nil {
		panic("hotkey claim action cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cl := claim
	if cl.ID == "" {
		cl.ID = uuid.NewString()
	}
	c.nextSeq++
	cl.seq = c.nextSeq
	cl.enabled = true

	list := c.claims[key]
	if i := indexOwner(list, cl.OwnerID); i >= 0 {
		err := fmt.Errorf("%w: owner %s already holds %s (claim %s), replacing with %s",
			ErrDuplicateRegistration, cl.OwnerID, key, list[i].ID, cl.ID)
		log.WarningLog.Printf("%v", err)
		list = without(list, i)
	}

	// Copy-on-write keeps any slice handed out earlier untouched.
	next := make([]*Claim, 0, len(list)+1)
	next = append(next, list...)
	next = append(next, &cl)
	sort.SliceStable(next, func(i, j int) bool { return less(next[i], next[j]) })
	c.claims[key] = next

	seq := cl.seq
	var once sync.Once
	return func() {
		once.Do(func() { c.unregister(key, seq) })
	}
}

func indexOwner(list []*Claim, owner string) int {
	for i, cl := range list {
		if cl.OwnerID == owner {
			return i
		}
	}
	return -1
}

func without(list []*Claim, i int) []*Claim {
	next := make([]*Claim, 0, len(list)-1)
	next = append(next, list[:i]...)
	return append(next, list[i+1:]...)
}

// unregister removes the claim registered with seq, pruning empty keys. IDs
// may repeat, seq never does.
func (c *Chain) unregister(key keys.LogicalKey, seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.claims[key]
	for i, cl := range list {
		if cl.seq == seq {
			c.store(key, without(list, i))
			return
		}
	}
}

func (c *Chain) store(key keys.LogicalKey, list []*Claim) {
	if len(list) == 0 {
		delete(c.claims, key)
		return
	}
	c.claims[key] = list
}

// UnregisterOwner removes every claim held by owner on every key and returns
// how many were removed.
func (c *Chain) UnregisterOwner(owner string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, list := range c.claims {
		if i := indexOwner(list, owner); i >= 0 {
			c.store(key, without(list, i))
			removed++
		}
	}
	return removed
}

// SetEnabled toggles owner's claim on key without changing its position. It
// returns false when no such claim exists.
func (c *Chain) SetEnabled(key keys.LogicalKey, owner string, enabled bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.claims[key]
	i := indexOwner(list, owner)
	if i < 0 {
		return false
	}
	updated := *list[i]
	updated.enabled = enabled

	next := make([]*Claim, len(list))
	copy(next, list)
	next[i] = &updated
	c.claims[key] = next
	return true
}

// snapshot copies the ordered claims for key.
func (c *Chain) snapshot(key keys.LogicalKey) []Claim {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.claims[key]
	out := make([]Claim, len(list))
	for i, cl := range list {
		out[i] = *cl
	}
	return out
}

// Claims returns the claims for key in dispatch order.
func (c *Chain) Claims(key keys.LogicalKey) []Claim {
	return c.snapshot(key)
}

// Keys returns every key that has at least one claim, sorted by name.
func (c *Chain) Keys() []keys.LogicalKey {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]keys.LogicalKey, 0, len(c.claims))
	for k := range c.claims {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Dispatch offers the key to each enabled claim in order and returns the
// first claim that handled it. It never panics because of a guard or action.
func (c *Chain) Dispatch(key keys.LogicalKey, ev EventContext) DispatchResult {
	result := DispatchResult{Key: key}

	for _, cl := range c.snapshot(key) {
		if !cl.enabled {
			continue
		}
		result.Evaluated = append(result.Evaluated, cl.OwnerID)

		applies, err := evaluateGuard(key, &cl)
		if err != nil {
			log.ErrorLog.Printf("hotkey %s (event %d): %v", key, ev.Seq, err)
			result.Errors = append(result.Errors, err)
			continue
		}
		if !applies {
			continue
		}

		handled, err := runAction(key, &cl)
		if err != nil {
			log.ErrorLog.Printf("hotkey %s (event %d): %v", key, ev.Seq, err)
			result.Errors = append(result.Errors, err)
			continue
		}
		if handled {
			result.Handled = true
			result.ClaimID = cl.ID
			result.OwnerID = cl.OwnerID
			return result
		}
	}

	return result
}

func evaluateGuard(key keys.LogicalKey, cl *Claim) (applies bool, err error) {
	if cl.Guard == nil {
		return true, nil
	}
	defer func() {
		if r := recover(); r != nil {
			log.ErrorLog.Printf("guard panic stack:\n%s", debug.Stack())
			applies = false
			err = &GuardEvaluationError{Key: key, ClaimID: cl.ID, OwnerID: cl.OwnerID, Value: r}
		}
	}()
	return cl.Guard(), nil
}

func runAction(key keys.LogicalKey, cl *Claim) (handled bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.ErrorLog.Printf("action panic stack:\n%s", debug.Stack())
			handled = false
			err = &ActionError{Key: key, ClaimID: cl.ID, OwnerID: cl.OwnerID, Value: r}
		}
	}()
	return cl.Action(), nil
}

// Conflict reports enabled claims on one key that share a priority. They are
// still resolved deterministically by insertion order.
type Conflict struct {
	Key      keys.LogicalKey
	Priority int
	Owners   []string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s: priority %d shared by %v", c.Key, c.Priority, c.Owners)
}

// DetectConflicts finds priority ties, sorted by key then priority.
func (c *Chain) DetectConflicts() []Conflict {
	var conflicts []Conflict
	for _, key := range c.Keys() {
		byPriority := make(map[int][]string)
		var order []int
		for _, cl := range c.snapshot(key) {
			if !cl.enabled {
				continue
			}
			if _, seen := byPriority[cl.Priority]; !seen {
				order = append(order, cl.Priority)
			}
			byPriority[cl.Priority] = append(byPriority[cl.Priority], cl.OwnerID)
		}
		for _, p := range order {
			if owners := byPriority[p]; len(owners) > 1 {
				conflicts = append(conflicts, Conflict{Key: key, Priority: p, Owners: owners})
			}
		}
	}
	return conflicts
}

// IsGuardError reports whether err came from a panicking guard.
func IsGuardError(err error) bool {
	var ge *GuardEvaluationError
	return errors.As(err, &ge)
}

// IsActionError reports whether err came from a panicking action.
func IsActionError(err error) bool {
	var ae *ActionError
	return errors.As(err, &ae)
}
