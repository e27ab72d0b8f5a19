// Package route holds the failure slot a routing layer exposes so a view can
// render an error page instead of its normal content.
package route

import "fmt"

// Failure describes why a route could not render.
type Failure struct {
	Code    int
	Message string
	Details map[string]any
}

func (f Failure) Error() string {
	if f.Code == 0 {
		return f.Message
	}
	return fmt.Sprintf("%d: %s", f.Code, f.Message)
}

// Context is implemented by routing collaborators.
type Context interface {
	Fail(Failure)
	Failed() bool
	// Failure returns the recorded failure, nil when none.
	Failure() *Failure
}

// Slot is a minimal Context. The zero value has no failure.
type Slot struct {
	failure *Failure
}

var _ Context = (*Slot)(nil)

func (s *Slot) Fail(f Failure) {
	s.failure = &f
}

func (s *Slot) Failed() bool {
	return s.failure != nil
}

func (s *Slot) Failure() *Failure {
	return s.failure
}

// Clear removes the recorded failure.
func (s *Slot) Clear() {
	s.failure = nil
}
