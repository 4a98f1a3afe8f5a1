// Package selection drives the suggest, choose, regenerate loop as an
// explicit state machine.
//
// States and the events each one accepts:
//
//	Loading        Loaded -> Presenting, LoadFailed -> AwaitingRetry|Failed, Interrupted -> Cancelled
//	Presenting     Move -> Presenting, Confirm -> Committed, Regenerate -> Loading, Cancel -> Cancelled
//	AwaitingRetry  Regenerate -> Loading, Cancel -> Failed
//	Committed, Cancelled, Failed are terminal
//
// Any other event leaves the state unchanged.
package selection

import (
	"errors"
	"fmt"

	"github.com/huimingz/ai-commit-go/internal/suggest"
)

// State is one node of the selection machine
type State interface {
	fmt.Stringer
	isState()
}

// Loading waits for a suggestion round to finish
type Loading struct{}

// Presenting shows a batch with the cursor on one entry
type Presenting struct {
	Batch  suggest.Batch
	Cursor int
}

// Selected returns the suggestion under the cursor
func (p Presenting) Selected() suggest.Suggestion {
	return p.Batch[p.Cursor]
}

// AwaitingRetry holds a failed round until the user regenerates or quits
type AwaitingRetry struct {
	Err error
}

// Committed carries the chosen message
type Committed struct {
	Message string
}

// Cancelled means the user gave up; nothing is committed
type Cancelled struct{}

// Failed is an unrecoverable error; nothing is committed
type Failed struct {
	Err error
}

func (Loading) isState()       {}
func (Presenting) isState()    {}
func (AwaitingRetry) isState() {}
func (Committed) isState()     {}
func (Cancelled) isState()     {}
func (Failed) isState()        {}

func (Loading) String() string { return "Loading" }
func (p Presenting) String() string {
	return fmt.Sprintf("Presenting(%d/%d)", p.Cursor+1, len(p.Batch))
}
func (AwaitingRetry) String() string { return "AwaitingRetry" }
func (Committed) String() string     { return "Committed" }
func (Cancelled) String() string     { return "Cancelled" }
func (Failed) String() string        { return "Failed" }

// IsTerminal reports whether no further event can change s
func IsTerminal(s State) bool {
	switch s.(type) {
	case Committed, Cancelled, Failed:
		return true
	default:
		return false
	}
}

// Event is an input to Transition
type Event interface {
	isEvent()
}

// Move shifts the cursor by Delta, wrapping around the batch
type Move struct{ Delta int }

// Confirm commits the suggestion under the cursor
type Confirm struct{}

// Regenerate discards the batch and starts a new round
type Regenerate struct{}

// Cancel abandons the flow
type Cancel struct{}

// Loaded delivers a finished round
type Loaded struct{ Batch suggest.Batch }

// LoadFailed delivers a failed round. Recoverable failures wait for the user.
type LoadFailed struct {
	Err         error
	Recoverable bool
}

// Interrupted reports that the round was aborted by cancellation
type Interrupted struct{}

func (Move) isEvent()        {}
func (Confirm) isEvent()     {}
func (Regenerate) isEvent()  {}
func (Cancel) isEvent()      {}
func (Loaded) isEvent()      {}
func (LoadFailed) isEvent()  {}
func (Interrupted) isEvent() {}

var errEmptyBatch = errors.New("suggestion round returned an empty batch")

// Transition is the pure step function of the machine
func Transition(s State, e Event) State {
	switch st := s.(type) {
	case Loading:
		switch ev := e.(type) {
		case Loaded:
			if len(ev.Batch) == 0 {
				return Failed{Err: errEmptyBatch}
			}
			return Presenting{Batch: ev.Batch, Cursor: 0}
		case LoadFailed:
			if ev.Recoverable {
				return AwaitingRetry{Err: ev.Err}
			}
			return Failed{Err: ev.Err}
		case Interrupted, Cancel:
			return Cancelled{}
		}

	case Presenting:
		switch ev := e.(type) {
		case Move:
			n := len(st.Batch)
			if n <= 1 {
				return st
			}
			st.Cursor = ((st.Cursor+ev.Delta)%n + n) % n
			return st
		case Confirm:
			return Committed{Message: st.Selected().String()}
		case Regenerate:
			return Loading{}
		case Cancel:
			return Cancelled{}
		}

	case AwaitingRetry:
		switch e.(type) {
		case Regenerate:
			return Loading{}
		case Cancel:
			return Failed{Err: st.Err}
		}
	}
	return s
}
