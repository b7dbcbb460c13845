package game

import (
	"fmt"
	"sync"
)

// Attributes is a per-pawn scratch space used to pass interaction
// parameters from dispatch into the reacting script. Dispatch writes it
// from connection goroutines while scripts read it on the simulation
// tick, so access is mutex-guarded.
//
// Keys are write-over: a put replaces any previous value. Values are not
// expired; dispatch re-writes the interaction keys immediately before
// launching a script and scripts must not assume a key survives past
// their own invocation.
type Attributes struct {
	mu sync.RWMutex
	m  map[string]any
}

// AttrKey is a typed attribute key. The type parameter pins the value
// type so readers cannot observe a value under the wrong type.
type AttrKey[T any] struct {
	name string
}

func NewAttrKey[T any](name string) AttrKey[T] {
	return AttrKey[T]{name: name}
}

func (k AttrKey[T]) String() string {
	return k.name
}

// The interaction keys written by the dispatcher. The slot and item
// keys are the reserved surface for the inventory collaborator, which
// validates and dispatches item interactions itself; nothing in the
// interaction core writes them.
var (
	KeyInteractingSlot   = NewAttrKey[int]("interacting-slot")
	KeyInteractingItem   = NewAttrKey[ItemRef]("interacting-item")
	KeyInteractingObject = NewAttrKey[Ref[*Object]]("interacting-object")
	KeyInteractingNpc    = NewAttrKey[Ref[*Npc]]("interacting-npc")
	KeyInteractingOption = NewAttrKey[int]("interacting-option")
	KeyCommandArgs       = NewAttrKey[[]string]("command-arguments")
)

// ItemRef identifies an inventory item involved in an interaction. The
// owner is held weakly; the item is re-validated against the slot when
// the script finally uses it.
type ItemRef struct {
	Owner Ref[*Player]
	Kind  string
	Slot  int
}

// PutAttr stores v under k, replacing any previous value.
func PutAttr[T any](a *Attributes, k AttrKey[T], v T) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.m == nil {
		a.m = make(map[string]any)
	}
	a.m[k.name] = v
}

// GetAttr returns the value stored under k. A missing key returns
// ErrMissingAttribute; a value of the wrong dynamic type is also
// reported as missing since no caller could have put it through k.
func GetAttr[T any](a *Attributes, k AttrKey[T]) (T, error) {
	var zero T
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.m == nil {
		return zero, fmt.Errorf("%q: %w", k.name, ErrMissingAttribute)
	}
	v, ok := a.m[k.name]
	if !ok {
		return zero, fmt.Errorf("%q: %w", k.name, ErrMissingAttribute)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%q: %w", k.name, ErrMissingAttribute)
	}
	return t, nil
}

// DeleteAttr removes k, if present.
func DeleteAttr[T any](a *Attributes, k AttrKey[T]) {
	a.mu.Lock()
	defer a.mu.Unlock()

	delete(a.m, k.name)
}
