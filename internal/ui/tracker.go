// Package ui tracks which client interface components a player currently
// has open. It owns the single-primary-modal invariant; it does not talk
// to the client itself. Sending the render command that actually draws a
// component is the caller's job, while close notifications fire through
// the tracker so closes triggered by supersession are never missed.
package ui

import "errors"

var (
	// ErrSlotEmpty is returned by Close when the slot holds nothing.
	// Closes race with client-originated close signals, so this is
	// expected and non-fatal.
	ErrSlotEmpty = errors.New("interface slot is empty")

	// ErrNotVisible is returned by CloseComponent when the component is
	// not open anywhere.
	ErrNotVisible = errors.New("component is not visible")
)

// Slot addresses a display region as a (parent, child) pair.
type Slot struct {
	Parent int
	Child  int
}

// Common display regions.
const (
	RegionRoot    = 0
	RegionChatbox = 1
	RegionOverlay = 2
)

// CloseFunc is invoked with the component id whenever a visible
// component is removed, whatever triggered the removal.
type CloseFunc func(component int)

// Tracker records the visible components for one player. It is owned by
// that player's dispatch/script/interrupt flow and is not safe for
// concurrent use.
type Tracker struct {
	visible map[Slot]int
	primary *Slot
	onClose CloseFunc
}

func NewTracker(onClose CloseFunc) *Tracker {
	return &Tracker{
		visible: make(map[Slot]int),
		onClose: onClose,
	}
}

// Open records component as the occupant of (parent, child). If the slot
// is already occupied, the occupant is closed first and its close
// notification runs before the new occupant is recorded.
func (t *Tracker) Open(parent, child, component int) {
	slot := Slot{Parent: parent, Child: child}
	if _, occupied := t.visible[slot]; occupied {
		// Ignoring the error: occupied was just checked.
		_, _ = t.Close(parent, child)
	}
	t.visible[slot] = component
}

// OpenPrimary opens component as the player's single primary modal. Any
// other primary component is closed first.
func (t *Tracker) OpenPrimary(parent, child, component int) {
	slot := Slot{Parent: parent, Child: child}
	if t.primary != nil && *t.primary != slot {
		_, _ = t.Close(t.primary.Parent, t.primary.Child)
	}
	t.Open(parent, child, component)
	t.primary = &slot
}

// Close removes the occupant of (parent, child), runs the close
// notification with its id, and returns it. An empty slot returns
// ErrSlotEmpty with no side effects.
func (t *Tracker) Close(parent, child int) (int, error) {
	slot := Slot{Parent: parent, Child: child}
	component, occupied := t.visible[slot]
	if !occupied {
		return 0, ErrSlotEmpty
	}

	delete(t.visible, slot)
	if t.primary != nil && *t.primary == slot {
		t.primary = nil
	}
	if t.onClose != nil {
		t.onClose(component)
	}
	return component, nil
}

// CloseComponent closes whichever slot currently holds component and
// returns it. Returns ErrNotVisible if the component is not open.
func (t *Tracker) CloseComponent(component int) (Slot, error) {
	for slot, c := range t.visible {
		if c == component {
			_, _ = t.Close(slot.Parent, slot.Child)
			return slot, nil
		}
	}
	return Slot{}, ErrNotVisible
}

// ClosePrimary closes the primary modal if one is open. A no-op
// otherwise.
func (t *Tracker) ClosePrimary() {
	if t.primary == nil {
		return
	}
	_, _ = t.Close(t.primary.Parent, t.primary.Child)
}

// IsOccupied reports whether (parent, child) holds any component.
func (t *Tracker) IsOccupied(parent, child int) bool {
	_, ok := t.visible[Slot{Parent: parent, Child: child}]
	return ok
}

// IsVisible reports whether component is open in any slot.
func (t *Tracker) IsVisible(component int) bool {
	for _, c := range t.visible {
		if c == component {
			return true
		}
	}
	return false
}

// Primary returns the slot of the open primary modal, if any.
func (t *Tracker) Primary() (Slot, bool) {
	if t.primary == nil {
		return Slot{}, false
	}
	return *t.primary, true
}
