package game

import (
	"errors"
	"sync"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestAttributes_PutGet(t *testing.T) {
	var attrs Attributes

	PutAttr(&attrs, KeyInteractingOption, 2)
	PutAttr(&attrs, KeyCommandArgs, []string{"3200", "3200"})

	opt, err := GetAttr(&attrs, KeyInteractingOption)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "option", opt, 2)

	args, err := GetAttr(&attrs, KeyCommandArgs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "args length", len(args), 2)
}

func TestAttributes_PutReplaces(t *testing.T) {
	var attrs Attributes

	PutAttr(&attrs, KeyInteractingOption, 1)
	PutAttr(&attrs, KeyInteractingOption, 3)

	opt, err := GetAttr(&attrs, KeyInteractingOption)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "option", opt, 3)
}

func TestAttributes_Missing(t *testing.T) {
	var attrs Attributes

	_, err := GetAttr(&attrs, KeyInteractingOption)
	if !errors.Is(err, ErrMissingAttribute) {
		t.Fatalf("error = %v, expected ErrMissingAttribute", err)
	}

	// The message names the key that was asked for.
	if got := err.Error(); got == ErrMissingAttribute.Error() {
		t.Errorf("error %q does not name the key", got)
	}
}

func TestAttributes_WrongTypeReportedMissing(t *testing.T) {
	var attrs Attributes

	// Two keys with the same name but different types.
	intKey := NewAttrKey[int]("clash")
	strKey := NewAttrKey[string]("clash")

	PutAttr(&attrs, intKey, 7)

	_, err := GetAttr(&attrs, strKey)
	if !errors.Is(err, ErrMissingAttribute) {
		t.Fatalf("error = %v, expected ErrMissingAttribute", err)
	}
}

func TestAttributes_Delete(t *testing.T) {
	var attrs Attributes

	PutAttr(&attrs, KeyInteractingOption, 2)
	DeleteAttr(&attrs, KeyInteractingOption)

	_, err := GetAttr(&attrs, KeyInteractingOption)
	if !errors.Is(err, ErrMissingAttribute) {
		t.Fatalf("error = %v, expected ErrMissingAttribute", err)
	}
}

func TestRef(t *testing.T) {
	p := NewPlayer("alice", Tile{X: 100, Y: 100})
	ref := NewRef(p)

	got, err := ref.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != p {
		t.Fatal("ref resolved to a different player")
	}
	testutil.AssertEqual(t, "alive", ref.Alive(), true)

	p.markRemoved()

	_, err = ref.Get()
	if !errors.Is(err, ErrEntityGone) {
		t.Fatalf("error = %v, expected ErrEntityGone", err)
	}
	testutil.AssertEqual(t, "alive", ref.Alive(), false)
}

func TestRef_Unset(t *testing.T) {
	var ref Ref[*Player]

	_, err := ref.Get()
	if !errors.Is(err, ErrEntityGone) {
		t.Fatalf("error = %v, expected ErrEntityGone", err)
	}
}

func TestAttributes_ItemRef(t *testing.T) {
	p := NewPlayer("alice", Tile{X: 100, Y: 100})

	var attrs Attributes
	PutAttr(&attrs, KeyInteractingSlot, 3)
	PutAttr(&attrs, KeyInteractingItem, ItemRef{
		Owner: NewRef(p),
		Kind:  "hatchet",
		Slot:  3,
	})

	slot, err := GetAttr(&attrs, KeyInteractingSlot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "slot", slot, 3)

	item, err := GetAttr(&attrs, KeyInteractingItem)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "kind", item.Kind, "hatchet")

	owner, err := item.Owner.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != p {
		t.Fatal("item owner resolved to a different player")
	}
}

func TestRefThroughAttributes(t *testing.T) {
	npc := &Npc{Index: 0, Kind: "guide"}
	npc.initPawn("guide", Tile{X: 100, Y: 100})

	var attrs Attributes
	PutAttr(&attrs, KeyInteractingNpc, NewRef(npc))

	ref, err := GetAttr(&attrs, KeyInteractingNpc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The entity disappears while the script holding the ref is parked.
	npc.markRemoved()

	_, err = ref.Get()
	if !errors.Is(err, ErrEntityGone) {
		t.Fatalf("error = %v, expected ErrEntityGone", err)
	}
}

// Dispatch writes the interaction keys from a connection goroutine
// while an interrupted script may still read them on the tick. Run with
// the race detector.
func TestAttributes_ConcurrentPutGet(t *testing.T) {
	var attrs Attributes

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			PutAttr(&attrs, KeyInteractingOption, i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, _ = GetAttr(&attrs, KeyInteractingOption)
		}
	}()
	wg.Wait()

	opt, err := GetAttr(&attrs, KeyInteractingOption)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "option", opt, 199)
}
