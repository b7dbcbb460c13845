package dialog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/script"
	"github.com/pixil98/go-rpg/internal/ui"
	"github.com/pixil98/go-testutil"
)

// mockRenderer records draw calls as readable strings.
type mockRenderer struct {
	calls []string
}

func (m *mockRenderer) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockRenderer) SetText(p *game.Player, component, slot int, text string) {
	m.record("text %d/%d %q", component, slot, text)
}

func (m *mockRenderer) SetItem(p *game.Player, component, slot int, item string, zoom int) {
	m.record("item %d/%d %s", component, slot, item)
}

func (m *mockRenderer) SetNpcHead(p *game.Player, component, slot int, npc string) {
	m.record("npchead %d/%d %s", component, slot, npc)
}

func (m *mockRenderer) SetPlayerHead(p *game.Player, component, slot int) {
	m.record("playerhead %d/%d", component, slot)
}

func (m *mockRenderer) Animate(p *game.Player, component, slot, animation int) {
	m.record("animate %d/%d %d", component, slot, animation)
}

func (m *mockRenderer) OpenFrame(p *game.Player, component int) {
	m.record("open %d", component)
}

func (m *mockRenderer) CloseFrame(p *game.Player) {
	m.record("close")
}

func (m *mockRenderer) RunScript(p *game.Player, name string, args ...any) {
	m.record("script %s", name)
}

func (m *mockRenderer) Message(p *game.Player, text string) {
	m.record("message %q", text)
}

func (m *mockRenderer) closeCount() int {
	n := 0
	for _, c := range m.calls {
		if c == "close" {
			n++
		}
	}
	return n
}

// mockDefs resolves display names without a loaded dictionary.
type mockDefs struct{}

func (mockDefs) NpcName(kind string) string { return kind }
func (mockDefs) SkillName(id string) string { return id }

func newTestPlayer(render Renderer) *game.Player {
	p := game.NewPlayer("alice", game.Tile{X: 100, Y: 100})
	p.UI = ui.NewTracker(func(component int) {
		render.CloseFrame(p)
	})
	return p
}

func TestDialogs_Options(t *testing.T) {
	tests := map[string]struct {
		reply     script.Value
		expChoice int
	}{
		"first choice":     {reply: script.IntValue(1), expChoice: 1},
		"last choice":      {reply: script.IntValue(3), expChoice: 3},
		"zero out of range": {reply: script.IntValue(0), expChoice: -1},
		"above range":      {reply: script.IntValue(4), expChoice: -1},
		"non-numeric":      {reply: script.StringValue("yes"), expChoice: -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			render := &mockRenderer{}
			d := NewDialogs(render, mockDefs{})
			p := newTestPlayer(render)
			r := script.NewRunner()

			choice := 0
			r.Start(p.Id(), func(ctx *script.Context) error {
				c, err := d.Options(ctx, p, "Pick one.", "Red", "Green", "Blue")
				if err != nil {
					return err
				}
				choice = c
				return nil
			})

			r.Deliver(p.Id(), tt.reply)
			if err := r.Tick(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "choice", choice, tt.expChoice)
			testutil.AssertEqual(t, "dialog closed once", render.closeCount(), 1)
			_, open := p.UI.Primary()
			testutil.AssertEqual(t, "primary open", open, false)
		})
	}
}

func TestDialogs_Options_BadChoiceCount(t *testing.T) {
	render := &mockRenderer{}
	d := NewDialogs(render, mockDefs{})
	p := newTestPlayer(render)
	r := script.NewRunner()

	var err error
	r.Start(p.Id(), func(ctx *script.Context) error {
		_, err = d.Options(ctx, p, "Pick one.", "only")
		return nil
	})

	if err == nil {
		t.Fatal("expected error for single choice")
	}
	testutil.AssertEqual(t, "nothing drawn", len(render.calls), 0)
}

func TestDialogs_Options_Interrupted(t *testing.T) {
	render := &mockRenderer{}
	d := NewDialogs(render, mockDefs{})
	p := newTestPlayer(render)
	r := script.NewRunner()

	reached := false
	r.Start(p.Id(), func(ctx *script.Context) error {
		_, err := d.Options(ctx, p, "Pick one.", "Red", "Green")
		if err != nil {
			return err
		}
		reached = true
		return nil
	})

	// The player walks away mid-prompt.
	r.Interrupt(p.Id())

	testutil.AssertEqual(t, "dialog closed once", render.closeCount(), 1)
	testutil.AssertEqual(t, "script continued", reached, false)
	_, open := p.UI.Primary()
	testutil.AssertEqual(t, "primary open", open, false)

	// A late answer for the dead prompt is dropped.
	r.Deliver(p.Id(), script.IntValue(1))
	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "still closed once", render.closeCount(), 1)
}

func TestDialogs_InputNumber(t *testing.T) {
	tests := map[string]struct {
		reply  script.Value
		expNum int
	}{
		"number":      {reply: script.IntValue(28), expNum: 28},
		"non-numeric": {reply: script.StringValue("lots"), expNum: -1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			render := &mockRenderer{}
			d := NewDialogs(render, mockDefs{})
			p := newTestPlayer(render)
			r := script.NewRunner()

			got := 0
			r.Start(p.Id(), func(ctx *script.Context) error {
				n, err := d.InputNumber(ctx, p, "How many?")
				if err != nil {
					return err
				}
				got = n
				return nil
			})

			r.Deliver(p.Id(), tt.reply)
			if err := r.Tick(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "number", got, tt.expNum)
			testutil.AssertEqual(t, "dialog closed once", render.closeCount(), 1)
		})
	}
}

func TestDialogs_SequentialPrompts(t *testing.T) {
	render := &mockRenderer{}
	d := NewDialogs(render, mockDefs{})
	p := newTestPlayer(render)
	r := script.NewRunner()

	done := false
	r.Start(p.Id(), func(ctx *script.Context) error {
		if err := d.NpcChat(ctx, p, "guide", ExpressionCalm, "Hello."); err != nil {
			return err
		}
		c, err := d.Options(ctx, p, "Well?", "Yes", "No")
		if err != nil {
			return err
		}
		if c != 1 {
			return errors.New("expected first choice")
		}
		done = true
		return nil
	})

	// Click through the chat.
	r.Deliver(p.Id(), script.IntValue(0))
	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "chat closed", render.closeCount(), 1)

	// Answer the menu.
	r.Deliver(p.Id(), script.IntValue(1))
	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "script finished", done, true)
	testutil.AssertEqual(t, "each dialog closed once", render.closeCount(), 2)
}

func TestDialogs_NpcChat_DrawsHead(t *testing.T) {
	render := &mockRenderer{}
	d := NewDialogs(render, mockDefs{})
	p := newTestPlayer(render)
	r := script.NewRunner()

	r.Start(p.Id(), func(ctx *script.Context) error {
		return d.NpcChat(ctx, p, "guide", ExpressionLaugh, "Ha!")
	})

	want := []string{
		fmt.Sprintf("npchead %d/0 guide", ComponentNpcChat),
		fmt.Sprintf("animate %d/0 %d", ComponentNpcChat, ExpressionLaugh),
	}
	for i, w := range want {
		testutil.AssertEqual(t, "call", render.calls[i], w)
	}

	r.Interrupt(p.Id())
}

func TestDialogs_LevelUp(t *testing.T) {
	render := &mockRenderer{}
	d := NewDialogs(render, mockDefs{})
	p := newTestPlayer(render)
	r := script.NewRunner()

	r.Start(p.Id(), func(ctx *script.Context) error {
		return d.LevelUp(ctx, p, "woodcutting", 50)
	})

	want := fmt.Sprintf("text %d/0 %q", ComponentLevelUp,
		"Congratulations, you just advanced a Woodcutting level.")
	testutil.AssertEqual(t, "headline", render.calls[0], want)

	r.Deliver(p.Id(), script.IntValue(0))
	if err := r.Tick(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "dialog closed once", render.closeCount(), 1)
}
