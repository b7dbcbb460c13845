// Package scripts contains the built-in interaction content: the
// reaction scripts registered for the stock NPC and object kinds, and
// the privileged chat commands. Content here is deliberately small;
// it exists to give a fresh world something to interact with and to
// serve as the reference for writing new content.
package scripts

import (
	"fmt"
	"strconv"

	"github.com/pixil98/go-rpg/internal/dialog"
	"github.com/pixil98/go-rpg/internal/dispatch"
	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/script"
)

type Content struct {
	world   *game.WorldState
	dialogs *dialog.Dialogs
	dict    *game.Dictionary
}

func NewContent(world *game.WorldState, dialogs *dialog.Dialogs, dict *game.Dictionary) *Content {
	return &Content{
		world:   world,
		dialogs: dialogs,
		dict:    dict,
	}
}

// Register wires the built-in content into the dispatcher.
func (c *Content) Register(d *dispatch.Dispatcher) {
	d.OnNpc("guide", c.guide)
	d.OnObject("ladder", c.ladder)
	d.OnObject("signpost", c.signpost)

	d.OnCommand("tele", c.teleport)
	d.OnCommand("spawn", c.spawnNpc)
}

// guide is the tutorial NPC conversation.
func (c *Content) guide(ctx *script.Context, p *game.Player, npc *game.Npc) error {
	err := c.dialogs.NpcChat(ctx, p, npc.Kind, dialog.ExpressionCalm,
		"Greetings, {{.Player}}. Welcome to the realm.",
		"Is there anything you'd like to know?")
	if err != nil {
		return err
	}

	for {
		choice, err := c.dialogs.Options(ctx, p, "What would you like to know?",
			"Where am I?",
			"What should I do here?",
			"Nothing, thanks.")
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = c.dialogs.NpcChat(ctx, p, npc.Kind, dialog.ExpressionCalm,
				"You're standing in the town square.",
				"The ladder to the north leads down to the cellar.")
		case 2:
			err = c.dialogs.NpcChat(ctx, p, npc.Kind, dialog.ExpressionLaugh,
				"Explore! Talk to people, climb things, poke around.",
				"You'll figure it out.")
		default:
			return c.dialogs.NpcChat(ctx, p, npc.Kind, dialog.ExpressionCalm,
				"Safe travels, {{.Player}}.")
		}
		if err != nil {
			return err
		}
	}
}

// ladder moves the player between planes.
func (c *Content) ladder(ctx *script.Context, p *game.Player, obj *game.Object) error {
	choice, err := c.dialogs.Options(ctx, p, "The ladder leads both ways.",
		"Climb up",
		"Climb down")
	if err != nil {
		return err
	}

	t := p.Tile()
	switch choice {
	case 1:
		t.Plane++
	case 2:
		if t.Plane == 0 {
			return c.dialogs.Message(ctx, p, "The ladder doesn't go any further down.")
		}
		t.Plane--
	default:
		return nil
	}

	// The target may have vanished while the player was deciding.
	if obj.Removed() {
		return nil
	}

	p.MoveTo(t)
	return nil
}

// signpost reads back the examine text of whatever it points at.
func (c *Content) signpost(ctx *script.Context, p *game.Player, obj *game.Object) error {
	text := "The sign is too weathered to read."
	if obj.Def != nil && obj.Def.Examine != "" {
		text = obj.Def.Examine
	}
	return c.dialogs.Message(ctx, p, text)
}

// teleport is the ::tele <x> <y> [plane] admin command.
func (c *Content) teleport(ctx *script.Context, p *game.Player, args []string) error {
	if len(args) < 2 {
		return c.dialogs.Message(ctx, p, "Usage: ::tele <x> <y> [plane]")
	}

	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	if errX != nil || errY != nil {
		return c.dialogs.Message(ctx, p, "Coordinates must be numbers.")
	}

	t := game.Tile{X: x, Y: y, Plane: p.Tile().Plane}
	if len(args) > 2 {
		plane, err := strconv.Atoi(args[2])
		if err != nil {
			return c.dialogs.Message(ctx, p, "Plane must be a number.")
		}
		t.Plane = plane
	}

	p.MoveTo(t)
	return nil
}

// spawnNpc is the ::spawn <kind> admin command. The NPC appears on the
// player's tile.
func (c *Content) spawnNpc(ctx *script.Context, p *game.Player, args []string) error {
	if len(args) != 1 {
		return c.dialogs.Message(ctx, p, "Usage: ::spawn <kind>")
	}

	kind := args[0]
	def := c.dict.Npcs.Get(kind)
	if def == nil {
		return c.dialogs.Message(ctx, p, fmt.Sprintf("No such npc kind: %s", kind))
	}

	npc := c.world.SpawnNpc(kind, def, p.Tile())
	return c.dialogs.Message(ctx, p,
		fmt.Sprintf("Spawned %s as npc %d.", c.dict.NpcName(kind), npc.Index))
}
