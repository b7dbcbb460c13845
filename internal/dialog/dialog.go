// Package dialog provides the standard interaction prompts scripts use:
// option menus, numeric entry, message boxes, NPC chat, item showcases
// and level-up announcements. Every helper follows one pattern: render
// the component's content, open it as the player's primary modal,
// register closing it as the interrupt action, then suspend awaiting the
// client's reply. On a natural resume the helper runs the same close
// action itself before returning, so the dialog is closed exactly once
// whether the player answered or walked away.
package dialog

import (
	"fmt"

	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/script"
	"github.com/pixil98/go-rpg/internal/ui"
)

// Animation ids for NPC chathead expressions.
const (
	ExpressionCalm    = 9760
	ExpressionAngry   = 9785
	ExpressionLaugh   = 9840
	ExpressionDefault = ExpressionCalm
)

// Definitions resolves display names for dialog headers.
type Definitions interface {
	NpcName(kind string) string
	SkillName(id string) string
}

// Dialogs builds and runs the dialog surfaces. It holds no per-player
// state; everything it opens is recorded in the player's own tracker.
type Dialogs struct {
	render Renderer
	defs   Definitions
}

func NewDialogs(render Renderer, defs Definitions) *Dialogs {
	return &Dialogs{
		render: render,
		defs:   defs,
	}
}

// Options shows a menu of 2 to 5 choices and returns the 1-based choice
// the player picked. A reply outside the valid range resolves to -1.
func (d *Dialogs) Options(ctx *script.Context, p *game.Player, title string, options ...string) (int, error) {
	if len(options) < 2 || len(options) > maxOptions {
		return -1, fmt.Errorf("options prompt needs 2-%d choices, got %d", maxOptions, len(options))
	}

	component := componentOptionsBase + len(options)
	d.render.SetText(p, component, 0, expandText(title, p))
	for i, opt := range options {
		d.render.SetText(p, component, i+1, expandText(opt, p))
	}

	v, err := d.prompt(ctx, p, component)
	if err != nil {
		return -1, err
	}

	choice := v.Int()
	if choice < 1 || choice > len(options) {
		return -1, nil
	}
	return choice, nil
}

// InputNumber shows a free-text numeric entry prompt and returns the
// entered number, or -1 for a non-numeric reply.
func (d *Dialogs) InputNumber(ctx *script.Context, p *game.Player, prompt string) (int, error) {
	d.render.SetText(p, ComponentInput, 0, expandText(prompt, p))
	d.render.RunScript(p, "numeric-entry", prompt)

	v, err := d.prompt(ctx, p, ComponentInput)
	if err != nil {
		return -1, err
	}
	return v.Int(), nil
}

// Message shows a plain message box and waits for the player to
// acknowledge it.
func (d *Dialogs) Message(ctx *script.Context, p *game.Player, lines ...string) error {
	for i, line := range lines {
		d.render.SetText(p, ComponentMessage, i, expandText(line, p))
	}

	_, err := d.prompt(ctx, p, ComponentMessage)
	return err
}

// NpcChat shows an NPC-headed chat dialog and waits for the player to
// click through it.
func (d *Dialogs) NpcChat(ctx *script.Context, p *game.Player, npcKind string, expression int, lines ...string) error {
	d.render.SetNpcHead(p, ComponentNpcChat, 0, npcKind)
	d.render.Animate(p, ComponentNpcChat, 0, expression)
	d.render.SetText(p, ComponentNpcChat, 1, displayName(d.defs.NpcName(npcKind)))
	for i, line := range lines {
		d.render.SetText(p, ComponentNpcChat, i+2, expandText(line, p))
	}

	_, err := d.prompt(ctx, p, ComponentNpcChat)
	return err
}

// PlayerChat shows the player's own chathead speaking.
func (d *Dialogs) PlayerChat(ctx *script.Context, p *game.Player, expression int, lines ...string) error {
	d.render.SetPlayerHead(p, ComponentNpcChat, 0)
	d.render.Animate(p, ComponentNpcChat, 0, expression)
	d.render.SetText(p, ComponentNpcChat, 1, displayName(p.Name()))
	for i, line := range lines {
		d.render.SetText(p, ComponentNpcChat, i+2, expandText(line, p))
	}

	_, err := d.prompt(ctx, p, ComponentNpcChat)
	return err
}

// ItemBox shows a single item with accompanying text.
func (d *Dialogs) ItemBox(ctx *script.Context, p *game.Player, item string, zoom int, text string) error {
	d.render.SetItem(p, ComponentItem, 0, item, zoom)
	d.render.SetText(p, ComponentItem, 1, expandText(text, p))

	_, err := d.prompt(ctx, p, ComponentItem)
	return err
}

// DoubleItemBox shows two items side by side with accompanying text.
func (d *Dialogs) DoubleItemBox(ctx *script.Context, p *game.Player, left, right string, zoom int, text string) error {
	d.render.SetItem(p, ComponentDoubleItem, 0, left, zoom)
	d.render.SetItem(p, ComponentDoubleItem, 1, right, zoom)
	d.render.SetText(p, ComponentDoubleItem, 2, expandText(text, p))

	_, err := d.prompt(ctx, p, ComponentDoubleItem)
	return err
}

// LevelUp announces a skill level advancement.
func (d *Dialogs) LevelUp(ctx *script.Context, p *game.Player, skill string, level int) error {
	name := displayName(d.defs.SkillName(skill))
	d.render.SetText(p, ComponentLevelUp, 0,
		fmt.Sprintf("Congratulations, you just advanced a %s level.", name))
	d.render.SetText(p, ComponentLevelUp, 1,
		fmt.Sprintf("Your %s level is now %d.", name, level))
	d.render.RunScript(p, "levelup-fireworks", skill)

	_, err := d.prompt(ctx, p, ComponentLevelUp)
	return err
}

// prompt opens component as the primary modal, arranges for it to be
// closed if the task is interrupted, and suspends until the client
// replies. On a natural resume it closes the dialog through the same
// one-shot action before handing the reply back.
func (d *Dialogs) prompt(ctx *script.Context, p *game.Player, component int) (script.Value, error) {
	p.UI.OpenPrimary(ui.RegionRoot, ui.RegionChatbox, component)
	d.render.OpenFrame(p, component)

	ctx.OnInterrupt(func() {
		p.UI.ClosePrimary()
	})

	v, err := ctx.Suspend()
	if err != nil {
		return script.Value{}, err
	}

	ctx.RunInterruptAction()
	return v, nil
}
