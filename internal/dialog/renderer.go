package dialog

import "github.com/pixil98/go-rpg/internal/game"

// Component ids for the dialog surfaces this package drives. The client
// resolves these to actual interface layouts; the server only needs
// stable identifiers.
const (
	ComponentMessage    = 210
	ComponentNpcChat    = 211
	ComponentInput      = 212
	ComponentItem       = 213
	ComponentDoubleItem = 214
	ComponentLevelUp    = 215

	// Options components are addressed by choice count: 2 choices uses
	// componentOptionsBase+2, and so on.
	componentOptionsBase = 220

	maxOptions = 5
)

// Renderer issues drawing commands to a player's client. Every call is
// fire-and-forget: the client sends no confirmation and the server never
// waits on one.
type Renderer interface {
	// SetText sets the text of one line slot of a component.
	SetText(p *game.Player, component, slot int, text string)

	// SetItem draws an item model in a component slot.
	SetItem(p *game.Player, component, slot int, item string, zoom int)

	// SetNpcHead draws an NPC chathead in a component slot.
	SetNpcHead(p *game.Player, component, slot int, npc string)

	// SetPlayerHead draws the player's own chathead in a component slot.
	SetPlayerHead(p *game.Player, component, slot int)

	// Animate plays an animation on a component slot (chathead
	// expressions).
	Animate(p *game.Player, component, slot, animation int)

	// OpenFrame tells the client to display a component.
	OpenFrame(p *game.Player, component int)

	// CloseFrame tells the client to remove the open modal frame.
	CloseFrame(p *game.Player)

	// RunScript invokes a named client-side display routine.
	RunScript(p *game.Player, name string, args ...any)

	// Message appends a line to the player's chat log.
	Message(p *game.Player, text string)
}
