// Package dispatch turns raw client interaction requests into a single
// validated script launch. Every request is checked against the
// requester's action lock, the interaction view distance, and the actual
// contents of the world before any attribute is written or any script
// runs. Requests that fail validation produce no visible effect; an
// invalid request is either routine contention or a client that cannot
// be trusted, and neither deserves an error dialog.
package dispatch

import (
	"log/slog"

	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/script"
)

// DefaultViewDistance is the interaction range check radius, in tiles.
const DefaultViewDistance = 15

// ObjectRequest is a client's "use object" interaction.
type ObjectRequest struct {
	Kind   string
	Tile   game.Tile
	Option int

	// FastMove requests the privileged fast-path that repositions the
	// player next to the target before the script runs. Ignored without
	// authorization.
	FastMove bool
}

// NpcRequest is a client's "interact with NPC" request, addressing the
// NPC by its world instance index.
type NpcRequest struct {
	Index  int
	Option int
}

// ObjectHandler reacts to an interaction with an object kind.
type ObjectHandler func(ctx *script.Context, p *game.Player, obj *game.Object) error

// NpcHandler reacts to an interaction with an NPC kind.
type NpcHandler func(ctx *script.Context, p *game.Player, npc *game.Npc) error

// CommandHandler reacts to a privileged :: command.
type CommandHandler func(ctx *script.Context, p *game.Player, args []string) error

// Dispatcher validates interaction requests and routes them to the
// registered reaction script, or to the generic fallback when none is
// registered. Exactly one script launches per successful dispatch.
type Dispatcher struct {
	world  *game.WorldState
	runner *script.Runner

	viewDistance int

	objectHandlers map[string]ObjectHandler
	npcHandlers    map[string]NpcHandler
	commands       map[string]CommandHandler

	objectFallback ObjectHandler
	npcFallback    NpcHandler
}

type DispatcherOpt func(*Dispatcher)

func WithViewDistance(d int) DispatcherOpt {
	return func(disp *Dispatcher) {
		disp.viewDistance = d
	}
}

func NewDispatcher(world *game.WorldState, runner *script.Runner, opts ...DispatcherOpt) *Dispatcher {
	d := &Dispatcher{
		world:          world,
		runner:         runner,
		viewDistance:   DefaultViewDistance,
		objectHandlers: make(map[string]ObjectHandler),
		npcHandlers:    make(map[string]NpcHandler),
		commands:       make(map[string]CommandHandler),
		objectFallback: walkToObject,
		npcFallback:    walkToNpc,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// OnObject registers the reaction script for an object kind.
func (d *Dispatcher) OnObject(kind string, h ObjectHandler) {
	d.objectHandlers[kind] = h
}

// OnNpc registers the reaction script for an NPC kind.
func (d *Dispatcher) OnNpc(kind string, h NpcHandler) {
	d.npcHandlers[kind] = h
}

// OnCommand registers a privileged command script.
func (d *Dispatcher) OnCommand(name string, h CommandHandler) {
	d.commands[name] = h
}

// HandleObject validates and dispatches an object interaction.
func (d *Dispatcher) HandleObject(p *game.Player, req ObjectRequest) {
	if !p.CanAct() {
		// Expected under normal contention; not worth a log line.
		return
	}

	if !p.Tile().WithinDistance(req.Tile, d.viewDistance) {
		slog.Warn("dropping out-of-range object request",
			"player", p.Name(), "kind", req.Kind, "at", req.Tile, "from", p.Tile())
		return
	}

	obj := d.world.ObjectAt(req.Tile, req.Kind)
	if obj == nil {
		slog.Warn("dropping request for absent object",
			"player", p.Name(), "kind", req.Kind, "at", req.Tile)
		return
	}

	if req.FastMove && game.IsAuthorized(p, game.CapFastMove) {
		p.MoveTo(adjacentTo(p.Tile(), req.Tile))
	}

	d.runner.Interrupt(p.Id())

	attrs := p.Attributes()
	game.PutAttr(attrs, game.KeyInteractingObject, game.NewRef(obj))
	game.PutAttr(attrs, game.KeyInteractingOption, req.Option)

	h, ok := d.objectHandlers[req.Kind]
	if !ok {
		h = d.objectFallback
	}

	d.runner.Start(p.Id(), func(ctx *script.Context) error {
		return h(ctx, p, obj)
	})
}

// HandleNpc validates and dispatches an NPC interaction.
func (d *Dispatcher) HandleNpc(p *game.Player, req NpcRequest) {
	if !p.CanAct() {
		return
	}

	npc := d.world.Npc(req.Index)
	if npc == nil || npc.Removed() {
		slog.Warn("dropping request for absent npc",
			"player", p.Name(), "index", req.Index)
		return
	}

	if !p.Tile().WithinDistance(npc.Tile(), d.viewDistance) {
		slog.Warn("dropping out-of-range npc request",
			"player", p.Name(), "npc", npc.Kind, "at", npc.Tile(), "from", p.Tile())
		return
	}

	d.runner.Interrupt(p.Id())

	attrs := p.Attributes()
	game.PutAttr(attrs, game.KeyInteractingNpc, game.NewRef(npc))
	game.PutAttr(attrs, game.KeyInteractingOption, req.Option)

	h, ok := d.npcHandlers[npc.Kind]
	if !ok {
		h = d.npcFallback
	}

	d.runner.Start(p.Id(), func(ctx *script.Context) error {
		return h(ctx, p, npc)
	})
}

// HandleCommand dispatches a privileged command. Unauthorized or unknown
// commands are dropped.
func (d *Dispatcher) HandleCommand(p *game.Player, name string, args []string) {
	if !p.CanAct() {
		return
	}

	if !game.IsAuthorized(p, game.CapCommands) {
		slog.Warn("dropping unauthorized command", "player", p.Name(), "command", name)
		return
	}

	h, ok := d.commands[name]
	if !ok {
		slog.Info("unknown command", "player", p.Name(), "command", name)
		return
	}

	d.runner.Interrupt(p.Id())

	game.PutAttr(p.Attributes(), game.KeyCommandArgs, args)

	d.runner.Start(p.Id(), func(ctx *script.Context) error {
		return h(ctx, p, args)
	})
}

// adjacentTo returns the tile next to target on the side facing from.
func adjacentTo(from, target game.Tile) game.Tile {
	if from == target {
		return from
	}
	return target.StepToward(from)
}

// walkToObject is the generic reaction when no script is registered for
// an object kind: step toward the target.
func walkToObject(ctx *script.Context, p *game.Player, obj *game.Object) error {
	p.MoveTo(p.Tile().StepToward(obj.Tile()))
	return nil
}

// walkToNpc is the generic reaction when no script is registered for an
// NPC kind.
func walkToNpc(ctx *script.Context, p *game.Player, npc *game.Npc) error {
	p.MoveTo(p.Tile().StepToward(npc.Tile()))
	return nil
}
