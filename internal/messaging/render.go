package messaging

import (
	"encoding/json"
	"log/slog"

	"github.com/pixil98/go-rpg/internal/game"
)

// Publisher provides the ability to publish messages to subjects
type Publisher interface {
	Publish(subject string, data []byte) error
}

// PlayerSubject is the per-player subject render commands and chat
// lines are published to.
func PlayerSubject(id string) string {
	return "player-" + id
}

// renderCommand is the wire shape of one fire-and-forget drawing
// instruction.
type renderCommand struct {
	Op        string `json:"op"`
	Component int    `json:"component,omitempty"`
	Slot      int    `json:"slot,omitempty"`
	Text      string `json:"text,omitempty"`
	Item      string `json:"item,omitempty"`
	Zoom      int    `json:"zoom,omitempty"`
	Npc       string `json:"npc,omitempty"`
	Animation int    `json:"animation,omitempty"`
	Script    string `json:"script,omitempty"`
	Args      []any  `json:"args,omitempty"`
}

// RenderPublisher implements dialog.Renderer over per-player NATS
// subjects. Commands are fire-and-forget: a failed publish is logged
// and forgotten, never surfaced to the issuing script.
type RenderPublisher struct {
	pub Publisher
}

func NewRenderPublisher(pub Publisher) *RenderPublisher {
	return &RenderPublisher{pub: pub}
}

func (r *RenderPublisher) send(p *game.Player, cmd renderCommand) {
	data, err := json.Marshal(cmd)
	if err != nil {
		slog.Warn("marshalling render command", "op", cmd.Op, "error", err)
		return
	}
	if err := r.pub.Publish(PlayerSubject(p.Id()), data); err != nil {
		slog.Debug("publishing render command", "player", p.Name(), "op", cmd.Op, "error", err)
	}
}

func (r *RenderPublisher) SetText(p *game.Player, component, slot int, text string) {
	r.send(p, renderCommand{Op: "set-text", Component: component, Slot: slot, Text: text})
}

func (r *RenderPublisher) SetItem(p *game.Player, component, slot int, item string, zoom int) {
	r.send(p, renderCommand{Op: "set-item", Component: component, Slot: slot, Item: item, Zoom: zoom})
}

func (r *RenderPublisher) SetNpcHead(p *game.Player, component, slot int, npc string) {
	r.send(p, renderCommand{Op: "set-npc-head", Component: component, Slot: slot, Npc: npc})
}

func (r *RenderPublisher) SetPlayerHead(p *game.Player, component, slot int) {
	r.send(p, renderCommand{Op: "set-player-head", Component: component, Slot: slot})
}

func (r *RenderPublisher) Animate(p *game.Player, component, slot, animation int) {
	r.send(p, renderCommand{Op: "animate", Component: component, Slot: slot, Animation: animation})
}

func (r *RenderPublisher) OpenFrame(p *game.Player, component int) {
	r.send(p, renderCommand{Op: "open-frame", Component: component})
}

func (r *RenderPublisher) CloseFrame(p *game.Player) {
	r.send(p, renderCommand{Op: "close-frame"})
}

func (r *RenderPublisher) RunScript(p *game.Player, name string, args ...any) {
	r.send(p, renderCommand{Op: "run-script", Script: name, Args: args})
}

func (r *RenderPublisher) Message(p *game.Player, text string) {
	r.send(p, renderCommand{Op: "message", Text: text})
}
