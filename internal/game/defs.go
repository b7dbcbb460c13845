package game

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/storage"
)

// NpcKind is an NPC definition loaded from asset files.
type NpcKind struct {
	Name    string `json:"name"`
	Examine string `json:"examine,omitempty"`
}

func (n *NpcKind) Validate() error {
	el := errors.NewErrorList()

	if n.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}

	return el.Err()
}

// ObjectKind is a scenery object definition loaded from asset files.
type ObjectKind struct {
	Name    string `json:"name"`
	Examine string `json:"examine,omitempty"`
}

func (o *ObjectKind) Validate() error {
	el := errors.NewErrorList()

	if o.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}

	return el.Err()
}

// Skill is a trainable skill definition, used for display-name lookup
// when announcing level-ups.
type Skill struct {
	Name string `json:"name"`
}

func (s *Skill) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// Spawn places one NPC or one object into the world at startup. Exactly
// one of npc/object must be set.
type Spawn struct {
	Npc    storage.SmartIdentifier[*NpcKind]    `json:"npc,omitzero"`
	Object storage.SmartIdentifier[*ObjectKind] `json:"object,omitzero"`
	Tile   Tile                                 `json:"tile"`
}

func (s *Spawn) Validate() error {
	el := errors.NewErrorList()

	if s.Npc.Key() == "" && s.Object.Key() == "" {
		el.Add(fmt.Errorf("one of npc or object is required"))
	}
	if s.Npc.Key() != "" && s.Object.Key() != "" {
		el.Add(fmt.Errorf("npc and object are mutually exclusive"))
	}

	return el.Err()
}

func (s *Spawn) Resolve(d *Dictionary) error {
	if s.Npc.Key() != "" {
		return s.Npc.Resolve(d.Npcs)
	}
	return s.Object.Resolve(d.Objects)
}
