package game

import (
	"fmt"

	"github.com/pixil98/go-rpg/internal/storage"
)

// Dictionary holds all game definition stores. It provides a single
// reference that can be passed to resolution methods so they all share
// the same signature.
type Dictionary struct {
	Npcs    storage.Storer[*NpcKind]
	Objects storage.Storer[*ObjectKind]
	Skills  storage.Storer[*Skill]
	Spawns  storage.Storer[*Spawn]
}

// Resolve resolves spawn references against the kind stores.
func (d *Dictionary) Resolve() error {
	for id, sp := range d.Spawns.GetAll() {
		if err := sp.Resolve(d); err != nil {
			return fmt.Errorf("spawn %s: %w", id, err)
		}
	}
	return nil
}

// NpcName returns the display name for an NPC kind, or the kind id
// itself when no definition is loaded.
func (d *Dictionary) NpcName(kind string) string {
	if def := d.Npcs.Get(kind); def != nil {
		return def.Name
	}
	return kind
}

// SkillName returns the display name for a skill id.
func (d *Dictionary) SkillName(id string) string {
	if def := d.Skills.Get(id); def != nil {
		return def.Name
	}
	return id
}
