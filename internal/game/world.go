package game

import (
	"strings"
	"sync"
)

// WorldState is the single source of truth for live session state: which
// players are connected, which NPCs and objects exist, and where
// everything is. Nothing in here is persisted; it is rebuilt from
// definition assets and live logins.
//
// All access goes through its methods to ensure thread-safety between
// the simulation tick and connection goroutines.
type WorldState struct {
	mu      sync.RWMutex
	players map[string]*Player
	npcs    map[int]*Npc
	objects map[Tile]*Object

	nextNpcIndex int
}

// NewWorldState builds the world and populates it from the dictionary's
// spawn placements.
func NewWorldState(dict *Dictionary) (*WorldState, error) {
	w := &WorldState{
		players: make(map[string]*Player),
		npcs:    make(map[int]*Npc),
		objects: make(map[Tile]*Object),
	}

	for _, sp := range dict.Spawns.GetAll() {
		if sp.Npc.Key() != "" {
			w.SpawnNpc(sp.Npc.Key(), sp.Npc.Val(), sp.Tile)
		} else {
			w.PlaceObject(sp.Object.Key(), sp.Object.Val(), sp.Tile)
		}
	}

	return w, nil
}

// AddPlayer registers a connected player. Names are unique,
// case-insensitively.
func (w *WorldState) AddPlayer(p *Player) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := strings.ToLower(p.Name())
	if _, exists := w.players[key]; exists {
		return ErrPlayerExists
	}
	w.players[key] = p
	return nil
}

// RemovePlayer takes a player out of the world and marks them removed so
// any weak references held by suspended scripts resolve to gone.
func (w *WorldState) RemovePlayer(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := strings.ToLower(name)
	p, exists := w.players[key]
	if !exists {
		return ErrPlayerNotFound
	}
	p.markRemoved()
	delete(w.players, key)
	return nil
}

// GetPlayer returns the player by name, or nil.
func (w *WorldState) GetPlayer(name string) *Player {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.players[strings.ToLower(name)]
}

// ForEachPlayer calls fn for each connected player while holding the lock.
func (w *WorldState) ForEachPlayer(fn func(*Player)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range w.players {
		fn(p)
	}
}

// SpawnNpc creates an NPC instance and assigns it the next index.
func (w *WorldState) SpawnNpc(kind string, def *NpcKind, tile Tile) *Npc {
	w.mu.Lock()
	defer w.mu.Unlock()

	name := kind
	if def != nil {
		name = def.Name
	}

	n := &Npc{
		Index: w.nextNpcIndex,
		Kind:  kind,
		Def:   def,
	}
	n.initPawn(name, tile)
	w.npcs[n.Index] = n
	w.nextNpcIndex++
	return n
}

// Npc returns the NPC with the given instance index, or nil.
func (w *WorldState) Npc(index int) *Npc {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.npcs[index]
}

// RemoveNpc despawns an NPC instance.
func (w *WorldState) RemoveNpc(index int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if n, ok := w.npcs[index]; ok {
		n.markRemoved()
		delete(w.npcs, index)
	}
}

// PlaceObject puts a scenery object on a tile, replacing any occupant.
func (w *WorldState) PlaceObject(kind string, def *ObjectKind, tile Tile) *Object {
	w.mu.Lock()
	defer w.mu.Unlock()

	if prev, ok := w.objects[tile]; ok {
		prev.markRemoved()
	}

	o := &Object{
		Kind: kind,
		Def:  def,
		tile: tile,
	}
	w.objects[tile] = o
	return o
}

// ObjectAt returns the object of the given kind on the tile. Both the
// tile and the claimed kind must match; a mismatch returns nil.
func (w *WorldState) ObjectAt(tile Tile, kind string) *Object {
	w.mu.RLock()
	defer w.mu.RUnlock()

	o, ok := w.objects[tile]
	if !ok || o.Kind != kind {
		return nil
	}
	return o
}

// RemoveObject despawns the object on a tile, if any.
func (w *WorldState) RemoveObject(tile Tile) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if o, ok := w.objects[tile]; ok {
		o.markRemoved()
		delete(w.objects, tile)
	}
}

// NpcsAt returns the NPC instances currently standing on the tile.
func (w *WorldState) NpcsAt(tile Tile) []*Npc {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []*Npc
	for _, n := range w.npcs {
		if n.Tile() == tile {
			out = append(out, n)
		}
	}
	return out
}

// PlayersAt returns the players currently standing on the tile.
func (w *WorldState) PlayersAt(tile Tile) []*Player {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var out []*Player
	for _, p := range w.players {
		if p.Tile() == tile {
			out = append(out, p)
		}
	}
	return out
}
