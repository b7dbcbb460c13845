package game

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pixil98/go-rpg/internal/ui"
)

// Pawn is the state shared by every controllable entity (players and
// NPCs): identity, position, the movement/action lock, and the attribute
// scratch space. Position and the lock are read by connection goroutines
// validating requests while scripts resumed on the simulation tick move
// the pawn, so all access goes through mutex-holding methods; the
// removed flag is atomic because weak references resolve from arbitrary
// points.
type Pawn struct {
	id      string
	name    string
	removed atomic.Bool

	mu     sync.RWMutex
	tile   Tile
	locked bool

	attrs Attributes
}

func (p *Pawn) initPawn(name string, tile Tile) {
	p.id = uuid.NewString()
	p.name = name
	p.tile = tile
}

// Id returns the pawn's unique instance identifier.
func (p *Pawn) Id() string {
	return p.id
}

func (p *Pawn) Name() string {
	return p.name
}

func (p *Pawn) Tile() Tile {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.tile
}

// MoveTo repositions the pawn.
func (p *Pawn) MoveTo(t Tile) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tile = t
}

// Lock prevents the pawn from acting until Unlock. Interaction requests
// received while locked are dropped. The interaction core never locks
// pawns itself; this is the surface collaborators such as combat and
// cutscene sequencing use to pin a pawn for their duration.
func (p *Pawn) Lock() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.locked = true
}

func (p *Pawn) Unlock() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.locked = false
}

// CanAct reports whether the pawn may start a new interaction.
func (p *Pawn) CanAct() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return !p.locked && !p.removed.Load()
}

// Attributes returns the pawn's interaction scratch space.
func (p *Pawn) Attributes() *Attributes {
	return &p.attrs
}

// Removed reports whether the pawn has left the world. Satisfies
// Removable so pawns can be held through a Ref.
func (p *Pawn) Removed() bool {
	return p.removed.Load()
}

func (p *Pawn) markRemoved() {
	p.removed.Store(true)
}

// Player is a connected player character.
type Player struct {
	Pawn

	Rank Rank

	// UI tracks which client components are currently visible for this
	// player. Set once right after construction.
	UI *ui.Tracker
}

func NewPlayer(name string, tile Tile) *Player {
	p := &Player{}
	p.initPawn(name, tile)
	return p
}

// Npc is a spawned non-player character. Index is the world-assigned
// instance number clients use to address it; Kind identifies its
// definition.
type Npc struct {
	Pawn

	Index int
	Kind  string
	Def   *NpcKind
}

// Object is a piece of interactive scenery occupying a single tile.
type Object struct {
	Kind string
	Def  *ObjectKind

	tile    Tile
	removed atomic.Bool
}

func (o *Object) Tile() Tile {
	return o.tile
}

func (o *Object) Removed() bool {
	return o.removed.Load()
}

func (o *Object) markRemoved() {
	o.removed.Store(true)
}
