package game

// Rank is a player's privilege level.
type Rank int

const (
	RankPlayer Rank = iota
	RankModerator
	RankAdmin
)

func (r *Rank) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "player":
		*r = RankPlayer
	case "moderator":
		*r = RankModerator
	case "admin":
		*r = RankAdmin
	default:
		*r = RankPlayer
	}
	return nil
}

// Capability names a privileged action.
type Capability int

const (
	// CapFastMove allows the privileged dispatch fast-path that
	// repositions a player next to the interaction target.
	CapFastMove Capability = iota

	// CapCommands allows :: commands.
	CapCommands
)

// IsAuthorized reports whether the player may use the capability.
func IsAuthorized(p *Player, c Capability) bool {
	switch c {
	case CapFastMove:
		return p.Rank >= RankAdmin
	case CapCommands:
		return p.Rank >= RankModerator
	default:
		return false
	}
}
