package command

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-rpg/internal/game"
)

type WorldConfig struct {
	Spawn        game.Tile `json:"spawn"`
	ViewDistance int       `json:"view_distance,omitempty"`
	Admins       []string  `json:"admins,omitempty"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if c.ViewDistance < 0 {
		el.Add(fmt.Errorf("view_distance must not be negative"))
	}

	for _, a := range c.Admins {
		if strings.TrimSpace(a) == "" {
			el.Add(fmt.Errorf("admins must not contain empty names"))
		}
	}

	return el.Err()
}
