// Package session runs one connected client: it logs the player in,
// forwards their render-command subject to the connection, and parses
// request lines into dispatcher calls. The line grammar here is a thin
// development transport; validation of what a request means belongs to
// the dispatcher, not this package.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/pixil98/go-rpg/internal/dialog"
	"github.com/pixil98/go-rpg/internal/dispatch"
	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/messaging"
	"github.com/pixil98/go-rpg/internal/script"
	"github.com/pixil98/go-rpg/internal/ui"
)

// Subscriber provides the ability to subscribe to message subjects
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// Manager logs connections in and runs their session loops.
type Manager struct {
	world      *game.WorldState
	dispatcher *dispatch.Dispatcher
	runner     *script.Runner
	render     dialog.Renderer
	subscriber Subscriber

	spawn  game.Tile
	admins []string
}

type ManagerOpt func(*Manager)

// WithAdmins grants admin rank to the named characters at login.
func WithAdmins(names []string) ManagerOpt {
	return func(m *Manager) {
		for _, n := range names {
			m.admins = append(m.admins, strings.ToLower(n))
		}
	}
}

func NewManager(world *game.WorldState, d *dispatch.Dispatcher, r *script.Runner, render dialog.Renderer, sub Subscriber, spawn game.Tile, opts ...ManagerOpt) *Manager {
	m := &Manager{
		world:      world,
		dispatcher: d,
		runner:     r,
		render:     render,
		subscriber: sub,
		spawn:      spawn,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// AcceptConnection runs a full session on conn and logs any failure.
// It satisfies the listener callback signature.
func (m *Manager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.Run(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}

// Run logs the connection in and processes requests until the client
// quits, disconnects, or the context ends. On the way out the player's
// task is interrupted (closing any open dialog) and the player leaves
// the world, so weak references held by other scripts resolve to gone.
func (m *Manager) Run(ctx context.Context, conn io.ReadWriter) error {
	name, err := promptName(conn)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	p := game.NewPlayer(name, m.spawn)
	if slices.Contains(m.admins, strings.ToLower(name)) {
		p.Rank = game.RankAdmin
	}
	p.UI = ui.NewTracker(func(component int) {
		m.render.CloseFrame(p)
	})

	if err := m.world.AddPlayer(p); err != nil {
		fmt.Fprintf(conn, "That name is already in use.\n")
		return fmt.Errorf("adding player %q: %w", name, err)
	}

	msgs := make(chan []byte, 16)
	unsub, err := m.subscriber.Subscribe(messaging.PlayerSubject(p.Id()), func(data []byte) {
		select {
		case msgs <- data:
		default:
			// A stalled client drops render commands rather than the
			// whole server tick.
		}
	})
	if err != nil {
		_ = m.world.RemovePlayer(name)
		return fmt.Errorf("subscribing player %q: %w", name, err)
	}

	defer func() {
		unsub()
		m.runner.Interrupt(p.Id())
		p.UI.ClosePrimary()
		if err := m.world.RemovePlayer(name); err != nil {
			slog.WarnContext(ctx, "removing player", "player", name, "error", err)
		}
	}()

	fmt.Fprintf(conn, "Welcome, %s.\n", p.Name())

	// Read input lines into a channel so the select loop can also watch
	// the context and the player's message subject.
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			inputChan <- scanner.Text()
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-msgs:
			if _, err := conn.Write(append(msg, '\n')); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			quit := m.handle(p, strings.TrimSpace(line))
			if quit {
				fmt.Fprintf(conn, "Goodbye!\n")
				return nil
			}
		}
	}
}

// handle parses one request line. Returns true when the client quits.
func (m *Manager) handle(p *game.Player, line string) bool {
	if line == "" {
		return false
	}

	if rest, ok := strings.CutPrefix(line, "::"); ok {
		fields := strings.Fields(rest)
		if len(fields) > 0 {
			m.dispatcher.HandleCommand(p, fields[0], fields[1:])
		}
		return false
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "object":
		// object <kind> <x> <y> <option>
		if len(fields) != 5 {
			return false
		}
		x, errX := strconv.Atoi(fields[2])
		y, errY := strconv.Atoi(fields[3])
		opt, errO := strconv.Atoi(fields[4])
		if errX != nil || errY != nil || errO != nil {
			return false
		}
		m.dispatcher.HandleObject(p, dispatch.ObjectRequest{
			Kind:   fields[1],
			Tile:   game.Tile{X: x, Y: y, Plane: p.Tile().Plane},
			Option: opt,
		})

	case "npc":
		// npc <index> <option>
		if len(fields) != 3 {
			return false
		}
		index, errI := strconv.Atoi(fields[1])
		opt, errO := strconv.Atoi(fields[2])
		if errI != nil || errO != nil {
			return false
		}
		m.dispatcher.HandleNpc(p, dispatch.NpcRequest{Index: index, Option: opt})

	case "answer":
		// answer <value> — reply to whatever prompt is awaiting one.
		if len(fields) < 2 {
			return false
		}
		raw := strings.Join(fields[1:], " ")
		if n, err := strconv.Atoi(raw); err == nil {
			m.runner.Deliver(p.Id(), script.IntValue(n))
		} else {
			m.runner.Deliver(p.Id(), script.StringValue(raw))
		}

	case "close":
		// Client-side dialog cancel.
		m.runner.Interrupt(p.Id())
		p.UI.ClosePrimary()

	case "walk":
		// walk <x> <y> — movement cancels the current interaction.
		if len(fields) != 3 {
			return false
		}
		x, errX := strconv.Atoi(fields[1])
		y, errY := strconv.Atoi(fields[2])
		if errX != nil || errY != nil {
			return false
		}
		m.runner.Interrupt(p.Id())
		if p.CanAct() {
			p.MoveTo(game.Tile{X: x, Y: y, Plane: p.Tile().Plane})
		}

	case "quit":
		return true

	default:
		m.render.Message(p, "Nothing interesting happens.")
	}

	return false
}
