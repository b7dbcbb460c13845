package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-rpg/internal/dialog"
	"github.com/pixil98/go-rpg/internal/dispatch"
	"github.com/pixil98/go-rpg/internal/driver"
	"github.com/pixil98/go-rpg/internal/game"
	"github.com/pixil98/go-rpg/internal/listener"
	"github.com/pixil98/go-rpg/internal/messaging"
	"github.com/pixil98/go-rpg/internal/script"
	"github.com/pixil98/go-rpg/internal/scripts"
	"github.com/pixil98/go-rpg/internal/session"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Load game definitions
	dict, err := cfg.Storage.BuildDictionary()
	if err != nil {
		return nil, fmt.Errorf("building dictionary: %w", err)
	}

	world, err := game.NewWorldState(dict)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	// Messaging
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	render := messaging.NewRenderPublisher(natsServer)

	// Interaction core
	runner := script.NewRunner()

	var dispatchOpts []dispatch.DispatcherOpt
	if cfg.World.ViewDistance > 0 {
		dispatchOpts = append(dispatchOpts, dispatch.WithViewDistance(cfg.World.ViewDistance))
	}
	dispatcher := dispatch.NewDispatcher(world, runner, dispatchOpts...)

	dialogs := dialog.NewDialogs(render, dict)
	scripts.NewContent(world, dialogs, dict).Register(dispatcher)

	// Sessions
	sessions := session.NewManager(world, dispatcher, runner, render, natsServer,
		cfg.World.Spawn, session.WithAdmins(cfg.World.Admins))
	cm := listener.NewConnectionManager(sessions)

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lis, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lis
	}

	// Game clock
	var driverOpts []driver.GameDriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		driverOpts = append(driverOpts, driver.WithTickLength(d))
	}
	gameDriver := driver.NewGameDriver([]driver.Manager{runner}, driverOpts...)

	return service.WorkerList{
		"nats":      natsServer,
		"driver":    gameDriver,
		"listeners": &listeners,
	}, nil
}
