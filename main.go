package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"prison/communication"
	"prison/engine"
	"prison/experiments"
	"prison/game"
	"prison/gamemaster"
	"prison/meta"
	"prison/player"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	mode := flag.String("mode", "play", "play, experiment, throughput, host or join")
	depth := flag.Int("depth", 0, "search depth, overrides the config")
	games := flag.Int("games", 0, "games per experiment matchup, overrides the config")
	addr := flag.String("addr", "localhost:8080", "address to host on or join")
	seat := flag.Int("seat", 0, "seat played on this side in host or join mode")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := meta.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if *depth > 0 {
		cfg.SearchDepth = *depth
	}
	if *games > 0 {
		cfg.Games = *games
	}
	zerolog.SetGlobalLevel(cfg.Level())

	settings := experiments.Settings{Games: cfg.Games, MaxMoves: cfg.MaxTurns, Seed: cfg.Seed, OutputDir: cfg.OutputDir}
	switch *mode {
	case "play":
		err = play(cfg)
	case "experiment":
		if _, err = experiments.RunDepthExperiment(settings); err == nil {
			_, err = experiments.RunLookaheadExperiment(settings)
		}
	case "throughput":
		_, err = experiments.RunThroughputExperiment(settings, cfg.SearchDepth, 20)
	case "host", "join":
		err = playRemote(cfg, *mode == "host", *addr, *seat)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", *mode).Msg("failed")
	}
}

func newGame(cfg meta.Config) (*game.GameState, error) {
	types := cfg.PlayerTypes()
	players := make([]*game.Player, len(types))
	for i, typ := range types {
		players[i] = game.NewPlayer(fmt.Sprintf("%s-%d", typ, i+1), typ)
	}
	return game.NewGameState(players, cfg.Seed)
}

func newEngine(cfg meta.Config, gs *game.GameState) (*engine.Engine, *gamemaster.GameMaster) {
	gm := gamemaster.NewGameMaster(64)
	gm.Init(gs)
	e := engine.New(engine.Config{Depth: cfg.SearchDepth, Deadline: cfg.Deadline}, gm)
	e.Start(gs)
	return e, gm
}

// play runs a game on this machine. Humans play on the terminal.
func play(cfg meta.Config) error {
	gs, err := newGame(cfg)
	if err != nil {
		return err
	}
	e, gm := newEngine(cfg, gs)
	go func() {
		for u := range gm.Updates() {
			log.Info().Int("seq", u.Seq).Str("action", game.Describe(u.Action)).Int("round", u.Round+1).Msg("committed")
		}
	}()

	agents := make(map[uuid.UUID]engine.Agent)
	console := player.NewConsole(os.Stdin, os.Stdout)
	for i, p := range gs.Players {
		switch p.Type {
		case game.Human:
			agents[p.ID] = console
		case game.Random:
			agents[p.ID] = player.NewRandom(cfg.Seed + uint64(i))
		case game.Network:
			return errors.New("network seats need host or join mode")
		}
	}

	result, err := e.Run(agents, cfg.TurnDelay, cfg.MaxTurns)
	if err != nil {
		return err
	}
	return e.View(func(gs *game.GameState) {
		for i, p := range gs.Players {
			log.Info().Str("player", p.Name).Int("score", game.FinalScore(gs, i)).Msg("final score")
		}
		log.Info().Str("winner", result.Winner).Int("moves", result.Game.TotalMoves).Msg("game finished")
	})
}

// playRemote plays one seat of a game whose other seats are played by a peer. Both
// sides must use the same players and seed.
func playRemote(cfg meta.Config, host bool, addr string, seat int) error {
	gs, err := newGame(cfg)
	if err != nil {
		return err
	}
	if seat < 0 || seat >= len(gs.Players) {
		return fmt.Errorf("no seat %d", seat)
	}
	e, _ := newEngine(cfg, gs)
	ctx := context.Background()

	var peer *communication.Peer
	if host {
		peers := make(chan *communication.Peer, 1)
		srv := &http.Server{Addr: addr, Handler: communication.Handler(func(p *communication.Peer) { peers <- p })}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("server stopped")
			}
		}()
		defer srv.Shutdown(ctx)
		log.Info().Str("addr", addr).Msg("waiting for peer")
		peer = <-peers
	} else if peer, err = communication.Dial(ctx, "ws://"+addr); err != nil {
		return err
	}

	r := communication.NewReplicator(peer, e, seat)
	defer r.Close()
	if err := r.Connect(); err != nil {
		return err
	}

	local := gs.Players[seat]
	console := player.NewConsole(os.Stdin, os.Stdout)
	for r.State() != communication.Closed {
		if r.State() == communication.TheirTurn {
			if _, err := r.Receive(ctx); err != nil {
				return err
			}
			continue
		}
		var action game.Action
		if local.Type == game.Minimax {
			if action, err = e.MakeTurn(local, cfg.TurnDelay); err != nil {
				return err
			}
		} else {
			if err := e.View(func(gs *game.GameState) { action, _ = console.FindMove(gs) }); err != nil {
				return err
			}
			if err := e.Play(action); err != nil {
				return err
			}
		}
		if err := r.Publish(ctx, action); err != nil {
			return err
		}
	}
	log.Info().Int("winner", gs.Winner()).Msg("game finished")
	return nil
}
