package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/lguibr/brickgame/audio"
	"github.com/lguibr/brickgame/bollywood"
	"github.com/lguibr/brickgame/game"
	"github.com/lguibr/brickgame/render"
	"github.com/lguibr/brickgame/render/glwindow"
	"github.com/lguibr/brickgame/server"
	"github.com/lguibr/brickgame/utils"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	frontendTerminal = "terminal"
	frontendWindow   = "window"
	frontendHeadless = "headless"

	defaultTerminalLog = "brickgame.log"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML, YAML or JSON config file",
	}
	frontendFlag = &cli.StringFlag{
		Name:  "frontend",
		Value: frontendTerminal,
		Usage: "terminal, window or headless",
	}
	listenFlag = &cli.StringFlag{
		Name:  "listen",
		Value: ":3001",
		Usage: "spectator HTTP address (empty disables)",
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed (0 uses the clock)",
	}
	livesFlag = &cli.IntFlag{
		Name:  "lives",
		Usage: "starting lives",
	}
	layoutFlag = &cli.StringFlag{
		Name:  "layout",
		Usage: "brick layout: enhanced, classic or custom",
	}
	fpsFlag = &cli.IntFlag{
		Name:  "fps",
		Usage: "ticks per second for terminal and headless frontends",
	}
	ticksFlag = &cli.Uint64Flag{
		Name:  "ticks",
		Usage: "headless: stop after this many ticks (0 plays until game over)",
	}
	realtimeFlag = &cli.BoolFlag{
		Name:  "realtime",
		Usage: "headless: pace ticks like the interactive frontends",
	}
	soundFlag = &cli.BoolFlag{
		Name:  "sound",
		Usage: "play tones for game events",
	}
	volumeFlag = &cli.Float64Flag{
		Name:  "volume",
		Value: 0.5,
		Usage: "sound volume (0..1]",
	}
	logFileFlag = &cli.StringFlag{
		Name:  "log-file",
		Usage: "write logs to a rotating file (terminal frontend defaults to " + defaultTerminalLog + ")",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Value: "info",
		Usage: "debug, info, warn or error",
	}
)

func main() {
	app := &cli.App{
		Name:  "brickgame",
		Usage: "single-player brick game with spectator streaming",
		Flags: []cli.Flag{
			configFlag, frontendFlag, listenFlag, seedFlag, livesFlag, layoutFlag, fpsFlag,
			ticksFlag, realtimeFlag, soundFlag, volumeFlag, logFileFlag, logLevelFlag,
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(ctx *cli.Context) (*slog.Logger, io.Closer, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(ctx.String(logLevelFlag.Name))); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	path := ctx.String(logFileFlag.Name)
	if path == "" && ctx.String(frontendFlag.Name) == frontendTerminal {
		// The terminal belongs to tcell.
		path = defaultTerminalLog
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if path != "" {
		file := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		out, closer = file, file
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closer, nil
}

func loadConfig(ctx *cli.Context) (utils.Config, error) {
	cfg := utils.DefaultConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = utils.LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	if ctx.IsSet(seedFlag.Name) {
		cfg.Seed = ctx.Int64(seedFlag.Name)
	}
	if ctx.IsSet(livesFlag.Name) {
		cfg.Lives = ctx.Int(livesFlag.Name)
	}
	if ctx.IsSet(layoutFlag.Name) {
		cfg.Layout = ctx.String(layoutFlag.Name)
	}
	if ctx.IsSet(fpsFlag.Name) {
		cfg.FrameRate = ctx.Int(fpsFlag.Name)
	}
	return cfg, cfg.Validate()
}

// surface is a game.Surface that holds a device open.
type surface interface {
	game.Surface
	Close()
}

func newSurface(ctx *cli.Context, cfg utils.Config) (surface, error) {
	switch frontend := ctx.String(frontendFlag.Name); frontend {
	case frontendTerminal:
		return render.NewTerminal(nil, cfg.TickPeriod())
	case frontendWindow:
		return glwindow.New(800, 800)
	case frontendHeadless:
		var period time.Duration
		if ctx.Bool(realtimeFlag.Name) {
			period = cfg.TickPeriod()
		}
		headless := render.NewHeadless(os.Stdout, render.AutoPilot, period)
		headless.MaxTicks = ctx.Uint64(ticksFlag.Name)
		return headless, nil
	default:
		return nil, fmt.Errorf("unknown frontend %q", frontend)
	}
}

func run(ctx *cli.Context) error {
	logger, logCloser, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	state, err := game.NewSimulationState(cfg, nil)
	if err != nil {
		return err
	}

	engine := bollywood.NewEngine(logger)
	defer engine.Shutdown(2 * time.Second)
	broadcasterPID, err := engine.Spawn(bollywood.NewProps(game.NewBroadcasterProducer(logger)))
	if err != nil {
		return err
	}
	spectators := game.NewSpectators(engine, broadcasterPID, logger)
	observers := []game.Observer{spectators}

	if ctx.Bool(soundFlag.Name) {
		player, err := audio.NewPlayer(ctx.Float64(volumeFlag.Name), logger)
		if err != nil {
			// Non-fatal, game can run without sound
			logger.Warn("Audio initialization failed", "error", err)
		} else {
			defer player.Close()
			observers = append(observers, player)
		}
	}

	surface, err := newSurface(ctx, cfg)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	group, groupCtx := errgroup.WithContext(sigCtx)
	serverCtx, stopServer := context.WithCancel(groupCtx)
	defer stopServer()

	if listen := ctx.String(listenFlag.Name); listen != "" {
		srv := server.New(spectators, logger)
		group.Go(func() error { return srv.ListenAndServe(serverCtx, listen) })
	}

	// The loop stays on the main goroutine: the window frontend needs the main thread.
	last, loopErr := game.NewLoop(state, surface, logger, observers...).Run(groupCtx)
	stopServer()
	surface.Close()
	groupErr := group.Wait()

	if last.GameOver && ctx.String(frontendFlag.Name) == frontendTerminal {
		color.New(color.FgRed, color.Bold).Println(game.GameOverText)
	}
	color.New(color.FgYellow).Printf("Ticks: %d  Lives: %d  Bricks left: %d\n", state.Ticks, state.Lives, state.ActiveBricks())

	if errors.Is(loopErr, context.Canceled) {
		loopErr = nil
	}
	return errors.Join(loopErr, groupErr)
}
