package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"ratscrew/internal/config"
	"ratscrew/internal/mux"
	"ratscrew/internal/rng"
	"ratscrew/internal/tui"
	"ratscrew/pkg/ratscrew"
	"ratscrew/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const minWidth, minHeight = 60, 24

// Version is the game version
var Version = "v0.0.0-dev"

var seed = flag.Int64("seed", 0, "shuffle seed, overrides the configuration")
var autoDraw = flag.Bool("auto", false, "draw automatically for whoever is up")
var simulate = flag.Int("simulate", 0, "play a game without input and stop after this many plays")

func main() {
	flag.Parse()

	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "could not load configuration: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Instance()
	if logFile := setupLogger(cfg.Log); logFile != nil {
		defer logFile.Close()
	}

	opts := ratscrew.Options{Seed: cfg.Seed}
	if *seed > 0 {
		opts.Seed = *seed
	} else if cfg.RNG.SerialDevice != "" {
		gen, closer, err := rng.OpenSerial(rng.SerialConfig{
			Device:      cfg.RNG.SerialDevice,
			BaudRate:    cfg.RNG.BaudRate,
			ReadTimeout: cfg.RNG.ReadTimeout,
		})
		if err != nil {
			logrus.WithError(err).WithField("device", cfg.RNG.SerialDevice).Fatal("could not open random number generator")
		}

		opts.Generator = gen
		defer closer.Close()
	}

	game, err := ratscrew.NewGame(logrus.StandardLogger(), []int64{1, 2}, opts)
	if err != nil {
		logrus.WithError(err).Fatal("could not create game")
	}

	logrus.WithField("game", game.ID()).Info("dealt a new game")

	if *simulate > 0 {
		winner, err := ratscrew.Simulate(game, *simulate)
		if err != nil {
			fmt.Printf("No winner after %d plays\n", *simulate)
			return
		}

		fmt.Printf("Player %d wins!\n", winner)
		return
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fmt.Fprintln(os.Stderr, "ratscrew must be run from a terminal")
		os.Exit(1)
	}

	if w, h, err := term.GetSize(fd); err == nil && (w < minWidth || h < minHeight) {
		logrus.WithFields(logrus.Fields{"width": w, "height": h}).Warn("terminal is smaller than recommended")
	}

	dealerOpts := room.Options{
		SlapCooldown: cfg.SlapCooldown,
		InputDelay:   cfg.InputDelay,
	}
	if cfg.AutoDraw || *autoDraw {
		dealerOpts.AutoDraw = ratscrew.NewAutoPlayer(game, cfg.AutoDrawInterval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dealer := room.NewDealer(logrus.StandardLogger(), game, dealerOpts)
	terminal := room.NewClient(nil, "terminal")
	dealer.AddClient(terminal)
	dealer.StartShift(ctx)

	if cfg.Spectate.Enabled {
		srv := serveSpectators(cfg, dealer)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logrus.WithError(err).Fatal("could not put the terminal in raw mode")
	}

	keyboard := tui.NewKeyboard(cfg.Keys)
	go func() {
		if err := keyboard.Run(ctx, os.Stdin, dealer.Submit); err != nil && err != tui.ErrQuit && !errors.Is(err, context.Canceled) {
			logrus.WithError(err).Error("could not read keyboard input")
		}

		cancel()
	}()

	renderer := tui.NewRenderer(os.Stdout, cfg.Keys)
	if err := renderer.Watch(ctx, terminal.SendChan(), cfg.RenderDelay); err != nil && !errors.Is(err, context.Canceled) {
		logrus.WithError(err).Error("could not render the game")
	}

	dealer.EndShift()
	<-dealer.Done()
	_ = term.Restore(fd, oldState)

	details, err := dealer.Result()
	if err != nil || details == nil {
		fmt.Println("Game abandoned")
		return
	}

	fmt.Printf("Player %d wins!\n", details.WinnerID)
}

func serveSpectators(cfg config.Config, dealer *room.Dealer) *http.Server {
	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         cfg.Spectate.Addr,
		Handler:      loggingHandler(cfg.Log, c.Handler(mux.NewMux(Version, dealer))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening for spectators")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("spectator server stopped")
		}
	}()

	return srv
}

func loggingHandler(cfg config.LogConfig, next http.Handler) http.Handler {
	if cfg.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(logrus.StandardLogger().Writer(), next)
}

// setupLogger configures logrus, the returned file must be closed on exit
// Logs go to a file by default since stdout belongs to the game.
func setupLogger(cfg config.LogConfig) io.Closer {
	if lvl := cfg.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(cfg.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.File == "" {
		return nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logrus.WithError(err).Fatal("could not open log file")
	}

	logrus.SetOutput(f)
	return f
}
