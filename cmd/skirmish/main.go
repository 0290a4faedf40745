package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"skirmish/internal/config"
	"skirmish/internal/field"
	"skirmish/internal/match"
	"skirmish/internal/server"
	"skirmish/internal/util"
)

func main() {
	var cfgPath, rulesPath, httpAddr, out string
	var seed int64
	var verbose bool
	flag.StringVar(&cfgPath, "config", filepath.Join("assets", config.GameFile), "game config file (json or yaml)")
	flag.StringVar(&rulesPath, "rules", filepath.Join("assets", config.RulesFile), "rules catalog (yaml)")
	flag.Int64Var(&seed, "seed", 0, "seed for terrain and object placement; 0 picks one")
	flag.StringVar(&httpAddr, "http", "", "serve the spectator API on this address, e.g. :8080")
	flag.StringVar(&out, "out", "", "write the event log and final field to this file on exit")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(cfgPath, rulesPath, httpAddr, out, util.Seed(seed), logger); err != nil {
		logger.Error("skirmish failed", "err", err)
		os.Exit(1)
	}
}

func run(cfgPath, rulesPath, httpAddr, out string, seed int64, logger *slog.Logger) error {
	game, err := config.LoadGame(cfgPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		logger.Info("no game config, using defaults", "path", cfgPath)
	}
	rules, err := config.LoadRules(rulesPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		logger.Info("no rules catalog, using built-in tables", "path", rulesPath)
	}

	hub := match.NewHub(logger)
	rec := &recorder{}
	m, err := match.New(*game, rules, match.Options{
		Seed:   seed,
		Logger: logger,
		Events: func(ev field.Event) {
			rec.add(ev)
			hub.Publish(ev)
		},
	})
	if err != nil {
		return err
	}
	session := match.NewSession(m)

	if httpAddr != "" {
		srv := &http.Server{Addr: httpAddr, Handler: server.New(session, hub, logger).Routes()}
		go func() {
			logger.Info("spectator API listening", "addr", httpAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("spectator API stopped", "err", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	sh := newShell(session, game, cfgPath, os.Stdout)
	fmt.Fprintf(os.Stdout, "%s %s  seed %d\n", game.Title, game.Version, seed)
	sh.exec("show")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(os.Stdout, "> ")
		if !sc.Scan() {
			break
		}
		if sh.exec(sc.Text()) {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	if out != "" {
		var snap field.Snapshot
		_ = session.View(func(m *match.Match) error {
			snap = m.Field.Snapshot()
			return nil
		})
		if err := rec.write(out, seed, snap); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Event log written to %s\n", out)
	}
	return nil
}

// recorder keeps every event for the -out file. Events arrive under the
// session lock, so appends never race.
type recorder struct {
	events []field.Event
}

func (r *recorder) add(ev field.Event) { r.events = append(r.events, ev) }

func (r *recorder) write(path string, seed int64, snap field.Snapshot) error {
	doc := struct {
		Seed   int64          `json:"seed"`
		Events []field.Event  `json:"events"`
		Field  field.Snapshot `json:"field"`
	}{Seed: seed, Events: r.events, Field: snap}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
