package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"damasgochi/internal/config"
	"damasgochi/internal/engine"
	"damasgochi/internal/pet"
	"damasgochi/internal/store"
)

// flagValues holds the persistent root flags. They override the config file and env.
type flagValues struct {
	configPath string
	stateDir   string
	backend    string
	codec      string
	logFile    string
	seed       int64
	economy    bool
}

func (f *flagValues) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.configPath, "config", "", "Path to config file (default "+config.Path()+")")
	flags.StringVar(&f.stateDir, "state-dir", "", "Directory holding the saved pet")
	flags.StringVar(&f.backend, "backend", "", "Storage backend: file, sqlite or memory")
	flags.StringVar(&f.codec, "codec", "", "Record encoding: xor or plain")
	flags.StringVar(&f.logFile, "log-file", "", "Write logs to this file (default <state-dir>/damasgochi.log)")
	flags.Int64Var(&f.seed, "seed", 0, "Random seed, 0 picks one")
	flags.BoolVar(&f.economy, "economy", true, "Enable coins, the shop and animal effects")
}

// loadConfig layers the changed command-line flags over the file and env config
func (f *flagValues) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("state-dir") {
		cfg.StateDir = f.stateDir
	}
	if flags.Changed("backend") {
		cfg.Backend = f.backend
	}
	if flags.Changed("codec") {
		cfg.Codec = f.codec
	}
	if flags.Changed("log-file") {
		cfg.LogFile = f.logFile
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("economy") {
		cfg.Economy = f.economy
	}

	cfg = config.Normalize(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// settingsFromConfig maps the user config onto engine settings
func settingsFromConfig(cfg config.Config) engine.Settings {
	s := engine.DefaultSettings()
	s.Rules = pet.Rules{EconomyEnabled: cfg.Economy}
	s.TickInterval = cfg.TickInterval.Duration
	s.AutoDeliverInterval = cfg.AutoDeliverInterval.Duration
	s.LevelUpBanner = cfg.LevelUpBanner.Duration
	s.ActionFlash = cfg.ActionFlash.Duration
	s.DeliverFlash = cfg.DeliverFlash.Duration
	s.Gates = engine.Gates{
		PaymentCode:   cfg.PaymentCode,
		MissionPhrase: cfg.MissionPhrase,
		MissionBonus:  cfg.MissionBonus,
	}
	s.Prices = map[pet.Item]int{
		pet.ItemDiaper: cfg.Prices.Diaper,
		pet.ItemFood:   cfg.Prices.Food,
		pet.ItemPlay:   cfg.Prices.Play,
	}
	return s
}

// openStore opens the configured slot and codec
func openStore(cfg config.Config) (*store.Store, error) {
	codec, err := store.NewCodec(cfg.Codec, cfg.Secret)
	if err != nil {
		return nil, err
	}
	slot, err := store.OpenSlot(cfg.Backend, cfg.StateDir)
	if err != nil {
		return nil, err
	}
	return store.New(slot, store.WithCodec(codec), store.WithKey(cfg.SlotKey)), nil
}

// setupLogging sends the standard logger to a file so it never draws over the TUI
func setupLogging(cfg config.Config) (io.Closer, error) {
	path := cfg.LogFile
	if path == "" {
		path = filepath.Join(cfg.StateDir, "damasgochi.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "damasgochi")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// app is one session: config, logging, storage and a running engine
type app struct {
	cfg     config.Config
	store   *store.Store
	engine  *engine.Engine
	logFile io.Closer
}

// openApp fails rather than start a session that cannot see the saved pet
func openApp(ctx context.Context, cfg config.Config) (*app, error) {
	logFile, err := setupLogging(cfg)
	if err != nil {
		return nil, err
	}

	st, err := openStore(cfg)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	seed, err := cfg.RandSeed()
	if err != nil {
		st.Close()
		logFile.Close()
		return nil, err
	}

	e := engine.New(st,
		engine.WithSettings(settingsFromConfig(cfg)),
		engine.WithRand(pet.NewRand(seed)),
	)
	if err := e.Init(ctx); err != nil {
		e.Stop()
		st.Close()
		log.SetOutput(os.Stderr)
		logFile.Close()
		return nil, err
	}

	return &app{cfg: cfg, store: st, engine: e, logFile: logFile}, nil
}

func (a *app) Close() error {
	a.engine.Stop()
	err := a.store.Close()
	log.SetOutput(os.Stderr)
	if cerr := a.logFile.Close(); err == nil {
		err = cerr
	}
	return err
}
