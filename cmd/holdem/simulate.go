package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/simulator"
	"github.com/lox/holdem-engine/internal/statistics"
)

type SimulateCmd struct {
	Config  string `short:"c" help:"HCL configuration file; defaults are used when it does not exist" default:"table.hcl" type:"path"`
	Hands   int    `help:"Hands per table (overrides the configuration)"`
	Seed    int64  `help:"Random seed (overrides the configuration)"`
	Tables  int    `help:"Independent copies of each table (overrides the configuration)"`
	History string `help:"Directory to write hand histories to" type:"path"`
	StatsDB string `name:"stats-db" help:"SQLite file to accumulate player statistics in" type:"path"`
}

func (cmd *SimulateCmd) Run(globals *Globals) error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	cmd.apply(cfg, globals)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cfg.Simulation.LogLevel)

	var opts []simulator.Option
	if path := cfg.Simulation.StatisticsDB; path != "" {
		store, err := statistics.Open(path, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("Failed to close statistics store", "error", err)
			}
		}()
		opts = append(opts, simulator.WithStatistics(store))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation",
		"tables", len(cfg.Tables)*cfg.Simulation.Tables,
		"hands", cfg.Simulation.Hands,
		"seed", cfg.Simulation.Seed)

	res, err := simulator.New(cfg, logger, opts...).Run(ctx)
	if err != nil {
		return err
	}
	fmt.Print(renderResult(res))
	return nil
}

// apply overrides configuration values with the flags that were set.
func (cmd *SimulateCmd) apply(cfg *config.Config, globals *Globals) {
	s := cfg.Simulation
	if cmd.Hands > 0 {
		s.Hands = cmd.Hands
	}
	if cmd.Seed != 0 {
		s.Seed = cmd.Seed
	}
	if cmd.Tables > 0 {
		s.Tables = cmd.Tables
	}
	if cmd.History != "" {
		s.HistoryDir = cmd.History
	}
	if cmd.StatsDB != "" {
		s.StatisticsDB = cmd.StatsDB
	}
	if globals.LogLevel != "" {
		s.LogLevel = globals.LogLevel
	}
}
