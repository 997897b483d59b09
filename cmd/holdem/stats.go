package main

import (
	"fmt"

	"github.com/lox/holdem-engine/internal/statistics"
)

type StatsCmd struct {
	DB       string `arg:"" help:"SQLite statistics file written by simulate" type:"existingfile"`
	Strategy string `help:"Only show this strategy"`
}

func (cmd *StatsCmd) Run(globals *Globals) error {
	logger := newLogger(globals.LogLevel)

	store, err := statistics.Open(cmd.DB, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.All()
	if err != nil {
		return err
	}

	var rows []statistics.PlayerStatistics
	for _, s := range all {
		if cmd.Strategy == "" || s.Strategy == cmd.Strategy {
			rows = append(rows, s)
		}
	}
	if len(rows) == 0 {
		return fmt.Errorf("no statistics recorded in %s", cmd.DB)
	}
	fmt.Print(renderStatistics(rows))
	return nil
}
