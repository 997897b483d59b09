package main

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/simulator"
	"github.com/lox/holdem-engine/internal/statistics"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestSimulateFlagsOverrideConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cmd := SimulateCmd{Hands: 25, Seed: 99, Tables: 3, History: "out", StatsDB: "s.db"}
	cmd.apply(cfg, &Globals{LogLevel: "debug"})

	assert.Equal(t, config.SimulationSettings{
		Hands:        25,
		Seed:         99,
		Tables:       3,
		LogLevel:     "debug",
		HistoryDir:   "out",
		StatisticsDB: "s.db",
	}, *cfg.Simulation)

	cfg = config.DefaultConfig()
	(&SimulateCmd{}).apply(cfg, &Globals{})
	assert.Equal(t, config.DefaultConfig(), cfg, "unset flags leave the configuration alone")
}

func TestRenderResult(t *testing.T) {
	tag := &statistics.Summary{}
	tag.Add(1.5, true)
	tag.Add(-0.5, false)
	maniac := &statistics.Summary{}
	maniac.Add(-1, false)

	out := renderResult(&simulator.Result{
		Tables: []simulator.TableResult{{Table: "main", Replica: 1, Hands: 2, Showdowns: 1}},
		Strategies: map[string]*statistics.Summary{
			"tight-aggressive": tag,
			"maniac":           maniac,
		},
	})

	assert.Contains(t, out, "2 hands")
	assert.Contains(t, out, "main/1")
	assert.Contains(t, out, "+0.500")
	assert.Contains(t, out, "-1.000")
	assert.Less(t, strings.Index(out, "maniac"), strings.Index(out, "tight-aggressive"), "strategies are sorted")
}

func TestRenderStatistics(t *testing.T) {
	s := statistics.PlayerStatistics{Strategy: "maniac", TablePlayers: 6, Hands: 4, VPIPHands: 3, PFRHands: 2, ThreeBets: 1}
	s.Streets[game.Flop].Bets = 2
	s.Streets[game.Flop].Calls = 1

	out := renderStatistics([]statistics.PlayerStatistics{s})
	assert.Contains(t, out, "maniac")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "2.00")
}

func TestNewLogger(t *testing.T) {
	require.NotNil(t, newLogger(""))
	assert.Equal(t, "debug", newLogger("debug").GetLevel().String())
	assert.Equal(t, "info", newLogger("nonsense").GetLevel().String())
}
