// Package config loads simulation settings from HCL.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/game"
)

// Config is the complete simulation configuration
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Tables     []TableConfig       `hcl:"table,block"`
	Players    []PlayerConfig      `hcl:"player,block"`
}

// SimulationSettings controls the run as a whole
type SimulationSettings struct {
	Hands int   `hcl:"hands,optional"`
	Seed  int64 `hcl:"seed,optional"`
	// Tables is how many independent copies of each table block are played.
	Tables       int    `hcl:"tables,optional"`
	LogLevel     string `hcl:"log_level,optional"`
	HistoryDir   string `hcl:"history_dir,optional"`
	StatisticsDB string `hcl:"statistics_db,optional"`
}

// TableConfig defines the stakes of one table
type TableConfig struct {
	Name          string `hcl:"name,label"`
	SmallBlind    int    `hcl:"small_blind"`
	BigBlind      int    `hcl:"big_blind"`
	StartingStack int    `hcl:"starting_stack,optional"`
}

// Blinds returns the table's blinds in engine form.
func (t TableConfig) Blinds() game.Blinds {
	return game.Blinds{Small: t.SmallBlind, Big: t.BigBlind}
}

// PlayerConfig seats a strategy at one or more tables
type PlayerConfig struct {
	Name     string   `hcl:"name,label"`
	Strategy string   `hcl:"strategy"`
	Stack    int      `hcl:"stack,optional"`
	Tables   []string `hcl:"tables,optional"`
}

// DefaultConfig returns a six-handed table of mixed strategies
func DefaultConfig() *Config {
	c := &Config{
		Simulation: &SimulationSettings{},
		Tables: []TableConfig{
			{Name: "main", SmallBlind: 5, BigBlind: 10, StartingStack: 1000},
		},
		Players: []PlayerConfig{
			{Name: "alice", Strategy: bot.TightAggressiveName},
			{Name: "bob", Strategy: bot.LooseAggressiveName},
			{Name: "carol", Strategy: bot.ManiacName},
			{Name: "dave", Strategy: bot.UltraTightName},
			{Name: "erin", Strategy: bot.TightAggressiveName},
			{Name: "frank", Strategy: bot.LooseAggressiveName},
		},
	}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields DefaultConfig.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", formatDiagnostics(diags))
	}
	config.applyDefaults()
	return &config, nil
}

func formatDiagnostics(diags hcl.Diagnostics) string {
	if len(diags) == 1 {
		return diags[0].Error()
	}
	return diags.Error()
}

func (c *Config) applyDefaults() {
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	s := c.Simulation
	if s.Hands == 0 {
		s.Hands = 100
	}
	if s.Seed == 0 {
		s.Seed = 1
	}
	if s.Tables == 0 {
		s.Tables = 1
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}

	for i := range c.Tables {
		if c.Tables[i].StartingStack == 0 {
			c.Tables[i].StartingStack = c.Tables[i].BigBlind * 100
		}
	}

	for i := range c.Players {
		if len(c.Players[i].Tables) == 0 {
			for _, table := range c.Tables {
				c.Players[i].Tables = append(c.Players[i].Tables, table.Name)
			}
		}
	}
}

// Validate checks the configuration for a runnable simulation
func (c *Config) Validate() error {
	s := c.Simulation
	if s == nil {
		return fmt.Errorf("missing simulation block")
	}
	if s.Hands <= 0 {
		return fmt.Errorf("hands must be positive, got %d", s.Hands)
	}
	if s.Tables <= 0 {
		return fmt.Errorf("tables must be positive, got %d", s.Tables)
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", s.LogLevel)
	}

	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}
	tableNames := make(map[string]bool, len(c.Tables))
	for _, table := range c.Tables {
		if tableNames[table.Name] {
			return fmt.Errorf("table %s: defined twice", table.Name)
		}
		tableNames[table.Name] = true
		if table.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", table.Name)
		}
		if table.BigBlind < table.SmallBlind {
			return fmt.Errorf("table %s: big blind must not be less than small blind", table.Name)
		}
		if table.StartingStack <= 0 {
			return fmt.Errorf("table %s: starting stack must be positive", table.Name)
		}
	}

	playerNames := make(map[string]bool, len(c.Players))
	strategies := bot.Names()
	for _, p := range c.Players {
		if playerNames[p.Name] {
			return fmt.Errorf("player %s: defined twice", p.Name)
		}
		playerNames[p.Name] = true
		if !slices.Contains(strategies, p.Strategy) {
			return fmt.Errorf("player %s: invalid strategy %s", p.Name, p.Strategy)
		}
		if p.Strategy == bot.HumanPendingName {
			return fmt.Errorf("player %s: strategy %s needs interactive input and cannot be simulated", p.Name, p.Strategy)
		}
		if p.Stack < 0 {
			return fmt.Errorf("player %s: stack must not be negative", p.Name)
		}
		for _, t := range p.Tables {
			if !tableNames[t] {
				return fmt.Errorf("player %s: unknown table %s", p.Name, t)
			}
		}
	}

	for _, table := range c.Tables {
		n := len(c.PlayersAt(table.Name))
		if n < 2 || n > game.MaxSeats {
			return fmt.Errorf("table %s: needs 2 to %d players, has %d", table.Name, game.MaxSeats, n)
		}
	}
	return nil
}

// TableByName returns a table configuration by name
func (c *Config) TableByName(name string) *TableConfig {
	for i := range c.Tables {
		if c.Tables[i].Name == name {
			return &c.Tables[i]
		}
	}
	return nil
}

// PlayersAt returns the players seated at a table, in configuration order.
func (c *Config) PlayersAt(table string) []PlayerConfig {
	var out []PlayerConfig
	for _, p := range c.Players {
		if slices.Contains(p.Tables, table) {
			out = append(out, p)
		}
	}
	return out
}

// StackFor returns the player's buy-in at table, falling back to the table's
// starting stack.
func (c *Config) StackFor(p PlayerConfig, table TableConfig) int {
	if p.Stack > 0 {
		return p.Stack
	}
	return table.StartingStack
}
