package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	LogLevel string           `help:"Log level, overriding the configuration (debug, info, warn, error)"`
	NoColor  bool             `help:"Disable colored output"`

	Simulate SimulateCmd `cmd:"" help:"Play bot-driven hands and report results per strategy"`
	Stats    StatsCmd    `cmd:"" help:"Show player statistics saved by earlier simulations"`
}

// Globals are the flags shared by every command.
type Globals struct {
	LogLevel string
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Texas Hold'em hand engine and bot simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	err := ctx.Run(&Globals{LogLevel: cli.LogLevel})
	ctx.FatalIfErrorf(err)
}

// newLogger builds the root logger. An empty or unknown level means info.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "holdem",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
