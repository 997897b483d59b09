package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/internal/simulator"
	"github.com/lox/holdem-engine/internal/statistics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

func signed(v float64) string {
	s := fmt.Sprintf("%+.3f", v)
	switch {
	case v > 0:
		return winStyle.Render(s)
	case v < 0:
		return lossStyle.Render(s)
	}
	return s
}

// renderResult formats a simulation result: one line per table, then the
// per-strategy summary in big blinds per hand.
func renderResult(res *simulator.Result) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf(" ♠ ♥ %d hands ♦ ♣ ", res.Hands())))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-14s %7s %9s %7s %s", "Table", "Hands", "Showdowns", "Busted", "Time")))
	b.WriteString("\n")
	for _, t := range res.Tables {
		name := fmt.Sprintf("%s/%d", t.Table, t.Replica)
		fmt.Fprintf(&b, "%-14s %7d %9d %7d %s\n", name, t.Hands, t.Showdowns, len(t.Busted), mutedStyle.Render(t.Duration.String()))
	}
	b.WriteString("\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-18s %7s %10s %10s %8s %8s %21s", "Strategy", "Hands", "bb/hand", "Median", "StdDev", "Win %", "95% CI")))
	b.WriteString("\n")
	for _, name := range res.StrategyNames() {
		s := res.Strategies[name]
		low, high := s.ConfidenceInterval95()
		winRate := 0.0
		if s.Hands > 0 {
			winRate = float64(s.Wins) / float64(s.Hands) * 100
		}
		fmt.Fprintf(&b, "%-18s %7d %s %10.3f %8.3f %7.1f%% [%8.3f, %8.3f]\n",
			name, s.Hands, pad(signed(s.Mean()), 10), s.Median(), s.StdDev(), winRate, low, high)
	}
	return b.String()
}

// renderStatistics formats stored player statistics.
func renderStatistics(rows []statistics.PlayerStatistics) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Player statistics "))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-18s %7s %7s %6s %6s %6s %6s %6s %6s", "Strategy", "Players", "Hands", "VPIP", "PFR", "AF", "Limps", "3Bets", "CBets")))
	b.WriteString("\n")
	for _, s := range rows {
		fmt.Fprintf(&b, "%-18s %7d %7d %5.1f%% %5.1f%% %6.2f %6d %6d %6d\n",
			s.Strategy, s.TablePlayers, s.Hands, s.VPIP(), s.PFR(), s.AggressionFactor(), s.Limps, s.ThreeBets, s.ContinuationBets)
	}
	return b.String()
}

// pad right-aligns a styled string to width visible cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}
