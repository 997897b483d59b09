package phh

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/lox/holdem-engine/internal/deck"
	"github.com/lox/holdem-engine/internal/game"
)

// FromHand converts a concluded hand. snap must be taken after Conclude so
// stacks are final; res supplies payouts and the showdown reveal order.
func FromHand(table string, snap game.HandSnapshot, res game.HandResult, at time.Time) *HandHistory {
	order := playerOrder(snap.Players)
	n := len(order)
	at = at.UTC()

	h := &HandHistory{
		Variant:           "NT",
		Table:             table,
		SeatCount:         n,
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            snap.Blinds.Big,
		HandID:            snap.HandID,
		Time:              at.Format(time.TimeOnly),
		TimeZone:          "UTC",
		Day:               at.Day(),
		Month:             int(at.Month()),
		Year:              at.Year(),
	}

	label := make(map[int]string, n)
	for i, idx := range order {
		p := snap.Players[idx]
		label[p.ID] = fmt.Sprintf("p%d", i+1)
		h.Seats = append(h.Seats, idx+1)
		h.Players = append(h.Players, p.Name)
		h.StartingStacks = append(h.StartingStacks, p.StartingStack)
		h.FinishingStacks = append(h.FinishingStacks, p.Stack)
		h.Winnings = append(h.Winnings, res.Payouts[p.ID])
		switch {
		case p.Role.Has(game.RoleSmallBlind):
			h.BlindsOrStraddles[i] = snap.Blinds.Small
		case p.Role.Has(game.RoleBigBlind):
			h.BlindsOrStraddles[i] = snap.Blinds.Big
		}
	}

	for _, idx := range order {
		p := snap.Players[idx]
		h.Actions = append(h.Actions, fmt.Sprintf("d dh %s %s", label[p.ID], joinCards(p.HoleCards.Cards())))
	}

	// Street totals replayed from the blinds so raises and all-ins can be
	// written as PHH "complete, bet or raise to" amounts.
	contrib := make(map[int]int, n)
	highest := 0
	for _, p := range snap.Players {
		if p.Role.Has(game.RoleSmallBlind) {
			contrib[p.ID] = min(snap.Blinds.Small, p.StartingStack)
		}
		if p.Role.Has(game.RoleBigBlind) {
			contrib[p.ID] = min(snap.Blinds.Big, p.StartingStack)
		}
		highest = max(highest, contrib[p.ID])
	}

	dealt := 0
	for _, round := range snap.History {
		if round.State != game.Preflop {
			clear(contrib)
			highest = 0
		}
		if size := round.State.BoardSize(); size > dealt && size <= len(snap.Board) {
			h.Actions = append(h.Actions, "d db "+joinCards(snap.Board[dealt:size]))
			dealt = size
		}
		for _, a := range round.Actions {
			h.Actions = append(h.Actions, label[a.PlayerID]+" "+replay(a, contrib, &highest))
		}
	}
	for _, size := range []int{3, 4, 5} {
		if size > dealt && size <= len(snap.Board) {
			h.Actions = append(h.Actions, "d db "+joinCards(snap.Board[dealt:size]))
			dealt = size
		}
	}

	if res.Showdown {
		for _, id := range res.RevealOrder {
			if p, ok := snap.Player(id); ok {
				h.Actions = append(h.Actions, fmt.Sprintf("%s sm %s", label[id], joinCards(p.HoleCards.Cards())))
			}
		}
	}
	return h
}

// replay returns the PHH verb for a and updates the street totals.
func replay(a game.PlayerAction, contrib map[int]int, highest *int) string {
	switch a.Type {
	case game.Fold:
		return "f"
	case game.Check, game.Call:
		contrib[a.PlayerID] += a.Amount
		return "cc"
	case game.Bet, game.Allin:
		contrib[a.PlayerID] += a.Amount
	case game.Raise:
		contrib[a.PlayerID] = a.Amount
	}
	total := contrib[a.PlayerID]
	if total <= *highest {
		return "cc"
	}
	*highest = total
	return fmt.Sprintf("cbr %d", total)
}

// playerOrder returns seat indices starting at the small blind.
func playerOrder(players []game.PlayerSnapshot) []int {
	sb := slices.IndexFunc(players, func(p game.PlayerSnapshot) bool { return p.Role.Has(game.RoleSmallBlind) })
	if sb < 0 {
		sb = 0
	}
	out := make([]int, len(players))
	for i := range out {
		out[i] = (sb + i) % len(players)
	}
	return out
}

func joinCards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}
