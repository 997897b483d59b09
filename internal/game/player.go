package game

import (
	"strings"

	"github.com/lox/holdem-engine/internal/deck"
)

// Role is the button/blind position of a player for this hand. Heads-up the
// dealer is also the small blind, so roles combine as flags.
type Role uint8

const (
	RoleNone       Role = 0
	RoleDealer     Role = 1 << 0
	RoleSmallBlind Role = 1 << 1
	RoleBigBlind   Role = 1 << 2
)

// Has reports whether r includes f.
func (r Role) Has(f Role) bool {
	return r&f != 0
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	var parts []string
	if r.Has(RoleDealer) {
		parts = append(parts, "dealer")
	}
	if r.Has(RoleSmallBlind) {
		parts = append(parts, "small_blind")
	}
	if r.Has(RoleBigBlind) {
		parts = append(parts, "big_blind")
	}
	return strings.Join(parts, "+")
}

// Status is whether a player can still act.
type Status int

const (
	Active Status = iota
	Folded
	AllIn
)

func (s Status) String() string {
	return [...]string{"active", "folded", "allin"}[s]
}

// Seat is one player entering a hand.
type Seat struct {
	ID       int
	Name     string
	Stack    int
	Strategy BotStrategy
}

// Blinds are the forced bets for the hand.
type Blinds struct {
	Small int
	Big   int
}

// player is the hand-scoped view of a seat. Only Hand mutates it.
type player struct {
	id       int
	name     string
	strategy BotStrategy

	startingStack      int
	stack              int
	streetContribution int
	totalContribution  int

	role       Role
	status     Status
	lastAction PlayerAction
	acted      bool

	hole    deck.HoleCards
	rank    int
	actions [PostRiver][]PlayerAction
}

func newPlayer(s Seat) *player {
	return &player{
		id:            s.ID,
		name:          s.Name,
		strategy:      s.Strategy,
		startingStack: s.Stack,
		stack:         s.Stack,
	}
}

func (p *player) canAct() bool {
	return p.status == Active
}

func (p *player) inHand() bool {
	return p.status != Folded
}

// pay moves up to n chips from the stack into the pot and returns the amount moved.
func (p *player) pay(n int) int {
	if n > p.stack {
		n = p.stack
	}
	if n < 0 {
		n = 0
	}
	p.stack -= n
	p.streetContribution += n
	p.totalContribution += n
	if p.stack == 0 && p.status == Active {
		p.status = AllIn
	}
	return n
}

func (p *player) strategyName() string {
	if p.strategy == nil {
		return ""
	}
	return p.strategy.Name()
}

func (p *player) snapshot() PlayerSnapshot {
	s := PlayerSnapshot{
		ID:                 p.id,
		Name:               p.name,
		Strategy:           p.strategyName(),
		StartingStack:      p.startingStack,
		Stack:              p.stack,
		StreetContribution: p.streetContribution,
		TotalContribution:  p.totalContribution,
		Role:               p.role,
		Status:             p.status,
		LastAction:         p.lastAction,
		HoleCards:          p.hole,
		HandRank:           p.rank,
	}
	for st := Preflop; st < PostRiver; st++ {
		if len(p.actions[st]) > 0 {
			s.Actions[st] = append([]PlayerAction(nil), p.actions[st]...)
		}
	}
	return s
}
