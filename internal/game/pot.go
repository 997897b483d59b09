package game

import (
	"slices"
)

// Contender is one seat's stake in the pot at settlement. Contenders are passed
// in seat order.
type Contender struct {
	ID           int
	Contribution int
	Folded       bool
	// Rank is the showdown rank, higher is better. Ignored for folded players.
	Rank int
}

// Pot is one tier of the hand's chips: the main pot first, then side pots.
type Pot struct {
	// Level is the cumulative contribution that caps this tier.
	Level    int
	Amount   int
	Eligible []int
	Winners  []int
	Shares   map[int]int
}

// Settlement is the result of distributing the pot.
type Settlement struct {
	Total   int
	Pots    []Pot
	Payouts map[int]int
}

// Winners returns the ids of players receiving chips, in seat order.
func (s Settlement) Winners(contenders []Contender) []int {
	var out []int
	for _, c := range contenders {
		if s.Payouts[c.ID] > 0 {
			out = append(out, c.ID)
		}
	}
	return out
}

// Settle splits the contributed chips into tiers at each distinct contribution
// level of the non-folded players and awards each tier to its best eligible
// hands. Folded chips are counted in every tier they reach but folded players
// never win. Split remainders go one chip at a time to winners in clockwise
// order starting left of the dealer (dealer is an index into contenders).
// Chips above the highest non-folded level go to the winners of the top tier.
func Settle(contenders []Contender, dealer int) Settlement {
	s := Settlement{Payouts: make(map[int]int)}
	for _, c := range contenders {
		s.Total += c.Contribution
	}

	var levels []int
	for _, c := range contenders {
		if !c.Folded && c.Contribution > 0 && !slices.Contains(levels, c.Contribution) {
			levels = append(levels, c.Contribution)
		}
	}
	if len(levels) == 0 {
		return s
	}
	slices.Sort(levels)

	order := clockwiseFrom(len(contenders), dealer+1)
	prev := 0
	for _, level := range levels {
		pot := Pot{Level: level}
		for _, c := range contenders {
			pot.Amount += min(c.Contribution, level) - min(c.Contribution, prev)
			if !c.Folded && c.Contribution >= level {
				pot.Eligible = append(pot.Eligible, c.ID)
			}
		}
		s.Pots = append(s.Pots, pot)
		prev = level
	}

	distributed := 0
	for _, p := range s.Pots {
		distributed += p.Amount
	}
	s.Pots[len(s.Pots)-1].Amount += s.Total - distributed

	byID := make(map[int]Contender, len(contenders))
	for _, c := range contenders {
		byID[c.ID] = c
	}
	for i := range s.Pots {
		p := &s.Pots[i]
		p.Winners = bestHands(p.Eligible, byID)
		p.Shares = split(p.Amount, p.Winners, order, contenders)
		for id, chips := range p.Shares {
			s.Payouts[id] += chips
		}
	}
	return s
}

func bestHands(eligible []int, byID map[int]Contender) []int {
	var winners []int
	best := 0
	for _, id := range eligible {
		r := byID[id].Rank
		switch {
		case len(winners) == 0 || r > best:
			best = r
			winners = []int{id}
		case r == best:
			winners = append(winners, id)
		}
	}
	return winners
}

func split(amount int, winners []int, order []int, contenders []Contender) map[int]int {
	shares := make(map[int]int, len(winners))
	if len(winners) == 0 || amount <= 0 {
		return shares
	}
	each, rem := amount/len(winners), amount%len(winners)
	for _, id := range winners {
		shares[id] = each
	}
	for _, idx := range order {
		if rem == 0 {
			break
		}
		id := contenders[idx].ID
		if _, ok := shares[id]; ok {
			shares[id]++
			rem--
		}
	}
	return shares
}

// clockwiseFrom returns the n seat indices starting at start and wrapping.
func clockwiseFrom(n, start int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = ((start+i)%n + n) % n
	}
	return out
}

type revealLevel struct {
	rank, contribution int
}

// RevealOrder returns the ids of the players who show their cards, in order.
//
// When the hand ended all-in (or uncontested) every non-folded player shows,
// clockwise from the seat left of the dealer. Otherwise the last voluntary
// actor shows first and each later player, going clockwise, shows only if the
// hand beats what has been shown or if it put in more chips than the shown
// hands it cannot beat.
func RevealOrder(contenders []Contender, lastActorID int, allIn bool, dealer int) []int {
	n := len(contenders)
	if n == 0 {
		return nil
	}
	if allIn {
		var out []int
		for _, idx := range clockwiseFrom(n, dealer+1) {
			if !contenders[idx].Folded {
				out = append(out, contenders[idx].ID)
			}
		}
		return out
	}

	first := -1
	for i, c := range contenders {
		if c.ID == lastActorID && !c.Folded {
			first = i
			break
		}
	}
	if first < 0 {
		first = slices.IndexFunc(contenders, func(c Contender) bool { return !c.Folded })
	}
	if first < 0 {
		return nil
	}

	out := []int{contenders[first].ID}
	levels := []revealLevel{{contenders[first].Rank, contenders[first].Contribution}}
	for _, idx := range clockwiseFrom(n, first+1) {
		c := contenders[idx]
		if c.Folded || idx == first {
			continue
		}
		var shows bool
		levels, shows = admitReveal(levels, c.Rank, c.Contribution)
		if shows {
			out = append(out, c.ID)
		}
	}
	return out
}

// admitReveal walks the shown levels from weakest to strongest. levels is
// ordered by ascending rank.
func admitReveal(levels []revealLevel, rank, contribution int) ([]revealLevel, bool) {
	for i := range levels {
		lv := &levels[i]
		switch {
		case rank > lv.rank:
			if i == len(levels)-1 {
				return append(levels, revealLevel{rank, contribution}), true
			}
		case rank == lv.rank:
			if i == len(levels)-1 || contribution > levels[i+1].contribution {
				lv.contribution = max(lv.contribution, contribution)
				return levels, true
			}
			return levels, false
		default:
			if contribution > lv.contribution {
				return slices.Insert(levels, i, revealLevel{rank, contribution}), true
			}
			return levels, false
		}
	}
	return levels, false
}
