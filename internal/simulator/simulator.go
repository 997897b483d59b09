// Package simulator plays many hands of bot-driven Hold'em. Stacks carry from
// hand to hand, the button rotates and busted players leave; independent
// tables run concurrently.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-engine/internal/bot"
	"github.com/lox/holdem-engine/internal/config"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/game"
	"github.com/lox/holdem-engine/internal/history"
	"github.com/lox/holdem-engine/internal/phh"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/internal/statistics"
)

// maxDecisions bounds the decisions requested in one hand. Every decision
// either advances the hand or counts toward an auto-fold, so a legal hand
// never gets close.
const maxDecisions = 1000

// ErrAwaitingInput is returned when a seat's strategy has no action to give.
var ErrAwaitingInput = errors.New("strategy is waiting for input")

// Option configures a Simulator.
type Option func(*Simulator)

// WithClock sets the clock used for history timestamps and table timing.
func WithClock(clock quartz.Clock) Option {
	return func(s *Simulator) {
		s.clock = clock
	}
}

// WithStatistics saves player statistics after every hand.
func WithStatistics(store game.StatisticsStore) Option {
	return func(s *Simulator) {
		s.store = store
	}
}

// Simulator runs the tables described by a configuration.
type Simulator struct {
	cfg    *config.Config
	logger *log.Logger
	clock  quartz.Clock
	store  game.StatisticsStore
	eval   *evaluator.Evaluator
}

// New creates a simulator. The configuration is validated by Run.
func New(cfg *config.Config, logger *log.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		cfg:    cfg,
		logger: logger.WithPrefix("sim"),
		clock:  quartz.NewReal(),
		eval:   evaluator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TableResult is the outcome of one table.
type TableResult struct {
	Table      string
	Replica    int
	Seed       int64
	Hands      int
	Showdowns  int
	Errors     int
	BigBlind   int
	Starting   map[string]int
	Final      map[string]int
	Busted     []string
	Strategies map[string]*statistics.Summary
	Duration   time.Duration
}

// Net returns each player's chip result at the table.
func (t TableResult) Net() map[string]int {
	out := make(map[string]int, len(t.Final))
	for name, chips := range t.Final {
		out[name] = chips - t.Starting[name]
	}
	return out
}

// Result is the outcome of a whole run.
type Result struct {
	Tables     []TableResult
	Strategies map[string]*statistics.Summary
}

// Hands is the number of hands played across all tables.
func (r *Result) Hands() int {
	n := 0
	for _, t := range r.Tables {
		n += t.Hands
	}
	return n
}

// StrategyNames returns the strategies with results, sorted.
func (r *Result) StrategyNames() []string {
	names := make([]string, 0, len(r.Strategies))
	for name := range r.Strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type tableRun struct {
	table   config.TableConfig
	replica int
	seed    int64
}

// Run plays every table to completion, or until a table runs out of players.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var runs []tableRun
	for _, table := range s.cfg.Tables {
		for r := 0; r < s.cfg.Simulation.Tables; r++ {
			runs = append(runs, tableRun{table: table, replica: r, seed: s.cfg.Simulation.Seed + int64(len(runs))})
		}
	}

	results := make([]TableResult, len(runs))
	g, ctx := errgroup.WithContext(ctx)
	for i, run := range runs {
		g.Go(func() error {
			res, err := s.runTable(ctx, run)
			if err != nil {
				return fmt.Errorf("table %s/%d: %w", run.table.Name, run.replica, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Result{Tables: results, Strategies: make(map[string]*statistics.Summary)}
	for _, t := range results {
		for name, summary := range t.Strategies {
			if out.Strategies[name] == nil {
				out.Strategies[name] = &statistics.Summary{}
			}
			out.Strategies[name].Merge(summary)
		}
	}
	return out, nil
}

type seat struct {
	id       int
	name     string
	strategy game.BotStrategy
	stack    int
}

func (s *Simulator) runTable(ctx context.Context, run tableRun) (TableResult, error) {
	logger := s.logger.With("table", run.table.Name, "replica", run.replica)
	started := s.clock.Now()

	res := TableResult{
		Table:      run.table.Name,
		Replica:    run.replica,
		Seed:       run.seed,
		BigBlind:   run.table.BigBlind,
		Starting:   make(map[string]int),
		Final:      make(map[string]int),
		Strategies: make(map[string]*statistics.Summary),
	}

	var seats []*seat
	for i, p := range s.cfg.PlayersAt(run.table.Name) {
		strategy, err := bot.New(p.Strategy, randutil.New(run.seed*31+int64(i)+1), logger, s.eval)
		if err != nil {
			return res, err
		}
		st := &seat{id: i, name: p.Name, strategy: strategy, stack: s.cfg.StackFor(p, run.table)}
		seats = append(seats, st)
		res.Starting[st.name] = st.stack
		if res.Strategies[p.Strategy] == nil {
			res.Strategies[p.Strategy] = &statistics.Summary{}
		}
	}

	events := game.Events{
		OnEngineError: func(string) { res.Errors++ },
	}
	var handDir string
	if dir := s.cfg.Simulation.HistoryDir; dir != "" {
		handDir = filepath.Join(dir, fmt.Sprintf("%s-%d", run.table.Name, run.replica))
		rec := history.NewRecorder(handDir, s.clock, logger)
		events = game.Combine(events, rec.Events())
	}
	caps := game.Capabilities{
		Randomizer: randutil.NewRandomizer(run.seed),
		Evaluator:  s.eval,
		Logger:     logger,
	}
	if s.store != nil {
		caps.Statistics = s.store
	}
	hand := game.NewHand(caps, game.WithEvents(events))

	button := len(seats) - 1
	for n := 0; n < s.cfg.Simulation.Hands; n++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var live []*seat
		for _, st := range seats {
			if st.stack > 0 {
				live = append(live, st)
			}
		}
		if len(live) < 2 {
			logger.Info("table finished early", "hands", n, "players", len(live))
			break
		}
		button = nextLive(seats, button)
		dealer := slices.IndexFunc(live, func(st *seat) bool { return st == seats[button] })

		if err := s.playHand(hand, live, run.table.Blinds(), dealer, handDir, &res); err != nil {
			return res, err
		}
	}

	for _, st := range seats {
		res.Final[st.name] = st.stack
	}
	res.Duration = s.clock.Since(started)
	logger.Info("table complete", "hands", res.Hands, "showdowns", res.Showdowns, "busted", len(res.Busted), "duration", res.Duration)
	return res, nil
}

// nextLive returns the index of the next seat after from that still has chips.
func nextLive(seats []*seat, from int) int {
	for i := 1; i <= len(seats); i++ {
		idx := (from + i) % len(seats)
		if seats[idx].stack > 0 {
			return idx
		}
	}
	return from
}

// playHand plays one hand to conclusion and carries the stacks back to live.
// When dir is set the hand is also written there in PHH form.
func (s *Simulator) playHand(hand *game.Hand, live []*seat, blinds game.Blinds, dealer int, dir string, res *TableResult) error {
	entering := make([]game.Seat, len(live))
	before := 0
	for i, st := range live {
		entering[i] = game.Seat{ID: st.id, Name: st.name, Stack: st.stack, Strategy: st.strategy}
		before += st.stack
	}
	if err := hand.Initialize(entering, blinds, dealer); err != nil {
		return err
	}

	for decisions := 0; !hand.IsTerminal(); decisions++ {
		if decisions >= maxDecisions {
			return fmt.Errorf("hand %s: no conclusion after %d decisions", hand.ID(), decisions)
		}
		id := hand.CurrentPlayer()
		bctx, ok := hand.BotContext(id)
		if !ok {
			return fmt.Errorf("hand %s: current player %d is not seated", hand.ID(), id)
		}
		action, ok := hand.Strategy(id).Decide(bctx)
		if !ok {
			return fmt.Errorf("hand %s, player %d: %w", hand.ID(), id, ErrAwaitingInput)
		}
		if _, err := hand.SubmitAction(action); err != nil {
			return err
		}
	}

	result, err := hand.Conclude()
	if err != nil {
		return err
	}

	after := 0
	byID := make(map[int]game.PlayerSnapshot, len(result.Players))
	for _, p := range result.Players {
		after += p.Stack
		byID[p.ID] = p
	}
	if after != before {
		return fmt.Errorf("%w: hand %s started with %d chips and ended with %d", game.ErrChipConservation, result.HandID, before, after)
	}

	if dir != "" {
		record := phh.FromHand(res.Table, hand.Snapshot(), result, s.clock.Now())
		if err := phh.WriteFile(filepath.Join(dir, result.HandID+".phh"), record); err != nil {
			return fmt.Errorf("write hand history: %w", err)
		}
	}

	res.Hands++
	if result.Showdown {
		res.Showdowns++
	}
	for _, st := range live {
		p := byID[st.id]
		net := p.Stack - st.stack
		st.stack = p.Stack
		showdown := result.Showdown && p.Status != game.Folded
		res.Strategies[st.strategy.Name()].Add(float64(net)/float64(blinds.Big), showdown)
		if st.stack == 0 {
			res.Busted = append(res.Busted, st.name)
		}
	}
	return nil
}
