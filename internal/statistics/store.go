package statistics

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lox/holdem-engine/internal/game"
)

var streetColumns = []string{"hands", "folds", "checks", "calls", "bets", "raises"}

// columns lists the counter columns in the order values and targets use.
func columns() []string {
	cols := []string{"hands", "vpip_hands", "pfr_hands", "limps", "three_bets", "continuation_bets"}
	for st := game.Preflop; st < game.PostRiver; st++ {
		for _, c := range streetColumns {
			cols = append(cols, st.String()+"_"+c)
		}
	}
	return cols
}

func targets(s *PlayerStatistics) []any {
	out := []any{&s.Hands, &s.VPIPHands, &s.PFRHands, &s.Limps, &s.ThreeBets, &s.ContinuationBets}
	for st := range s.Streets {
		c := &s.Streets[st]
		out = append(out, &c.Hands, &c.Folds, &c.Checks, &c.Calls, &c.Bets, &c.Raises)
	}
	return out
}

func values(s PlayerStatistics) []any {
	var out []any
	for _, p := range targets(&s) {
		out = append(out, *(p.(*int)))
	}
	return out
}

// Store persists player statistics in SQLite, one row per strategy and table
// size. It implements game.StatisticsStore and is safe for concurrent use.
type Store struct {
	db     *sql.DB
	logger *log.Logger
	mu     sync.Mutex
}

// Open opens or creates the database at path.
func Open(path string, logger *log.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open statistics db: %w", err)
	}
	// SQLite has a single writer.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create statistics tables: %w", err)
	}
	return &Store{db: db, logger: logger.WithPrefix("stats")}, nil
}

func createTables(db *sql.DB) error {
	var defs []string
	for _, c := range columns() {
		defs = append(defs, c+" INTEGER NOT NULL DEFAULT 0")
	}
	_, err := db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS player_statistics (
			strategy TEXT NOT NULL,
			table_players INTEGER NOT NULL,
			%s,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (strategy, table_players)
		)
	`, strings.Join(defs, ",\n\t\t\t")))
	return err
}

// Save adds the hand's counters for every player who acted preflop.
func (s *Store) Save(hand game.HandSnapshot) error {
	stats := Tally(hand)
	if len(stats) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var sets []string
	for _, c := range columns() {
		sets = append(sets, fmt.Sprintf("%s = %s + ?", c, c))
	}
	update := fmt.Sprintf(`
		UPDATE player_statistics
		SET %s, updated_at = CURRENT_TIMESTAMP
		WHERE strategy = ? AND table_players = ?
	`, strings.Join(sets, ", "))

	for _, st := range stats {
		_, err := tx.Exec(`
			INSERT OR IGNORE INTO player_statistics (strategy, table_players)
			VALUES (?, ?)
		`, st.Strategy, st.TablePlayers)
		if err != nil {
			return fmt.Errorf("insert statistics for %s: %w", st.Strategy, err)
		}
		args := append(values(st), st.Strategy, st.TablePlayers)
		if _, err := tx.Exec(update, args...); err != nil {
			return fmt.Errorf("update statistics for %s: %w", st.Strategy, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Debug("statistics saved", "hand", hand.HandID, "players", len(stats))
	return nil
}

// Load returns the aggregate for one strategy at one table size. A missing row
// is returned as zero counters.
func (s *Store) Load(strategy string, tablePlayers int) (PlayerStatistics, error) {
	st := PlayerStatistics{Strategy: strategy, TablePlayers: tablePlayers}
	query := fmt.Sprintf(`
		SELECT %s FROM player_statistics
		WHERE strategy = ? AND table_players = ?
	`, strings.Join(columns(), ", "))
	err := s.db.QueryRow(query, strategy, tablePlayers).Scan(targets(&st)...)
	if err == sql.ErrNoRows {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("load statistics for %s: %w", strategy, err)
	}
	return st, nil
}

// All returns every stored aggregate ordered by strategy and table size.
func (s *Store) All() ([]PlayerStatistics, error) {
	query := fmt.Sprintf(`
		SELECT strategy, table_players, %s FROM player_statistics
		ORDER BY strategy, table_players
	`, strings.Join(columns(), ", "))
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query statistics: %w", err)
	}
	defer rows.Close()

	var out []PlayerStatistics
	for rows.Next() {
		var st PlayerStatistics
		dest := append([]any{&st.Strategy, &st.TablePlayers}, targets(&st)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan statistics: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
