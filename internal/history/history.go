// Package history records match telemetry to SQLite: periodic state
// samples and the event log, keyed by match ID. It is write-mostly and
// never feeds state back into a running simulation.
package history

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/starhold/internal/sim"
)

// DB wraps the SQLite connection for match telemetry.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the telemetry database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		match_id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS match_stats (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id TEXT NOT NULL,
		sim_time REAL NOT NULL,
		player_systems INTEGER NOT NULL,
		ai_systems INTEGER NOT NULL,
		neutral_systems INTEGER NOT NULL,
		fleets INTEGER NOT NULL,
		credits REAL NOT NULL,
		outcome TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS match_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id TEXT NOT NULL,
		sim_time REAL NOT NULL,
		category TEXT NOT NULL,
		message TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_stats_match ON match_stats(match_id);
	CREATE INDEX IF NOT EXISTS idx_events_match ON match_events(match_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordMatch registers a match at startup. Re-recording the same ID is a
// no-op.
func (db *DB) RecordMatch(matchID string, seed uint32) error {
	_, err := db.conn.Exec(
		"INSERT OR IGNORE INTO matches (match_id, seed) VALUES (?, ?)",
		matchID, seed,
	)
	return err
}

// RecordStats appends one telemetry sample for a match.
func (db *DB) RecordStats(matchID string, st sim.Stats) error {
	_, err := db.conn.Exec(`INSERT INTO match_stats
		(match_id, sim_time, player_systems, ai_systems, neutral_systems, fleets, credits, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		matchID, st.SimTime, st.PlayerSystems, st.AISystems,
		st.NeutralSystems, st.Fleets, st.Credits, st.Outcome,
	)
	return err
}

// RecordEvents appends match log entries in one transaction.
func (db *DB) RecordEvents(matchID string, events []sim.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO match_events (match_id, sim_time, category, message) VALUES (?, ?, ?, ?)",
			matchID, e.SimTime, e.Category, e.Message,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// StatsRow is one telemetry sample as stored.
type StatsRow struct {
	SimTime        float64 `db:"sim_time" json:"sim_time"`
	PlayerSystems  int     `db:"player_systems" json:"player_systems"`
	AISystems      int     `db:"ai_systems" json:"ai_systems"`
	NeutralSystems int     `db:"neutral_systems" json:"neutral_systems"`
	Fleets         int     `db:"fleets" json:"fleets"`
	Credits        float64 `db:"credits" json:"credits"`
	Outcome        string  `db:"outcome" json:"outcome"`
}

// LoadStats returns a match's samples in chronological order, up to limit
// (0 means all).
func (db *DB) LoadStats(matchID string, limit int) ([]StatsRow, error) {
	query := `SELECT sim_time, player_systems, ai_systems, neutral_systems,
		fleets, credits, outcome
		FROM match_stats WHERE match_id = ? ORDER BY id`
	args := []any{matchID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []StatsRow
	err := db.conn.Select(&rows, query, args...)
	return rows, err
}

// MatchRow is one registered match.
type MatchRow struct {
	MatchID   string `db:"match_id" json:"match_id"`
	Seed      uint32 `db:"seed" json:"seed"`
	StartedAt string `db:"started_at" json:"started_at"`
}

// RecentMatches lists the newest matches first.
func (db *DB) RecentMatches(limit int) ([]MatchRow, error) {
	var rows []MatchRow
	err := db.conn.Select(&rows,
		"SELECT match_id, seed, started_at FROM matches ORDER BY started_at DESC LIMIT ?",
		limit,
	)
	return rows, err
}
