// Package storage provides SQLite-based persistence for save slots and
// solved puzzles. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultSlot is the save slot used when none is named.
const DefaultSlot = "default"

// Store manages the SQLite database connection.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// Slot is one saved settings container.
type Slot struct {
	Name      string
	Data      []byte // Encoded towers.Settings
	Moves     int    // Move counter of the unfinished game
	UpdatedAt time.Time
}

// Solve is one solved puzzle.
type Solve struct {
	ID        string
	Width     int
	Height    int
	Towers    int
	Seed      string
	Moves     int
	CreatedAt time.Time
}

// SizeStats aggregates the solves of one board size.
type SizeStats struct {
	Width      int
	Height     int
	Solved     int
	BestMoves  int
	AvgMoves   float64
	LastSolved time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
// A nil logger discards log output.
func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, logger: logger}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	logger.Debug("database opened", "path", dbPath)
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS saves (
			slot TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS solves (
			id TEXT PRIMARY KEY,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			towers INTEGER NOT NULL,
			seed TEXT NOT NULL,
			moves INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solves_size ON solves(width, height);
		CREATE INDEX IF NOT EXISTS idx_solves_created ON solves(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSlot writes data to the named slot, replacing what was there.
func (s *Store) SaveSlot(slot string, data []byte, moves int) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, data, moves, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET data = excluded.data, moves = excluded.moves, updated_at = excluded.updated_at`,
		slot, data, moves,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save slot %s: %w", slot, err)
	}
	s.logger.Debug("slot saved", "slot", slot, "bytes", len(data), "moves", moves)
	return nil
}

// LoadSlot reads the named slot. Returns nil, nil if the slot is empty.
func (s *Store) LoadSlot(slot string) (*Slot, error) {
	var (
		out       Slot
		updatedAt any
	)
	err := s.db.QueryRow(
		"SELECT slot, data, moves, updated_at FROM saves WHERE slot = ?",
		slot,
	).Scan(&out.Name, &out.Data, &out.Moves, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load slot %s: %w", slot, err)
	}
	out.UpdatedAt = parseTime(updatedAt)
	return &out, nil
}

// DeleteSlot removes the named slot. Deleting a missing slot is not an error.
func (s *Store) DeleteSlot(slot string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete slot %s: %w", slot, err)
	}
	return nil
}

// ListSlots returns every slot, most recently saved first.
func (s *Store) ListSlots() ([]Slot, error) {
	rows, err := s.db.Query(
		"SELECT slot, data, moves, updated_at FROM saves ORDER BY updated_at DESC, slot",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var (
			sl        Slot
			updatedAt any
		)
		if err := rows.Scan(&sl.Name, &sl.Data, &sl.Moves, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sl.UpdatedAt = parseTime(updatedAt)
		slots = append(slots, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}

// RecordSolve stores a solved puzzle and returns its generated ID.
func (s *Store) RecordSolve(solve Solve) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO solves (id, width, height, towers, seed, moves)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, solve.Width, solve.Height, solve.Towers, solve.Seed, solve.Moves,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot record solve: %w", err)
	}
	s.logger.Info("puzzle solved", "id", id, "size", fmt.Sprintf("%dx%d", solve.Width, solve.Height), "moves", solve.Moves)
	return id, nil
}

// RecentSolves retrieves the most recent solves, newest first.
func (s *Store) RecentSolves(limit int) ([]Solve, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, width, height, towers, seed, moves, created_at
		 FROM solves
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		var (
			sv        Solve
			createdAt any
		)
		if err := rows.Scan(&sv.ID, &sv.Width, &sv.Height, &sv.Towers, &sv.Seed, &sv.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sv.CreatedAt = parseTime(createdAt)
		solves = append(solves, sv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return solves, nil
}

// SolveStats aggregates solves per board size, largest boards first.
func (s *Store) SolveStats() ([]SizeStats, error) {
	rows, err := s.db.Query(
		`SELECT width, height, COUNT(*), MIN(moves), AVG(moves), MAX(created_at)
		 FROM solves
		 GROUP BY width, height
		 ORDER BY width * height DESC, width DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get solve stats: %w", err)
	}
	defer rows.Close()

	var stats []SizeStats
	for rows.Next() {
		var (
			st         SizeStats
			lastSolved any
		)
		if err := rows.Scan(&st.Width, &st.Height, &st.Solved, &st.BestMoves, &st.AvgMoves, &lastSolved); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastSolved = parseTime(lastSolved)
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
