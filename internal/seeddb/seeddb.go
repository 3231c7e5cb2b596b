// Package seeddb builds the local SQLite checklist database from the raw
// spreadsheet export. The database is rebuilt from scratch on every run.
package seeddb

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/raidbook/raidbook/internal/source"
	"github.com/raidbook/raidbook/internal/sqlutil"
	"github.com/raidbook/raidbook/internal/transform"
)

// headerName marks the header row that leaked into the name column.
const headerName = "Level 80"

const schema = `
	CREATE TABLE types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type_name TEXT NOT NULL UNIQUE,
		min_required INTEGER DEFAULT 0
	);

	CREATE TABLE pokemon_checklist (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type_id INTEGER NOT NULL,
		pokemon_name TEXT NOT NULL,
		phys_special TEXT,
		secondary_type TEXT,
		held_item TEXT,
		ability TEXT,
		moves TEXT,
		notes TEXT,
		completed INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (type_id) REFERENCES types(id)
	);

	CREATE INDEX idx_type_pokemon ON pokemon_checklist(type_id, pokemon_name);
	CREATE INDEX idx_completed ON pokemon_checklist(completed);
`

// DB is a handle to the seed database.
type DB struct {
	db     *sql.DB
	logger *zap.Logger
}

// Create removes any database at path and creates an empty one with the
// checklist schema.
func Create(path string, logger *zap.Logger) (*DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	if err := removeDatabaseFiles(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	logger.Debug("seed database created", zap.String("path", path))
	return &DB{db: db, logger: logger}, nil
}

// Open opens an existing seed database.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("seed database %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &DB{db: db, logger: zap.NewNop()}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// LoadStats counts what Load wrote.
type LoadStats struct {
	Types   int `json:"types"`
	Entries int `json:"entries"`
	Skipped int `json:"skipped"`
}

// Load inserts one types row per category and one checklist row per source
// row. Cell values are stored as they appear in the spreadsheet; only empty
// names and the leaked header row are skipped.
func (d *DB) Load(src *source.Source, fields source.FieldMap) (LoadStats, error) {
	var stats LoadStats
	err := sqlutil.WithTx(d.db, func(tx *sql.Tx) error {
		for _, cat := range src.Categories {
			res, err := tx.Exec("INSERT INTO types (type_name, min_required) VALUES (?, ?)", cat.Name, 0)
			if err != nil {
				return fmt.Errorf("insert type %q: %w", cat.Name, err)
			}
			typeID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("type id for %q: %w", cat.Name, err)
			}
			stats.Types++

			for _, row := range cat.Rows {
				name := row.Get(fields.Name)
				if name == "" || name == headerName {
					stats.Skipped++
					continue
				}
				_, err := tx.Exec(`
					INSERT INTO pokemon_checklist
					(type_id, pokemon_name, phys_special, secondary_type, held_item, ability, moves, notes)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					typeID,
					name,
					row.Get(fields.Usage),
					row.Get(fields.SecondaryUsage),
					row.Get(fields.HeldItem),
					row.Get(fields.Ability),
					transform.CollectMoves(row, fields),
					row.Get(fields.Choices),
				)
				if err != nil {
					return fmt.Errorf("insert %q in %q: %w", name, cat.Name, err)
				}
				stats.Entries++
			}
			d.logger.Debug("loaded type", zap.String("type", cat.Name), zap.Int("rows", len(cat.Rows)))
		}
		return nil
	})
	if err != nil {
		return LoadStats{}, err
	}
	return stats, nil
}

// TypeSummary is the per-type row count.
type TypeSummary struct {
	TypeName    string `json:"type_name"`
	MinRequired int    `json:"min_required"`
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
}

// Summaries returns every type with its entry counts, in insertion order.
func (d *DB) Summaries() ([]TypeSummary, error) {
	rows, err := d.db.Query(`
		SELECT t.type_name, t.min_required, COUNT(p.id), COALESCE(SUM(p.completed), 0)
		FROM types t
		LEFT JOIN pokemon_checklist p ON p.type_id = t.id
		GROUP BY t.id
		ORDER BY t.id`)
	if err != nil {
		return nil, fmt.Errorf("query type summaries: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (TypeSummary, error) {
		var s TypeSummary
		err := rows.Scan(&s.TypeName, &s.MinRequired, &s.Total, &s.Completed)
		return s, err
	})
}

// Init rebuilds the database at path from src and returns the load counts.
func Init(path string, src *source.Source, fields source.FieldMap, logger *zap.Logger) (LoadStats, error) {
	d, err := Create(path, logger)
	if err != nil {
		return LoadStats{}, err
	}
	defer d.Close()
	return d.Load(src, fields)
}

func removeDatabaseFiles(dbPath string) error {
	paths := []string{dbPath, dbPath + "-wal", dbPath + "-shm", dbPath + "-journal"}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}
