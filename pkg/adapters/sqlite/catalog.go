// Package sqlite provides a sqlite-backed guide catalog: the seam for moving
// guide content out of memory without touching the core.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/KelvinH2322/coffeehelper/pkg/domain"
)

// Catalog implements ports.GuideCatalog over a sqlite database.
// Guide steps, tools, and safety alerts are stored as JSON columns; the
// filterable fields (category, brand, model) are real columns.
type Catalog struct {
	db *sql.DB
}

// Open creates (or opens) the catalog database at the given path.
// Use ":memory:" for an ephemeral catalog in tests.
func Open(path string) (*Catalog, error) {
	dsn := path + "?_journal=WAL&_busy_timeout=5000"
	if path == ":memory:" {
		dsn = path
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	c := &Catalog{db: db}
	if err := c.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return c, nil
}

func (c *Catalog) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS guides (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		machine_brand TEXT NOT NULL,
		machine_model TEXT NOT NULL,
		summary TEXT NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		steps_json TEXT NOT NULL,
		tools_json TEXT,
		safety_json TEXT,
		position INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_guides_match ON guides(machine_brand, machine_model, category);
	`
	if _, err := c.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Seed replaces the catalog contents with the given guides.
func (c *Catalog) Seed(guides []domain.Guide) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM guides`); err != nil {
		return fmt.Errorf("clear guides: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO guides (id, title, category, machine_brand, machine_model, summary, image_url, steps_json, tools_json, safety_json, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, g := range guides {
		steps, err := json.Marshal(g.Steps)
		if err != nil {
			return fmt.Errorf("marshal steps for %s: %w", g.ID, err)
		}
		tools, err := json.Marshal(g.Tools)
		if err != nil {
			return fmt.Errorf("marshal tools for %s: %w", g.ID, err)
		}
		safety, err := json.Marshal(g.SafetyAlerts)
		if err != nil {
			return fmt.Errorf("marshal safety alerts for %s: %w", g.ID, err)
		}
		if _, err := stmt.Exec(g.ID, g.Title, string(g.Category), g.MachineBrand, g.MachineModel, g.Summary, g.ImageURL, steps, tools, safety, i); err != nil {
			return fmt.Errorf("insert guide %s: %w", g.ID, err)
		}
	}

	return tx.Commit()
}

const guideColumns = `id, title, category, machine_brand, machine_model, summary, image_url, steps_json, tools_json, safety_json`

// Lookup returns the guide with the given id.
func (c *Catalog) Lookup(id string) (domain.Guide, error) {
	row := c.db.QueryRow(`SELECT `+guideColumns+` FROM guides WHERE id = ?`, id)
	g, err := scanGuide(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Guide{}, domain.ErrGuideNotFound
	}
	if err != nil {
		return domain.Guide{}, fmt.Errorf("lookup guide %s: %w", id, err)
	}
	return g, nil
}

// List returns the guides matching the filter, in seed order.
// A query failure yields an empty listing; the catalog port is infallible by
// design and the caller treats an unavailable catalog as "no guides".
func (c *Catalog) List(filter domain.GuideFilter) []domain.Guide {
	query := `SELECT ` + guideColumns + ` FROM guides WHERE 1=1`
	var args []any
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, string(filter.Category))
	}
	if filter.Brand != "" {
		query += ` AND machine_brand = ?`
		args = append(args, filter.Brand)
	}
	if filter.Model != "" {
		query += ` AND machine_model = ?`
		args = append(args, filter.Model)
	}
	query += ` ORDER BY position`

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil
	}
	defer rows.Close()

	var out []domain.Guide
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			return out
		}
		out = append(out, g)
	}
	return out
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGuide(row scanner) (domain.Guide, error) {
	var g domain.Guide
	var category, stepsJSON string
	var toolsJSON, safetyJSON sql.NullString

	err := row.Scan(&g.ID, &g.Title, &category, &g.MachineBrand, &g.MachineModel, &g.Summary, &g.ImageURL, &stepsJSON, &toolsJSON, &safetyJSON)
	if err != nil {
		return domain.Guide{}, err
	}

	g.Category = domain.GuideCategory(category)
	if err := json.Unmarshal([]byte(stepsJSON), &g.Steps); err != nil {
		return domain.Guide{}, fmt.Errorf("unmarshal steps: %w", err)
	}
	if toolsJSON.Valid {
		if err := json.Unmarshal([]byte(toolsJSON.String), &g.Tools); err != nil {
			return domain.Guide{}, fmt.Errorf("unmarshal tools: %w", err)
		}
	}
	if safetyJSON.Valid {
		if err := json.Unmarshal([]byte(safetyJSON.String), &g.SafetyAlerts); err != nil {
			return domain.Guide{}, fmt.Errorf("unmarshal safety alerts: %w", err)
		}
	}
	return g, nil
}
