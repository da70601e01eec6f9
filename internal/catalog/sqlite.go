package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite" // Register the sqlite driver
)

const schema = `
CREATE TABLE metadata (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE entries (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	collection TEXT NOT NULL,
	r          INTEGER,
	g          INTEGER,
	b          INTEGER,
	l          REAL,
	a          REAL,
	lab_b      REAL,
	hex        TEXT,
	tags       TEXT NOT NULL,
	image      TEXT
);
CREATE INDEX entries_collection ON entries (collection);
`

// WriteSQLite writes the catalog to a new SQLite database at path, replacing
// any existing file. Tags are stored comma separated; absent colour and image
// fields are stored as NULL.
func WriteSQLite(ctx context.Context, path string, cat *Catalog) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	for key, value := range map[string]string{
		"version":   cat.Metadata.Version,
		"generator": cat.Metadata.Generator,
	} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO metadata (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entries
		(id, name, collection, r, g, b, l, a, lab_b, hex, tags, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	insert := func(collection string, entries []Entry) error {
		for _, e := range entries {
			var r, g, b sql.NullInt64
			var l, a, labB sql.NullFloat64
			var hex, image sql.NullString
			if e.HasColour() {
				r = sql.NullInt64{Int64: int64(e.RGB[0]), Valid: true}
				g = sql.NullInt64{Int64: int64(e.RGB[1]), Valid: true}
				b = sql.NullInt64{Int64: int64(e.RGB[2]), Valid: true}
				l = sql.NullFloat64{Float64: e.Lab[0], Valid: true}
				a = sql.NullFloat64{Float64: e.Lab[1], Valid: true}
				labB = sql.NullFloat64{Float64: e.Lab[2], Valid: true}
				hex = sql.NullString{String: e.Hex, Valid: true}
			}
			if e.Image != "" {
				image = sql.NullString{String: e.Image, Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, e.ID, e.Name, collection,
				r, g, b, l, a, labB, hex, strings.Join(e.Tags, ","), image); err != nil {
				return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
			}
		}
		return nil
	}

	if err := insert(CollectionBlocks, cat.Blocks); err != nil {
		return err
	}
	if err := insert(CollectionDecorations, cat.Decorations); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
