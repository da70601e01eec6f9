package catalog

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleCatalog() *Catalog {
	stone := Entry{Name: "stone", ID: "stone", Tags: []string{"block"}}
	stone.setColour(solidLab(125, 125, 125))
	return &Catalog{
		Metadata: Metadata{Version: "1.21.11", Generator: "blox/test"},
		Blocks:   []Entry{stone},
		Decorations: []Entry{
			{Name: "torch", ID: "torch", Tags: []string{"decoration"}, Image: "https://wiki.example/Torch.png?a=1&b=2"},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleCatalog()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		`  "metadata": {`,
		`"generator": "blox/test"`,
		`"hex": "#7d7d7d"`,
		`&b=2`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// Absent fields are omitted, never null.
	if strings.Contains(out, "null") {
		t.Errorf("output contains null:\n%s", out)
	}
}

func TestSaveLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "catalog.json")
	if err := SaveJSON(path, sampleCatalog()); err != nil {
		t.Fatalf("SaveJSON() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	cat, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	if cat.Len() != 2 || cat.Blocks[0].Hex != "#7d7d7d" {
		t.Errorf("loaded catalog = %+v", cat)
	}

	if _, err := LoadJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	ctx := context.Background()

	// Writing twice replaces the database.
	for range 2 {
		if err := WriteSQLite(ctx, path, sampleCatalog()); err != nil {
			t.Fatalf("WriteSQLite() error = %v", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("entries = %d, want 2", count)
	}

	var version string
	if err := db.QueryRow(`SELECT value FROM metadata WHERE key = 'version'`).Scan(&version); err != nil {
		t.Fatal(err)
	}
	if version != "1.21.11" {
		t.Errorf("version = %s", version)
	}

	var collection string
	var r sql.NullInt64
	if err := db.QueryRow(`SELECT collection, r FROM entries WHERE id = 'torch'`).Scan(&collection, &r); err != nil {
		t.Fatal(err)
	}
	if collection != CollectionDecorations || r.Valid {
		t.Errorf("torch collection=%s r=%v", collection, r)
	}
}
