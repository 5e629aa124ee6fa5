package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lumia/internal/pack"
	"lumia/internal/settings"
)

func TestLoadMissingFile(t *testing.T) {
	client := New(filepath.Join(t.TempDir(), "lumia.json"))
	doc, migrated, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if migrated {
		t.Fatalf("fresh document cannot have migrated")
	}
	if len(doc.Packs) != 0 || !doc.LumiaEnabled {
		t.Fatalf("unexpected fresh document: %#v", doc)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := New(filepath.Join(t.TempDir(), "lumia.json"))

	doc := settings.New()
	if err := doc.AddPack(pack.Pack{
		Name:       "Core",
		LumiaItems: []pack.LumiaItem{{Name: "Aria", Behavior: "A"}},
	}, false); err != nil {
		t.Fatalf("adding pack: %v", err)
	}
	doc.SelectedDefinition = &pack.Ref{PackName: "Core", ItemName: "Aria"}

	if err := client.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, migrated, err := client.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if migrated {
		t.Fatalf("unexpected migration")
	}
	if loaded.SelectedDefinition == nil || loaded.SelectedDefinition.ItemName != "Aria" {
		t.Fatalf("selection lost: %#v", loaded.SelectedDefinition)
	}
	if loaded.Packs["Core"].FindLumia("Aria") == nil {
		t.Fatalf("pack lost")
	}
}

func TestLoadMigratesLegacyFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lumia.json")
	legacy := `{"lumiaLibrary": [{"comment": "Lumia_Definition (Aria)", "content": "Tall."}], "selectedDefinition": 0}`
	if err := os.WriteFile(path, []byte(legacy), 0o600); err != nil {
		t.Fatalf("writing legacy file: %v", err)
	}

	client := New(path)
	doc, migrated, err := client.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !migrated {
		t.Fatalf("expected migration")
	}
	if doc.SelectedDefinition == nil || doc.SelectedDefinition.ItemName != "Aria" {
		t.Fatalf("legacy selection not translated: %#v", doc.SelectedDefinition)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lumia.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if _, _, err := New(path).Load(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestSaveReplacesAtomically(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	client := New(filepath.Join(dir, "lumia.json"))

	if err := client.Save(ctx, settings.New()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := client.Save(ctx, settings.New()); err != nil {
		t.Fatalf("second save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}
