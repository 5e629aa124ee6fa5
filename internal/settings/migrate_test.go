package settings

import (
	"reflect"
	"testing"

	"lumia/internal/pack"
)

const legacyDoc = `{
	"lumiaLibrary": [
		{"comment": "Lumia_Definition (Aria)", "content": "Tall."},
		{"comment": "Lumia_Definition (Bea)", "content": "Short."},
		{"comment": "Loom Utilities (SceneBreak)", "content": "Use a dash."}
	],
	"selectedDefinition": 1,
	"selectedBehaviors": [0, 7],
	"selectedPersonalities": [1, 1]
}`

func TestMigrate(t *testing.T) {
	doc, migrated, err := Decode([]byte(legacyDoc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !migrated {
		t.Fatalf("expected migration to run")
	}

	p, ok := doc.Packs[LegacyPackName]
	if !ok {
		t.Fatalf("expected migrated pack, got %#v", doc.Packs)
	}
	if p.Downloaded() {
		t.Fatalf("migrated pack must be custom")
	}
	if p.FindLumia("Aria") == nil || p.FindLumia("Bea") == nil {
		t.Fatalf("items missing: %#v", p.LumiaItems)
	}
	if p.FindLoom("SceneBreak") == nil {
		t.Fatalf("loom item missing: %#v", p.LoomItems)
	}

	want := &pack.Ref{PackName: LegacyPackName, ItemName: "Bea"}
	if !reflect.DeepEqual(doc.SelectedDefinition, want) {
		t.Fatalf("definition index not translated: %#v", doc.SelectedDefinition)
	}
	// Index 7 resolves nowhere and is dropped, not preserved as an error.
	if !reflect.DeepEqual(doc.SelectedBehaviors, []pack.Ref{{PackName: LegacyPackName, ItemName: "Aria"}}) {
		t.Fatalf("behaviors not translated: %#v", doc.SelectedBehaviors)
	}
	if !reflect.DeepEqual(doc.SelectedPersonalities, []pack.Ref{{PackName: LegacyPackName, ItemName: "Bea"}}) {
		t.Fatalf("personalities not deduplicated: %#v", doc.SelectedPersonalities)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	doc, migrated, err := Decode([]byte(legacyDoc))
	if err != nil || !migrated {
		t.Fatalf("first decode: migrated=%v err=%v", migrated, err)
	}
	encoded, err := doc.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	again, migrated, err := Decode(encoded)
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if migrated {
		t.Fatalf("migration ran twice")
	}
	reencoded, err := again.Encode()
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if string(encoded) != string(reencoded) {
		t.Fatalf("second pass changed the document:\n%s\n---\n%s", encoded, reencoded)
	}
}

func TestMigrateSkippedWhenPacksExist(t *testing.T) {
	data := `{
		"packs": {"Mine": {"name": "Mine", "lumiaItems": [], "loomItems": []}},
		"lumiaLibrary": [{"comment": "Lumia_Definition (Aria)", "content": "Tall."}]
	}`
	doc, migrated, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if migrated {
		t.Fatalf("migration must not run when the pack dictionary is populated")
	}
	if _, ok := doc.Packs[LegacyPackName]; ok {
		t.Fatalf("legacy pack created anyway")
	}
}

func TestMigrateEmptyLibrary(t *testing.T) {
	// An empty legacy library migrates to zero packs; the deleted legacy key
	// is what keeps a later load from re-running migration.
	doc, migrated, err := Decode([]byte(`{"lumiaLibrary": []}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !migrated {
		t.Fatalf("expected migration to run")
	}
	if len(doc.Packs) != 0 {
		t.Fatalf("expected no packs, got %#v", doc.Packs)
	}

	encoded, err := doc.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, migrated, err = Decode(encoded)
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if migrated {
		t.Fatalf("migration ran again on an empty pack dictionary")
	}
}

func TestMigrateUnreadableLibrary(t *testing.T) {
	doc, migrated, err := Decode([]byte(`{"lumiaLibrary": 42, "selectedDefinition": 0}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !migrated {
		t.Fatalf("expected legacy keys to be consumed")
	}
	if len(doc.Packs) != 0 || doc.SelectedDefinition != nil {
		t.Fatalf("expected empty result, got %#v", doc)
	}
}
