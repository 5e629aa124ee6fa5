package settings

import (
	"errors"
	"reflect"
	"testing"

	"lumia/internal/pack"
)

func testDocument(t *testing.T) *Document {
	t.Helper()
	doc := New()
	err := doc.AddPack(pack.Pack{
		Name: "Core",
		LumiaItems: []pack.LumiaItem{
			{Name: "Aria", PhysicalDefinition: "Tall.", Personality: "X", Behavior: "A"},
			{Name: "Bea", Personality: "Y", Behavior: "B"},
		},
		LoomItems: []pack.LoomItem{
			{Name: "Prose", Category: pack.CategoryNarrativeStyle, Content: "Write prose."},
			{Name: "SceneBreak", Category: pack.CategoryLoomUtilities, Content: "Use a dash."},
		},
	}, false)
	if err != nil {
		t.Fatalf("adding pack: %v", err)
	}
	err = doc.AddPack(pack.Pack{
		Name:       "Extra",
		LumiaItems: []pack.LumiaItem{{Name: "Cleo", Behavior: "C"}},
	}, false)
	if err != nil {
		t.Fatalf("adding pack: %v", err)
	}
	return doc
}

func TestToggle(t *testing.T) {
	t.Run("is its own inverse", func(t *testing.T) {
		doc := testDocument(t)
		ref := pack.Ref{PackName: "Core", ItemName: "Aria"}

		original := append([]pack.Ref(nil), doc.SelectedBehaviors...)
		if err := doc.Toggle(SlotBehaviors, ref); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if err := doc.Toggle(SlotBehaviors, ref); err != nil {
			t.Fatalf("toggle: %v", err)
		}
		if !reflect.DeepEqual(doc.SelectedBehaviors, original) {
			t.Fatalf("expected original slot, got %#v", doc.SelectedBehaviors)
		}
	})

	t.Run("never duplicates a reference", func(t *testing.T) {
		doc := testDocument(t)
		refs := []pack.Ref{
			{PackName: "Core", ItemName: "Aria"},
			{PackName: "Core", ItemName: "Bea"},
			{PackName: "Core", ItemName: "Aria"},
			{PackName: "Extra", ItemName: "Cleo"},
			{PackName: "Core", ItemName: "Aria"},
		}
		for _, ref := range refs {
			if err := doc.Toggle(SlotBehaviors, ref); err != nil {
				t.Fatalf("toggle: %v", err)
			}
		}
		seen := make(map[pack.Ref]struct{})
		for _, ref := range doc.SelectedBehaviors {
			if _, dup := seen[ref]; dup {
				t.Fatalf("duplicate reference %#v in %#v", ref, doc.SelectedBehaviors)
			}
			seen[ref] = struct{}{}
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		doc := testDocument(t)
		first := pack.Ref{PackName: "Core", ItemName: "Bea"}
		second := pack.Ref{PackName: "Core", ItemName: "Aria"}
		doc.Toggle(SlotBehaviors, first)
		doc.Toggle(SlotBehaviors, second)
		if !reflect.DeepEqual(doc.SelectedBehaviors, []pack.Ref{first, second}) {
			t.Fatalf("unexpected order: %#v", doc.SelectedBehaviors)
		}
	})

	t.Run("rejects single-value slots", func(t *testing.T) {
		doc := testDocument(t)
		err := doc.Toggle(SlotDefinition, pack.Ref{PackName: "Core", ItemName: "Aria"})
		if !errors.Is(err, ErrUnknownSlot) {
			t.Fatalf("expected ErrUnknownSlot, got %v", err)
		}
	})
}

func TestSet(t *testing.T) {
	doc := testDocument(t)
	ref := &pack.Ref{PackName: "Core", ItemName: "Aria"}

	if err := doc.Set(SlotDefinition, ref); err != nil {
		t.Fatalf("set: %v", err)
	}
	if doc.SelectedDefinition == nil || doc.SelectedDefinition.ItemName != "Aria" {
		t.Fatalf("unexpected definition: %#v", doc.SelectedDefinition)
	}

	if err := doc.Set(SlotDefinition, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if doc.SelectedDefinition != nil {
		t.Fatalf("expected cleared slot")
	}

	if err := doc.Set(SlotBehaviors, ref); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
}

func TestRemovePackCascade(t *testing.T) {
	doc := testDocument(t)
	doc.SelectedDefinition = &pack.Ref{PackName: "Core", ItemName: "Aria"}
	doc.SelectedLoomStyle = &pack.Ref{PackName: "Core", ItemName: "Prose"}
	doc.SelectedBehaviors = []pack.Ref{
		{PackName: "Core", ItemName: "Aria"},
		{PackName: "Extra", ItemName: "Cleo"},
		{PackName: "Core", ItemName: "Bea"},
	}
	doc.SelectedLoomUtils = []pack.Ref{{PackName: "Core", ItemName: "SceneBreak"}}

	if err := doc.RemovePack("Core"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if doc.SelectedDefinition != nil {
		t.Fatalf("definition not cleared: %#v", doc.SelectedDefinition)
	}
	if doc.SelectedLoomStyle != nil {
		t.Fatalf("loom style not cleared: %#v", doc.SelectedLoomStyle)
	}
	if !reflect.DeepEqual(doc.SelectedBehaviors, []pack.Ref{{PackName: "Extra", ItemName: "Cleo"}}) {
		t.Fatalf("behaviors not stripped: %#v", doc.SelectedBehaviors)
	}
	if len(doc.SelectedLoomUtils) != 0 {
		t.Fatalf("loom utils not stripped: %#v", doc.SelectedLoomUtils)
	}
}

func TestParseSlot(t *testing.T) {
	for _, slot := range Slots() {
		parsed, err := ParseSlot(string(slot))
		if err != nil || parsed != slot {
			t.Fatalf("round trip failed for %q: %v", slot, err)
		}
	}
	if _, err := ParseSlot("bogus"); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
}
