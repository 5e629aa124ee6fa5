package resolver

import (
	"testing"

	"lumia/internal/pack"
	"lumia/internal/settings"
)

func testDocument(t *testing.T) *settings.Document {
	t.Helper()
	doc := settings.New()
	err := doc.AddPack(pack.Pack{
		Name: "Core",
		LumiaItems: []pack.LumiaItem{
			{Name: "Aria", PhysicalDefinition: "Tall.", Personality: "X", Behavior: "A"},
			{Name: "Bea", Personality: "Y", Behavior: "B"},
			{Name: "Hollow"},
		},
		LoomItems: []pack.LoomItem{
			{Name: "Prose", Category: pack.CategoryNarrativeStyle, Content: "Write prose."},
			{Name: "SceneBreak", Category: pack.CategoryLoomUtilities, Content: "U1"},
			{Name: "Dash", Category: pack.CategoryLoomUtilities, Content: "U2"},
		},
	}, false)
	if err != nil {
		t.Fatalf("adding pack: %v", err)
	}
	return doc
}

func ref(item string) pack.Ref {
	return pack.Ref{PackName: "Core", ItemName: item}
}

func TestResolveSingleSlots(t *testing.T) {
	doc := testDocument(t)
	res := New(doc)

	if got := res.Resolve(settings.SlotDefinition); got != "" {
		t.Fatalf("empty slot resolved to %q", got)
	}

	r := ref("Aria")
	doc.SelectedDefinition = &r
	if got := res.Resolve(settings.SlotDefinition); got != "Tall." {
		t.Fatalf("unexpected definition: %q", got)
	}

	style := ref("Prose")
	doc.SelectedLoomStyle = &style
	if got := res.Resolve(settings.SlotLoomStyle); got != "Write prose." {
		t.Fatalf("unexpected style: %q", got)
	}
}

func TestResolveJoins(t *testing.T) {
	doc := testDocument(t)
	res := New(doc)

	doc.Toggle(settings.SlotBehaviors, ref("Aria"))
	doc.Toggle(settings.SlotBehaviors, ref("Bea"))
	if got := res.Resolve(settings.SlotBehaviors); got != "A\nB" {
		t.Fatalf("behaviors join with a single newline, got %q", got)
	}

	doc.Toggle(settings.SlotPersonalities, ref("Aria"))
	doc.Toggle(settings.SlotPersonalities, ref("Bea"))
	if got := res.Resolve(settings.SlotPersonalities); got != "X\n\nY" {
		t.Fatalf("personalities join with a double newline, got %q", got)
	}

	doc.Toggle(settings.SlotLoomUtils, ref("SceneBreak"))
	doc.Toggle(settings.SlotLoomUtils, ref("Dash"))
	if got := res.Resolve(settings.SlotLoomUtils); got != "U1\n\nU2" {
		t.Fatalf("loom utils join with a double newline, got %q", got)
	}
}

func TestResolveDanglingEqualsAbsent(t *testing.T) {
	doc := testDocument(t)
	res := New(doc)

	doc.Toggle(settings.SlotBehaviors, ref("Aria"))
	doc.Toggle(settings.SlotBehaviors, ref("Bea"))
	want := res.Resolve(settings.SlotBehaviors)

	for _, dangling := range []pack.Ref{
		{PackName: "Ghost", ItemName: "Aria"},
		{PackName: "Core", ItemName: "Ghost"},
	} {
		doc.Toggle(settings.SlotBehaviors, dangling)
		if got := res.Resolve(settings.SlotBehaviors); got != want {
			t.Fatalf("dangling ref %#v changed output: %q vs %q", dangling, got, want)
		}
		doc.Toggle(settings.SlotBehaviors, dangling)
	}

	// An item present but with an empty field contributes nothing either.
	doc.Toggle(settings.SlotBehaviors, ref("Hollow"))
	if got := res.Resolve(settings.SlotBehaviors); got != want {
		t.Fatalf("empty field changed output: %q vs %q", got, want)
	}

	missing := pack.Ref{PackName: "Ghost", ItemName: "Ghost"}
	doc.SelectedDefinition = &missing
	if got := res.Resolve(settings.SlotDefinition); got != "" {
		t.Fatalf("dangling single slot resolved to %q", got)
	}
}

func TestResolveModeFlags(t *testing.T) {
	doc := testDocument(t)
	res := New(doc)
	r := ref("Aria")
	doc.SelectedDefinition = &r
	style := ref("Prose")
	doc.SelectedLoomStyle = &style

	doc.LumiaEnabled = false
	if got := res.Resolve(settings.SlotDefinition); got != "" {
		t.Fatalf("disabled lumia still resolved: %q", got)
	}
	if got := res.Resolve(settings.SlotLoomStyle); got == "" {
		t.Fatalf("loom should be unaffected by the lumia flag")
	}

	doc.LumiaEnabled = true
	doc.LoomEnabled = false
	if got := res.Resolve(settings.SlotLoomStyle); got != "" {
		t.Fatalf("disabled loom still resolved: %q", got)
	}
}

func TestOOCTrigger(t *testing.T) {
	doc := testDocument(t)
	res := New(doc)

	if got := res.OOCTrigger(); got != oocTriggerIdle {
		t.Fatalf("no interval must be idle, got %q", got)
	}

	interval := 3
	doc.LumiaOOCInterval = &interval

	res.SetMessageCount(6)
	if got := res.OOCTrigger(); got != oocTriggerDue {
		t.Fatalf("exact multiple must be due, got %q", got)
	}
	res.SetMessageCount(7)
	if got := res.OOCTrigger(); got != oocTriggerIdle {
		t.Fatalf("non-multiple must be idle, got %q", got)
	}
	res.SetMessageCount(0)
	if got := res.OOCTrigger(); got != oocTriggerIdle {
		t.Fatalf("zero count must be idle, got %q", got)
	}
}

func TestMacros(t *testing.T) {
	doc := testDocument(t)
	res := New(doc)
	r := ref("Aria")
	doc.SelectedDefinition = &r
	res.SetMessageCount(12)

	macros := res.Macros()
	if got := macros["lumiaDef"](); got != "Tall." {
		t.Fatalf("unexpected lumiaDef: %q", got)
	}
	if got := macros["lumiaMessageCount"](); got != "12" {
		t.Fatalf("unexpected message count: %q", got)
	}
	if got := res.ResolveMacro("noSuchMacro"); got != "" {
		t.Fatalf("unknown macro resolved to %q", got)
	}
}
