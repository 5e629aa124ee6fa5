package settings

import (
	"bytes"
	"encoding/json"

	"lumia/internal/pack"
	"lumia/internal/worldbook"
)

// LegacyPackName is the pack that receives the flat v1 library during
// migration. Migrated packs are custom (no source URL).
const LegacyPackName = "Library"

// legacyLibraryKey held the v1 flat item list: either a bare array of
// world-book entries or a raw world-book payload.
const legacyLibraryKey = "lumiaLibrary"

// legacyIndexSlots are the v1 selection keys that stored integer indices
// into the flat library instead of named references.
var legacyIndexSlots = []struct {
	key   string
	multi bool
}{
	{key: "selectedDefinition", multi: false},
	{key: "selectedBehaviors", multi: true},
	{key: "selectedPersonalities", multi: true},
}

// migrate upgrades a raw v1 settings payload to the pack-based v2 schema,
// in place. It runs only when the legacy library key is present and the
// pack dictionary is empty, which keeps it a one-shot: the legacy key is
// deleted on the way out, so a second call is a no-op even when migration
// legitimately produced zero packs.
func migrate(raw map[string]json.RawMessage) bool {
	if raw == nil {
		return false
	}
	legacyRaw, ok := raw[legacyLibraryKey]
	if !ok {
		return false
	}
	if packsRaw, ok := raw["packs"]; ok {
		var packs map[string]json.RawMessage
		if err := json.Unmarshal(packsRaw, &packs); err == nil && len(packs) > 0 {
			return false
		}
	}

	delete(raw, legacyLibraryKey)

	entries, err := worldbook.Decode(legacyRaw)
	if err != nil {
		// Unreadable legacy payload: drop it rather than fail the load.
		clearLegacySelections(raw)
		return true
	}
	items := worldbook.ParseEntries(entries)

	// The index-to-name mapping follows the original ordering of the flat
	// item list, which ParseEntries preserves (first appearance order).
	names := make([]string, len(items.Lumia))
	for i, item := range items.Lumia {
		names[i] = item.Name
	}
	translateIndexSelections(raw, names)

	if len(items.Lumia) == 0 && len(items.Loom) == 0 {
		return true
	}

	migrated := pack.Pack{
		Name:       LegacyPackName,
		LumiaItems: items.Lumia,
		LoomItems:  items.Loom,
	}
	packsJSON, err := json.Marshal(map[string]pack.Pack{LegacyPackName: migrated})
	if err != nil {
		return true
	}
	raw["packs"] = packsJSON
	return true
}

// translateIndexSelections rewrites integer-index selections into named
// references; an index that no longer resolves is dropped. Selections that
// are not integers are left alone, so already-migrated reference values
// survive a re-run untouched.
func translateIndexSelections(raw map[string]json.RawMessage, names []string) {
	for _, slot := range legacyIndexSlots {
		value, ok := raw[slot.key]
		if !ok {
			continue
		}
		if slot.multi {
			var indices []int
			if err := json.Unmarshal(value, &indices); err != nil {
				continue
			}
			refs := make([]pack.Ref, 0, len(indices))
			seen := make(map[int]struct{})
			for _, idx := range indices {
				if idx < 0 || idx >= len(names) {
					continue
				}
				if _, dup := seen[idx]; dup {
					continue
				}
				seen[idx] = struct{}{}
				refs = append(refs, pack.Ref{PackName: LegacyPackName, ItemName: names[idx]})
			}
			if encoded, err := json.Marshal(refs); err == nil {
				raw[slot.key] = encoded
			}
			continue
		}

		if string(bytes.TrimSpace(value)) == "null" {
			continue
		}
		var index int
		if err := json.Unmarshal(value, &index); err != nil {
			continue
		}
		if index < 0 || index >= len(names) {
			raw[slot.key] = json.RawMessage("null")
			continue
		}
		ref := pack.Ref{PackName: LegacyPackName, ItemName: names[index]}
		if encoded, err := json.Marshal(ref); err == nil {
			raw[slot.key] = encoded
		}
	}
}

func clearLegacySelections(raw map[string]json.RawMessage) {
	for _, slot := range legacyIndexSlots {
		value, ok := raw[slot.key]
		if !ok {
			continue
		}
		if slot.multi {
			var indices []int
			if err := json.Unmarshal(value, &indices); err == nil {
				raw[slot.key] = json.RawMessage("[]")
			}
			continue
		}
		var index int
		if err := json.Unmarshal(value, &index); err == nil {
			raw[slot.key] = json.RawMessage("null")
		}
	}
}
