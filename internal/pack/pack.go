// Package pack defines the content-pack data model: Lumia character traits,
// Loom narrative modifiers, and the weak references selections use to point
// at them.
package pack

import "strings"

type Gender string

const (
	GenderShe  Gender = "she"
	GenderHe   Gender = "he"
	GenderThey Gender = "they"
)

func ParseGender(value string) Gender {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "she", "her":
		return GenderShe
	case "he", "him":
		return GenderHe
	default:
		return GenderThey
	}
}

type LoomCategory string

const (
	CategoryNarrativeStyle LoomCategory = "Narrative Style"
	CategoryLoomUtilities  LoomCategory = "Loom Utilities"
	CategoryRetrofits      LoomCategory = "Retrofits"
)

// ParseLoomCategory matches a category label case-insensitively, tolerating
// surrounding whitespace and underscores in place of spaces.
func ParseLoomCategory(label string) (LoomCategory, bool) {
	normalized := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(label, "_", " ")))
	switch normalized {
	case "narrative style":
		return CategoryNarrativeStyle, true
	case "loom utilities":
		return CategoryLoomUtilities, true
	case "retrofits":
		return CategoryRetrofits, true
	default:
		return "", false
	}
}

// LumiaItem bundles the character traits contributed by a single pack entry.
// Any of the three text fields may be empty; an empty field contributes
// nothing to its macro.
type LumiaItem struct {
	Name               string `json:"name"`
	AvatarImage        string `json:"avatarImage,omitempty"`
	Author             string `json:"author,omitempty"`
	PhysicalDefinition string `json:"physicalDefinition,omitempty"`
	Personality        string `json:"personality,omitempty"`
	Behavior           string `json:"behavior,omitempty"`
	GenderIdentity     Gender `json:"genderIdentity,omitempty"`
}

type LoomItem struct {
	Name     string       `json:"name"`
	Category LoomCategory `json:"category"`
	Content  string       `json:"content"`
	Author   string       `json:"author,omitempty"`
}

// Pack is a named collection of items. A pack with a source URL was
// downloaded; one without is user-authored.
type Pack struct {
	Name       string      `json:"name"`
	LumiaItems []LumiaItem `json:"lumiaItems"`
	LoomItems  []LoomItem  `json:"loomItems"`
	URL        string      `json:"url,omitempty"`
}

func (p *Pack) Downloaded() bool {
	return p.URL != ""
}

// FindLumia returns nil when no item carries the name. Misses are expected:
// selections hold weak references that may outlive their items.
func (p *Pack) FindLumia(name string) *LumiaItem {
	if p == nil {
		return nil
	}
	for i := range p.LumiaItems {
		if p.LumiaItems[i].Name == name {
			return &p.LumiaItems[i]
		}
	}
	return nil
}

func (p *Pack) FindLoom(name string) *LoomItem {
	if p == nil {
		return nil
	}
	for i := range p.LoomItems {
		if p.LoomItems[i].Name == name {
			return &p.LoomItems[i]
		}
	}
	return nil
}

// Ref is a weak reference into the pack store. It is a lookup key, not
// ownership: the referenced pack or item may have been removed, and every
// consumer must treat a dangling ref as contributing nothing.
type Ref struct {
	PackName string `json:"packName"`
	ItemName string `json:"itemName"`
}

func (r Ref) Equal(other Ref) bool {
	return r.PackName == other.PackName && r.ItemName == other.ItemName
}
