package resolver

import (
	"math/rand/v2"
	"strings"

	"lumia/internal/pack"
)

// randIntN is swapped out by tests that need a deterministic roll.
var randIntN = rand.IntN

const (
	tokenRandom      = "{{randomLumia}}"
	tokenRandomPhys  = "{{randomLumia.phys}}"
	tokenRandomPers  = "{{randomLumia.pers}}"
	tokenRandomBehav = "{{randomLumia.behav}}"
	tokenRandomName  = "{{randomLumia.name}}"
)

// expandIterationCap bounds repeated expansion passes in case a replacement
// re-introduces a token.
const expandIterationCap = 5

// expand substitutes the random-item token family inside resolved text. The
// field-specific tokens are replaced before the generic one: the generic
// token is a textual prefix of the specific forms, and replacing it first
// would swallow them. Expansion repeats until a pass changes nothing or the
// iteration cap is hit.
func (r *Resolver) expand(text string) string {
	if !strings.Contains(text, "{{randomLumia") {
		return text
	}
	for range expandIterationCap {
		replaced := r.expandOnce(text)
		if replaced == text {
			break
		}
		text = replaced
	}
	return text
}

func (r *Resolver) expandOnce(text string) string {
	item := r.randomLumia()
	text = strings.ReplaceAll(text, tokenRandomPhys, itemPhys(item))
	text = strings.ReplaceAll(text, tokenRandomPers, itemPers(item))
	text = strings.ReplaceAll(text, tokenRandomBehav, itemBehav(item))
	text = strings.ReplaceAll(text, tokenRandomName, itemName(item))
	text = strings.ReplaceAll(text, tokenRandom, itemProfile(item))
	return text
}

func itemName(item *pack.LumiaItem) string {
	if item == nil {
		return ""
	}
	return item.Name
}

func itemPhys(item *pack.LumiaItem) string {
	if item == nil {
		return ""
	}
	return item.PhysicalDefinition
}

func itemPers(item *pack.LumiaItem) string {
	if item == nil {
		return ""
	}
	return item.Personality
}

func itemBehav(item *pack.LumiaItem) string {
	if item == nil {
		return ""
	}
	return item.Behavior
}

// itemProfile renders the generic token: the item's name followed by
// whichever trait fields it carries.
func itemProfile(item *pack.LumiaItem) string {
	if item == nil {
		return ""
	}
	parts := []string{item.Name}
	for _, text := range []string{item.PhysicalDefinition, item.Personality, item.Behavior} {
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}
