// Package resolver turns the current selection state into final macro text:
// per-slot lookup, multi-item joins, and nested-token expansion against a
// per-turn random item.
package resolver

import (
	"sort"
	"strings"
	"sync"

	"lumia/internal/pack"
	"lumia/internal/settings"
)

// Resolver reads the settings document and carries the per-turn state: the
// cached random item and the host-reported message count.
type Resolver struct {
	doc *settings.Document

	mu           sync.Mutex
	randomItem   *pack.LumiaItem
	randomRolled bool
	messageCount int
}

func New(doc *settings.Document) *Resolver {
	return &Resolver{doc: doc}
}

// Resolve produces the final text for a slot. Dangling references and empty
// fields contribute nothing; a slot whose every reference misses resolves
// to the empty string, never an error.
func (r *Resolver) Resolve(slot settings.Slot) string {
	switch slot {
	case settings.SlotDefinition, settings.SlotBehaviors, settings.SlotPersonalities:
		if !r.doc.LumiaEnabled {
			return ""
		}
	default:
		if !r.doc.LoomEnabled {
			return ""
		}
	}

	switch slot {
	case settings.SlotDefinition:
		return r.resolveSingleLumia(r.doc.SelectedDefinition, lumiaDefinition)
	case settings.SlotBehaviors:
		// Behavior traits read as compact adjoining directives; a single
		// newline keeps them that way, unlike every other multi slot.
		return r.joinLumia(r.doc.SelectedBehaviors, lumiaBehavior, "\n")
	case settings.SlotPersonalities:
		return r.joinLumia(r.doc.SelectedPersonalities, lumiaPersonality, "\n\n")
	case settings.SlotLoomStyle:
		return r.resolveSingleLoom(r.doc.SelectedLoomStyle)
	case settings.SlotLoomUtils:
		return r.joinLoom(r.doc.SelectedLoomUtils)
	case settings.SlotLoomRetrofits:
		return r.joinLoom(r.doc.SelectedLoomRetrofits)
	default:
		return ""
	}
}

type lumiaField int

const (
	lumiaDefinition lumiaField = iota
	lumiaPersonality
	lumiaBehavior
)

func fieldText(item *pack.LumiaItem, field lumiaField) string {
	if item == nil {
		return ""
	}
	switch field {
	case lumiaDefinition:
		return item.PhysicalDefinition
	case lumiaPersonality:
		return item.Personality
	case lumiaBehavior:
		return item.Behavior
	default:
		return ""
	}
}

func (r *Resolver) resolveSingleLumia(ref *pack.Ref, field lumiaField) string {
	if ref == nil {
		return ""
	}
	return r.resolveLumiaRef(*ref, field)
}

func (r *Resolver) resolveLumiaRef(ref pack.Ref, field lumiaField) string {
	text := fieldText(r.doc.FindLumia(ref), field)
	if text == "" {
		return ""
	}
	return strings.TrimSpace(r.expand(text))
}

func (r *Resolver) joinLumia(refs []pack.Ref, field lumiaField, separator string) string {
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		if text := r.resolveLumiaRef(ref, field); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, separator)
}

func (r *Resolver) resolveSingleLoom(ref *pack.Ref) string {
	if ref == nil {
		return ""
	}
	return r.resolveLoomRef(*ref)
}

func (r *Resolver) resolveLoomRef(ref pack.Ref) string {
	item := r.doc.FindLoom(ref)
	if item == nil || item.Content == "" {
		return ""
	}
	return strings.TrimSpace(r.expand(item.Content))
}

func (r *Resolver) joinLoom(refs []pack.Ref) string {
	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		if text := r.resolveLoomRef(ref); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// ResetTurn clears the cached random item. The host calls it before every
// generation turn (send, regenerate, swipe, continue, impersonate), so
// repeated random-item tokens within one generated message stay consistent
// while varying turn to turn.
func (r *Resolver) ResetTurn() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.randomItem = nil
	r.randomRolled = false
}

// randomLumia rolls once per turn, uniformly across every Lumia item in
// every pack, and serves the cached pick thereafter. With no items in the
// store there is nothing to pick and every token resolves empty.
func (r *Resolver) randomLumia() *pack.LumiaItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.randomRolled {
		return r.randomItem
	}
	r.randomRolled = true
	r.randomItem = pickRandom(r.doc)
	return r.randomItem
}

func pickRandom(doc *settings.Document) *pack.LumiaItem {
	names := make([]string, 0, len(doc.Packs))
	for name := range doc.Packs {
		names = append(names, name)
	}
	sort.Strings(names)

	var all []*pack.LumiaItem
	for _, name := range names {
		p := doc.Packs[name]
		for i := range p.LumiaItems {
			all = append(all, &p.LumiaItems[i])
		}
	}
	if len(all) == 0 {
		return nil
	}
	return all[randIntN(len(all))]
}

// SetMessageCount records the host-reported chat message count consumed by
// the message-count and OOC-trigger macros.
func (r *Resolver) SetMessageCount(count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messageCount = count
}

func (r *Resolver) MessageCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.messageCount
}
