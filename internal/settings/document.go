// Package settings owns the persisted settings document: the pack store,
// the selection state, and the preset records. All mutation goes through
// methods that uphold the naming and cascade invariants; persistence is the
// store package's concern.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"lumia/internal/pack"
)

var (
	ErrPackExists     = errors.New("pack already exists")
	ErrPackNotFound   = errors.New("pack not found")
	ErrItemExists     = errors.New("item already exists")
	ErrItemNotFound   = errors.New("item not found")
	ErrPresetNotFound = errors.New("preset not found")
)

// Document is the full settings document, shaped exactly as it is persisted.
type Document struct {
	Packs map[string]*pack.Pack `json:"packs"`

	SelectedDefinition    *pack.Ref  `json:"selectedDefinition"`
	SelectedBehaviors     []pack.Ref `json:"selectedBehaviors"`
	SelectedPersonalities []pack.Ref `json:"selectedPersonalities"`
	SelectedLoomStyle     *pack.Ref  `json:"selectedLoomStyle"`
	SelectedLoomUtils     []pack.Ref `json:"selectedLoomUtils"`
	SelectedLoomRetrofits []pack.Ref `json:"selectedLoomRetrofits"`

	Presets      map[string]*Preset `json:"presets"`
	ActivePreset string             `json:"activePreset,omitempty"`

	LumiaOOCInterval *int `json:"lumiaOOCInterval"`
	LumiaEnabled     bool `json:"lumiaEnabled"`
	LoomEnabled      bool `json:"loomEnabled"`
}

func New() *Document {
	return &Document{
		Packs:        make(map[string]*pack.Pack),
		Presets:      make(map[string]*Preset),
		LumiaEnabled: true,
		LoomEnabled:  true,
	}
}

// Decode parses a persisted document, running the legacy-schema migration
// first when the payload still carries the flat v1 library. The returned
// bool reports whether a migration happened, so callers can persist the
// upgraded document immediately.
func Decode(data []byte) (*Document, bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("decoding settings: %w", err)
	}

	migrated := migrate(raw)

	merged, err := json.Marshal(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decoding settings: %w", err)
	}

	doc := New()
	if err := json.Unmarshal(merged, doc); err != nil {
		return nil, false, fmt.Errorf("decoding settings: %w", err)
	}
	if doc.Packs == nil {
		doc.Packs = make(map[string]*pack.Pack)
	}
	if doc.Presets == nil {
		doc.Presets = make(map[string]*Preset)
	}
	return doc, migrated, nil
}

func (d *Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding settings: %w", err)
	}
	return data, nil
}

// AddPack stores a pack under its name. A name collision is rejected unless
// the caller passes overwrite, which the UI layer only does after explicit
// user confirmation.
func (d *Document) AddPack(p pack.Pack, overwrite bool) error {
	if _, exists := d.Packs[p.Name]; exists && !overwrite {
		return fmt.Errorf("%q: %w", p.Name, ErrPackExists)
	}
	stored := p
	d.Packs[p.Name] = &stored
	return nil
}

// RemovePack deletes a pack and cascades into the selection state: every
// reference to the pack is stripped, single slots becoming nil and multi
// slots shrinking.
func (d *Document) RemovePack(name string) error {
	if _, exists := d.Packs[name]; !exists {
		return fmt.Errorf("%q: %w", name, ErrPackNotFound)
	}
	delete(d.Packs, name)
	d.removePackRefs(name)
	return nil
}

// RenamePack moves a pack to a new name and rewrites selection references so
// current selections follow the rename. Preset snapshots are left untouched:
// their references stay lazy and may heal if the old name reappears.
func (d *Document) RenamePack(oldName, newName string) error {
	p, exists := d.Packs[oldName]
	if !exists {
		return fmt.Errorf("%q: %w", oldName, ErrPackNotFound)
	}
	if oldName == newName {
		return nil
	}
	if _, exists := d.Packs[newName]; exists {
		return fmt.Errorf("%q: %w", newName, ErrPackExists)
	}
	delete(d.Packs, oldName)
	p.Name = newName
	d.Packs[newName] = p

	rewrite := func(ref *pack.Ref) {
		if ref != nil && ref.PackName == oldName {
			ref.PackName = newName
		}
	}
	rewrite(d.SelectedDefinition)
	rewrite(d.SelectedLoomStyle)
	for _, refs := range [][]pack.Ref{d.SelectedBehaviors, d.SelectedPersonalities, d.SelectedLoomUtils, d.SelectedLoomRetrofits} {
		for i := range refs {
			rewrite(&refs[i])
		}
	}
	return nil
}

func (d *Document) ListPacks() []*pack.Pack {
	packs := make([]*pack.Pack, 0, len(d.Packs))
	for _, p := range d.Packs {
		packs = append(packs, p)
	}
	sort.Slice(packs, func(i, j int) bool { return packs[i].Name < packs[j].Name })
	return packs
}

// FindLumia resolves a reference to its item, returning nil on any miss.
// Dangling references are expected and tolerated throughout; a nil result
// means "contributes nothing", never an error.
func (d *Document) FindLumia(ref pack.Ref) *pack.LumiaItem {
	return d.Packs[ref.PackName].FindLumia(ref.ItemName)
}

func (d *Document) FindLoom(ref pack.Ref) *pack.LoomItem {
	return d.Packs[ref.PackName].FindLoom(ref.ItemName)
}

// AddLumiaItem appends an item to a pack, rejecting names already taken by
// any item in that pack before mutating anything.
func (d *Document) AddLumiaItem(packName string, item pack.LumiaItem, overwrite bool) error {
	p, exists := d.Packs[packName]
	if !exists {
		return fmt.Errorf("%q: %w", packName, ErrPackNotFound)
	}
	if existing := p.FindLumia(item.Name); existing != nil {
		if !overwrite {
			return fmt.Errorf("%q: %w", item.Name, ErrItemExists)
		}
		*existing = item
		return nil
	}
	if p.FindLoom(item.Name) != nil {
		return fmt.Errorf("%q: %w", item.Name, ErrItemExists)
	}
	p.LumiaItems = append(p.LumiaItems, item)
	return nil
}

func (d *Document) AddLoomItem(packName string, item pack.LoomItem, overwrite bool) error {
	p, exists := d.Packs[packName]
	if !exists {
		return fmt.Errorf("%q: %w", packName, ErrPackNotFound)
	}
	if existing := p.FindLoom(item.Name); existing != nil {
		if !overwrite {
			return fmt.Errorf("%q: %w", item.Name, ErrItemExists)
		}
		*existing = item
		return nil
	}
	if p.FindLumia(item.Name) != nil {
		return fmt.Errorf("%q: %w", item.Name, ErrItemExists)
	}
	p.LoomItems = append(p.LoomItems, item)
	return nil
}

// RemoveItem deletes an item by name from either item list. Selection
// references to it are left in place; they become dangling and resolve to
// nothing.
func (d *Document) RemoveItem(packName, itemName string) error {
	p, exists := d.Packs[packName]
	if !exists {
		return fmt.Errorf("%q: %w", packName, ErrPackNotFound)
	}
	for i := range p.LumiaItems {
		if p.LumiaItems[i].Name == itemName {
			p.LumiaItems = append(p.LumiaItems[:i], p.LumiaItems[i+1:]...)
			return nil
		}
	}
	for i := range p.LoomItems {
		if p.LoomItems[i].Name == itemName {
			p.LoomItems = append(p.LoomItems[:i], p.LoomItems[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%q: %w", itemName, ErrItemNotFound)
}
