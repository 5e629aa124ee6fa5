package settings

import (
	"fmt"
	"sort"
	"time"

	"lumia/internal/pack"
)

// Preset is a named snapshot of the selection state and mode flags. Presets
// have a lifecycle independent of packs: a snapshot may reference packs or
// items that no longer exist, and loading it restores those references
// as-is. Resolution failure surfaces only at macro time, so a preset heals
// automatically if the referenced pack is re-added later.
type Preset struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	SelectedDefinition    *pack.Ref  `json:"selectedDefinition"`
	SelectedBehaviors     []pack.Ref `json:"selectedBehaviors"`
	SelectedPersonalities []pack.Ref `json:"selectedPersonalities"`
	SelectedLoomStyle     *pack.Ref  `json:"selectedLoomStyle"`
	SelectedLoomUtils     []pack.Ref `json:"selectedLoomUtils"`
	SelectedLoomRetrofits []pack.Ref `json:"selectedLoomRetrofits"`

	LumiaOOCInterval *int `json:"lumiaOOCInterval"`
	LumiaEnabled     bool `json:"lumiaEnabled"`
	LoomEnabled      bool `json:"loomEnabled"`
}

// SavePreset snapshots the current selection state under the given name,
// overwriting any existing record, and marks it active.
func (d *Document) SavePreset(name string) *Preset {
	now := time.Now().UTC()
	p := d.snapshot(name)
	p.CreatedAt = now
	p.UpdatedAt = now
	d.Presets[name] = p
	d.ActivePreset = name
	return p
}

// UpdatePreset re-snapshots over an existing record, keeping its creation
// timestamp.
func (d *Document) UpdatePreset(name string) error {
	existing, ok := d.Presets[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrPresetNotFound)
	}
	p := d.snapshot(name)
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	d.Presets[name] = p
	d.ActivePreset = name
	return nil
}

// LoadPreset wholesale-replaces the selection state from the record. No
// reference is validated against the pack store here; dangling references
// are kept per the lazy-resolution policy.
func (d *Document) LoadPreset(name string) error {
	p, ok := d.Presets[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrPresetNotFound)
	}
	d.SelectedDefinition = copyRef(p.SelectedDefinition)
	d.SelectedBehaviors = append([]pack.Ref(nil), p.SelectedBehaviors...)
	d.SelectedPersonalities = append([]pack.Ref(nil), p.SelectedPersonalities...)
	d.SelectedLoomStyle = copyRef(p.SelectedLoomStyle)
	d.SelectedLoomUtils = append([]pack.Ref(nil), p.SelectedLoomUtils...)
	d.SelectedLoomRetrofits = append([]pack.Ref(nil), p.SelectedLoomRetrofits...)
	d.LumiaOOCInterval = copyInt(p.LumiaOOCInterval)
	d.LumiaEnabled = p.LumiaEnabled
	d.LoomEnabled = p.LoomEnabled
	d.ActivePreset = name
	return nil
}

func (d *Document) DeletePreset(name string) error {
	if _, ok := d.Presets[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrPresetNotFound)
	}
	delete(d.Presets, name)
	if d.ActivePreset == name {
		d.ActivePreset = ""
	}
	return nil
}

func (d *Document) ListPresets() []*Preset {
	presets := make([]*Preset, 0, len(d.Presets))
	for _, p := range d.Presets {
		presets = append(presets, p)
	}
	sortPresets(presets)
	return presets
}

func sortPresets(presets []*Preset) {
	sort.Slice(presets, func(i, j int) bool { return presets[i].Name < presets[j].Name })
}

func (d *Document) snapshot(name string) *Preset {
	return &Preset{
		Name:                  name,
		SelectedDefinition:    copyRef(d.SelectedDefinition),
		SelectedBehaviors:     append([]pack.Ref(nil), d.SelectedBehaviors...),
		SelectedPersonalities: append([]pack.Ref(nil), d.SelectedPersonalities...),
		SelectedLoomStyle:     copyRef(d.SelectedLoomStyle),
		SelectedLoomUtils:     append([]pack.Ref(nil), d.SelectedLoomUtils...),
		SelectedLoomRetrofits: append([]pack.Ref(nil), d.SelectedLoomRetrofits...),
		LumiaOOCInterval:      copyInt(d.LumiaOOCInterval),
		LumiaEnabled:          d.LumiaEnabled,
		LoomEnabled:           d.LoomEnabled,
	}
}

func copyRef(ref *pack.Ref) *pack.Ref {
	if ref == nil {
		return nil
	}
	dup := *ref
	return &dup
}

func copyInt(value *int) *int {
	if value == nil {
		return nil
	}
	dup := *value
	return &dup
}
