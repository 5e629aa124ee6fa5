package settings

import (
	"errors"
	"fmt"

	"lumia/internal/pack"
)

// Slot names one of the six content slots a selection can occupy.
type Slot string

const (
	SlotDefinition    Slot = "definition"
	SlotBehaviors     Slot = "behaviors"
	SlotPersonalities Slot = "personalities"
	SlotLoomStyle     Slot = "loomStyle"
	SlotLoomUtils     Slot = "loomUtils"
	SlotLoomRetrofits Slot = "loomRetrofits"
)

var ErrUnknownSlot = errors.New("unknown slot")

// Slots lists every slot in resolution order.
func Slots() []Slot {
	return []Slot{SlotDefinition, SlotBehaviors, SlotPersonalities, SlotLoomStyle, SlotLoomUtils, SlotLoomRetrofits}
}

func ParseSlot(name string) (Slot, error) {
	for _, slot := range Slots() {
		if string(slot) == name {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownSlot)
}

func (s Slot) Multi() bool {
	switch s {
	case SlotBehaviors, SlotPersonalities, SlotLoomUtils, SlotLoomRetrofits:
		return true
	default:
		return false
	}
}

// Set replaces a single-value slot unconditionally. It rejects multi-value
// slots; those are mutated only through Toggle.
func (d *Document) Set(slot Slot, ref *pack.Ref) error {
	switch slot {
	case SlotDefinition:
		d.SelectedDefinition = ref
	case SlotLoomStyle:
		d.SelectedLoomStyle = ref
	default:
		return fmt.Errorf("%q is not a single-value slot: %w", slot, ErrUnknownSlot)
	}
	return nil
}

// Toggle is the sole mutation primitive for multi-value slots: a reference
// already present (by pack and item name) is removed, anything else is
// appended. That single code path is what keeps duplicates out.
func (d *Document) Toggle(slot Slot, ref pack.Ref) error {
	list := d.multiSlot(slot)
	if list == nil {
		return fmt.Errorf("%q is not a multi-value slot: %w", slot, ErrUnknownSlot)
	}
	for i, existing := range *list {
		if existing.Equal(ref) {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return nil
		}
	}
	*list = append(*list, ref)
	return nil
}

// SlotRefs returns the slot's references in order; single slots yield zero
// or one entry.
func (d *Document) SlotRefs(slot Slot) []pack.Ref {
	switch slot {
	case SlotDefinition:
		if d.SelectedDefinition != nil {
			return []pack.Ref{*d.SelectedDefinition}
		}
		return nil
	case SlotLoomStyle:
		if d.SelectedLoomStyle != nil {
			return []pack.Ref{*d.SelectedLoomStyle}
		}
		return nil
	default:
		if list := d.multiSlot(slot); list != nil {
			return append([]pack.Ref(nil), *list...)
		}
		return nil
	}
}

func (d *Document) multiSlot(slot Slot) *[]pack.Ref {
	switch slot {
	case SlotBehaviors:
		return &d.SelectedBehaviors
	case SlotPersonalities:
		return &d.SelectedPersonalities
	case SlotLoomUtils:
		return &d.SelectedLoomUtils
	case SlotLoomRetrofits:
		return &d.SelectedLoomRetrofits
	default:
		return nil
	}
}

// removePackRefs is the pack-removal cascade: it re-scans every slot and
// strips references to the named pack.
func (d *Document) removePackRefs(name string) {
	if d.SelectedDefinition != nil && d.SelectedDefinition.PackName == name {
		d.SelectedDefinition = nil
	}
	if d.SelectedLoomStyle != nil && d.SelectedLoomStyle.PackName == name {
		d.SelectedLoomStyle = nil
	}
	for _, slot := range []Slot{SlotBehaviors, SlotPersonalities, SlotLoomUtils, SlotLoomRetrofits} {
		list := d.multiSlot(slot)
		kept := (*list)[:0]
		for _, ref := range *list {
			if ref.PackName != name {
				kept = append(kept, ref)
			}
		}
		*list = kept
	}
}
