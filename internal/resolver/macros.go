package resolver

import (
	"sort"
	"strconv"

	"lumia/internal/settings"
)

// The OOC trigger resolves to one of these two literals depending on
// whether the current message count lands exactly on the configured
// interval.
const (
	oocTriggerDue  = "[OOC: Add a brief out-of-character comment from Lumia at the end of this reply.]"
	oocTriggerIdle = "[OOC: Do not add out-of-character commentary to this reply.]"
)

// Macros returns the macro surface consumed by the host's prompt template
// engine: every macro is a zero-argument function producing a string.
func (r *Resolver) Macros() map[string]func() string {
	return map[string]func() string{
		"lumiaDef":          func() string { return r.Resolve(settings.SlotDefinition) },
		"lumiaBehavior":     func() string { return r.Resolve(settings.SlotBehaviors) },
		"lumiaPersonality":  func() string { return r.Resolve(settings.SlotPersonalities) },
		"loomStyle":         func() string { return r.Resolve(settings.SlotLoomStyle) },
		"loomUtils":         func() string { return r.Resolve(settings.SlotLoomUtils) },
		"loomRetrofits":     func() string { return r.Resolve(settings.SlotLoomRetrofits) },
		"randomLumia":       func() string { return itemProfile(r.randomLumia()) },
		"randomLumia.phys":  func() string { return itemPhys(r.randomLumia()) },
		"randomLumia.pers":  func() string { return itemPers(r.randomLumia()) },
		"randomLumia.behav": func() string { return itemBehav(r.randomLumia()) },
		"randomLumia.name":  func() string { return itemName(r.randomLumia()) },
		"lumiaMessageCount": func() string { return strconv.Itoa(r.MessageCount()) },
		"lumiaOOCTrigger":   r.OOCTrigger,
	}
}

// MacroNames lists the macro surface in stable order.
func (r *Resolver) MacroNames() []string {
	macros := r.Macros()
	names := make([]string, 0, len(macros))
	for name := range macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveMacro resolves a single macro by name; unknown names resolve
// empty, consistent with the degrade-to-nothing policy.
func (r *Resolver) ResolveMacro(name string) string {
	if fn, ok := r.Macros()[name]; ok {
		return fn()
	}
	return ""
}

// OOCTrigger reports whether an out-of-character comment is due this
// message. No interval configured means never due.
func (r *Resolver) OOCTrigger() string {
	interval := r.doc.LumiaOOCInterval
	if interval == nil || *interval <= 0 {
		return oocTriggerIdle
	}
	count := r.MessageCount()
	if count > 0 && count%*interval == 0 {
		return oocTriggerDue
	}
	return oocTriggerIdle
}
