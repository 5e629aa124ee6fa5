// Package worldbook parses externally-sourced world-book entries into typed
// pack items. The format is convention-based and noisy: entries that do not
// follow the naming convention are skipped, never treated as errors.
package worldbook

import (
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"lumia/internal/pack"
)

// Entry is the raw world-book record shape, accepted either as a bare array
// or under an object's "entries" map.
type Entry struct {
	Content    string `json:"content"`
	Comment    string `json:"comment"`
	OutletName string `json:"outletName,omitempty"`
}

type Items struct {
	Lumia []pack.LumiaItem
	Loom  []pack.LoomItem
}

var ErrInvalidJSON = errors.New("world book is not valid JSON")

var (
	namePattern    = regexp.MustCompile(`\(([^)]+)\)`)
	imgPattern     = regexp.MustCompile(`\[lumia_img=([^\]]*)\]`)
	authorPattern  = regexp.MustCompile(`\[lumia_author=([^\]]*)\]`)
	genderPattern  = regexp.MustCompile(`\[lumia_gender=([^\]]*)\]`)
	behaviorVar    = regexp.MustCompile(`\{\{setvar::lumia_behavior::([\s\S]*?)\}\}`)
	personalityVar = regexp.MustCompile(`\{\{setvar::lumia_personality::([\s\S]*?)\}\}`)
)

// Decode accepts either a JSON array of entries or an object holding an
// "entries" map, the two shapes world-book exports come in.
func Decode(data []byte) ([]Entry, error) {
	trimmed := strings.TrimLeft(string(data), "\ufeff \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		var entries []Entry
		if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
			return nil, ErrInvalidJSON
		}
		return entries, nil
	}

	var wrapper struct {
		Entries map[string]Entry `json:"entries"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapper); err != nil {
		return nil, ErrInvalidJSON
	}

	keys := make([]string, 0, len(wrapper.Entries))
	for key := range wrapper.Entries {
		keys = append(keys, key)
	}
	sortNumericAware(keys)

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, wrapper.Entries[key])
	}
	return entries, nil
}

// World-book objects key their entries map with stringified indices, so a
// numeric ordering restores the original entry order where possible.
func sortNumericAware(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
}

// ParseEntries folds raw entries into pack items. It is pure and never
// fails: entries without a parenthesized name in their comment are dropped,
// repeated entries for one Lumia name accumulate into a single item, and
// every Loom-labelled entry becomes its own item.
func ParseEntries(entries []Entry) Items {
	var items Items
	lumiaIndex := make(map[string]int)

	for _, entry := range entries {
		match := namePattern.FindStringSubmatch(entry.Comment)
		if match == nil {
			continue
		}
		name := strings.TrimSpace(match[1])
		if name == "" {
			continue
		}

		prefix := entry.Comment[:strings.Index(entry.Comment, "(")]
		if category, ok := pack.ParseLoomCategory(prefix); ok {
			items.Loom = append(items.Loom, pack.LoomItem{
				Name:     name,
				Category: category,
				Content:  strings.TrimSpace(entry.Content),
			})
			continue
		}

		idx, ok := lumiaIndex[name]
		if !ok {
			items.Lumia = append(items.Lumia, pack.LumiaItem{
				Name:           name,
				GenderIdentity: pack.GenderThey,
			})
			idx = len(items.Lumia) - 1
			lumiaIndex[name] = idx
		}
		applyOutlet(&items.Lumia[idx], entry)
	}

	return items
}

func applyOutlet(item *pack.LumiaItem, entry Entry) {
	switch outletFor(entry) {
	case "definition":
		item.PhysicalDefinition = extractDefinition(item, entry.Content)
	case "behavior":
		item.Behavior = strings.TrimSpace(entry.Content)
	default:
		applyPersonality(item, entry.Content)
	}
}

// outletFor routes an entry to one of the three trait fields, preferring an
// explicit outlet tag over keyword matching on the comment.
func outletFor(entry Entry) string {
	for _, candidate := range []string{entry.OutletName, entry.Comment} {
		lowered := strings.ToLower(candidate)
		switch {
		case strings.Contains(lowered, "definition"):
			return "definition"
		case strings.Contains(lowered, "behavior"):
			return "behavior"
		case strings.Contains(lowered, "personality"):
			return "personality"
		}
	}
	return "personality"
}

// extractDefinition strips the inline [lumia_img=...], [lumia_author=...]
// and [lumia_gender=...] markers out of the visible text, capturing them
// into the item's metadata fields.
func extractDefinition(item *pack.LumiaItem, content string) string {
	if match := imgPattern.FindStringSubmatch(content); match != nil {
		item.AvatarImage = strings.TrimSpace(match[1])
		content = imgPattern.ReplaceAllString(content, "")
	}
	if match := authorPattern.FindStringSubmatch(content); match != nil {
		item.Author = strings.TrimSpace(match[1])
		content = authorPattern.ReplaceAllString(content, "")
	}
	if match := genderPattern.FindStringSubmatch(content); match != nil {
		item.GenderIdentity = pack.ParseGender(match[1])
		content = genderPattern.ReplaceAllString(content, "")
	}
	return strings.TrimSpace(content)
}

// applyPersonality first tries the legacy embedded-variable patterns; when
// neither matches, the whole entry text is personality content verbatim.
func applyPersonality(item *pack.LumiaItem, content string) {
	matched := false
	if match := behaviorVar.FindStringSubmatch(content); match != nil {
		item.Behavior = strings.TrimSpace(match[1])
		matched = true
	}
	if match := personalityVar.FindStringSubmatch(content); match != nil {
		item.Personality = strings.TrimSpace(match[1])
		matched = true
	}
	if !matched {
		item.Personality = strings.TrimSpace(content)
	}
}
