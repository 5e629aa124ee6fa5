package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"lumia/internal/fetch"
	"lumia/internal/pack"
	"lumia/internal/settings"
	"lumia/internal/worldbook"
)

type ListPacksInput struct{}

type PackSummaryOutput struct {
	Name       string `json:"name"`
	LumiaItems int    `json:"lumiaItems"`
	LoomItems  int    `json:"loomItems"`
	URL        string `json:"url,omitempty"`
}

type ListPacksOutput struct {
	Packs []PackSummaryOutput `json:"packs"`
}

type GetItemInput struct {
	Pack string `json:"pack" jsonschema:"pack name"`
	Name string `json:"name" jsonschema:"item name"`
}

type ItemOutput struct {
	Kind               string `json:"kind"`
	Name               string `json:"name"`
	Author             string `json:"author,omitempty"`
	AvatarImage        string `json:"avatarImage,omitempty"`
	PhysicalDefinition string `json:"physicalDefinition,omitempty"`
	Personality        string `json:"personality,omitempty"`
	Behavior           string `json:"behavior,omitempty"`
	GenderIdentity     string `json:"genderIdentity,omitempty"`
	Category           string `json:"category,omitempty"`
	Content            string `json:"content,omitempty"`
}

type RefOutput struct {
	PackName string `json:"packName"`
	ItemName string `json:"itemName"`
}

type GetSelectionInput struct{}

type GetSelectionOutput struct {
	Slots map[string][]RefOutput `json:"slots"`
}

type SetSlotInput struct {
	Slot  string `json:"slot" jsonschema:"single-value slot: definition or loomStyle"`
	Pack  string `json:"pack,omitempty" jsonschema:"pack name, required unless clearing"`
	Item  string `json:"item,omitempty" jsonschema:"item name, required unless clearing"`
	Clear bool   `json:"clear,omitempty" jsonschema:"clear the slot instead of setting it"`
}

type ToggleItemInput struct {
	Slot string `json:"slot" jsonschema:"multi-value slot: behaviors, personalities, loomUtils, or loomRetrofits"`
	Pack string `json:"pack" jsonschema:"pack name"`
	Item string `json:"item" jsonschema:"item name"`
}

type SelectionChangedOutput struct {
	Slot string      `json:"slot"`
	Refs []RefOutput `json:"refs"`
}

type ResolveMacroInput struct {
	Name         string `json:"name" jsonschema:"macro name, e.g. lumiaDef"`
	MessageCount *int   `json:"messageCount,omitempty" jsonschema:"current chat message count"`
}

type ResolveMacroOutput struct {
	Text string `json:"text"`
}

type ResolvePromptInput struct {
	MessageCount *int `json:"messageCount,omitempty" jsonschema:"current chat message count"`
}

type ResolvePromptOutput struct {
	Macros map[string]string `json:"macros"`
}

type ImportWorldBookInput struct {
	URL       string `json:"url" jsonschema:"world-book JSON URL"`
	Pack      string `json:"pack" jsonschema:"name for the imported pack"`
	Overwrite bool   `json:"overwrite,omitempty" jsonschema:"replace an existing pack of the same name"`
}

type ImportWorldBookOutput struct {
	Pack       string `json:"pack"`
	LumiaItems int    `json:"lumiaItems"`
	LoomItems  int    `json:"loomItems"`
}

type PresetNameInput struct {
	Name string `json:"name" jsonschema:"preset name"`
}

type PresetOutput struct {
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Active    bool   `json:"active"`
}

type ListPresetsInput struct{}

type ListPresetsOutput struct {
	Presets []PresetOutput `json:"presets"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_packs",
		Description: "List content packs and their item counts",
	}, s.handleListPacks)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_item",
		Description: "Retrieve one Lumia or Loom item from a pack",
	}, s.handleGetItem)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "get_selection",
		Description: "Show the current selection for every content slot",
	}, s.handleGetSelection)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "set_slot",
		Description: "Set or clear a single-value content slot",
	}, s.handleSetSlot)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "toggle_item",
		Description: "Toggle an item in a multi-value content slot",
	}, s.handleToggleItem)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "resolve_macro",
		Description: "Resolve a single macro to its prompt text",
	}, s.handleResolveMacro)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "resolve_prompt",
		Description: "Start a generation turn and resolve every macro",
	}, s.handleResolvePrompt)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "import_world_book",
		Description: "Download a world-book JSON file and import it as a pack",
	}, s.handleImportWorldBook)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "save_preset",
		Description: "Snapshot the current selection under a preset name",
	}, s.handleSavePreset)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "load_preset",
		Description: "Restore the selection from a preset",
	}, s.handleLoadPreset)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "delete_preset",
		Description: "Delete a preset",
	}, s.handleDeletePreset)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_presets",
		Description: "List saved presets",
	}, s.handleListPresets)
}

func (s *Server) handleListPacks(ctx context.Context, req *sdk.CallToolRequest, input ListPacksInput) (*sdk.CallToolResult, ListPacksOutput, error) {
	packs := s.doc.ListPacks()
	output := make([]PackSummaryOutput, 0, len(packs))
	for _, p := range packs {
		output = append(output, PackSummaryOutput{
			Name:       p.Name,
			LumiaItems: len(p.LumiaItems),
			LoomItems:  len(p.LoomItems),
			URL:        p.URL,
		})
	}
	return nil, ListPacksOutput{Packs: output}, nil
}

func (s *Server) handleGetItem(ctx context.Context, req *sdk.CallToolRequest, input GetItemInput) (*sdk.CallToolResult, ItemOutput, error) {
	if input.Pack == "" || input.Name == "" {
		return nil, ItemOutput{}, fmt.Errorf("pack and name are required")
	}
	ref := pack.Ref{PackName: input.Pack, ItemName: input.Name}
	if item := s.doc.FindLumia(ref); item != nil {
		return nil, ItemOutput{
			Kind:               "lumia",
			Name:               item.Name,
			Author:             item.Author,
			AvatarImage:        item.AvatarImage,
			PhysicalDefinition: item.PhysicalDefinition,
			Personality:        item.Personality,
			Behavior:           item.Behavior,
			GenderIdentity:     string(item.GenderIdentity),
		}, nil
	}
	if item := s.doc.FindLoom(ref); item != nil {
		return nil, ItemOutput{
			Kind:     "loom",
			Name:     item.Name,
			Author:   item.Author,
			Category: string(item.Category),
			Content:  item.Content,
		}, nil
	}
	return nil, ItemOutput{}, fmt.Errorf("item not found")
}

func (s *Server) handleGetSelection(ctx context.Context, req *sdk.CallToolRequest, input GetSelectionInput) (*sdk.CallToolResult, GetSelectionOutput, error) {
	slots := make(map[string][]RefOutput, len(settings.Slots()))
	for _, slot := range settings.Slots() {
		slots[string(slot)] = refOutputs(s.doc.SlotRefs(slot))
	}
	return nil, GetSelectionOutput{Slots: slots}, nil
}

func (s *Server) handleSetSlot(ctx context.Context, req *sdk.CallToolRequest, input SetSlotInput) (*sdk.CallToolResult, SelectionChangedOutput, error) {
	slot, err := settings.ParseSlot(input.Slot)
	if err != nil {
		return nil, SelectionChangedOutput{}, err
	}

	var ref *pack.Ref
	if !input.Clear {
		if input.Pack == "" || input.Item == "" {
			return nil, SelectionChangedOutput{}, fmt.Errorf("pack and item are required unless clearing")
		}
		ref = &pack.Ref{PackName: input.Pack, ItemName: input.Item}
	}
	if err := s.doc.Set(slot, ref); err != nil {
		return nil, SelectionChangedOutput{}, err
	}
	s.saver.Schedule(s.doc)
	return nil, SelectionChangedOutput{Slot: string(slot), Refs: refOutputs(s.doc.SlotRefs(slot))}, nil
}

func (s *Server) handleToggleItem(ctx context.Context, req *sdk.CallToolRequest, input ToggleItemInput) (*sdk.CallToolResult, SelectionChangedOutput, error) {
	slot, err := settings.ParseSlot(input.Slot)
	if err != nil {
		return nil, SelectionChangedOutput{}, err
	}
	if input.Pack == "" || input.Item == "" {
		return nil, SelectionChangedOutput{}, fmt.Errorf("pack and item are required")
	}
	if err := s.doc.Toggle(slot, pack.Ref{PackName: input.Pack, ItemName: input.Item}); err != nil {
		return nil, SelectionChangedOutput{}, err
	}
	s.saver.Schedule(s.doc)
	return nil, SelectionChangedOutput{Slot: string(slot), Refs: refOutputs(s.doc.SlotRefs(slot))}, nil
}

func (s *Server) handleResolveMacro(ctx context.Context, req *sdk.CallToolRequest, input ResolveMacroInput) (*sdk.CallToolResult, ResolveMacroOutput, error) {
	if input.Name == "" {
		return nil, ResolveMacroOutput{}, fmt.Errorf("name is required")
	}
	if input.MessageCount != nil {
		s.resolver.SetMessageCount(*input.MessageCount)
	}
	return nil, ResolveMacroOutput{Text: s.resolver.ResolveMacro(input.Name)}, nil
}

// handleResolvePrompt marks the start of a generation turn: the random-item
// cache is reset before anything resolves, so every macro in the returned
// set shares one consistent random pick.
func (s *Server) handleResolvePrompt(ctx context.Context, req *sdk.CallToolRequest, input ResolvePromptInput) (*sdk.CallToolResult, ResolvePromptOutput, error) {
	s.resolver.ResetTurn()
	if input.MessageCount != nil {
		s.resolver.SetMessageCount(*input.MessageCount)
	}
	macros := make(map[string]string)
	for name, fn := range s.resolver.Macros() {
		macros[name] = fn()
	}
	return nil, ResolvePromptOutput{Macros: macros}, nil
}

func (s *Server) handleImportWorldBook(ctx context.Context, req *sdk.CallToolRequest, input ImportWorldBookInput) (*sdk.CallToolResult, ImportWorldBookOutput, error) {
	if input.URL == "" || input.Pack == "" {
		return nil, ImportWorldBookOutput{}, fmt.Errorf("url and pack are required")
	}

	entries, err := fetch.WorldBook(ctx, s.client, input.URL)
	if err != nil {
		return nil, ImportWorldBookOutput{}, err
	}
	items := worldbook.ParseEntries(entries)

	imported := pack.Pack{
		Name:       input.Pack,
		LumiaItems: items.Lumia,
		LoomItems:  items.Loom,
		URL:        input.URL,
	}
	if err := s.doc.AddPack(imported, input.Overwrite); err != nil {
		return nil, ImportWorldBookOutput{}, err
	}
	if err := s.saver.SaveNow(ctx, s.doc); err != nil {
		return nil, ImportWorldBookOutput{}, err
	}
	return nil, ImportWorldBookOutput{
		Pack:       input.Pack,
		LumiaItems: len(items.Lumia),
		LoomItems:  len(items.Loom),
	}, nil
}

func (s *Server) handleSavePreset(ctx context.Context, req *sdk.CallToolRequest, input PresetNameInput) (*sdk.CallToolResult, PresetOutput, error) {
	if input.Name == "" {
		return nil, PresetOutput{}, fmt.Errorf("name is required")
	}
	p := s.doc.SavePreset(input.Name)
	s.saver.Schedule(s.doc)
	return nil, presetOutput(p, s.doc.ActivePreset), nil
}

func (s *Server) handleLoadPreset(ctx context.Context, req *sdk.CallToolRequest, input PresetNameInput) (*sdk.CallToolResult, PresetOutput, error) {
	if input.Name == "" {
		return nil, PresetOutput{}, fmt.Errorf("name is required")
	}
	if err := s.doc.LoadPreset(input.Name); err != nil {
		return nil, PresetOutput{}, err
	}
	s.saver.Schedule(s.doc)
	return nil, presetOutput(s.doc.Presets[input.Name], s.doc.ActivePreset), nil
}

func (s *Server) handleDeletePreset(ctx context.Context, req *sdk.CallToolRequest, input PresetNameInput) (*sdk.CallToolResult, ListPresetsOutput, error) {
	if input.Name == "" {
		return nil, ListPresetsOutput{}, fmt.Errorf("name is required")
	}
	if err := s.doc.DeletePreset(input.Name); err != nil {
		return nil, ListPresetsOutput{}, err
	}
	s.saver.Schedule(s.doc)
	return s.presetList()
}

func (s *Server) handleListPresets(ctx context.Context, req *sdk.CallToolRequest, input ListPresetsInput) (*sdk.CallToolResult, ListPresetsOutput, error) {
	return s.presetList()
}

func (s *Server) presetList() (*sdk.CallToolResult, ListPresetsOutput, error) {
	presets := s.doc.ListPresets()
	output := make([]PresetOutput, 0, len(presets))
	for _, p := range presets {
		output = append(output, presetOutput(p, s.doc.ActivePreset))
	}
	return nil, ListPresetsOutput{Presets: output}, nil
}

func presetOutput(p *settings.Preset, active string) PresetOutput {
	return PresetOutput{
		Name:      p.Name,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
		Active:    p.Name == active,
	}
}

func refOutputs(refs []pack.Ref) []RefOutput {
	output := make([]RefOutput, 0, len(refs))
	for _, ref := range refs {
		output = append(output, RefOutput{PackName: ref.PackName, ItemName: ref.ItemName})
	}
	return output
}
