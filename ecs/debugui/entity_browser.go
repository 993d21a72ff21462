package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tieney/ecs"
)

// refreshEvery is the cache lifetime in rendered frames. Counts can stay
// flat while ids are recycled.
const refreshEvery = 30

type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

// EntityBrowserCache is a snapshot of the target storage's entities.
type EntityBrowserCache struct {
	entities           []EntityInfo
	lastArchetypeCount int
	lastEntityCount    int
	age                int
	sortColumn         int
	sortAscending      bool
}

func NewEntityBrowserComponent(maxEntitiesPerPage int) EntityBrowserComponent {
	return EntityBrowserComponent{
		cache:              &EntityBrowserCache{sortAscending: true},
		maxEntitiesPerPage: maxEntitiesPerPage,
	}
}

func (eb *EntityBrowserComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.rebuildCacheIfNeeded(storage)

	imgui.SetNextItemWidth(240)
	imgui.InputTextWithHint("##search", "missile 3:1 ...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		eb.filterText = ""
	}
	imgui.SameLine()
	if imgui.Button("Refresh") {
		eb.cache.entities = nil
	}

	visible := eb.getFilteredEntities()
	pages := max(1, (len(visible)+eb.maxEntitiesPerPage-1)/eb.maxEntitiesPerPage)
	eb.currentPage = min(eb.currentPage, pages-1)

	eb.renderTable(visible)

	if pages > 1 {
		if imgui.Button("<") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("page %d/%d", eb.currentPage+1, pages))
		imgui.SameLine()
		if imgui.Button(">") && eb.currentPage < pages-1 {
			eb.currentPage++
		}
		imgui.SameLine()
	}
	imgui.Text(fmt.Sprintf("%d of %d entities", len(visible), len(eb.cache.entities)))

	imgui.End()
}

func (eb *EntityBrowserComponent) renderTable(visible []EntityInfo) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if !imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 300), 0) {
		return
	}
	imgui.TableSetupColumn("Entity")
	imgui.TableSetupColumn("Archetype")
	imgui.TableSetupColumn("Components")
	imgui.TableHeadersRow()

	sortSpecs := imgui.TableGetSortSpecs()
	if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		eb.cache.sortColumn = int(spec.ColumnIndex())
		eb.cache.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
		eb.sortEntities()
		sortSpecs.SetSpecsDirty(false)
	}

	start := eb.currentPage * eb.maxEntitiesPerPage
	end := min(start+eb.maxEntitiesPerPage, len(visible))
	for _, entity := range visible[start:end] {
		imgui.TableNextRow()

		imgui.TableNextColumn()
		selected := eb.selectedEntityId == entity.ID
		if imgui.SelectableBoolV(formatEntityId(entity.ID), selected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
			eb.selectedEntityId = entity.ID
		}

		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("0x%X", entity.ArchetypeID))

		imgui.TableNextColumn()
		imgui.Text(shortTypeNames(entity.ComponentTypes))
	}

	imgui.EndTable()
}

func (eb *EntityBrowserComponent) rebuildCacheIfNeeded(storage *ecs.Storage) {
	c := eb.cache
	archetypes, entities := len(storage.Archetypes()), storage.EntityCount()
	c.age++
	if c.lastArchetypeCount != archetypes || c.lastEntityCount != entities || c.age >= refreshEvery {
		c.entities = nil
	}
	if c.entities == nil {
		c.lastArchetypeCount, c.lastEntityCount, c.age = archetypes, entities, 0
		eb.rebuildCache(storage)
	}
}

func (eb *EntityBrowserComponent) rebuildCache(storage *ecs.Storage) {
	entities := make([]EntityInfo, 0, storage.EntityCount())
	for _, archetype := range storage.Archetypes() {
		names := make([]string, 0, len(archetype.Types()))
		for _, t := range archetype.Types() {
			names = append(names, t.String())
		}
		for _, id := range archetype.Iter() {
			entities = append(entities, EntityInfo{ID: id, ArchetypeID: archetype.ID(), ComponentTypes: names})
		}
	}
	eb.cache.entities = entities
	eb.sortEntities()
}

func (eb *EntityBrowserComponent) sortEntities() {
	compare := func(a, b EntityInfo) int {
		switch eb.cache.sortColumn {
		case 1:
			return cmp.Compare(a.ArchetypeID, b.ArchetypeID)
		case 2:
			return slices.Compare(a.ComponentTypes, b.ComponentTypes)
		}
		return cmp.Compare(a.ID.Index(), b.ID.Index())
	}
	if !eb.cache.sortAscending {
		asc := compare
		compare = func(a, b EntityInfo) int { return asc(b, a) }
	}
	slices.SortStableFunc(eb.cache.entities, compare)
}

// getFilteredEntities keeps the entities matching every whitespace
// separated term of the filter, case-insensitively. A term matches the
// entity id, the hex archetype id or any component name.
func (eb *EntityBrowserComponent) getFilteredEntities() []EntityInfo {
	terms := strings.Fields(strings.ToLower(eb.filterText))
	if len(terms) == 0 {
		return eb.cache.entities
	}

	var filtered []EntityInfo
	for _, entity := range eb.cache.entities {
		haystack := strings.ToLower(fmt.Sprintf("%s 0x%x %s",
			formatEntityId(entity.ID), entity.ArchetypeID, strings.Join(entity.ComponentTypes, " ")))
		if all(terms, func(term string) bool { return strings.Contains(haystack, term) }) {
			filtered = append(filtered, entity)
		}
	}
	return filtered
}

func all(terms []string, match func(string) bool) bool {
	for _, term := range terms {
		if !match(term) {
			return false
		}
	}
	return true
}

func (eb *EntityBrowserComponent) GetSelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}

// formatEntityId renders an id as index:generation.
func formatEntityId(id ecs.EntityId) string {
	return fmt.Sprintf("%d:%d", id.Index(), id.Generation())
}

// shortTypeNames joins type names with their package qualifier removed.
func shortTypeNames(names []string) string {
	short := make([]string, len(names))
	for i, name := range names {
		if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
			name = name[dot+1:]
		}
		short[i] = name
	}
	return strings.Join(short, ", ")
}
