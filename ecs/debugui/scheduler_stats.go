package debugui

import (
	"fmt"
	"sort"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tieney/ecs"
)

func NewSchedulerStatsComponent() SchedulerStatsComponent {
	return SchedulerStatsComponent{sortAscending: true}
}

func (ss *SchedulerStatsComponent) Render(scheduler *ecs.Scheduler) {
	if !imgui.BeginV("Systems", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := scheduler.GetStats()
	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))
	imgui.Separator()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.BeginTableV("SystemTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			ss.sortColumn = int(spec.ColumnIndex())
			ss.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}

		systems := ss.sorted(stats.Systems)
		for _, sys := range systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(formatDuration(sys.LastDuration))
			imgui.TableNextColumn()
			imgui.Text(formatDuration(sys.AvgDuration))
			imgui.TableNextColumn()
			imgui.Text(formatDuration(sys.MaxDuration))
		}

		imgui.EndTable()
	}

	imgui.End()
}

// sorted orders a copy of systems by the selected table column.
func (ss *SchedulerStatsComponent) sorted(systems []ecs.SystemStats) []ecs.SystemStats {
	out := append([]ecs.SystemStats(nil), systems...)
	key := func(s ecs.SystemStats) time.Duration {
		switch ss.sortColumn {
		case 1:
			return s.LastDuration
		case 2:
			return s.AvgDuration
		case 3:
			return s.MaxDuration
		}
		return 0
	}

	less := func(a, b ecs.SystemStats) bool {
		if ss.sortColumn == 0 {
			return a.Name < b.Name
		}
		return key(a) < key(b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !ss.sortAscending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.3f ms", float64(d)/float64(time.Millisecond))
}
