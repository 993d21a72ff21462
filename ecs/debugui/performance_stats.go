package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tieney/ecs"
)

// NewPerformanceStatsComponent keeps historyFrames samples of frame time
// and entity count.
func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		frameMs:  newSampleRing(historyFrames),
		entities: newSampleRing(historyFrames),
	}
}

// record stores one frame and returns the mean frame time in milliseconds.
func (ps *PerformanceStatsComponent) record(dt time.Duration, entities int) float32 {
	ps.frameMs.push(float32(dt.Seconds() * 1000))
	ps.entities.push(float32(entities))
	return ps.frameMs.mean()
}

func (ps *PerformanceStatsComponent) Render(storage *ecs.Storage, dt time.Duration) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := storage.CollectStats()
	meanMs := ps.record(dt, stats.TotalEntityCount)

	imgui.Text(fmt.Sprintf("Entities: %d (peak %.0f)", stats.TotalEntityCount, ps.entities.peak()))
	imgui.Text(fmt.Sprintf("Archetypes: %d  Singletons: %d", stats.ArchetypeCount, stats.SingletonCount))
	if meanMs > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms mean, %.2f ms worst (%.0f FPS)", meanMs, ps.frameMs.peak(), 1000/meanMs))
	}

	imgui.Separator()
	imgui.PlotLinesFloatPtrV("##frametime", &ps.frameMs.samples[0], int32(len(ps.frameMs.samples)),
		int32(ps.frameMs.next), "frame ms", 0, ps.frameMs.peak()*1.2, imgui.NewVec2(0, 60), 4)
	imgui.PlotLinesFloatPtrV("##entities", &ps.entities.samples[0], int32(len(ps.entities.samples)),
		int32(ps.entities.next), "entities", 0, ps.entities.peak()*1.2, imgui.NewVec2(0, 60), 4)

	if imgui.TreeNodeStr("Archetypes") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ArchStatsTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("ID")
			imgui.TableSetupColumn("Components")
			imgui.TableSetupColumn("Entities")
			imgui.TableHeadersRow()

			for _, arch := range stats.ArchetypeBreakdown {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("0x%X", arch.ID))
				imgui.TableNextColumn()
				imgui.Text(shortTypeNames(arch.ComponentTypes))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprint(arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Singletons") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}
