// Package debugui draws Dear ImGui inspector windows for an ecs.Storage.
//
// The windows are entities of a separate overlay storage, so resetting or
// clearing the inspected storage never removes them.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tieney/ecs"
)

// ImguiItem is one window. Render runs once per overlay frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors ImGui's capture flags after each frame. Front-ends
// read it to stop feeding keys to the game while a text field has focus.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
	WantTextInput       bool
}

// ImguiSystem refreshes ImguiInputState and queues every window's Render.
// Renders run at the end-of-frame flush, in spawn order.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	*i.InputState.Get() = ImguiInputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
		WantTextInput:       io.WantTextInput(),
	}

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}
