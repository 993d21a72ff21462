package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tieney/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(storage *ecs.Storage, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	archetype := storage.ArchetypeOf(ci.selectedEntityId)
	if archetype == nil {
		imgui.Text(fmt.Sprintf("Entity %s is gone", formatEntityId(ci.selectedEntityId)))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", formatEntityId(ci.selectedEntityId)))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))
	imgui.Separator()

	for _, compType := range archetype.Types() {
		component := storage.GetComponent(ci.selectedEntityId, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			val := reflect.ValueOf(component).Elem()
			if val.Kind() == reflect.Struct {
				ci.renderStruct(val, nil)
			} else {
				ci.renderField("value", val, widgetFor(val.Kind()), nil)
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderStruct draws every exported field of val. path is the field index
// path from the component root and makes widget ids unique.
func (ci *ComponentInspectorComponent) renderStruct(val reflect.Value, path []int) {
	for _, field := range fieldLayouts.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, fieldVal, field.widget, append(path[:len(path):len(path)], field.Index))
	}
}

func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value, w widget, path []int) {
	id := widgetId(name, path)

	label := func(width float32) {
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(width)
	}

	switch w {
	case widgetInt:
		v := int32(val.Int())
		label(150)
		if imgui.InputInt(id, &v) {
			setField(val, int64(v))
		}

	case widgetUint:
		v := int32(val.Uint())
		label(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			setField(val, uint64(v))
		}

	case widgetFloat:
		v := float32(val.Float())
		label(150)
		if imgui.InputFloat(id, &v) {
			setField(val, float64(v))
		}

	case widgetBool:
		v := val.Bool()
		if imgui.Checkbox(name+id, &v) {
			setField(val, v)
		}

	case widgetString:
		v := val.String()
		label(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) {
			setField(val, v)
		}

	case widgetStruct:
		if imgui.TreeNodeStr(name + id) {
			ci.renderStruct(val, path)
			imgui.TreePop()
		}

	case widgetCount:
		imgui.Text(fmt.Sprintf("%s: %s len %d", name, val.Kind(), val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

// setField writes value into a settable field, converting between numeric
// widths. Values of other kinds are ignored.
func setField(field reflect.Value, value any) bool {
	if !field.CanSet() {
		return false
	}

	switch v := value.(type) {
	case int64:
		if !isInt(field.Kind()) || field.OverflowInt(v) {
			return false
		}
		field.SetInt(v)
	case uint64:
		if !isUint(field.Kind()) || field.OverflowUint(v) {
			return false
		}
		field.SetUint(v)
	case float64:
		if field.Kind() != reflect.Float32 && field.Kind() != reflect.Float64 {
			return false
		}
		field.SetFloat(v)
	case bool:
		if field.Kind() != reflect.Bool {
			return false
		}
		field.SetBool(v)
	case string:
		if field.Kind() != reflect.String {
			return false
		}
		field.SetString(v)
	default:
		return false
	}
	return true
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uint64
}

// widgetId builds a hidden ImGui label that is unique per field path.
func widgetId(name string, path []int) string {
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = fmt.Sprint(idx)
	}
	return fmt.Sprintf("##%s.%s", name, strings.Join(parts, "."))
}
