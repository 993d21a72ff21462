package debugui

import (
	"reflect"
	"sync"
)

// widget is the editor the inspector uses for a field.
type widget int

const (
	widgetText widget = iota // read-only %v
	widgetInt
	widgetUint
	widgetFloat
	widgetBool
	widgetString
	widgetStruct
	widgetCount // slices and maps, shown by length
)

func widgetFor(k reflect.Kind) widget {
	switch {
	case isInt(k):
		return widgetInt
	case isUint(k):
		return widgetUint
	}
	switch k {
	case reflect.Float32, reflect.Float64:
		return widgetFloat
	case reflect.Bool:
		return widgetBool
	case reflect.String:
		return widgetString
	case reflect.Struct:
		return widgetStruct
	case reflect.Slice, reflect.Map:
		return widgetCount
	}
	return widgetText
}

// FieldInfo describes one exported component field. Type is the element
// type for pointer fields.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool

	widget widget
}

// ReflectionCache memoises field layouts per component type. Component
// types are few and fixed, so entries are never evicted.
type ReflectionCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{}
}

// GetFields lists the exported fields of a struct type. Non-struct types
// have no fields.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}
	actual, _ := rc.fields.LoadOrStore(t, describe(t))
	return actual.([]FieldInfo)
}

func describe(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		info := FieldInfo{Name: sf.Name, Type: sf.Type, Index: i}
		if sf.Type.Kind() == reflect.Pointer {
			info.IsPointer = true
			info.Type = sf.Type.Elem()
		}
		info.widget = widgetFor(info.Type.Kind())
		info.IsStruct = info.widget == widgetStruct
		fields = append(fields, info)
	}
	return fields
}

var fieldLayouts = NewReflectionCache()
