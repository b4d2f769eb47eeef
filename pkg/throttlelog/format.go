package throttlelog

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// FormatLine renders a message as "[category] message data".
// Absent data renders as the empty string, leaving "[category] message".
func FormatLine(category, message string, data any) string {
	rendered := RenderData(data)
	if rendered == "" {
		return fmt.Sprintf("[%s] %s", category, message)
	}
	return fmt.Sprintf("[%s] %s %s", category, message, rendered)
}

// RenderData turns an optional payload into text. It never panics:
// nil values (including typed nil pointers, maps and slices) render as "".
func RenderData(data any) string {
	if isNil(data) {
		return ""
	}

	switch v := data.(type) {
	case string:
		return v
	case json.RawMessage:
		return string(v)
	case []byte:
		return string(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%+v", data)
	}
	return string(encoded)
}

func isNil(data any) bool {
	if data == nil {
		return true
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
