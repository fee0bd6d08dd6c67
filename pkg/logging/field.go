package logging

import "time"

// LogField creates a Field from a key-value pair.
func LogField(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// StringField creates a Field with a string value.
func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

// IntField creates a Field with an int value.
func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// BoolField creates a Field with a bool value.
func BoolField(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// DurationMsField stores d as whole milliseconds.
func DurationMsField(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.Milliseconds()}
}

// ErrorField stores err under the "error" key. A nil error is
// stored as "<nil>".
func ErrorField(err error) Field {
	msg := "<nil>"
	if err != nil {
		msg = err.Error()
	}
	return Field{Key: "error", Value: msg}
}

// withFields returns a new map holding base overlaid with extra.
// base is never modified.
func withFields(base map[string]any, extra []Field) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for _, f := range extra {
		out[f.Key] = f.Value
	}
	return out
}
