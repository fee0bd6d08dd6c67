// Package callsite captures the file and line of a caller so that
// hosts can tag assertion steps with their location. The engine
// itself never looks up call sites; callers pass the values in.
package callsite

import "runtime"

// Here returns the file and line of the function that called it.
func Here() (file string, line int) {
	return Caller(1)
}

// Line returns the line of the function that called it.
func Line() int {
	_, line := Caller(1)
	return line
}

// File returns the file of the function that called it.
func File() string {
	file, _ := Caller(1)
	return file
}

// Caller returns the location skip frames above its caller. It
// returns ("", 0) when the frame cannot be resolved.
func Caller(skip int) (string, int) {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", 0
	}
	return file, line
}
