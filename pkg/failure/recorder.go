package failure

import "reflect"

// Recorder accepts failure reports. Record is a one-way
// notification; implementations must not panic on ordinary input
// and must serialize their own mutable state, because chains may
// report from many goroutines at once.
type Recorder interface {
	Record(name string, reason Reason, filePath string, line int)
}

// RecorderFunc adapts a plain function to the Recorder interface.
type RecorderFunc func(name string, reason Reason, filePath string, line int)

// Record calls f.
func (f RecorderFunc) Record(
	name string, reason Reason, filePath string, line int,
) {
	f(name, reason, filePath, line)
}

// RecordedFailure is one stored Record call.
type RecordedFailure struct {
	Name     string `json:"name"`
	Reason   Reason `json:"reason"`
	FilePath string `json:"file_path"`
	Line     int    `json:"line"`
}

// Equal reports whether both records carry the same name, reason,
// file path, and line. Reasons are compared deeply, so mismatches
// holding slices or maps compare by content.
func (f RecordedFailure) Equal(other RecordedFailure) bool {
	return f.Name == other.Name &&
		f.FilePath == other.FilePath &&
		f.Line == other.Line &&
		reflect.DeepEqual(f.Reason, other.Reason)
}

// String renders the failure as "file:line: name: reason".
func (f RecordedFailure) String() string {
	return formatFailure(f.Name, f.Reason, f.FilePath, f.Line)
}
