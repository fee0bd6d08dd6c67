package failure

// MultiRecorder forwards each failure to several recorders in
// the order they were given.
type MultiRecorder struct {
	recorders []Recorder
}

// NewMultiRecorder creates a MultiRecorder. Nil entries are
// skipped.
func NewMultiRecorder(recorders ...Recorder) *MultiRecorder {
	kept := make([]Recorder, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			kept = append(kept, r)
		}
	}
	return &MultiRecorder{recorders: kept}
}

// Record forwards to every recorder.
func (m *MultiRecorder) Record(
	name string, reason Reason, filePath string, line int,
) {
	for _, r := range m.recorders {
		r.Record(name, reason, filePath, line)
	}
}
