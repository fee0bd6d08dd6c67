package failure

import "digital.vasic.assertchain/pkg/logging"

// LoggingRecorder writes each failure to a logger at error level.
type LoggingRecorder struct {
	logger logging.Logger
}

// NewLoggingRecorder creates a LoggingRecorder. A nil logger
// discards output.
func NewLoggingRecorder(logger logging.Logger) *LoggingRecorder {
	if logger == nil {
		logger = logging.Nop()
	}
	return &LoggingRecorder{logger: logger}
}

// Record logs the failure.
func (r *LoggingRecorder) Record(
	name string, reason Reason, filePath string, line int,
) {
	r.logger.Error("assertion failed",
		logging.StringField("check", name),
		logging.StringField("reason", Render(reason)),
		logging.StringField("file", filePath),
		logging.IntField("line", line),
	)
}
