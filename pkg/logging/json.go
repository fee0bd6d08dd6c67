package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Keys reserved for the entry header in JSON output. Fields using
// one of them are overwritten.
const (
	KeyTime    = "ts"
	KeyLevel   = "level"
	KeyMessage = "msg"
)

var marshalJSON = json.Marshal

// LoggerConfig configures NewJSONLogger.
type LoggerConfig struct {
	// Output receives the log lines and takes precedence over
	// OutputPath.
	Output io.Writer

	// OutputPath is a file that lines are appended to. Missing
	// parent directories are created. With neither Output nor
	// OutputPath set, lines go to stdout.
	OutputPath string

	Level  Level
	Fields map[string]any
}

// NewJSONLogger creates a logger that writes one flat JSON object
// per entry.
func NewJSONLogger(cfg LoggerConfig) (*StreamLogger, error) {
	out := &output{w: cfg.Output}

	if out.w == nil && cfg.OutputPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputPath), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", cfg.OutputPath, err)
		}
		out.w, out.closer = f, f
	}
	if out.w == nil {
		out.w = os.Stdout
	}

	return newStreamLogger(out, encodeJSON, cfg.Level, cfg.Fields), nil
}

func encodeJSON(e Entry) ([]byte, error) {
	obj := make(map[string]any, len(e.Fields)+3)
	for k, v := range e.Fields {
		obj[k] = v
	}
	obj[KeyTime] = e.Time.UTC().Format(time.RFC3339Nano)
	obj[KeyLevel] = e.Level.String()
	obj[KeyMessage] = e.Message

	data, err := marshalJSON(obj)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
