package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var lines []map[string]any
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestJSONLogger_WritesFlatObjects(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewJSONLogger(LoggerConfig{
		Output: &buf,
		Level:  LevelDebug,
		Fields: map[string]any{"component": "test"},
	})
	require.NoError(t, err)
	l.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	l.Info("hello", StringField("chain", "cart"))
	l.Debug("detail")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "info", lines[0][KeyLevel])
	assert.Equal(t, "hello", lines[0][KeyMessage])
	assert.Equal(t, "2024-05-01T12:00:00Z", lines[0][KeyTime])
	assert.Equal(t, "cart", lines[0]["chain"])
	assert.Equal(t, "test", lines[0]["component"])
	assert.Equal(t, "debug", lines[1][KeyLevel])
}

func TestJSONLogger_ReservedKeysWin(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewJSONLogger(LoggerConfig{Output: &buf})
	require.NoError(t, err)

	l.Info("real", StringField(KeyMessage, "fake"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "real", lines[0][KeyMessage])
}

func TestJSONLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewJSONLogger(LoggerConfig{Output: &buf, Level: LevelWarn})
	require.NoError(t, err)

	assert.False(t, l.Enabled(LevelInfo))
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "w", lines[0][KeyMessage])
	assert.Equal(t, "e", lines[1][KeyMessage])
}

func TestJSONLogger_WithFieldsDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent, err := NewJSONLogger(LoggerConfig{Output: &buf})
	require.NoError(t, err)

	child := parent.WithFields(StringField("case", "c1"))
	child.Info("from child")
	parent.Info("from parent")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "c1", lines[0]["case"])
	assert.NotContains(t, lines[1], "case")
}

func TestJSONLogger_CloseStopsDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewJSONLogger(LoggerConfig{Output: &buf})
	require.NoError(t, err)

	child := l.WithFields(StringField("k", "v"))
	require.NoError(t, l.Close())
	require.NoError(t, child.Close())

	l.Info("dropped")
	child.Info("dropped too")
	assert.Zero(t, buf.Len())
}

func TestJSONLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	l, err := NewJSONLogger(LoggerConfig{OutputPath: path})
	require.NoError(t, err)
	l.Error("written")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written"`)
}

func TestJSONLogger_MarshalFailureIsSilent(t *testing.T) {
	orig := marshalJSON
	marshalJSON = func(any) ([]byte, error) {
		return nil, errors.New("marshal failed")
	}
	t.Cleanup(func() { marshalJSON = orig })

	var buf bytes.Buffer
	l, err := NewJSONLogger(LoggerConfig{Output: &buf})
	require.NoError(t, err)

	l.Info("lost")
	assert.Zero(t, buf.Len())
}
