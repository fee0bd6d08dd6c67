package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiGray   = "\033[90m"
)

var levelColors = map[Level]string{
	LevelDebug: ansiGray,
	LevelInfo:  ansiBlue,
	LevelWarn:  ansiYellow,
	LevelError: ansiRed,
}

// NewConsoleLogger creates a human-oriented logger writing to w.
// A nil writer selects stderr. Lines look like
//
//	15:04:05 INFO  case finished case=merge status=passed
func NewConsoleLogger(w io.Writer, level Level, color bool) *StreamLogger {
	if w == nil {
		w = os.Stderr
	}
	enc := consoleEncoder{color: color}
	return newStreamLogger(&output{w: w}, enc.encode, level, nil)
}

type consoleEncoder struct {
	color bool
}

func (c consoleEncoder) paint(code, s string) string {
	if !c.color || code == "" {
		return s
	}
	return code + s + ansiReset
}

func (c consoleEncoder) encode(e Entry) ([]byte, error) {
	var b strings.Builder

	b.WriteString(c.paint(ansiGray, e.Time.Format("15:04:05")))
	b.WriteByte(' ')
	b.WriteString(c.paint(levelColors[e.Level], fmt.Sprintf("%-5s", strings.ToUpper(e.Level.String()))))
	b.WriteByte(' ')
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(c.paint(ansiGray, k+"="))
		fmt.Fprint(&b, e.Fields[k])
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}
