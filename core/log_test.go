package core

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func getLogEntries(buf *bytes.Buffer) []string {
	var entries []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line != "" {
			entries = append(entries, line)
		}
	}
	return entries
}

// these tests share the package level and logger, so they do not run in parallel

func TestSetLevel(t *testing.T) {
	defer SetLevel("info")
	var buf bytes.Buffer
	prev := SetLogger(NewConsoleLogger(zapcore.AddSync(&buf)))
	defer SetLogger(prev)

	require.True(t, SetLevel("debug"))
	Log().Debug("message")
	Log().Debugf("%s", "message")
	assert.Len(t, getLogEntries(&buf), 2)

	buf.Reset()
	require.True(t, SetLevel("WARN"))
	assert.Equal(t, zapcore.WarnLevel, Level())
	Log().Info("message")
	Log().Warn("message")
	assert.Len(t, getLogEntries(&buf), 1)

	buf.Reset()
	require.True(t, SetLevel("none"))
	Log().Error("message")
	assert.Empty(t, getLogEntries(&buf))

	assert.False(t, SetLevel("verbose"))
}

func TestJSONLogger(t *testing.T) {
	defer SetLevel("info")
	SetLevel("info")
	var a, b bytes.Buffer
	l := NewJSONLogger(zapcore.AddSync(&a), zapcore.AddSync(&b))
	l.Infow("decoded", "tag", "(0010,0010)")
	for _, buf := range []*bytes.Buffer{&a, &b} {
		entries := getLogEntries(buf)
		require.Len(t, entries, 1)
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(entries[0]), &entry))
		assert.Equal(t, "decoded", entry["msg"])
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "(0010,0010)", entry["tag"])
	}
}

func TestSetLoggerNil(t *testing.T) {
	prev := SetLogger(nil)
	defer SetLogger(prev)
	Log().Info("discarded")
	assert.NotNil(t, Log())
}
