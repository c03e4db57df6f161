package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/framedump/internal/config"
)

func TestPatternFormatter(t *testing.T) {
	var buf bytes.Buffer
	l, err := newWithWriter(config.LogConfig{
		Level:   "info",
		Format:  "pattern",
		Pattern: "[%level] %msg {%field}%n",
		Time:    "2006-01-02",
	}, &buf)
	require.NoError(t, err)

	l.WithFields(map[string]interface{}{"source": "a.bin", "frames": 3}).Info("decoded capture")

	assert.Equal(t, "[INFO] decoded capture {frames=3,source=a.bin}\n", buf.String())
}

func TestPatternFormatterDefaults(t *testing.T) {
	f := &formatter{time: "15:04"}
	out, err := f.Format(&logrus.Entry{Message: "hello", Level: logrus.WarnLevel, Data: logrus.Fields{}})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(out), "[WARNING] hello \n"), string(out))
}

func TestPatternFormatterCaller(t *testing.T) {
	var buf bytes.Buffer
	l, err := newWithWriter(config.LogConfig{
		Level:   "info",
		Format:  "pattern",
		Pattern: "%caller %msg%n",
		Caller:  true,
	}, &buf)
	require.NoError(t, err)

	l.WithField("source", "a.bin").Info("decoded capture")

	assert.Regexp(t, `^log/logger_test\.go:\d+ decoded capture\n$`, buf.String())
}

func TestPatternFormatterCallerDisabled(t *testing.T) {
	var buf bytes.Buffer
	l, err := newWithWriter(config.LogConfig{Level: "info", Format: "pattern", Pattern: "%caller %msg%n"}, &buf)
	require.NoError(t, err)

	l.Info("decoded capture")

	assert.Equal(t, "- decoded capture\n", buf.String())
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := newWithWriter(config.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	l.WithError(errors.New("boom")).Debug("walk stopped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "walk stopped", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "debug", entry["level"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := newWithWriter(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.False(t, l.IsInfoEnabled())
	assert.False(t, l.IsDebugEnabled())
}

func TestPrefixedFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := newWithWriter(config.LogConfig{Level: "trace", Format: "prefixed"}, &buf)
	require.NoError(t, err)

	assert.True(t, l.IsTraceEnabled())
	l.Tracef("frame %d", 7)
	assert.Contains(t, buf.String(), "frame 7")
}

func TestNewInvalid(t *testing.T) {
	_, err := newWithWriter(config.LogConfig{Level: "loud", Format: "text"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid log level")

	_, err = newWithWriter(config.LogConfig{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unsupported log format")

	_, err = New(config.LogConfig{Level: "info", Format: "text", File: config.FileOutputConfig{Enabled: true}})
	assert.ErrorContains(t, err, "path")
}

func TestInitWithFileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "framedump.log")

	err := Init(config.LogConfig{
		Level:  "info",
		Format: "json",
		File: config.FileOutputConfig{
			Enabled: true,
			Path:    logPath,
			Rotation: config.RotationConfig{
				MaxSizeMB:  1,
				MaxBackups: 1,
				MaxAgeDays: 1,
			},
		},
	})
	require.NoError(t, err)

	GetLogger().WithField("key", "value").Info("test message")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "test message")
}

func TestGetLoggerBeforeInit(t *testing.T) {
	assert.NotNil(t, GetLogger())
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestMultiWriterContinuesPastFailure(t *testing.T) {
	var buf bytes.Buffer
	w := NewMultiWriter().Add(failingWriter{}).Add(&buf)

	n, err := w.Write([]byte("line\n"))
	assert.Error(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "line\n", buf.String())
}
