package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEntry(t *testing.T) {
	line := FormatEntry("2026-08-27 21:00:00", "info", "daily run started")
	assert.Equal(t, "[2026-08-27 21:00:00] INFO: daily run started", line)

	line = FormatEntry("2026-08-27 21:00:05", "error", "cookie file not found")
	assert.Equal(t, "[2026-08-27 21:00:05] ERROR: cookie file not found", line)
}

func TestActivityHookAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.txt")

	hook, err := NewActivityHook(path)
	require.NoError(t, err)

	entry := &logrus.Entry{
		Time:    time.Date(2026, 8, 27, 21, 0, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "captcha detected",
	}
	require.NoError(t, hook.Fire(entry))
	require.NoError(t, hook.Fire(entry))
	require.NoError(t, hook.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[2026-08-27 21:00:00] WARNING: captcha detected", lines[0])
}

func TestActivityHookLevels(t *testing.T) {
	hook := &ActivityHook{}
	assert.NotContains(t, hook.Levels(), logrus.DebugLevel)
	assert.Contains(t, hook.Levels(), logrus.InfoLevel)
	assert.Contains(t, hook.Levels(), logrus.ErrorLevel)
}
