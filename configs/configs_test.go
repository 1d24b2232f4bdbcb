package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "21:00", cfg.SendTime)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 20*time.Second, cfg.WaitTimeout)
	assert.Equal(t, 50*time.Millisecond, cfg.TypingDelayMin)
	assert.Equal(t, 150*time.Millisecond, cfg.TypingDelayMax)
	assert.Equal(t, 3, cfg.CaptchaCheckAttempts)
	assert.Equal(t, 8*time.Second, cfg.AccountDelayMin)
	assert.Equal(t, 15*time.Second, cfg.AccountDelayMax)
	assert.True(t, cfg.Headless)
	assert.NotEmpty(t, cfg.Messages)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"send_time": "09:30",
		"messages": ["hi"],
		"max_retries": 5,
		"retry_delay_sec": 10,
		"heartbeat_minutes": 5,
		"headless": false
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "09:30", cfg.SendTime)
	assert.Equal(t, []string{"hi"}, cfg.Messages)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.RetryDelay)
	assert.Equal(t, 5*time.Minute, cfg.HeartbeatInterval)
	assert.False(t, cfg.Headless)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultCookiesPath, cfg.CookiesPath)
	assert.Equal(t, DefaultAccountDelayMax, cfg.AccountDelayMax)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadRejectsBadSendTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"send_time": "25:99"}`), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestParseSendTime(t *testing.T) {
	hour, minute, err := ParseSendTime("21:00")
	require.NoError(t, err)
	assert.Equal(t, 21, hour)
	assert.Equal(t, 0, minute)

	for _, bad := range []string{"", "9pm", "24:00", "12:60", "12-30"} {
		_, _, err := ParseSendTime(bad)
		assert.Error(t, err, "send time %q should be rejected", bad)
	}
}

func TestLocation(t *testing.T) {
	cfg := Default()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	cfg.Timezone = "Not/AZone"
	_, err = cfg.Location()
	require.Error(t, err)
}
