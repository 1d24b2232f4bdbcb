package configs

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultSendTime             = "21:00"
	DefaultTimezone             = "Local"
	DefaultCookiesPath          = "cookies.json"
	DefaultAccountsPath         = "list.txt"
	DefaultActivityLogPath      = "tiktok_logs.txt"
	DefaultScreenshotDir        = "."
	DefaultMaxRetries           = 3
	DefaultWaitTimeout          = 20 * time.Second
	DefaultLocatorTimeout       = 5 * time.Second
	DefaultTypingDelayMin       = 50 * time.Millisecond
	DefaultTypingDelayMax       = 150 * time.Millisecond
	DefaultCaptchaCheckAttempts = 3
	DefaultRetryDelay           = 5 * time.Second
	DefaultAccountDelayMin      = 8 * time.Second
	DefaultAccountDelayMax      = 15 * time.Second
	DefaultHeartbeatInterval    = 15 * time.Minute
	DefaultListenAddr           = ":18070"
)

// DefaultMessages is the built-in message pool, overridable from the config file.
var DefaultMessages = []string{
	"text 1",
	"text 2",
	"text 3",
}

// Config holds every process-wide parameter. It is built once at startup and
// passed by reference; nothing mutates it afterwards.
type Config struct {
	// SendTime is the daily trigger in 24-hour "HH:MM".
	SendTime string
	// Timezone is an IANA name or "Local".
	Timezone string

	CookiesPath     string
	AccountsPath    string
	ActivityLogPath string
	ScreenshotDir   string

	// Messages is the pool a random message is picked from per account.
	Messages []string

	MaxRetries           int
	WaitTimeout          time.Duration
	LocatorTimeout       time.Duration
	TypingDelayMin       time.Duration
	TypingDelayMax       time.Duration
	CaptchaCheckAttempts int
	RetryDelay           time.Duration
	AccountDelayMin      time.Duration
	AccountDelayMax      time.Duration
	HeartbeatInterval    time.Duration

	Headless   bool
	BinPath    string
	ListenAddr string
}

// fileConfig is the JSON shape of the optional config file. Durations are
// spelled out with their unit so the file stays readable; zero values fall
// back to the defaults.
type fileConfig struct {
	SendTime        string   `json:"send_time"`
	Timezone        string   `json:"timezone"`
	CookiesPath     string   `json:"cookies_path"`
	AccountsPath    string   `json:"accounts_path"`
	ActivityLogPath string   `json:"activity_log_path"`
	ScreenshotDir   string   `json:"screenshot_dir"`
	Messages        []string `json:"messages"`

	MaxRetries           int `json:"max_retries"`
	WaitTimeoutSec       int `json:"wait_timeout_sec"`
	LocatorTimeoutSec    int `json:"locator_timeout_sec"`
	TypingDelayMinMs     int `json:"typing_delay_min_ms"`
	TypingDelayMaxMs     int `json:"typing_delay_max_ms"`
	CaptchaCheckAttempts int `json:"captcha_check_attempts"`
	RetryDelaySec        int `json:"retry_delay_sec"`
	AccountDelayMinSec   int `json:"account_delay_min_sec"`
	AccountDelayMaxSec   int `json:"account_delay_max_sec"`
	HeartbeatMinutes     int `json:"heartbeat_minutes"`

	Headless   *bool  `json:"headless,omitempty"`
	BinPath    string `json:"bin_path"`
	ListenAddr string `json:"listen_addr"`
}

// Default returns the configuration with all built-in values applied.
func Default() *Config {
	return &Config{
		SendTime:             DefaultSendTime,
		Timezone:             DefaultTimezone,
		CookiesPath:          DefaultCookiesPath,
		AccountsPath:         DefaultAccountsPath,
		ActivityLogPath:      DefaultActivityLogPath,
		ScreenshotDir:        DefaultScreenshotDir,
		Messages:             append([]string(nil), DefaultMessages...),
		MaxRetries:           DefaultMaxRetries,
		WaitTimeout:          DefaultWaitTimeout,
		LocatorTimeout:       DefaultLocatorTimeout,
		TypingDelayMin:       DefaultTypingDelayMin,
		TypingDelayMax:       DefaultTypingDelayMax,
		CaptchaCheckAttempts: DefaultCaptchaCheckAttempts,
		RetryDelay:           DefaultRetryDelay,
		AccountDelayMin:      DefaultAccountDelayMin,
		AccountDelayMax:      DefaultAccountDelayMax,
		HeartbeatInterval:    DefaultHeartbeatInterval,
		Headless:             true,
		ListenAddr:           DefaultListenAddr,
	}
}

// Load builds the configuration from defaults overlaid with an optional JSON
// file. An empty path means defaults only; a non-empty path that cannot be
// read or parsed is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}
	fc.apply(cfg)

	if _, _, err := ParseSendTime(cfg.SendTime); err != nil {
		return nil, err
	}
	if len(cfg.Messages) == 0 {
		return nil, errors.New("config: message pool is empty")
	}
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) {
	if fc.SendTime != "" {
		cfg.SendTime = fc.SendTime
	}
	if fc.Timezone != "" {
		cfg.Timezone = fc.Timezone
	}
	if fc.CookiesPath != "" {
		cfg.CookiesPath = fc.CookiesPath
	}
	if fc.AccountsPath != "" {
		cfg.AccountsPath = fc.AccountsPath
	}
	if fc.ActivityLogPath != "" {
		cfg.ActivityLogPath = fc.ActivityLogPath
	}
	if fc.ScreenshotDir != "" {
		cfg.ScreenshotDir = fc.ScreenshotDir
	}
	if len(fc.Messages) > 0 {
		cfg.Messages = fc.Messages
	}
	if fc.MaxRetries > 0 {
		cfg.MaxRetries = fc.MaxRetries
	}
	if fc.WaitTimeoutSec > 0 {
		cfg.WaitTimeout = time.Duration(fc.WaitTimeoutSec) * time.Second
	}
	if fc.LocatorTimeoutSec > 0 {
		cfg.LocatorTimeout = time.Duration(fc.LocatorTimeoutSec) * time.Second
	}
	if fc.TypingDelayMinMs > 0 {
		cfg.TypingDelayMin = time.Duration(fc.TypingDelayMinMs) * time.Millisecond
	}
	if fc.TypingDelayMaxMs > 0 {
		cfg.TypingDelayMax = time.Duration(fc.TypingDelayMaxMs) * time.Millisecond
	}
	if fc.CaptchaCheckAttempts > 0 {
		cfg.CaptchaCheckAttempts = fc.CaptchaCheckAttempts
	}
	if fc.RetryDelaySec > 0 {
		cfg.RetryDelay = time.Duration(fc.RetryDelaySec) * time.Second
	}
	if fc.AccountDelayMinSec > 0 {
		cfg.AccountDelayMin = time.Duration(fc.AccountDelayMinSec) * time.Second
	}
	if fc.AccountDelayMaxSec > 0 {
		cfg.AccountDelayMax = time.Duration(fc.AccountDelayMaxSec) * time.Second
	}
	if fc.HeartbeatMinutes > 0 {
		cfg.HeartbeatInterval = time.Duration(fc.HeartbeatMinutes) * time.Minute
	}
	if fc.Headless != nil {
		cfg.Headless = *fc.Headless
	}
	if fc.BinPath != "" {
		cfg.BinPath = fc.BinPath
	}
	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
}

// ParseSendTime validates a 24-hour "HH:MM" string and returns its parts.
func ParseSendTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid send time %q, want HH:MM (24-hour)", s)
	}
	return t.Hour(), t.Minute(), nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %q", c.Timezone)
	}
	return loc, nil
}
