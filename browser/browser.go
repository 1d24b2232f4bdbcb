package browser

import (
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
	"github.com/xpzouying/headless_browser"
)

// userAgent pins a plain desktop Chrome; the stealth layer inside
// headless_browser would otherwise advertise a Mac build, and TikTok keys
// some widgets off the platform.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type browserConfig struct {
	binPath string
}

type Option func(*browserConfig)

func WithBinPath(binPath string) Option {
	return func(c *browserConfig) {
		c.binPath = binPath
	}
}

// NewBrowser launches a stealth-configured browser instance. Cookies are not
// applied here; the session initializer injects them per run so a malformed
// cookie can be skipped individually.
func NewBrowser(headless bool, options ...Option) *headless_browser.Browser {
	cfg := &browserConfig{}
	for _, opt := range options {
		opt(cfg)
	}

	opts := []headless_browser.Option{
		headless_browser.WithHeadless(headless),
	}
	if cfg.binPath != "" {
		opts = append(opts, headless_browser.WithChromeBinPath(cfg.binPath))
	}

	return headless_browser.New(opts...)
}

// ConfigurePage applies the anti-fingerprinting patches every page gets
// before navigation: a pinned UA and navigator overrides injected on each
// new document.
func ConfigurePage(page *rod.Page) {
	// Failure here is non-fatal; the page may already be closing.
	_ = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent: userAgent,
		Platform:  "Windows",
	})

	_, err := page.EvalOnNewDocument(`
		Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
		Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3, 4, 5]});
		Object.defineProperty(navigator, 'languages', {get: () => ['en-US', 'en']});
		Object.defineProperty(navigator, 'platform', {get: () => 'Win32'});
		window.chrome = {runtime: {}};
	`)
	if err != nil {
		logrus.Warnf("failed to install navigator overrides: %v", err)
	}
}
