package browser

import (
	"sync"

	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"
	"github.com/xpzouying/headless_browser"
)

// Manager serializes access to the single browser instance. A scheduled run
// and a manually triggered run must never drive the browser at the same
// time; the second caller blocks until the first releases it.
type Manager struct {
	mu       sync.Mutex
	cond     *sync.Cond
	browser  *headless_browser.Browser
	headless bool
	binPath  string
	inUse    bool
}

// NewManager creates a manager for the given browser configuration.
func NewManager(headless bool, binPath string) *Manager {
	m := &Manager{headless: headless, binPath: binPath}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Acquire returns the browser instance, creating it on first use, and a
// release function the caller must invoke when done. Blocks while another
// caller holds the browser.
func (m *Manager) Acquire() (*headless_browser.Browser, func()) {
	m.mu.Lock()

	for m.inUse {
		logrus.Info("browser busy, waiting for release...")
		m.cond.Wait()
	}

	if m.browser == nil {
		logrus.Info("launching browser instance...")
		m.browser = NewBrowser(m.headless, WithBinPath(m.binPath))
	}

	m.inUse = true
	b := m.browser

	release := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.inUse = false
		m.cond.Signal()
	}

	m.mu.Unlock()
	return b, release
}

// NewPageWithRelease acquires the browser and opens a fresh configured page.
// The returned release closes the page and hands the browser back.
func (m *Manager) NewPageWithRelease() (*rod.Page, func()) {
	b, releaseBrowser := m.Acquire()

	page := b.NewPage()
	ConfigurePage(page)

	release := func() {
		if page != nil {
			page.Close()
		}
		releaseBrowser()
	}
	return page, release
}

// Close shuts the browser down. Safe to call when no instance exists.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil {
		logrus.Info("closing browser instance...")
		m.browser.Close()
		m.browser = nil
		m.inUse = false
	}
}
