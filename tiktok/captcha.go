package tiktok

import (
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/sirupsen/logrus"
)

// challengePhrases are the known markers of TikTok's interstitial
// verification overlays, matched case-insensitively against the page text.
var challengePhrases = []string{
	"drag the slider",
	"verify you are human",
	"puzzle",
	"verification",
}

// detectChallenge reports whether the page text contains a known challenge
// marker.
func detectChallenge(pageText string) bool {
	text := strings.ToLower(pageText)
	for _, phrase := range challengePhrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// CheckAndCloseCaptcha scans the current page for a challenge overlay and,
// if one is present, walks the dismissal cascade and falls back to Escape.
// It returns whether a challenge was detected and a dismissal attempted.
// After a dismissal attempt the page is re-scanned once; a still-present
// challenge is logged so the failure shows up in the activity log instead of
// silently surfacing as a missing message button later.
func CheckAndCloseCaptcha(page *rod.Page, locatorTimeout time.Duration) bool {
	text, err := bodyText(page)
	if err != nil {
		return false
	}
	if !detectChallenge(text) {
		return false
	}

	logrus.Warn("captcha detected, attempting to close...")

	dismissed := false
	if el, err := CaptchaClose.Find(page, locatorTimeout); err == nil {
		if err := Click(page, el, CaptchaClose.Name); err == nil {
			logrus.Info("closed captcha popup")
			dismissed = true
		}
	}

	if !dismissed {
		if err := page.KeyActions().Press(input.Escape).Do(); err == nil {
			logrus.Info("pressed ESC to close captcha")
			time.Sleep(2 * time.Second)
		}
	}

	if text, err := bodyText(page); err == nil && detectChallenge(text) {
		logrus.Warn("challenge still present after dismissal attempt")
	}

	return true
}

// GuardCaptcha runs the captcha check up to maxAttempts times with a short
// delay after each dismissal, stopping early once the page is clean.
func GuardCaptcha(page *rod.Page, maxAttempts int, locatorTimeout time.Duration) {
	for i := 0; i < maxAttempts; i++ {
		if !CheckAndCloseCaptcha(page, locatorTimeout) {
			return
		}
		time.Sleep(2 * time.Second)
	}
}

func bodyText(page *rod.Page) (string, error) {
	body, err := page.Timeout(5 * time.Second).Element("body")
	if err != nil {
		return "", err
	}
	return body.Text()
}
