package tiktok

import (
	"time"

	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"
)

// Expression is one way of resolving a semantic target on the page. When
// Text is set it is a rod regex (e.g. "/^Message$/i") matched against the
// element's text content, otherwise Selector alone decides.
type Expression struct {
	Selector string
	Text     string
}

// Locator resolves a semantic target ("message button", "message input")
// against unversioned third-party markup. Expressions are tried strictly in
// order, most specific attribute match first and generic text match last, so
// minor UI revisions only cost the head of the cascade.
type Locator struct {
	Name        string
	Expressions []Expression
}

// The cascades are data, not code: when TikTok ships new markup only these
// lists need updating.
var (
	// MessageButton is the message-initiation control on a profile page.
	MessageButton = Locator{
		Name: "message button",
		Expressions: []Expression{
			{Selector: `button[data-e2e="message-button"]`},
			{Selector: `button.TUXButton[data-e2e="message-button"]`},
			{Selector: `button[data-e2e="user-page-message-button"]`},
			{Selector: `button`, Text: `/^\s*Message\s*$/i`},
		},
	}

	// MessageInput is the DM text field after the conversation opens.
	MessageInput = Locator{
		Name: "message input",
		Expressions: []Expression{
			{Selector: `div[data-e2e="dm-input"]`},
			{Selector: `div[contenteditable="true"]`},
			{Selector: `div[role="textbox"]`},
		},
	}

	// CaptchaClose are the dismissal controls of known challenge overlays.
	CaptchaClose = Locator{
		Name: "captcha close",
		Expressions: []Expression{
			{Selector: `button[aria-label*="Close"]`},
			{Selector: `button[class*="close"]`},
			{Selector: `button`, Text: `/^\s*×\s*$/`},
		},
	}
)

// Find tries each expression in priority order and returns the first
// visible match. The total timeout is the budget for the whole lookup,
// split evenly across the cascade so a dead page cannot stall one lookup
// for timeout-times-expressions. Exhaustion yields a KindNotFound error;
// the caller decides whether the surrounding workflow retries.
func (l Locator) Find(page *rod.Page, total time.Duration) (*rod.Element, error) {
	perExpr := total / time.Duration(len(l.Expressions))
	if perExpr < time.Second {
		perExpr = time.Second
	}

	for i, expr := range l.Expressions {
		el, err := expr.find(page, perExpr)
		if err != nil {
			logrus.Debugf("%s: expression #%d missed: %v", l.Name, i+1, err)
			continue
		}

		visible, err := el.Visible()
		if err != nil || !visible {
			logrus.Debugf("%s: expression #%d matched a hidden element", l.Name, i+1)
			continue
		}

		logrus.Infof("found %s (expression #%d)", l.Name, i+1)
		return el, nil
	}

	return nil, notFound(l.Name, nil)
}

func (e Expression) find(page *rod.Page, timeout time.Duration) (*rod.Element, error) {
	p := page.Timeout(timeout)
	defer p.CancelTimeout()

	if e.Text != "" {
		return p.ElementR(e.Selector, e.Text)
	}
	return p.Element(e.Selector)
}
