package tiktok

import (
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// clickStrategy is one way of delivering a click to an element. Strategies
// are tried sequentially and the first success wins, so at most one of them
// performs the state-changing click.
type clickStrategy struct {
	name string
	fn   func(page *rod.Page, el *rod.Element) error
}

var clickStrategies = []clickStrategy{
	{"direct click", func(_ *rod.Page, el *rod.Element) error {
		return el.Click(proto.InputMouseButtonLeft, 1)
	}},
	{"scroll + click", func(_ *rod.Page, el *rod.Element) error {
		if err := el.ScrollIntoView(); err != nil {
			return err
		}
		time.Sleep(500 * time.Millisecond)
		return el.Click(proto.InputMouseButtonLeft, 1)
	}},
	// Script-injected click bypasses overlay interception entirely.
	{"javascript click", func(_ *rod.Page, el *rod.Element) error {
		_, err := el.Eval(`() => this.click()`)
		return err
	}},
	// Simulated pointer: move the mouse onto the element, then click.
	{"pointer click", func(page *rod.Page, el *rod.Element) error {
		if err := el.Hover(); err != nil {
			return err
		}
		return page.Mouse.Click(proto.InputMouseButtonLeft, 1)
	}},
}

// Click performs a click on a located element despite the overlay and
// interception issues common in automated interaction. Each strategy's
// failure is swallowed and the next tried; only full exhaustion is an error.
func Click(page *rod.Page, el *rod.Element, target string) error {
	for _, s := range clickStrategies {
		if err := s.fn(page, el); err != nil {
			logrus.Debugf("click %s: %s failed: %v", target, s.name, err)
			continue
		}
		logrus.Infof("clicked %s via %s", target, s.name)
		time.Sleep(2 * time.Second)
		return nil
	}

	return notInteractable(target, nil)
}
