package tiktok

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lisicong/tiktok-streak/accounts"
	"github.com/lisicong/tiktok-streak/configs"
)

// Stage names the step of the send workflow a failure happened in; it tags
// the diagnostic screenshot.
type Stage string

const (
	StageNavigate    Stage = "navigate"
	StageNoButton    Stage = "no_button"
	StageClickFailed Stage = "click_failed"
	StageNoInput     Stage = "no_input"
	StageTypeFailed  Stage = "type_failed"
	StageError       Stage = "error"
)

// SendAction runs the per-account message workflow on an authenticated page:
// navigate, guard, locate button, click, guard, locate input, type, submit.
type SendAction struct {
	page *rod.Page
	cfg  *configs.Config
}

// NewSendAction creates the workflow bound to a page and the run config.
func NewSendAction(page *rod.Page, cfg *configs.Config) *SendAction {
	return &SendAction{page: page, cfg: cfg}
}

// Send delivers one message to the account. Any failure captures a
// screenshot tagged with the stage and returns an error; no state beyond the
// screenshot and log line is kept.
func (s *SendAction) Send(ctx context.Context, account string) (err error) {
	handle := accounts.Normalize(account)
	logrus.Infof("processing @%s", handle)

	// Only a stray panic out of the CDP layer is converted here; every other
	// failure is an explicit error return.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("send to @%s panicked: %v", handle, r)
			s.fail(StageError, handle)
		}
	}()

	page := s.page.Context(ctx)

	// NAVIGATE: profile page, then a fixed settle delay. TikTok keeps
	// streaming widgets after the load event, so the sleep stays.
	profileURL := fmt.Sprintf("%s/@%s", homeURL, handle)
	logrus.Infof("navigating to %s", profileURL)
	if err := navigate(ctx, page, profileURL); err != nil {
		s.fail(StageNavigate, handle)
		return errors.Wrapf(err, "navigate to @%s", handle)
	}
	time.Sleep(5 * time.Second)

	// GUARD_1: bounded captcha sweep before touching anything.
	GuardCaptcha(page, s.cfg.CaptchaCheckAttempts, s.cfg.LocatorTimeout)

	// LOCATE_BUTTON
	button, err := MessageButton.Find(page, s.cfg.WaitTimeout)
	if err != nil {
		s.fail(StageNoButton, handle)
		return err
	}

	// CLICK_BUTTON
	if err := Click(page, button, MessageButton.Name); err != nil {
		s.fail(StageClickFailed, handle)
		return err
	}

	// GUARD_2: the conversation view is a new navigation state and can
	// trigger a fresh challenge.
	CheckAndCloseCaptcha(page, s.cfg.LocatorTimeout)

	// LOCATE_INPUT
	field, err := MessageInput.Find(page, s.cfg.WaitTimeout)
	if err != nil {
		s.fail(StageNoInput, handle)
		return err
	}

	// TYPE_AND_SUBMIT
	message := pickMessage(s.cfg.Messages)
	logrus.Infof("typing message (%d chars)", len(message))
	if err := s.typeAndSubmit(page, field, message); err != nil {
		s.fail(StageTypeFailed, handle)
		return errors.Wrapf(err, "type message to @%s", handle)
	}

	logrus.Infof("message sent to @%s", handle)
	return nil
}

// typeAndSubmit clicks the input, pace-types the message character by
// character with randomized delays to mimic human input, and submits with
// Enter.
func (s *SendAction) typeAndSubmit(page *rod.Page, field *rod.Element, message string) error {
	if err := Click(page, field, MessageInput.Name); err != nil {
		return err
	}
	time.Sleep(500 * time.Millisecond)

	for _, r := range message {
		if err := field.Input(string(r)); err != nil {
			return errors.Wrap(err, "input character")
		}
		time.Sleep(randomDuration(s.cfg.TypingDelayMin, s.cfg.TypingDelayMax))
	}
	time.Sleep(time.Second)

	if err := page.KeyActions().Press(input.Enter).Do(); err != nil {
		return errors.Wrap(err, "submit with enter")
	}
	time.Sleep(2 * time.Second)
	return nil
}

func (s *SendAction) fail(stage Stage, handle string) {
	saveDiagnostic(s.page, s.cfg.ScreenshotDir, string(stage), handle)
}
