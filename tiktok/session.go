package tiktok

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lisicong/tiktok-streak/cookies"
)

const homeURL = "https://www.tiktok.com"

// InitSession establishes an authenticated session on the page: navigate to
// the site root, inject the stored cookies one at a time, then reload so the
// session takes effect. A cookie that cannot be applied is skipped with a
// warning; the session proceeds with a partial set, which may later surface
// as an authentication failure on page load. No retry at this layer.
func InitSession(ctx context.Context, page *rod.Page, records []cookies.Record) error {
	if err := navigate(ctx, page, homeURL); err != nil {
		return errors.Wrap(err, "open site root")
	}
	time.Sleep(2 * time.Second)

	applied := 0
	for _, record := range records {
		param, err := cookies.Normalize(record)
		if err != nil {
			logrus.Warnf("skipping cookie: %v", err)
			continue
		}
		if err := page.SetCookies([]*proto.NetworkCookieParam{param}); err != nil {
			logrus.Warnf("failed to add cookie %s: %v", param.Name, err)
			continue
		}
		applied++
	}
	logrus.Infof("applied %d/%d cookies", applied, len(records))

	if err := navigate(ctx, page, homeURL); err != nil {
		return errors.Wrap(err, "reload with session cookies")
	}
	time.Sleep(3 * time.Second)
	return nil
}

// navigate loads a URL with a bounded wait for the load event.
func navigate(ctx context.Context, page *rod.Page, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	p := page.Context(navCtx)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}
