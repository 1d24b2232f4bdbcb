package tiktok

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-rod/rod"
	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"
)

// saveDiagnostic captures the current viewport and writes it next to the
// logs, named by failure stage and account. Best effort: a failed capture
// only logs, the workflow outcome is already decided by the time we get here.
func saveDiagnostic(page *rod.Page, dir, stage, account string) {
	data, err := page.Screenshot(false, nil)
	if err != nil {
		logrus.Warnf("diagnostic screenshot failed for @%s: %v", account, err)
		return
	}

	// The capture occasionally comes back empty when the renderer is mid
	// navigation; don't litter the directory with broken files.
	ext := "png"
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		ext = kind.Extension
	} else if !filetype.IsImage(data) {
		logrus.Warnf("diagnostic capture for @%s is not an image, dropping", account)
		return
	}

	name := fmt.Sprintf("debug_%s_%s.%s", stage, account, ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		logrus.Warnf("failed to write %s: %v", path, err)
		return
	}
	logrus.Infof("saved diagnostic screenshot %s", path)
}
