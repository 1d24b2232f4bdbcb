package accounts

import (
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Load reads the target list: one handle per line, a leading "@" stripped,
// lines starting with "#" and blank lines skipped.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "account file not found: %s", path)
	}
	defer f.Close()

	var handles []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		handles = append(handles, Normalize(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read account file %s", path)
	}

	logrus.Infof("loaded %d accounts from %s", len(handles), path)
	return handles, nil
}

// Normalize strips the leading "@" marker from a handle.
func Normalize(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}
