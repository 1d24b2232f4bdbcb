package cookies

import (
	"encoding/json"
	"os"

	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultDomain is applied when an exported cookie carries no domain of its own.
const DefaultDomain = ".tiktok.com"

// Record is a single cookie as exported by browser extensions:
// name/value are required, everything else optional.
type Record struct {
	Name           string  `json:"name"`
	Value          string  `json:"value"`
	Domain         string  `json:"domain,omitempty"`
	Path           string  `json:"path,omitempty"`
	ExpirationDate float64 `json:"expirationDate,omitempty"`
	Secure         bool    `json:"secure,omitempty"`
	HTTPOnly       bool    `json:"httpOnly,omitempty"`
}

// Load reads the cookie file (a JSON array of Record). A missing or
// malformed file is a config error; the caller decides whether it aborts
// the run.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cookie file not found: %s", path)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrapf(err, "invalid JSON in %s", path)
	}

	logrus.Infof("loaded %d cookies from %s", len(records), path)
	return records, nil
}

// Normalize converts a Record into the rod cookie parameter. A record
// without a name/value pair is rejected; a missing domain defaults to the
// site root domain.
func Normalize(r Record) (*proto.NetworkCookieParam, error) {
	if r.Name == "" || r.Value == "" {
		return nil, errors.Errorf("cookie %q missing name or value", r.Name)
	}

	domain := r.Domain
	if domain == "" {
		domain = DefaultDomain
	}

	param := &proto.NetworkCookieParam{
		Name:     r.Name,
		Value:    r.Value,
		Domain:   domain,
		Path:     r.Path,
		Secure:   r.Secure,
		HTTPOnly: r.HTTPOnly,
	}
	if r.ExpirationDate > 0 {
		param.Expires = proto.TimeSinceEpoch(r.ExpirationDate)
	}
	return param, nil
}
