package cookies

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-rod/rod/lib/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	content := `[
		{"name": "sessionid", "value": "abc", "domain": ".tiktok.com", "secure": true},
		{"name": "tt_chain_token", "value": "xyz", "expirationDate": 1767225600.5}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "sessionid", records[0].Name)
	assert.True(t, records[0].Secure)
	assert.InDelta(t, 1767225600.5, records[1].ExpirationDate, 0.001)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "cookies.json"))
	require.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestNormalizeDefaultsDomain(t *testing.T) {
	param, err := Normalize(Record{Name: "sessionid", Value: "abc"})
	require.NoError(t, err)
	assert.Equal(t, DefaultDomain, param.Domain)
	assert.Equal(t, proto.TimeSinceEpoch(0), param.Expires)
}

func TestNormalizeKeepsExplicitFields(t *testing.T) {
	param, err := Normalize(Record{
		Name:           "sessionid",
		Value:          "abc",
		Domain:         "www.tiktok.com",
		Path:           "/",
		ExpirationDate: 1767225600,
		Secure:         true,
		HTTPOnly:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "www.tiktok.com", param.Domain)
	assert.Equal(t, "/", param.Path)
	assert.Equal(t, proto.TimeSinceEpoch(1767225600), param.Expires)
	assert.True(t, param.Secure)
	assert.True(t, param.HTTPOnly)
}

func TestNormalizeRejectsMissingNameOrValue(t *testing.T) {
	_, err := Normalize(Record{Value: "abc"})
	require.Error(t, err)

	_, err = Normalize(Record{Name: "sessionid"})
	require.Error(t, err)
}
