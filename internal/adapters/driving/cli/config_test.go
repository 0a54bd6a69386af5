package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCmd_List(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	for _, args := range [][]string{{"config"}, {"config", "list"}} {
		out, _, err := runCommand("", args...)

		require.NoError(t, err)
		assert.Equal(t, "transform.schemes = s2tw,tw2s,s2twp,tw2sp\ntransform.ordering = input-first\n", out)
	}
}

func TestConfigCmd_Get(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runCommand("", "config", "get", "transform.ordering")

	require.NoError(t, err)
	assert.Equal(t, "input-first\n", out)
}

func TestConfigCmd_GetUnknownKey(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := runCommand("", "config", "get", "nope")

	assert.Error(t, err)
}

func TestConfigCmd_Set(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runCommand("", "config", "set", "transform.ordering", "lexical")

	require.NoError(t, err)
	assert.Equal(t, "transform.ordering updated.\n", out)
	assert.Equal(t, "lexical", ts.settings.values["transform.ordering"])
}

func TestConfigCmd_SetRejected(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := runCommand("", "config", "set", "nope", "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save setting")
}

func TestConfigCmd_Path(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runCommand("", "config", "path")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/querytrans/config.toml\n", out)
}

func TestConfigCmd_NoService(t *testing.T) {
	_, _, err := runCommand("", "config", "path")

	assert.EqualError(t, err, "settings service not configured")
}
