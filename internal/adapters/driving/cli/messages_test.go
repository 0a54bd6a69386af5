package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagesImportCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runCommand("", "messages", "import", "chat.jsonl")

	require.NoError(t, err)
	assert.Equal(t, "Imported 42 messages from chat.jsonl\n", out)
	assert.Equal(t, []string{"chat.jsonl"}, ts.messages.imported)
}

func TestMessagesImportCmd_Error(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := runCommand("", "messages", "import", "missing.jsonl")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "import failed")
}

func TestMessagesImportCmd_RequiresPath(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := runCommand("", "messages", "import")

	assert.Error(t, err)
}

func TestMessagesCountCmd(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runCommand("", "messages", "count", "-g", "-100")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, _, err = runCommand("", "messages", "count")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestMessagesCmd_NoService(t *testing.T) {
	_, _, err := runCommand("", "messages", "count")

	assert.EqualError(t, err, "message service not configured")
}
