package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "open")
	assert.Contains(t, commandNames, "import")
	assert.Contains(t, commandNames, "cite")
	assert.Contains(t, commandNames, "follow")
	assert.Contains(t, commandNames, "resolve")
	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "convert")
	assert.Contains(t, commandNames, "version")
}

func TestResolveCmd_PrintsPath(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("resolve", "doi:10.1/x", "--storage", "/archive")

	require.NoError(t, err)
	assert.Contains(t, out, "/archive/edit/doi:10.1/x")
}

func TestListCmd_PrintsEveryPath(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("list", "--storage", "/archive")

	require.NoError(t, err)
	assert.Contains(t, out, "/archive/edit/a")
	assert.Contains(t, out, "/archive/edit/b")
}

func TestConvertCmd_RequiresTwoArgs(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("convert", "only-source")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestResolveStorageRoot_FlagWinsOverConfig(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	storageRoot = "/from-flag"
	assert.Equal(t, "/from-flag", resolveStorageRoot())
}
