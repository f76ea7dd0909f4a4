package root

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	Init()
}

func resetState(t *testing.T) {
	t.Helper()
	original := SharedFlags
	t.Cleanup(func() {
		if AppContainer != nil {
			_ = AppContainer.Close()
		}
		AppContainer = nil
		AppConfig = nil
		SharedFlags = original
	})
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "credit-report", Cmd.Use)
	assert.Contains(t, Cmd.Short, "credit bureau XML reports")
	assert.NotNil(t, Cmd.Run)
	assert.NotNil(t, Cmd.PersistentPreRunE)
	assert.NotNil(t, Cmd.PersistentPostRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"config", "log-level", "log-format"} {
		assert.NotNil(t, Cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestInitialize_LoadsConfigAndContainer(t *testing.T) {
	resetState(t)
	t.Chdir(t.TempDir())

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log:\n  level: warn\nimport:\n  workers: 3\n"), 0600))

	SharedFlags = CommonFlags{ConfigFile: configFile, LogFormat: "json"}
	cmd := &cobra.Command{}

	require.NoError(t, initialize(cmd, nil))

	require.NotNil(t, GetConfig())
	assert.Equal(t, "warn", GetConfig().Log.Level)
	assert.Equal(t, "json", GetConfig().Log.Format)
	require.NotNil(t, GetContainer())
	assert.Equal(t, 3, GetContainer().GetImporter().Workers())
	assert.Same(t, GetContainer().GetLogger(), GetLogger())

	require.NoError(t, cleanup(cmd, nil))
	assert.Nil(t, GetContainer())
	assert.NoError(t, cleanup(cmd, nil), "second cleanup is a no-op")
}

func TestInitialize_FlagOverridesLogLevel(t *testing.T) {
	resetState(t)
	t.Chdir(t.TempDir())

	SharedFlags = CommonFlags{LogLevel: "debug"}
	require.NoError(t, initialize(&cobra.Command{}, nil))
	assert.Equal(t, "debug", GetConfig().Log.Level)
}

func TestInitialize_MissingConfigFile(t *testing.T) {
	resetState(t)
	t.Chdir(t.TempDir())

	SharedFlags = CommonFlags{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}
	err := initialize(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Nil(t, GetContainer())
}
