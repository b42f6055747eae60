package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewApplicationRegistersCommands(testInstance *testing.T) {
	application := NewApplication()
	require.NotNil(testInstance, application.rootCommand)

	registeredCommandNames := map[string]bool{}
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredCommandNames[registeredCommand.Name()] = true
	}

	expectedCommandNames := []string{"manifest", "sync", "settings", "workflow"}
	for _, expectedCommandName := range expectedCommandNames {
		require.True(testInstance, registeredCommandNames[expectedCommandName], expectedCommandName)
	}
}

func TestNewApplicationRegistersPersistentFlags(testInstance *testing.T) {
	application := NewApplication()

	persistentFlags := application.rootCommand.PersistentFlags()
	expectedFlagNames := []string{
		configFileFlagNameConstant,
		environmentFileFlagNameConstant,
		logLevelFlagNameConstant,
		logFormatFlagNameConstant,
	}
	for _, expectedFlagName := range expectedFlagNames {
		require.NotNil(testInstance, persistentFlags.Lookup(expectedFlagName), expectedFlagName)
	}
}

func TestApplicationExecutesSettingsCommand(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	basePath := filepath.Join(temporaryDirectory, "settings.base.json")
	outputPath := filepath.Join(temporaryDirectory, "settings.json")
	require.NoError(testInstance, os.WriteFile(basePath, []byte(`{"theme":"light"}`), 0o644))

	application := NewApplication()
	application.rootCommand.SetArgs([]string{"settings", "--base", basePath, "--output", outputPath})
	require.NoError(testInstance, application.Execute())

	writtenContent, readError := os.ReadFile(outputPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "{\n  \"theme\": \"light\"\n}\n", string(writtenContent))
}

func TestEmbeddedDefaultConfiguration(testInstance *testing.T) {
	configurationContent, configurationType := EmbeddedDefaultConfiguration()
	require.Equal(testInstance, configurationTypeConstant, configurationType)
	require.NotEmpty(testInstance, configurationContent)

	var decodedConfiguration struct {
		Common struct {
			LogLevel  string `yaml:"log_level"`
			LogFormat string `yaml:"log_format"`
		} `yaml:"common"`
		Tools struct {
			Sync struct {
				Root string `yaml:"root"`
			} `yaml:"sync"`
		} `yaml:"tools"`
	}
	require.NoError(testInstance, yaml.Unmarshal(configurationContent, &decodedConfiguration))
	require.Equal(testInstance, "info", decodedConfiguration.Common.LogLevel)
	require.Equal(testInstance, "structured", decodedConfiguration.Common.LogFormat)
	require.Equal(testInstance, "package.json", decodedConfiguration.Tools.Sync.Root)
}
