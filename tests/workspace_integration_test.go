package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	workspaceRootManifestConstant = `{
  "name": "workspace",
  "version": "1.0.0",
  "notes": "scratch",
  "dependencies": {
    "lib-a": "2.0.0",
    "lib-unused": "1.0.0"
  }
}
`
	workspaceFragmentConstant = `{
  // shared scripts
  "scripts": {
    "build": "turbo run build"
  }
}
`
	workspacePackageManifestConstant = `{
  "name": "app",
  "dependencies": {
    "lib-a": "1.0.0"
  }
}
`
	workspaceBaseSettingsConstant  = `{"editor":{"tabSize":2},"theme":"light"}`
	workspaceLocalSettingsConstant = `{"theme":"dark"}`
)

func writeWorkspaceFile(testInstance *testing.T, workspaceDirectory string, relativePath string, content string) string {
	testInstance.Helper()

	absolutePath := filepath.Join(workspaceDirectory, relativePath)
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
	require.NoError(testInstance, os.WriteFile(absolutePath, []byte(content), 0o644))
	return absolutePath
}

func TestWorkspaceManifestAssembly(testInstance *testing.T) {
	workspaceDirectory := testInstance.TempDir()
	rootManifestPath := writeWorkspaceFile(testInstance, workspaceDirectory, "package.json", workspaceRootManifestConstant)
	writeWorkspaceFile(testInstance, workspaceDirectory, "package-parts/scripts.jsonc", workspaceFragmentConstant)

	result := runIntegrationCommand(testInstance, workspaceDirectory, nil, []string{"manifest"})
	require.Zero(testInstance, result.exitCode, result.output)

	assembledContent, readError := os.ReadFile(rootManifestPath)
	require.NoError(testInstance, readError)
	assembledText := string(assembledContent)
	require.Contains(testInstance, assembledText, `"name": "workspace"`)
	require.Contains(testInstance, assembledText, `"turbo run build"`)
	require.NotContains(testInstance, assembledText, "notes")
	require.NotContains(testInstance, assembledText, "lib-unused")
}

func TestWorkspaceVersionSync(testInstance *testing.T) {
	workspaceDirectory := testInstance.TempDir()
	writeWorkspaceFile(testInstance, workspaceDirectory, "package.json", workspaceRootManifestConstant)
	packageManifestPath := writeWorkspaceFile(testInstance, workspaceDirectory, "packages/app/package.json", workspacePackageManifestConstant)

	result := runIntegrationCommand(testInstance, workspaceDirectory, nil, []string{"sync"})
	require.Zero(testInstance, result.exitCode, result.output)

	syncedContent, readError := os.ReadFile(packageManifestPath)
	require.NoError(testInstance, readError)
	syncedText := string(syncedContent)
	require.Contains(testInstance, syncedText, `"lib-a": "2.0.0"`)
	require.NotContains(testInstance, syncedText, "lib-unused")
}

func TestWorkspaceSettingsCheckExitCodes(testInstance *testing.T) {
	workspaceDirectory := testInstance.TempDir()
	writeWorkspaceFile(testInstance, workspaceDirectory, "settings.base.json", workspaceBaseSettingsConstant)
	writeWorkspaceFile(testInstance, workspaceDirectory, "settings.local.json", workspaceLocalSettingsConstant)

	checkBeforeWrite := runIntegrationCommand(testInstance, workspaceDirectory, nil, []string{"settings", "--check"})
	require.Equal(testInstance, 4, checkBeforeWrite.exitCode, checkBeforeWrite.output)

	writeResult := runIntegrationCommand(testInstance, workspaceDirectory, nil, []string{"settings"})
	require.Zero(testInstance, writeResult.exitCode, writeResult.output)

	checkAfterWrite := runIntegrationCommand(testInstance, workspaceDirectory, nil, []string{"settings", "--check"})
	require.Zero(testInstance, checkAfterWrite.exitCode, checkAfterWrite.output)

	settingsPath := filepath.Join(workspaceDirectory, "settings.json")
	driftedContent := []byte("{\n  \"editor\": {\n    \"tabSize\": 4\n  },\n  \"theme\": \"dark\"\n}\n")
	require.NoError(testInstance, os.WriteFile(settingsPath, driftedContent, 0o644))

	checkAfterDrift := runIntegrationCommand(testInstance, workspaceDirectory, nil, []string{"settings", "--check"})
	require.Equal(testInstance, 4, checkAfterDrift.exitCode, checkAfterDrift.output)
}

func TestWorkspaceMissingRootManifestExitCode(testInstance *testing.T) {
	workspaceDirectory := testInstance.TempDir()

	result := runIntegrationCommand(testInstance, workspaceDirectory, nil, []string{"sync"})
	require.Equal(testInstance, 3, result.exitCode, result.output)
}
