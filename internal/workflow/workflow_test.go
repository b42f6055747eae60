package workflow_test

import (
	"context"
	"io/fs"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/confsync/internal/shared"
	"github.com/temirov/confsync/internal/workflow"
)

type memoryFileSystem struct {
	files map[string][]byte
}

func (fileSystem *memoryFileSystem) Stat(path string) (fs.FileInfo, error) {
	if _, exists := fileSystem.files[path]; !exists {
		return nil, fs.ErrNotExist
	}
	return nil, nil
}

func (fileSystem *memoryFileSystem) ReadFile(path string) ([]byte, error) {
	content, exists := fileSystem.files[path]
	if !exists {
		return nil, fs.ErrNotExist
	}
	return content, nil
}

func (fileSystem *memoryFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	fileSystem.files[path] = data
	return nil
}

type memoryDiscoverer struct {
	fileSystem *memoryFileSystem
}

func (discoverer memoryDiscoverer) DiscoverFiles(rootDirectory string, fileNames ...string) ([]string, error) {
	return discoverer.discover(rootDirectory, func(path string) bool {
		for _, fileName := range fileNames {
			if strings.HasSuffix(path, "/"+fileName) {
				return true
			}
		}
		return false
	})
}

func (discoverer memoryDiscoverer) DiscoverFilesBySuffix(rootDirectory string, fileSuffixes ...string) ([]string, error) {
	return discoverer.discover(rootDirectory, func(path string) bool {
		for _, fileSuffix := range fileSuffixes {
			if strings.HasSuffix(path, fileSuffix) {
				return true
			}
		}
		return false
	})
}

func (discoverer memoryDiscoverer) discover(rootDirectory string, matches func(string) bool) ([]string, error) {
	var discoveredPaths []string
	for path := range discoverer.fileSystem.files {
		if !strings.HasPrefix(path, rootDirectory+"/") {
			continue
		}
		if matches(path) {
			discoveredPaths = append(discoveredPaths, path)
		}
	}
	sort.Strings(discoveredPaths)
	return discoveredPaths, nil
}

func TestParseConfigurationBehaviors(testInstance *testing.T) {
	testCases := []struct {
		name               string
		content            string
		expectedOperations []workflow.OperationType
		expectedError      string
	}{
		{
			name: "plain_steps",
			content: `steps:
  - operation: assemble-manifest
    with:
      root: package.json
  - operation: merge-settings
`,
			expectedOperations: []workflow.OperationType{
				workflow.OperationTypeAssembleManifest,
				workflow.OperationTypeMergeSettings,
			},
		},
		{
			name: "workflow_wrapper",
			content: `workflow:
  steps:
    - operation: sync-versions
`,
			expectedOperations: []workflow.OperationType{workflow.OperationTypeSyncVersions},
		},
		{
			name: "tool_reference_resolved",
			content: `tools:
  - name: root-sync
    operation: sync-versions
    with:
      root: package.json
      packages: packages
steps:
  - with:
      tool: root-sync
      report: true
`,
			expectedOperations: []workflow.OperationType{workflow.OperationTypeSyncVersions},
		},
		{
			name: "unknown_tool_rejected",
			content: `steps:
  - with:
      tool: absent
`,
			expectedError: "unknown tool",
		},
		{
			name: "duplicate_tool_rejected",
			content: `tools:
  - name: twice
    operation: merge-settings
  - name: twice
    operation: merge-settings
steps:
  - operation: merge-settings
`,
			expectedError: "duplicate tool names",
		},
		{
			name:          "empty_steps_rejected",
			content:       "steps: []\n",
			expectedError: "at least one step",
		},
		{
			name: "missing_operation_rejected",
			content: `steps:
  - with:
      root: package.json
`,
			expectedError: "missing operation",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			configuration, parseError := workflow.ParseConfiguration([]byte(testCase.content))
			if len(testCase.expectedError) > 0 {
				require.Error(subtest, parseError)
				require.Contains(subtest, parseError.Error(), testCase.expectedError)
				return
			}
			require.NoError(subtest, parseError)
			require.Len(subtest, configuration.Steps, len(testCase.expectedOperations))
			for stepIndex, expectedOperation := range testCase.expectedOperations {
				require.Equal(subtest, expectedOperation, configuration.Steps[stepIndex].Operation)
			}
		})
	}
}

func TestParseConfigurationMalformedDocument(testInstance *testing.T) {
	_, parseError := workflow.ParseConfiguration([]byte("steps: [\n"))
	require.ErrorIs(testInstance, parseError, shared.ErrMalformedInput)
}

func TestParseConfigurationToolReferenceMergesOptions(testInstance *testing.T) {
	content := `tools:
  - name: editor-settings
    operation: merge-settings
    with:
      base: settings.base.json
      output: settings.json
steps:
  - with:
      tool: editor-settings
      check: true
`
	configuration, parseError := workflow.ParseConfiguration([]byte(content))
	require.NoError(testInstance, parseError)
	require.Len(testInstance, configuration.Steps, 1)

	step := configuration.Steps[0]
	require.Equal(testInstance, workflow.OperationTypeMergeSettings, step.Operation)
	require.Equal(testInstance, "settings.base.json", step.Options["base"])
	require.Equal(testInstance, true, step.Options["check"])
	require.NotContains(testInstance, step.Options, "tool")
}

func TestBuildOperationsRejectsUnknownOperation(testInstance *testing.T) {
	configuration, parseError := workflow.ParseConfiguration([]byte("steps:\n  - operation: launch-rockets\n"))
	require.NoError(testInstance, parseError)

	_, buildError := workflow.BuildOperations(configuration)
	require.Error(testInstance, buildError)
	require.Contains(testInstance, buildError.Error(), "unsupported workflow operation")
}

func TestExecutorRunsStepsInOrder(testInstance *testing.T) {
	fileSystem := &memoryFileSystem{files: map[string][]byte{
		"package.json":              []byte(`{"name":"workspace","dependencies":{"lib-a":"1.0.0"}}`),
		"packages/app/package.json": []byte(`{"name":"app","dependencies":{"lib-a":"0.9.0"}}`),
		"settings.base.json":        []byte(`{"theme":"light"}`),
		"settings.local.json":       []byte(`{"theme":"dark"}`),
	}}

	content := `steps:
  - operation: sync-versions
    with:
      root: package.json
      packages: packages
  - operation: merge-settings
    with:
      base: settings.base.json
      local: settings.local.json
      output: settings.json
`
	configuration, parseError := workflow.ParseConfiguration([]byte(content))
	require.NoError(testInstance, parseError)

	operations, buildError := workflow.BuildOperations(configuration)
	require.NoError(testInstance, buildError)

	output := &strings.Builder{}
	executor := workflow.NewExecutor(operations, workflow.Dependencies{
		FileSystem: fileSystem,
		Discoverer: memoryDiscoverer{fileSystem: fileSystem},
		Output:     output,
	})

	executeError := executor.Execute(context.Background(), workflow.RuntimeOptions{})
	require.NoError(testInstance, executeError)

	require.Contains(testInstance, string(fileSystem.files["packages/app/package.json"]), `"lib-a": "1.0.0"`)
	require.Equal(testInstance, "{\n  \"theme\": \"dark\"\n}\n", string(fileSystem.files["settings.json"]))
}

func TestExecutorWrapsOperationFailures(testInstance *testing.T) {
	fileSystem := &memoryFileSystem{files: map[string][]byte{}}

	configuration, parseError := workflow.ParseConfiguration([]byte("steps:\n  - operation: merge-settings\n"))
	require.NoError(testInstance, parseError)

	operations, buildError := workflow.BuildOperations(configuration)
	require.NoError(testInstance, buildError)

	executor := workflow.NewExecutor(operations, workflow.Dependencies{
		FileSystem: fileSystem,
		Discoverer: memoryDiscoverer{fileSystem: fileSystem},
		Output:     &strings.Builder{},
	})

	executeError := executor.Execute(context.Background(), workflow.RuntimeOptions{})
	require.ErrorIs(testInstance, executeError, shared.ErrMissingResource)
	require.Contains(testInstance, executeError.Error(), "merge-settings")
}
