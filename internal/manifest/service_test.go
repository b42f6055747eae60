package manifest_test

import (
	"context"
	"io/fs"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/confsync/internal/manifest"
	"github.com/temirov/confsync/internal/shared"
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
	missing    bool
}

func (discoverer memoryDiscoverer) DiscoverFilesBySuffix(rootDirectory string, fileSuffixes ...string) ([]string, error) {
	if discoverer.missing {
		return nil, fs.ErrNotExist
	}
	var discoveredPaths []string
	for path := range discoverer.fileSystem.files {
		if !strings.HasPrefix(path, rootDirectory+"/") {
			continue
		}
		for _, fileSuffix := range fileSuffixes {
			if strings.HasSuffix(path, fileSuffix) {
				discoveredPaths = append(discoveredPaths, path)
				break
			}
		}
	}
	sort.Strings(discoveredPaths)
	return discoveredPaths, nil
}

func newServiceFixture(files map[string]string) (*manifest.Service, *memoryFileSystem, *strings.Builder) {
	fileSystem := &memoryFileSystem{files: map[string][]byte{}}
	for path, content := range files {
		fileSystem.files[path] = []byte(content)
	}
	output := &strings.Builder{}
	service := manifest.NewService(fileSystem, memoryDiscoverer{fileSystem: fileSystem}, output, nil)
	return service, fileSystem, output
}

func TestServiceAssembleProjectionAndMerge(testInstance *testing.T) {
	service, _, _ := newServiceFixture(map[string]string{
		"package.json":                `{"name":"x","version":"1.0.0","notes":"tmp","scripts":{"a":"1"}}`,
		"package-parts/fragment.json": `{"version":"2.0.0","license":"MIT"}`,
	})

	assembledText, assembleError := service.Assemble(context.Background(), manifest.CommandOptions{
		RootManifestPath:   "package.json",
		FragmentsDirectory: "package-parts",
		OutputPath:         "package.json",
		ProtectedKeys:      []string{"name", "version"},
	})

	require.NoError(testInstance, assembleError)
	require.Equal(testInstance, "{\n  \"name\": \"x\",\n  \"version\": \"2.0.0\",\n  \"license\": \"MIT\"\n}\n", string(assembledText))
}

func TestServiceAssembleFragmentsMergeInSortedOrder(testInstance *testing.T) {
	service, _, _ := newServiceFixture(map[string]string{
		"package.json":           `{"name":"x"}`,
		"package-parts/a.json":   `{"scripts":{"build":"first","lint":"eslint"}}`,
		"package-parts/b.jsonc":  "{\n  // later fragments win\n  \"scripts\": {\"build\": \"second\"}\n}",
	})

	assembledText, assembleError := service.Assemble(context.Background(), manifest.CommandOptions{
		RootManifestPath:   "package.json",
		FragmentsDirectory: "package-parts",
		OutputPath:         "package.json",
	})

	require.NoError(testInstance, assembleError)
	assembledManifest := string(assembledText)
	require.Contains(testInstance, assembledManifest, `"build": "second"`)
	require.Contains(testInstance, assembledManifest, `"lint": "eslint"`)
}

func TestServiceAssembleStripsReservedNotesKey(testInstance *testing.T) {
	service, _, _ := newServiceFixture(map[string]string{
		"package.json":                `{"name":"x"}`,
		"package-parts/fragment.json": `{"notes":"internal only","license":"MIT"}`,
	})

	assembledText, assembleError := service.Assemble(context.Background(), manifest.CommandOptions{
		RootManifestPath:   "package.json",
		FragmentsDirectory: "package-parts",
		OutputPath:         "package.json",
	})

	require.NoError(testInstance, assembleError)
	require.NotContains(testInstance, string(assembledText), "notes")
}

func TestServiceRunWritesOutputPath(testInstance *testing.T) {
	service, fileSystem, _ := newServiceFixture(map[string]string{
		"package.json":                `{"name":"x","version":"1.0.0"}`,
		"package-parts/fragment.json": `{"license":"MIT"}`,
	})

	runError := service.Run(context.Background(), manifest.CommandOptions{
		RootManifestPath:   "package.json",
		FragmentsDirectory: "package-parts",
		OutputPath:         "dist/package.json",
	})

	require.NoError(testInstance, runError)
	writtenManifest := string(fileSystem.files["dist/package.json"])
	require.True(testInstance, strings.HasSuffix(writtenManifest, "}\n"))
	require.Contains(testInstance, writtenManifest, `"license": "MIT"`)
}

func TestServiceRunDryRunPrintsWithoutWriting(testInstance *testing.T) {
	service, fileSystem, output := newServiceFixture(map[string]string{
		"package.json":                `{"name":"x"}`,
		"package-parts/fragment.json": `{"license":"MIT"}`,
	})

	runError := service.Run(context.Background(), manifest.CommandOptions{
		RootManifestPath:   "package.json",
		FragmentsDirectory: "package-parts",
		OutputPath:         "dist/package.json",
		DryRun:             true,
	})

	require.NoError(testInstance, runError)
	require.Contains(testInstance, output.String(), `"license": "MIT"`)
	require.NotContains(testInstance, fileSystem.files, "dist/package.json")
}

func TestServiceRunErrorKinds(testInstance *testing.T) {
	testCases := []struct {
		name          string
		files         map[string]string
		missingDir    bool
		expectedError error
	}{
		{
			name:          "missing_root_manifest",
			files:         map[string]string{},
			expectedError: shared.ErrMissingResource,
		},
		{
			name:          "malformed_root_manifest",
			files:         map[string]string{"package.json": `"not an object"`},
			expectedError: shared.ErrMalformedInput,
		},
		{
			name: "malformed_fragment_aborts",
			files: map[string]string{
				"package.json":              `{"name":"x"}`,
				"package-parts/broken.json": `{"license":`,
			},
			expectedError: shared.ErrMalformedInput,
		},
		{
			name:          "missing_fragment_directory",
			files:         map[string]string{"package.json": `{"name":"x"}`},
			missingDir:    true,
			expectedError: shared.ErrMissingResource,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			fileSystem := &memoryFileSystem{files: map[string][]byte{}}
			for path, content := range testCase.files {
				fileSystem.files[path] = []byte(content)
			}
			service := manifest.NewService(fileSystem, memoryDiscoverer{fileSystem: fileSystem, missing: testCase.missingDir}, &strings.Builder{}, nil)

			runError := service.Run(context.Background(), manifest.CommandOptions{
				RootManifestPath:   "package.json",
				FragmentsDirectory: "package-parts",
				OutputPath:         "package.json",
			})

			require.ErrorIs(subtest, runError, testCase.expectedError)
		})
	}
}
