package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

const nodeModulesDirectoryNameConstant = "node_modules"

// FilesystemFileDiscoverer locates configuration fragment files on disk.
type FilesystemFileDiscoverer struct{}

// NewFilesystemFileDiscoverer constructs a discoverer backed by filepath.WalkDir.
func NewFilesystemFileDiscoverer() *FilesystemFileDiscoverer {
	return &FilesystemFileDiscoverer{}
}

// DiscoverFiles walks rootDirectory and returns every file whose base name
// matches one of the provided names, in sorted path order. Dependency
// directories are skipped. Sorted order is the enumeration order merge
// precedence relies on: later paths win on conflicting keys.
func (discoverer *FilesystemFileDiscoverer) DiscoverFiles(rootDirectory string, fileNames ...string) ([]string, error) {
	matchedNames := make(map[string]struct{}, len(fileNames))
	for _, fileName := range fileNames {
		matchedNames[fileName] = struct{}{}
	}

	var discoveredPaths []string
	walkError := filepath.WalkDir(rootDirectory, func(path string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return entryError
		}

		if directoryEntry.IsDir() {
			if directoryEntry.Name() == nodeModulesDirectoryNameConstant {
				return fs.SkipDir
			}
			return nil
		}

		if _, matches := matchedNames[directoryEntry.Name()]; matches {
			discoveredPaths = append(discoveredPaths, path)
		}
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	sort.Strings(discoveredPaths)
	return discoveredPaths, nil
}

// DiscoverFilesBySuffix walks rootDirectory and returns every file whose name
// carries one of the provided suffixes, in sorted path order.
func (discoverer *FilesystemFileDiscoverer) DiscoverFilesBySuffix(rootDirectory string, fileSuffixes ...string) ([]string, error) {
	var discoveredPaths []string
	walkError := filepath.WalkDir(rootDirectory, func(path string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return entryError
		}

		if directoryEntry.IsDir() {
			if directoryEntry.Name() == nodeModulesDirectoryNameConstant {
				return fs.SkipDir
			}
			return nil
		}

		for _, fileSuffix := range fileSuffixes {
			if strings.HasSuffix(directoryEntry.Name(), fileSuffix) {
				discoveredPaths = append(discoveredPaths, path)
				break
			}
		}
		return nil
	})
	if walkError != nil {
		return nil, walkError
	}

	sort.Strings(discoveredPaths)
	return discoveredPaths, nil
}
