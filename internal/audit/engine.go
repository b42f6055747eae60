package audit

import (
	"sort"

	"github.com/temirov/confsync/internal/jsonval"
)

// UsedKeys returns the union of keys defined across all file-scoped maps.
func UsedKeys(fileMaps []FileScopedMap) map[string]struct{} {
	usedKeys := make(map[string]struct{})
	for _, fileMap := range fileMaps {
		if fileMap.Entries == nil {
			continue
		}
		for _, key := range fileMap.Entries.Keys() {
			usedKeys[key] = struct{}{}
		}
	}
	return usedKeys
}

// MissingFromFiles returns root keys defined by no file-scoped map, sorted
// lexicographically.
func MissingFromFiles(root *jsonval.Object, fileMaps []FileScopedMap) []string {
	if root == nil {
		return nil
	}

	usedKeys := UsedKeys(fileMaps)

	var missingKeys []string
	for _, rootKey := range root.Keys() {
		if _, used := usedKeys[rootKey]; used {
			continue
		}
		missingKeys = append(missingKeys, rootKey)
	}
	sort.Strings(missingKeys)
	return missingKeys
}

// ChangedEntries returns every key present both at root and in a file whose
// values differ under the requested comparison mode, sorted by key name.
func ChangedEntries(root *jsonval.Object, fileMaps []FileScopedMap, comparison ValueComparison) []ChangedEntry {
	if root == nil {
		return nil
	}

	var changedEntries []ChangedEntry
	for _, fileMap := range fileMaps {
		if fileMap.Entries == nil {
			continue
		}
		for _, key := range fileMap.Entries.Keys() {
			rootValue, rootHasKey := root.Get(key)
			if !rootHasKey {
				continue
			}
			foundValue, _ := fileMap.Entries.Get(key)
			if entryValuesEqual(rootValue, foundValue, comparison) {
				continue
			}
			changedEntries = append(changedEntries, ChangedEntry{
				Key:        key,
				Origin:     fileMap.Origin,
				RootValue:  rootValue,
				FoundValue: foundValue,
			})
		}
	}

	sort.SliceStable(changedEntries, func(firstIndex int, secondIndex int) bool {
		return changedEntries[firstIndex].Key < changedEntries[secondIndex].Key
	})
	return changedEntries
}

// DuplicateKeys returns every key defined by at least two distinct file-scoped
// maps. Groups appear in the encounter order of the key's first definition, and
// each group lists contributing origins in encounter order.
func DuplicateKeys(fileMaps []FileScopedMap) []DuplicateGroup {
	originsByKey := make(map[string][]string)
	var keyEncounterOrder []string

	for _, fileMap := range fileMaps {
		if fileMap.Entries == nil {
			continue
		}
		for _, key := range fileMap.Entries.Keys() {
			if _, seen := originsByKey[key]; !seen {
				keyEncounterOrder = append(keyEncounterOrder, key)
			}
			originsByKey[key] = append(originsByKey[key], fileMap.Origin)
		}
	}

	var duplicateGroups []DuplicateGroup
	for _, key := range keyEncounterOrder {
		origins := originsByKey[key]
		if len(distinctOrigins(origins)) < 2 {
			continue
		}
		duplicateGroups = append(duplicateGroups, DuplicateGroup{Key: key, Origins: origins})
	}
	return duplicateGroups
}

// UnusedRootEntries returns root dependency entries, tagged by section, whose
// names appear in no file-scoped map, sorted by name.
func UnusedRootEntries(runtimeDependencies *jsonval.Object, developmentDependencies *jsonval.Object, usedKeys map[string]struct{}) []UnusedRootEntry {
	var unusedEntries []UnusedRootEntry
	unusedEntries = appendUnusedSection(unusedEntries, runtimeDependencies, SectionRuntime, usedKeys)
	unusedEntries = appendUnusedSection(unusedEntries, developmentDependencies, SectionDevelopment, usedKeys)

	sort.SliceStable(unusedEntries, func(firstIndex int, secondIndex int) bool {
		return unusedEntries[firstIndex].Name < unusedEntries[secondIndex].Name
	})
	return unusedEntries
}

func appendUnusedSection(unusedEntries []UnusedRootEntry, dependencies *jsonval.Object, section DependencySection, usedKeys map[string]struct{}) []UnusedRootEntry {
	if dependencies == nil {
		return unusedEntries
	}

	for _, dependencyName := range dependencies.Keys() {
		if _, used := usedKeys[dependencyName]; used {
			continue
		}
		dependencyValue, _ := dependencies.Get(dependencyName)
		versionText, _ := dependencyValue.(string)
		unusedEntries = append(unusedEntries, UnusedRootEntry{
			Name:    dependencyName,
			Version: versionText,
			Section: section,
		})
	}
	return unusedEntries
}

func entryValuesEqual(rootValue any, foundValue any, comparison ValueComparison) bool {
	if comparison == CompareAsText {
		rootText, rootIsText := rootValue.(string)
		foundText, foundIsText := foundValue.(string)
		if rootIsText && foundIsText {
			return rootText == foundText
		}
	}
	return jsonval.Equal(rootValue, foundValue)
}

func distinctOrigins(origins []string) []string {
	seenOrigins := make(map[string]struct{}, len(origins))
	var distinct []string
	for _, origin := range origins {
		if _, seen := seenOrigins[origin]; seen {
			continue
		}
		seenOrigins[origin] = struct{}{}
		distinct = append(distinct, origin)
	}
	return distinct
}
