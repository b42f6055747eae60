package versions

import "github.com/temirov/confsync/internal/jsonval"

// SyncVersions rewrites entries of targetDependencies whose name also exists
// in sourceDependencies with a differing version string, reporting whether any
// rewrite occurred. Names present only in sourceDependencies are never added;
// the synchronizer only rewrites existing values. Either map may be nil, which
// skips the section without error.
func SyncVersions(targetDependencies *jsonval.Object, sourceDependencies *jsonval.Object) bool {
	if targetDependencies == nil || sourceDependencies == nil {
		return false
	}

	changed := false
	for _, dependencyName := range targetDependencies.Keys() {
		sourceValue, sourceHasDependency := sourceDependencies.Get(dependencyName)
		if !sourceHasDependency {
			continue
		}

		sourceVersion, sourceIsText := sourceValue.(string)
		if !sourceIsText {
			continue
		}

		targetValue, _ := targetDependencies.Get(dependencyName)
		targetVersion, targetIsText := targetValue.(string)
		if targetIsText && targetVersion == sourceVersion {
			continue
		}

		targetDependencies.Set(dependencyName, sourceVersion)
		changed = true
	}
	return changed
}
