package merge

import "github.com/temirov/confsync/internal/jsonval"

const (
	prototypeKeyConstant         = "__proto__"
	constructorKeyConstant       = "constructor"
	prototypePropertyKeyConstant = "prototype"
)

// guardedKeys are never copied or recursed into during a merge. The denylist
// guards against structural corruption of the destination document and must
// stay in place even though Go objects carry no prototype chain; the emitted
// manifests are consumed by JavaScript tooling.
var guardedKeys = map[string]struct{}{
	prototypeKeyConstant:         {},
	constructorKeyConstant:       {},
	prototypePropertyKeyConstant: {},
}

// Merge merges source into target and returns target. The merge is right
// biased: for every source key the source value replaces the target value
// wholesale unless both sides hold objects, in which case the merge recurses.
// Arrays, scalars, and null never merge element-wise. Source is not mutated.
func Merge(target *jsonval.Object, source *jsonval.Object) *jsonval.Object {
	if target == nil {
		target = jsonval.NewObject()
	}
	if source == nil {
		return target
	}

	for _, sourceKey := range source.Keys() {
		if _, guarded := guardedKeys[sourceKey]; guarded {
			continue
		}

		sourceValue, _ := source.Get(sourceKey)

		targetValue, targetHasKey := target.Get(sourceKey)
		if targetHasKey {
			targetObject, targetIsObject := targetValue.(*jsonval.Object)
			sourceObject, sourceIsObject := sourceValue.(*jsonval.Object)
			if targetIsObject && sourceIsObject {
				target.Set(sourceKey, Merge(targetObject, sourceObject))
				continue
			}
		}

		target.Set(sourceKey, sourceValue)
	}

	return target
}

// Project copies the allow-listed keys present in source into a fresh object,
// preserving allow-list order rather than source order. Absent keys are
// omitted. Values are shared with source, not cloned.
func Project(source *jsonval.Object, allowListedKeys []string) *jsonval.Object {
	projectedObject := jsonval.NewObject()
	if source == nil {
		return projectedObject
	}

	for _, key := range allowListedKeys {
		value, exists := source.Get(key)
		if !exists {
			continue
		}
		projectedObject.Set(key, value)
	}

	return projectedObject
}
