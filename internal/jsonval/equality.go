package jsonval

import (
	"encoding/json"
	"sort"
)

// Equal reports whether two JSON-like values are structurally identical.
// Object comparison walks the sorted, deduplicated union of both objects'
// keys, making the result independent of key insertion order at every nesting
// depth. Arrays compare element by element and are length sensitive. Scalars
// compare by type and value; numbers compare numerically so that equivalent
// spellings of the same number match.
func Equal(first any, second any) bool {
	switch firstValue := first.(type) {
	case *Object:
		secondValue, secondIsObject := second.(*Object)
		if !secondIsObject {
			return false
		}
		return objectsEqual(firstValue, secondValue)
	case []any:
		secondValue, secondIsArray := second.([]any)
		if !secondIsArray {
			return false
		}
		if len(firstValue) != len(secondValue) {
			return false
		}
		for elementIndex := range firstValue {
			if !Equal(firstValue[elementIndex], secondValue[elementIndex]) {
				return false
			}
		}
		return true
	case json.Number:
		secondValue, secondIsNumber := second.(json.Number)
		if !secondIsNumber {
			return false
		}
		return numbersEqual(firstValue, secondValue)
	case nil:
		return second == nil
	default:
		return first == second
	}
}

func objectsEqual(first *Object, second *Object) bool {
	for _, key := range combinedSortedKeys(first, second) {
		firstValue, firstHasKey := first.Get(key)
		secondValue, secondHasKey := second.Get(key)
		if firstHasKey != secondHasKey {
			return false
		}
		if !firstHasKey {
			continue
		}
		if !Equal(firstValue, secondValue) {
			return false
		}
	}
	return true
}

func combinedSortedKeys(first *Object, second *Object) []string {
	seenKeys := make(map[string]struct{}, first.Len()+second.Len())
	combinedKeys := make([]string, 0, first.Len()+second.Len())
	for _, key := range first.Keys() {
		if _, alreadySeen := seenKeys[key]; alreadySeen {
			continue
		}
		seenKeys[key] = struct{}{}
		combinedKeys = append(combinedKeys, key)
	}
	for _, key := range second.Keys() {
		if _, alreadySeen := seenKeys[key]; alreadySeen {
			continue
		}
		seenKeys[key] = struct{}{}
		combinedKeys = append(combinedKeys, key)
	}
	sort.Strings(combinedKeys)
	return combinedKeys
}

func numbersEqual(first json.Number, second json.Number) bool {
	firstFloat, firstError := first.Float64()
	secondFloat, secondError := second.Float64()
	if firstError == nil && secondError == nil {
		return firstFloat == secondFloat
	}
	return first.String() == second.String()
}
