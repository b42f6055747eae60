package jsonval

// Object is a JSON object that preserves key insertion order. Key order is
// retained for serialization only; structural equality ignores it.
type Object struct {
	orderedKeys []string
	valuesByKey map[string]any
}

// NewObject constructs an empty insertion-ordered object.
func NewObject() *Object {
	return &Object{valuesByKey: map[string]any{}}
}

// Len reports the number of keys stored in the object.
func (object *Object) Len() int {
	if object == nil {
		return 0
	}
	return len(object.orderedKeys)
}

// Keys returns the object's keys in insertion order.
func (object *Object) Keys() []string {
	if object == nil {
		return nil
	}
	duplicatedKeys := make([]string, len(object.orderedKeys))
	copy(duplicatedKeys, object.orderedKeys)
	return duplicatedKeys
}

// Get retrieves the value stored under key and reports whether the key exists.
func (object *Object) Get(key string) (any, bool) {
	if object == nil {
		return nil, false
	}
	value, exists := object.valuesByKey[key]
	return value, exists
}

// Has reports whether the object contains key.
func (object *Object) Has(key string) bool {
	if object == nil {
		return false
	}
	_, exists := object.valuesByKey[key]
	return exists
}

// Set stores value under key, appending the key when it is not yet present.
func (object *Object) Set(key string, value any) {
	if object.valuesByKey == nil {
		object.valuesByKey = map[string]any{}
	}
	if _, exists := object.valuesByKey[key]; !exists {
		object.orderedKeys = append(object.orderedKeys, key)
	}
	object.valuesByKey[key] = value
}

// Delete removes key from the object when present.
func (object *Object) Delete(key string) {
	if object == nil {
		return
	}
	if _, exists := object.valuesByKey[key]; !exists {
		return
	}
	delete(object.valuesByKey, key)
	for keyIndex := range object.orderedKeys {
		if object.orderedKeys[keyIndex] == key {
			object.orderedKeys = append(object.orderedKeys[:keyIndex], object.orderedKeys[keyIndex+1:]...)
			break
		}
	}
}
