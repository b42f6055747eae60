package jsonval

import (
	"encoding/json"
	"strings"
)

const (
	indentUnitConstant        = "  "
	objectOpenConstant        = "{"
	objectCloseConstant       = "}"
	arrayOpenConstant         = "["
	arrayCloseConstant        = "]"
	emptyObjectConstant       = "{}"
	emptyArrayConstant        = "[]"
	keyValueSeparatorConstant = ": "
	memberSeparatorConstant   = ","
	compactSeparatorConstant  = ","
	compactKeySeparator       = ":"
	nullLiteralConstant       = "null"
	trueLiteralConstant       = "true"
	falseLiteralConstant      = "false"
	newlineConstant           = "\n"
)

// Encode renders value as pretty-printed JSON text with two-space indentation
// and a single trailing newline, preserving object key insertion order. This is
// the canonical on-disk form every confsync command emits.
func Encode(value any) []byte {
	var builder strings.Builder
	encodeIndented(&builder, value, 0)
	builder.WriteString(newlineConstant)
	return []byte(builder.String())
}

// Compact renders value as single-line JSON text in object key insertion
// order, used when audit reports embed structured values.
func Compact(value any) string {
	var builder strings.Builder
	encodeCompact(&builder, value)
	return builder.String()
}

func encodeIndented(builder *strings.Builder, value any, depth int) {
	switch typedValue := value.(type) {
	case *Object:
		if typedValue.Len() == 0 {
			builder.WriteString(emptyObjectConstant)
			return
		}
		builder.WriteString(objectOpenConstant)
		memberIndent := strings.Repeat(indentUnitConstant, depth+1)
		orderedKeys := typedValue.Keys()
		for keyIndex, key := range orderedKeys {
			builder.WriteString(newlineConstant)
			builder.WriteString(memberIndent)
			builder.WriteString(encodeScalarString(key))
			builder.WriteString(keyValueSeparatorConstant)
			memberValue, _ := typedValue.Get(key)
			encodeIndented(builder, memberValue, depth+1)
			if keyIndex < len(orderedKeys)-1 {
				builder.WriteString(memberSeparatorConstant)
			}
		}
		builder.WriteString(newlineConstant)
		builder.WriteString(strings.Repeat(indentUnitConstant, depth))
		builder.WriteString(objectCloseConstant)
	case []any:
		if len(typedValue) == 0 {
			builder.WriteString(emptyArrayConstant)
			return
		}
		builder.WriteString(arrayOpenConstant)
		elementIndent := strings.Repeat(indentUnitConstant, depth+1)
		for elementIndex, element := range typedValue {
			builder.WriteString(newlineConstant)
			builder.WriteString(elementIndent)
			encodeIndented(builder, element, depth+1)
			if elementIndex < len(typedValue)-1 {
				builder.WriteString(memberSeparatorConstant)
			}
		}
		builder.WriteString(newlineConstant)
		builder.WriteString(strings.Repeat(indentUnitConstant, depth))
		builder.WriteString(arrayCloseConstant)
	default:
		builder.WriteString(encodeScalar(typedValue))
	}
}

func encodeCompact(builder *strings.Builder, value any) {
	switch typedValue := value.(type) {
	case *Object:
		builder.WriteString(objectOpenConstant)
		for keyIndex, key := range typedValue.Keys() {
			if keyIndex > 0 {
				builder.WriteString(compactSeparatorConstant)
			}
			builder.WriteString(encodeScalarString(key))
			builder.WriteString(compactKeySeparator)
			memberValue, _ := typedValue.Get(key)
			encodeCompact(builder, memberValue)
		}
		builder.WriteString(objectCloseConstant)
	case []any:
		builder.WriteString(arrayOpenConstant)
		for elementIndex, element := range typedValue {
			if elementIndex > 0 {
				builder.WriteString(compactSeparatorConstant)
			}
			encodeCompact(builder, element)
		}
		builder.WriteString(arrayCloseConstant)
	default:
		builder.WriteString(encodeScalar(typedValue))
	}
}

func encodeScalar(value any) string {
	switch typedValue := value.(type) {
	case nil:
		return nullLiteralConstant
	case bool:
		if typedValue {
			return trueLiteralConstant
		}
		return falseLiteralConstant
	case json.Number:
		return typedValue.String()
	case string:
		return encodeScalarString(typedValue)
	default:
		encodedValue, encodeError := json.Marshal(typedValue)
		if encodeError != nil {
			return nullLiteralConstant
		}
		return string(encodedValue)
	}
}

func encodeScalarString(value string) string {
	encodedValue, encodeError := json.Marshal(value)
	if encodeError != nil {
		return nullLiteralConstant
	}
	return string(encodedValue)
}
