package jsonval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"

	"github.com/temirov/confsync/internal/shared"
)

const (
	decodeErrorTemplateConstant         = "%w: %v"
	trailingContentMessageConstant      = "%w: trailing content after document"
	rootNotObjectMessageConstant        = "%w: document root is not an object"
	unexpectedDelimiterTemplateConstant = "unexpected delimiter %q"
	unexpectedObjectKeyTemplateConstant = "unexpected object key token %v"
	unbalancedArrayEndMessageConstant   = "array not terminated"
	emptyDocumentMessageConstant        = "%w: empty document"
)

// Decode parses JSON or JSONC content into a JSON-like value: *Object for
// objects, []any for arrays, and string, bool, json.Number, or nil for
// scalars. Comments and trailing commas are stripped before parsing.
func Decode(content []byte) (any, error) {
	strippedContent := jsonc.ToJSON(content)
	if len(bytes.TrimSpace(strippedContent)) == 0 {
		return nil, fmt.Errorf(emptyDocumentMessageConstant, shared.ErrMalformedInput)
	}

	decoder := json.NewDecoder(bytes.NewReader(strippedContent))
	decoder.UseNumber()

	value, valueError := decodeValue(decoder)
	if valueError != nil {
		return nil, fmt.Errorf(decodeErrorTemplateConstant, shared.ErrMalformedInput, valueError)
	}

	if _, trailingError := decoder.Token(); trailingError != io.EOF {
		return nil, fmt.Errorf(trailingContentMessageConstant, shared.ErrMalformedInput)
	}

	return value, nil
}

// DecodeObject parses content like Decode but requires the document root to be
// an object.
func DecodeObject(content []byte) (*Object, error) {
	value, decodeError := Decode(content)
	if decodeError != nil {
		return nil, decodeError
	}

	rootObject, isObject := value.(*Object)
	if !isObject {
		return nil, fmt.Errorf(rootNotObjectMessageConstant, shared.ErrMalformedInput)
	}

	return rootObject, nil
}

func decodeValue(decoder *json.Decoder) (any, error) {
	token, tokenError := decoder.Token()
	if tokenError != nil {
		return nil, tokenError
	}
	return decodeToken(decoder, token)
}

func decodeToken(decoder *json.Decoder, token json.Token) (any, error) {
	switch typedToken := token.(type) {
	case json.Delim:
		switch typedToken {
		case '{':
			return decodeObjectBody(decoder)
		case '[':
			return decodeArrayBody(decoder)
		default:
			return nil, fmt.Errorf(unexpectedDelimiterTemplateConstant, typedToken.String())
		}
	default:
		return typedToken, nil
	}
}

func decodeObjectBody(decoder *json.Decoder) (*Object, error) {
	decodedObject := NewObject()
	for {
		keyToken, keyError := decoder.Token()
		if keyError != nil {
			return nil, keyError
		}

		if delimiter, isDelimiter := keyToken.(json.Delim); isDelimiter {
			if delimiter == '}' {
				return decodedObject, nil
			}
			return nil, fmt.Errorf(unexpectedDelimiterTemplateConstant, delimiter.String())
		}

		key, isString := keyToken.(string)
		if !isString {
			return nil, fmt.Errorf(unexpectedObjectKeyTemplateConstant, keyToken)
		}

		value, valueError := decodeValue(decoder)
		if valueError != nil {
			return nil, valueError
		}

		decodedObject.Set(key, value)
	}
}

func decodeArrayBody(decoder *json.Decoder) ([]any, error) {
	decodedArray := []any{}
	for {
		if !decoder.More() {
			endToken, endError := decoder.Token()
			if endError != nil {
				return nil, endError
			}
			if delimiter, isDelimiter := endToken.(json.Delim); isDelimiter && delimiter == ']' {
				return decodedArray, nil
			}
			return nil, errors.New(unbalancedArrayEndMessageConstant)
		}

		value, valueError := decodeValue(decoder)
		if valueError != nil {
			return nil, valueError
		}
		decodedArray = append(decodedArray, value)
	}
}
