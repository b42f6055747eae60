// Package envfile loads environment variables from dotenv files without
// clobbering values already present in the process environment.
package envfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/temirov/confsync/internal/shared"
)

const (
	environmentFileMissingTemplate    = "%w: environment file %s"
	environmentFileMalformedTemplate  = "%w: environment file %s: %v"
	environmentVariableSetErrTemplate = "failed to set environment variable %s: %w"
)

// Load parses dotenv file contents and merges the parsed entries into
// existingEnvironment. Entries already present in existingEnvironment win; the
// file never overwrites them. The returned map is freshly allocated.
func Load(existingEnvironment map[string]string, fileContents []byte) (map[string]string, error) {
	parsedEntries, parseError := godotenv.UnmarshalBytes(fileContents)
	if parseError != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrMalformedInput, parseError)
	}

	mergedEnvironment := make(map[string]string, len(existingEnvironment)+len(parsedEntries))
	for variableName, variableValue := range parsedEntries {
		mergedEnvironment[variableName] = variableValue
	}
	for variableName, variableValue := range existingEnvironment {
		mergedEnvironment[variableName] = variableValue
	}
	return mergedEnvironment, nil
}

// Apply reads the dotenv file at environmentFilePath and exports every entry
// not already present in the process environment. A missing file is an error;
// callers opt into dotenv loading explicitly.
func Apply(environmentFilePath string) error {
	fileContents, readError := os.ReadFile(environmentFilePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return fmt.Errorf(environmentFileMissingTemplate, shared.ErrMissingResource, environmentFilePath)
		}
		return readError
	}

	parsedEntries, parseError := godotenv.UnmarshalBytes(bytes.TrimSpace(fileContents))
	if parseError != nil {
		return fmt.Errorf(environmentFileMalformedTemplate, shared.ErrMalformedInput, environmentFilePath, parseError)
	}

	for variableName, variableValue := range parsedEntries {
		if _, alreadySet := os.LookupEnv(variableName); alreadySet {
			continue
		}
		if setError := os.Setenv(variableName, variableValue); setError != nil {
			return fmt.Errorf(environmentVariableSetErrTemplate, variableName, setError)
		}
	}
	return nil
}
