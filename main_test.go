package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/confsync/internal/shared"
)

func TestResolveExitCode(testInstance *testing.T) {
	testCases := []struct {
		name             string
		executionError   error
		expectedExitCode int
	}{
		{
			name:             "generic_failure",
			executionError:   errors.New("boom"),
			expectedExitCode: exitCodeGenericFailure,
		},
		{
			name:             "malformed_input",
			executionError:   fmt.Errorf("context: %w", shared.ErrMalformedInput),
			expectedExitCode: exitCodeMalformedInput,
		},
		{
			name:             "missing_resource",
			executionError:   fmt.Errorf("context: %w", shared.ErrMissingResource),
			expectedExitCode: exitCodeMissingResource,
		},
		{
			name:             "drift_detected",
			executionError:   fmt.Errorf("context: %w", shared.ErrDriftDetected),
			expectedExitCode: exitCodeDriftDetected,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			require.Equal(subtest, testCase.expectedExitCode, resolveExitCode(testCase.executionError))
		})
	}
}
