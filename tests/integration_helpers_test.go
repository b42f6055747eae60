package tests

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

const integrationCommandTimeout = 60 * time.Second

type integrationCommandResult struct {
	output   string
	exitCode int
}

var (
	integrationBinaryOnce  sync.Once
	integrationBinaryPath  string
	integrationBinaryError error
)

func integrationBinary(testInstance *testing.T) string {
	testInstance.Helper()

	repositoryRoot := repositoryRootDirectory(testInstance)
	integrationBinaryOnce.Do(func() {
		binaryDirectory, tempError := os.MkdirTemp("", "confsync-integration")
		if tempError != nil {
			integrationBinaryError = tempError
			return
		}
		integrationBinaryPath = filepath.Join(binaryDirectory, "confsync")
		buildCommand := exec.Command("go", "build", "-o", integrationBinaryPath, ".")
		buildCommand.Dir = repositoryRoot
		if buildOutput, buildError := buildCommand.CombinedOutput(); buildError != nil {
			integrationBinaryError = buildError
			integrationBinaryPath = string(buildOutput)
		}
	})
	if integrationBinaryError != nil {
		testInstance.Fatalf("unable to build integration binary: %v\n%s", integrationBinaryError, integrationBinaryPath)
	}
	return integrationBinaryPath
}

func runIntegrationCommand(testInstance *testing.T, workingDirectory string, environment []string, arguments []string) integrationCommandResult {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
	defer cancel()

	command := exec.CommandContext(executionContext, integrationBinary(testInstance), arguments...)
	command.Dir = workingDirectory
	command.Env = append(append([]string{}, os.Environ()...), environment...)

	outputBytes, runError := command.CombinedOutput()
	result := integrationCommandResult{output: string(outputBytes)}
	if runError != nil {
		exitError, isExitError := runError.(*exec.ExitError)
		if !isExitError {
			testInstance.Fatalf("command failed: %v\n%s", runError, result.output)
		}
		result.exitCode = exitError.ExitCode()
	}
	return result
}

func repositoryRootDirectory(testInstance *testing.T) string {
	testInstance.Helper()

	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		testInstance.Fatalf("unable to resolve working directory: %v", workingDirectoryError)
	}
	return filepath.Dir(currentWorkingDirectory)
}

func filterStructuredOutput(rawOutput string) string {
	lines := strings.Split(rawOutput, "\n")
	var filtered []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "{") {
			continue
		}
		filtered = append(filtered, line)
	}
	if len(filtered) == 0 {
		return ""
	}
	return strings.Join(filtered, "\n") + "\n"
}
