package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/confsync/internal/discovery"
	"github.com/temirov/confsync/internal/shared"
)

const (
	workflowExecutionErrorTemplateConstant = "workflow operation %s failed: %w"
	workflowExecutorOutputRequiredMessage  = "workflow executor requires an output writer"
)

// Dependencies configures shared collaborators for workflow execution.
type Dependencies struct {
	Logger     *zap.Logger
	FileSystem shared.FileSystem
	Discoverer FileDiscoverer
	Output     io.Writer
}

// RuntimeOptions captures user-provided execution modifiers.
type RuntimeOptions struct {
	DryRun bool
}

// Executor runs workflow operations in declaration order, stopping at the
// first failure.
type Executor struct {
	operations   []Operation
	dependencies Dependencies
}

// NewExecutor constructs an Executor instance.
func NewExecutor(operations []Operation, dependencies Dependencies) *Executor {
	return &Executor{operations: append([]Operation{}, operations...), dependencies: dependencies}
}

// Execute runs every configured operation with a shared environment.
func (executor *Executor) Execute(executionContext context.Context, runtimeOptions RuntimeOptions) error {
	if executor.dependencies.Output == nil {
		return errors.New(workflowExecutorOutputRequiredMessage)
	}

	fileSystem := executor.dependencies.FileSystem
	if fileSystem == nil {
		fileSystem = shared.OSFileSystem{}
	}

	discoverer := executor.dependencies.Discoverer
	if discoverer == nil {
		discoverer = discovery.NewFilesystemFileDiscoverer()
	}

	logger := executor.dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	environment := &Environment{
		FileSystem: fileSystem,
		Discoverer: discoverer,
		Output:     executor.dependencies.Output,
		Logger:     logger,
		DryRun:     runtimeOptions.DryRun,
	}

	for operationIndex := range executor.operations {
		operation := executor.operations[operationIndex]
		if operation == nil {
			continue
		}
		if executeError := operation.Execute(executionContext, environment); executeError != nil {
			return fmt.Errorf(workflowExecutionErrorTemplateConstant, operation.Name(), executeError)
		}
	}

	return nil
}
