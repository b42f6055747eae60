package workflow

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/confsync/internal/shared"
)

const (
	commandUseConstant                 = "workflow"
	commandShortDescriptionConstant    = "Run a declarative sequence of maintenance operations"
	commandLongDescriptionConstant     = "workflow loads a YAML or JSON definition and executes its steps in order; each step runs one of the assemble-manifest, sync-versions, or merge-settings operations."
	configFlagNameConstant             = "config"
	configFlagDescriptionConstant      = "Path to the workflow definition file"
	dryRunFlagNameConstant             = "dry-run"
	dryRunFlagDescriptionConstant      = "Print planned changes without writing any files"
	defaultWorkflowPathConstant        = "confsync.workflow.yaml"
	unexpectedArgumentsMessageConstant = "workflow accepts at most one positional configuration path"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the workflow cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider LoggerProvider
	FileSystem     shared.FileSystem
	Discoverer     FileDiscoverer
}

// Build constructs the cobra command for workflow execution.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(configFlagNameConstant, "", configFlagDescriptionConstant)
	command.Flags().Bool(dryRunFlagNameConstant, false, dryRunFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 1 {
		return errors.New(unexpectedArgumentsMessageConstant)
	}

	configFlagValue, configFlagError := command.Flags().GetString(configFlagNameConstant)
	if configFlagError != nil {
		return configFlagError
	}

	dryRunFlagValue, dryRunFlagError := command.Flags().GetBool(dryRunFlagNameConstant)
	if dryRunFlagError != nil {
		return dryRunFlagError
	}

	configurationPath := strings.TrimSpace(configFlagValue)
	if len(arguments) == 1 && len(configurationPath) == 0 {
		configurationPath = strings.TrimSpace(arguments[0])
	}
	if len(configurationPath) == 0 {
		configurationPath = defaultWorkflowPathConstant
	}

	configuration, configurationError := LoadConfiguration(configurationPath)
	if configurationError != nil {
		return configurationError
	}

	operations, operationsError := BuildOperations(configuration)
	if operationsError != nil {
		return operationsError
	}

	executor := NewExecutor(operations, Dependencies{
		Logger:     builder.resolveLogger(),
		FileSystem: builder.FileSystem,
		Discoverer: builder.Discoverer,
		Output:     command.OutOrStdout(),
	})

	return executor.Execute(command.Context(), RuntimeOptions{DryRun: dryRunFlagValue})
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
