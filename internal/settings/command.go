package settings

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/confsync/internal/shared"
)

const (
	commandUseConstant                 = "settings"
	commandShortDescriptionConstant    = "Merge base and local editor settings into the canonical settings file"
	commandLongDescriptionConstant     = "settings merges the shared base settings document with an optional local override document and writes the result, or verifies in check mode that the persisted file already matches the merge."
	baseFlagNameConstant               = "base"
	baseFlagDescriptionConstant        = "Path to the shared base settings document"
	localFlagNameConstant              = "local"
	localFlagDescriptionConstant       = "Path to the optional local override document"
	outputFlagNameConstant             = "output"
	outputFlagDescriptionConstant      = "Destination path for the merged settings"
	checkFlagNameConstant              = "check"
	checkFlagDescriptionConstant       = "Verify the persisted settings match the merge result without writing"
	dryRunFlagNameConstant             = "dry-run"
	dryRunFlagDescriptionConstant      = "Print the merged settings without writing them"
	unexpectedArgumentsMessageConstant = "settings does not accept positional arguments"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current settings configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the settings cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            shared.FileSystem
}

// Build constructs the cobra command for settings merging.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(baseFlagNameConstant, "", baseFlagDescriptionConstant)
	command.Flags().String(localFlagNameConstant, "", localFlagDescriptionConstant)
	command.Flags().String(outputFlagNameConstant, "", outputFlagDescriptionConstant)
	command.Flags().Bool(checkFlagNameConstant, false, checkFlagDescriptionConstant)
	command.Flags().Bool(dryRunFlagNameConstant, false, dryRunFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errors.New(unexpectedArgumentsMessageConstant)
	}

	options, optionsError := builder.parseOptions(command)
	if optionsError != nil {
		return optionsError
	}

	service := NewService(builder.resolveFileSystem(), command.OutOrStdout(), builder.resolveLogger())
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (CommandOptions, error) {
	configuration := builder.resolveConfiguration().Sanitize()

	baseFlagValue, baseFlagError := command.Flags().GetString(baseFlagNameConstant)
	if baseFlagError != nil {
		return CommandOptions{}, baseFlagError
	}

	localFlagValue, localFlagError := command.Flags().GetString(localFlagNameConstant)
	if localFlagError != nil {
		return CommandOptions{}, localFlagError
	}

	outputFlagValue, outputFlagError := command.Flags().GetString(outputFlagNameConstant)
	if outputFlagError != nil {
		return CommandOptions{}, outputFlagError
	}

	checkFlagValue, checkFlagError := command.Flags().GetBool(checkFlagNameConstant)
	if checkFlagError != nil {
		return CommandOptions{}, checkFlagError
	}

	dryRunFlagValue, dryRunFlagError := command.Flags().GetBool(dryRunFlagNameConstant)
	if dryRunFlagError != nil {
		return CommandOptions{}, dryRunFlagError
	}

	localPath := configuration.LocalPath
	if trimmedLocalFlagValue := strings.TrimSpace(localFlagValue); len(trimmedLocalFlagValue) > 0 {
		localPath = trimmedLocalFlagValue
	}

	options := CommandOptions{
		BasePath:   selectStringValue(baseFlagValue, configuration.BasePath),
		LocalPath:  localPath,
		OutputPath: selectStringValue(outputFlagValue, configuration.OutputPath),
		Check:      checkFlagValue,
		DryRun:     dryRunFlagValue,
	}

	return options, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return CommandConfiguration{}
	}
	return builder.ConfigurationProvider()
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

func (builder *CommandBuilder) resolveFileSystem() shared.FileSystem {
	if builder.FileSystem == nil {
		return shared.OSFileSystem{}
	}
	return builder.FileSystem
}

func selectStringValue(flagValue string, configuredValue string) string {
	trimmedFlagValue := strings.TrimSpace(flagValue)
	if len(trimmedFlagValue) > 0 {
		return trimmedFlagValue
	}
	return configuredValue
}
