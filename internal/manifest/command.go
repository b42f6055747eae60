package manifest

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/confsync/internal/discovery"
	"github.com/temirov/confsync/internal/shared"
)

const (
	commandUseConstant                 = "manifest"
	commandShortDescriptionConstant    = "Assemble the root package manifest from fragment files"
	commandLongDescriptionConstant     = "manifest projects the protected keys of the root package manifest and merges every fragment file beneath the fragment directory into the canonical manifest."
	rootFlagNameConstant               = "root"
	rootFlagDescriptionConstant        = "Path to the root package manifest"
	fragmentsFlagNameConstant          = "fragments"
	fragmentsFlagDescriptionConstant   = "Directory tree containing manifest fragment files"
	outputFlagNameConstant             = "output"
	outputFlagDescriptionConstant      = "Destination path for the assembled manifest (defaults to the root manifest)"
	dryRunFlagNameConstant             = "dry-run"
	dryRunFlagDescriptionConstant      = "Print the assembled manifest without writing it"
	unexpectedArgumentsMessageConstant = "manifest does not accept positional arguments"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current manifest configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the manifest cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            shared.FileSystem
	Discoverer            FragmentDiscoverer
}

// Build constructs the cobra command for manifest assembly.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(rootFlagNameConstant, "", rootFlagDescriptionConstant)
	command.Flags().String(fragmentsFlagNameConstant, "", fragmentsFlagDescriptionConstant)
	command.Flags().String(outputFlagNameConstant, "", outputFlagDescriptionConstant)
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

	service := NewService(builder.resolveFileSystem(), builder.resolveDiscoverer(), command.OutOrStdout(), builder.resolveLogger())
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) (CommandOptions, error) {
	configuration := builder.resolveConfiguration().Sanitize()

	rootFlagValue, rootFlagError := command.Flags().GetString(rootFlagNameConstant)
	if rootFlagError != nil {
		return CommandOptions{}, rootFlagError
	}

	fragmentsFlagValue, fragmentsFlagError := command.Flags().GetString(fragmentsFlagNameConstant)
	if fragmentsFlagError != nil {
		return CommandOptions{}, fragmentsFlagError
	}

	outputFlagValue, outputFlagError := command.Flags().GetString(outputFlagNameConstant)
	if outputFlagError != nil {
		return CommandOptions{}, outputFlagError
	}

	dryRunFlagValue, dryRunFlagError := command.Flags().GetBool(dryRunFlagNameConstant)
	if dryRunFlagError != nil {
		return CommandOptions{}, dryRunFlagError
	}

	rootManifestPath := selectStringValue(rootFlagValue, configuration.RootManifestPath)
	outputPath := selectStringValue(outputFlagValue, configuration.OutputPath)
	if len(outputPath) == 0 {
		outputPath = rootManifestPath
	}

	options := CommandOptions{
		RootManifestPath:   rootManifestPath,
		FragmentsDirectory: selectStringValue(fragmentsFlagValue, configuration.FragmentsDirectory),
		OutputPath:         outputPath,
		ProtectedKeys:      configuration.ProtectedKeys,
		DryRun:             dryRunFlagValue,
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

func (builder *CommandBuilder) resolveDiscoverer() FragmentDiscoverer {
	if builder.Discoverer == nil {
		return discovery.NewFilesystemFileDiscoverer()
	}
	return builder.Discoverer
}

func selectStringValue(flagValue string, configuredValue string) string {
	trimmedFlagValue := strings.TrimSpace(flagValue)
	if len(trimmedFlagValue) > 0 {
		return trimmedFlagValue
	}
	return configuredValue
}
