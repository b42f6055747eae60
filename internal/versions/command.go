package versions

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/confsync/internal/discovery"
	"github.com/temirov/confsync/internal/shared"
)

const (
	commandUseConstant                 = "sync"
	commandShortDescriptionConstant    = "Synchronize package manifest versions against the root manifest"
	commandLongDescriptionConstant     = "sync rewrites dependency version strings in package manifests that drift from the root manifest and optionally prints a drift-audit report."
	rootFlagNameConstant               = "root"
	rootFlagDescriptionConstant        = "Path to the root package manifest"
	packagesFlagNameConstant           = "packages"
	packagesFlagDescriptionConstant    = "Directory tree containing package manifests"
	reportFlagNameConstant             = "report"
	reportFlagDescriptionConstant      = "Print the drift-audit report"
	dryRunFlagNameConstant             = "dry-run"
	dryRunFlagDescriptionConstant      = "Preview manifest updates without writing files"
	unexpectedArgumentsMessageConstant = "sync does not accept positional arguments"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current sync configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the sync cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            shared.FileSystem
	Discoverer            ManifestDiscoverer
}

// Build constructs the cobra command for version synchronization.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(rootFlagNameConstant, "", rootFlagDescriptionConstant)
	command.Flags().String(packagesFlagNameConstant, "", packagesFlagDescriptionConstant)
	command.Flags().Bool(reportFlagNameConstant, false, reportFlagDescriptionConstant)
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

	packagesFlagValue, packagesFlagError := command.Flags().GetString(packagesFlagNameConstant)
	if packagesFlagError != nil {
		return CommandOptions{}, packagesFlagError
	}

	reportFlagValue, reportFlagError := command.Flags().GetBool(reportFlagNameConstant)
	if reportFlagError != nil {
		return CommandOptions{}, reportFlagError
	}

	dryRunFlagValue, dryRunFlagError := command.Flags().GetBool(dryRunFlagNameConstant)
	if dryRunFlagError != nil {
		return CommandOptions{}, dryRunFlagError
	}

	options := CommandOptions{
		RootManifestPath:  selectStringValue(rootFlagValue, configuration.RootManifestPath),
		PackagesDirectory: selectStringValue(packagesFlagValue, configuration.PackagesDirectory),
		Report:            reportFlagValue || configuration.Report,
		DryRun:            dryRunFlagValue,
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

func (builder *CommandBuilder) resolveDiscoverer() ManifestDiscoverer {
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
