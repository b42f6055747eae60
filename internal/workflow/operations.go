package workflow

import (
	"context"
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/temirov/confsync/internal/manifest"
	"github.com/temirov/confsync/internal/settings"
	"github.com/temirov/confsync/internal/versions"
)

const (
	assembleManifestOperationNameConstant = "assemble-manifest"
	syncVersionsOperationNameConstant     = "sync-versions"
	mergeSettingsOperationNameConstant    = "merge-settings"
	unsupportedOperationTemplateConstant  = "unsupported workflow operation: %s"
	optionDecodeErrorTemplateConstant     = "invalid options for workflow operation %s: %w"
)

// BuildOperations converts the declarative configuration into executable operations.
func BuildOperations(configuration Configuration) ([]Operation, error) {
	operations := make([]Operation, 0, len(configuration.Steps))
	for stepIndex := range configuration.Steps {
		step := configuration.Steps[stepIndex]
		operation, buildError := buildOperationFromStep(step)
		if buildError != nil {
			return nil, buildError
		}
		operations = append(operations, operation)
	}
	return operations, nil
}

func buildOperationFromStep(step StepConfiguration) (Operation, error) {
	switch step.Operation {
	case OperationTypeAssembleManifest:
		operation := &AssembleManifestOperation{}
		if decodeError := decodeStepOptions(step, &operation.options); decodeError != nil {
			return nil, decodeError
		}
		return operation, nil
	case OperationTypeSyncVersions:
		operation := &SyncVersionsOperation{}
		if decodeError := decodeStepOptions(step, &operation.options); decodeError != nil {
			return nil, decodeError
		}
		return operation, nil
	case OperationTypeMergeSettings:
		operation := &MergeSettingsOperation{}
		if decodeError := decodeStepOptions(step, &operation.options); decodeError != nil {
			return nil, decodeError
		}
		return operation, nil
	default:
		return nil, fmt.Errorf(unsupportedOperationTemplateConstant, step.Operation)
	}
}

func decodeStepOptions(step StepConfiguration, destination any) error {
	if decodeError := mapstructure.Decode(step.Options, destination); decodeError != nil {
		return fmt.Errorf(optionDecodeErrorTemplateConstant, step.Operation, decodeError)
	}
	return nil
}

type assembleManifestOptions struct {
	RootManifestPath   string   `mapstructure:"root"`
	FragmentsDirectory string   `mapstructure:"fragments"`
	OutputPath         string   `mapstructure:"output"`
	ProtectedKeys      []string `mapstructure:"keys"`
}

// AssembleManifestOperation assembles the root package manifest from fragments.
type AssembleManifestOperation struct {
	options assembleManifestOptions
}

// Name identifies the operation for diagnostics.
func (operation *AssembleManifestOperation) Name() string {
	return assembleManifestOperationNameConstant
}

// Execute runs the manifest assembly service with the step options.
func (operation *AssembleManifestOperation) Execute(executionContext context.Context, environment *Environment) error {
	configuration := manifest.CommandConfiguration{
		RootManifestPath:   operation.options.RootManifestPath,
		FragmentsDirectory: operation.options.FragmentsDirectory,
		OutputPath:         operation.options.OutputPath,
		ProtectedKeys:      operation.options.ProtectedKeys,
	}.Sanitize()

	service := manifest.NewService(environment.FileSystem, environment.Discoverer, environment.Output, environment.Logger)
	return service.Run(executionContext, manifest.CommandOptions{
		RootManifestPath:   configuration.RootManifestPath,
		FragmentsDirectory: configuration.FragmentsDirectory,
		OutputPath:         configuration.OutputPath,
		ProtectedKeys:      configuration.ProtectedKeys,
		DryRun:             environment.DryRun,
	})
}

type syncVersionsOptions struct {
	RootManifestPath  string `mapstructure:"root"`
	PackagesDirectory string `mapstructure:"packages"`
	Report            bool   `mapstructure:"report"`
}

// SyncVersionsOperation synchronizes dependency versions beneath the packages tree.
type SyncVersionsOperation struct {
	options syncVersionsOptions
}

// Name identifies the operation for diagnostics.
func (operation *SyncVersionsOperation) Name() string {
	return syncVersionsOperationNameConstant
}

// Execute runs the version synchronization service with the step options.
func (operation *SyncVersionsOperation) Execute(executionContext context.Context, environment *Environment) error {
	configuration := versions.CommandConfiguration{
		RootManifestPath:  operation.options.RootManifestPath,
		PackagesDirectory: operation.options.PackagesDirectory,
		Report:            operation.options.Report,
	}.Sanitize()

	service := versions.NewService(environment.FileSystem, environment.Discoverer, environment.Output, environment.Logger)
	return service.Run(executionContext, versions.CommandOptions{
		RootManifestPath:  configuration.RootManifestPath,
		PackagesDirectory: configuration.PackagesDirectory,
		Report:            configuration.Report,
		DryRun:            environment.DryRun,
	})
}

type mergeSettingsOptions struct {
	BasePath   string `mapstructure:"base"`
	LocalPath  string `mapstructure:"local"`
	OutputPath string `mapstructure:"output"`
	Check      bool   `mapstructure:"check"`
}

// MergeSettingsOperation merges base and local settings into the canonical file.
type MergeSettingsOperation struct {
	options mergeSettingsOptions
}

// Name identifies the operation for diagnostics.
func (operation *MergeSettingsOperation) Name() string {
	return mergeSettingsOperationNameConstant
}

// Execute runs the settings merge service with the step options.
func (operation *MergeSettingsOperation) Execute(executionContext context.Context, environment *Environment) error {
	configuration := settings.CommandConfiguration{
		BasePath:   operation.options.BasePath,
		LocalPath:  operation.options.LocalPath,
		OutputPath: operation.options.OutputPath,
	}.Sanitize()

	service := settings.NewService(environment.FileSystem, environment.Output, environment.Logger)
	return service.Run(executionContext, settings.CommandOptions{
		BasePath:   configuration.BasePath,
		LocalPath:  configuration.LocalPath,
		OutputPath: configuration.OutputPath,
		Check:      operation.options.Check,
		DryRun:     environment.DryRun,
	})
}
