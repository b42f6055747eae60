package workflow

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/confsync/internal/shared"
)

const (
	configurationLoadErrorTemplateConstant        = "failed to load workflow configuration: %w"
	configurationParseErrorTemplateConstant       = "%w: workflow configuration: %v"
	configurationPathRequiredMessageConstant      = "workflow configuration path must be provided"
	configurationEmptyStepsMessageConstant        = "workflow configuration must define at least one step"
	configurationOperationMissingMessageConstant  = "workflow step missing operation name"
	configurationToolNameRequiredMessageConstant  = "workflow tool names must be non-empty"
	configurationDuplicateToolNameMessageConstant = "workflow configuration defines duplicate tool names"
	configurationToolOperationMissingTemplate     = "workflow tool %s missing operation name"
	configurationUnknownToolTemplateConstant      = "workflow step references unknown tool %s"
	optionToolReferenceKeyConstant                = "tool"
)

// OperationType identifies supported workflow operations.
type OperationType string

// Supported workflow operations.
const (
	OperationTypeAssembleManifest OperationType = OperationType("assemble-manifest")
	OperationTypeSyncVersions     OperationType = OperationType("sync-versions")
	OperationTypeMergeSettings    OperationType = OperationType("merge-settings")
)

// Configuration describes the ordered workflow steps and reusable tool definitions loaded from YAML or JSON.
type Configuration struct {
	Tools []NamedToolConfiguration `yaml:"tools" json:"tools"`
	Steps []StepConfiguration      `yaml:"steps" json:"steps"`

	toolLookup map[string]ToolConfiguration
}

// NamedToolConfiguration captures a reusable operation definition along with its canonical reference name.
type NamedToolConfiguration struct {
	Name              string `yaml:"name" json:"name"`
	ToolConfiguration `yaml:",inline" json:",inline"`
}

// StepConfiguration associates an operation type with declarative options.
type StepConfiguration struct {
	Operation OperationType  `yaml:"operation" json:"operation"`
	Options   map[string]any `yaml:"with" json:"with"`
}

// ToolConfiguration describes reusable workflow options for a specific operation type.
type ToolConfiguration struct {
	Operation OperationType  `yaml:"operation" json:"operation"`
	Options   map[string]any `yaml:"with" json:"with"`
}

// LoadConfiguration reads the workflow definition from disk and performs basic validation.
func LoadConfiguration(filePath string) (Configuration, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return Configuration{}, errors.New(configurationPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationLoadErrorTemplateConstant, readError)
	}

	return ParseConfiguration(contentBytes)
}

// ParseConfiguration decodes the workflow definition from YAML or JSON bytes
// and performs basic validation. A top-level "workflow" wrapper object is
// accepted so the definition can live inside a shared configuration file.
func ParseConfiguration(contentBytes []byte) (Configuration, error) {
	var configuration Configuration
	if unmarshalError := yaml.Unmarshal(contentBytes, &configuration); unmarshalError != nil {
		return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, shared.ErrMalformedInput, unmarshalError)
	}

	if len(configuration.Tools) == 0 && len(configuration.Steps) == 0 {
		var wrapper struct {
			Workflow Configuration `yaml:"workflow" json:"workflow"`
		}
		if nestedError := yaml.Unmarshal(contentBytes, &wrapper); nestedError == nil {
			if len(wrapper.Workflow.Tools) > 0 || len(wrapper.Workflow.Steps) > 0 {
				configuration = wrapper.Workflow
			}
		}
	}

	toolLookup, toolsError := buildToolLookup(configuration.Tools)
	if toolsError != nil {
		return Configuration{}, toolsError
	}
	configuration.toolLookup = toolLookup

	if len(configuration.Steps) == 0 {
		return Configuration{}, errors.New(configurationEmptyStepsMessageConstant)
	}

	for stepIndex := range configuration.Steps {
		resolvedStep, resolveError := resolveStep(configuration.Steps[stepIndex], toolLookup)
		if resolveError != nil {
			return Configuration{}, resolveError
		}
		configuration.Steps[stepIndex] = resolvedStep
	}

	return configuration, nil
}

func resolveStep(step StepConfiguration, toolLookup map[string]ToolConfiguration) (StepConfiguration, error) {
	toolName, hasToolReference := toolReferenceName(step.Options)
	if hasToolReference {
		toolConfiguration, toolExists := toolLookup[toolName]
		if !toolExists {
			return StepConfiguration{}, fmt.Errorf(configurationUnknownToolTemplateConstant, toolName)
		}
		resolvedOptions := make(map[string]any, len(toolConfiguration.Options)+len(step.Options))
		for optionKey, optionValue := range toolConfiguration.Options {
			resolvedOptions[optionKey] = optionValue
		}
		for optionKey, optionValue := range step.Options {
			if strings.EqualFold(strings.TrimSpace(optionKey), optionToolReferenceKeyConstant) {
				continue
			}
			resolvedOptions[optionKey] = optionValue
		}
		return StepConfiguration{Operation: toolConfiguration.Operation, Options: resolvedOptions}, nil
	}

	trimmedOperation := strings.TrimSpace(string(step.Operation))
	if len(trimmedOperation) == 0 {
		return StepConfiguration{}, errors.New(configurationOperationMissingMessageConstant)
	}
	step.Operation = OperationType(trimmedOperation)
	return step, nil
}

func buildToolLookup(tools []NamedToolConfiguration) (map[string]ToolConfiguration, error) {
	if len(tools) == 0 {
		return nil, nil
	}

	lookup := make(map[string]ToolConfiguration, len(tools))
	for toolIndex := range tools {
		trimmedName := strings.TrimSpace(tools[toolIndex].Name)
		if len(trimmedName) == 0 {
			return nil, errors.New(configurationToolNameRequiredMessageConstant)
		}
		if _, exists := lookup[trimmedName]; exists {
			return nil, errors.New(configurationDuplicateToolNameMessageConstant)
		}
		if len(strings.TrimSpace(string(tools[toolIndex].Operation))) == 0 {
			return nil, fmt.Errorf(configurationToolOperationMissingTemplate, trimmedName)
		}
		tools[toolIndex].Name = trimmedName
		lookup[trimmedName] = ToolConfiguration{
			Operation: tools[toolIndex].Operation,
			Options:   tools[toolIndex].Options,
		}
	}

	return lookup, nil
}

func toolReferenceName(options map[string]any) (string, bool) {
	for rawKey, rawValue := range options {
		if !strings.EqualFold(strings.TrimSpace(rawKey), optionToolReferenceKeyConstant) {
			continue
		}
		if nameValue, isString := rawValue.(string); isString {
			trimmedName := strings.TrimSpace(nameValue)
			if len(trimmedName) > 0 {
				return trimmedName, true
			}
		}
	}
	return "", false
}
