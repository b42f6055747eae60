package settings

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"go.uber.org/zap"

	"github.com/temirov/confsync/internal/jsonval"
	"github.com/temirov/confsync/internal/merge"
	"github.com/temirov/confsync/internal/shared"
)

const (
	settingsFilePermissionsConstant = fs.FileMode(0o644)
	baseSettingsMissingTemplate     = "%w: base settings %s"
	baseSettingsReadErrorTemplate   = "failed to read base settings: %w"
	localSettingsReadErrorTemplate  = "failed to read local settings: %w"
	settingsWriteErrorTemplate      = "failed to write %s: %w"
	checkMissingOutputTemplate      = "%w: %s does not exist"
	checkDriftTemplateConstant      = "%w: %s is out of date"
	checkCurrentTemplateConstant    = "%s is up to date\n"
	settingsMergedMessageConstant   = "settings merged"
	logFieldOutputPathConstant      = "output_path"
	logFieldLocalPresentConstant    = "local_present"
)

// CommandOptions captures the configurable parameters for the settings command.
type CommandOptions struct {
	BasePath   string
	LocalPath  string
	OutputPath string
	Check      bool
	DryRun     bool
}

// Service merges the base and optional local settings documents into the
// canonical settings file.
type Service struct {
	fileSystem   shared.FileSystem
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service using the provided collaborators.
func NewService(fileSystem shared.FileSystem, outputWriter io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fileSystem:   fileSystem,
		outputWriter: outputWriter,
		logger:       logger,
	}
}

// IsCurrent reports whether previously persisted text exactly matches freshly
// computed text. The comparison is byte equality, deliberately stricter than
// structural equality: check mode must catch any drift a regeneration would
// produce, including formatting differences.
func IsCurrent(existingText []byte, freshlyComputedText []byte) bool {
	return bytes.Equal(existingText, freshlyComputedText)
}

// Run merges the settings documents and writes, prints, or checks the result
// according to the selected mode.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	mergedText, mergeError := service.mergeSettings(options)
	if mergeError != nil {
		return mergeError
	}

	switch {
	case options.Check:
		return service.checkCurrent(options.OutputPath, mergedText)
	case options.DryRun:
		_, writeError := service.outputWriter.Write(mergedText)
		return writeError
	default:
		if writeError := service.fileSystem.WriteFile(options.OutputPath, mergedText, settingsFilePermissionsConstant); writeError != nil {
			return fmt.Errorf(settingsWriteErrorTemplate, options.OutputPath, writeError)
		}
		return nil
	}
}

func (service *Service) mergeSettings(options CommandOptions) ([]byte, error) {
	baseContent, baseReadError := service.fileSystem.ReadFile(options.BasePath)
	if baseReadError != nil {
		if errors.Is(baseReadError, fs.ErrNotExist) {
			return nil, fmt.Errorf(baseSettingsMissingTemplate, shared.ErrMissingResource, options.BasePath)
		}
		return nil, fmt.Errorf(baseSettingsReadErrorTemplate, baseReadError)
	}

	baseDocument, baseDecodeError := jsonval.DecodeObject(baseContent)
	if baseDecodeError != nil {
		return nil, baseDecodeError
	}

	localDocument, localError := service.loadOptionalLocal(options.LocalPath)
	if localError != nil {
		return nil, localError
	}

	mergedDocument := merge.Merge(baseDocument, localDocument)

	service.logger.Info(
		settingsMergedMessageConstant,
		zap.String(logFieldOutputPathConstant, options.OutputPath),
		zap.Bool(logFieldLocalPresentConstant, localDocument != nil),
	)

	return jsonval.Encode(mergedDocument), nil
}

func (service *Service) loadOptionalLocal(localPath string) (*jsonval.Object, error) {
	if len(localPath) == 0 {
		return nil, nil
	}

	localContent, localReadError := service.fileSystem.ReadFile(localPath)
	if localReadError != nil {
		if errors.Is(localReadError, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf(localSettingsReadErrorTemplate, localReadError)
	}

	return jsonval.DecodeObject(localContent)
}

func (service *Service) checkCurrent(outputPath string, mergedText []byte) error {
	existingText, readError := service.fileSystem.ReadFile(outputPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return fmt.Errorf(checkMissingOutputTemplate, shared.ErrDriftDetected, outputPath)
		}
		return readError
	}

	if !IsCurrent(existingText, mergedText) {
		return fmt.Errorf(checkDriftTemplateConstant, shared.ErrDriftDetected, outputPath)
	}

	fmt.Fprintf(service.outputWriter, checkCurrentTemplateConstant, outputPath)
	return nil
}
