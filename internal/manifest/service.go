package manifest

import (
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
	reservedNotesKeyConstant         = "notes"
	jsonFileSuffixConstant           = ".json"
	jsoncFileSuffixConstant          = ".jsonc"
	manifestFilePermissionsConstant  = fs.FileMode(0o644)
	rootManifestMissingTemplate      = "%w: root manifest %s"
	rootManifestReadErrorTemplate    = "failed to read root manifest: %w"
	fragmentsMissingTemplateConstant = "%w: fragment directory %s"
	fragmentDiscoveryErrorTemplate   = "failed to discover fragments: %w"
	fragmentParseErrorTemplate       = "fragment %s: %w"
	manifestWriteErrorTemplate       = "failed to write %s: %w"
	manifestAssembledMessageConstant = "package manifest assembled"
	logFieldOutputPathConstant       = "output_path"
	logFieldFragmentCountConstant    = "fragment_count"
)

// DefaultProtectedKeys is the ordered allow-list of root manifest keys carried
// into the assembled output when the caller supplies no key set.
var DefaultProtectedKeys = []string{
	"name",
	"description",
	"version",
	"author",
	"bugs",
	"engines",
	"homepage",
	"license",
	"private",
	"repository",
	"publishConfig",
	"type",
}

// FragmentDiscoverer locates manifest fragment files beneath a directory tree.
type FragmentDiscoverer interface {
	DiscoverFilesBySuffix(rootDirectory string, fileSuffixes ...string) ([]string, error)
}

// CommandOptions captures the configurable parameters for the manifest command.
type CommandOptions struct {
	RootManifestPath   string
	FragmentsDirectory string
	OutputPath         string
	ProtectedKeys      []string
	DryRun             bool
}

// Service assembles the root package manifest from per-package fragments.
type Service struct {
	fileSystem   shared.FileSystem
	discoverer   FragmentDiscoverer
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service using the provided collaborators.
func NewService(fileSystem shared.FileSystem, discoverer FragmentDiscoverer, outputWriter io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fileSystem:   fileSystem,
		discoverer:   discoverer,
		outputWriter: outputWriter,
		logger:       logger,
	}
}

// Run assembles the manifest and writes or prints the canonical text.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	assembledText, assembleError := service.Assemble(executionContext, options)
	if assembleError != nil {
		return assembleError
	}

	if options.DryRun {
		_, writeError := service.outputWriter.Write(assembledText)
		return writeError
	}

	if writeError := service.fileSystem.WriteFile(options.OutputPath, assembledText, manifestFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(manifestWriteErrorTemplate, options.OutputPath, writeError)
	}
	return nil
}

// Assemble computes the canonical manifest text without touching the output
// path: the protected keys of the root manifest, merged with every fragment in
// sorted enumeration order, with the reserved notes key stripped.
func (service *Service) Assemble(executionContext context.Context, options CommandOptions) ([]byte, error) {
	rootDocument, rootError := service.loadRootManifest(options.RootManifestPath)
	if rootError != nil {
		return nil, rootError
	}

	protectedKeys := options.ProtectedKeys
	if len(protectedKeys) == 0 {
		protectedKeys = DefaultProtectedKeys
	}

	assembledDocument := merge.Project(rootDocument, protectedKeys)

	fragmentPaths, discoveryError := service.discoverer.DiscoverFilesBySuffix(options.FragmentsDirectory, jsonFileSuffixConstant, jsoncFileSuffixConstant)
	if discoveryError != nil {
		if errors.Is(discoveryError, fs.ErrNotExist) {
			return nil, fmt.Errorf(fragmentsMissingTemplateConstant, shared.ErrMissingResource, options.FragmentsDirectory)
		}
		return nil, fmt.Errorf(fragmentDiscoveryErrorTemplate, discoveryError)
	}

	for _, fragmentPath := range fragmentPaths {
		fragmentContent, readError := service.fileSystem.ReadFile(fragmentPath)
		if readError != nil {
			return nil, fmt.Errorf(fragmentParseErrorTemplate, fragmentPath, readError)
		}
		fragmentDocument, decodeError := jsonval.DecodeObject(fragmentContent)
		if decodeError != nil {
			return nil, fmt.Errorf(fragmentParseErrorTemplate, fragmentPath, decodeError)
		}
		assembledDocument = merge.Merge(assembledDocument, fragmentDocument)
	}

	assembledDocument.Delete(reservedNotesKeyConstant)

	service.logger.Info(
		manifestAssembledMessageConstant,
		zap.String(logFieldOutputPathConstant, options.OutputPath),
		zap.Int(logFieldFragmentCountConstant, len(fragmentPaths)),
	)

	return jsonval.Encode(assembledDocument), nil
}

func (service *Service) loadRootManifest(rootManifestPath string) (*jsonval.Object, error) {
	content, readError := service.fileSystem.ReadFile(rootManifestPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return nil, fmt.Errorf(rootManifestMissingTemplate, shared.ErrMissingResource, rootManifestPath)
		}
		return nil, fmt.Errorf(rootManifestReadErrorTemplate, readError)
	}
	return jsonval.DecodeObject(content)
}
