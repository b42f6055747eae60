package versions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/confsync/internal/audit"
	"github.com/temirov/confsync/internal/jsonval"
	"github.com/temirov/confsync/internal/shared"
)

const (
	runtimeDependenciesKeyConstant     = "dependencies"
	developmentDependenciesKeyConstant = "devDependencies"
	scriptsKeyConstant                 = "scripts"
	taskRunnerTasksKeyConstant         = "tasks"
	packageManifestFileNameConstant    = "package.json"
	taskRunnerFileNameConstant         = "turbo.json"
	manifestFilePermissionsConstant    = fs.FileMode(0o644)
	rootManifestMissingTemplate        = "%w: root manifest %s"
	rootManifestReadErrorTemplate      = "failed to read root manifest: %w"
	packageDiscoveryErrorTemplate      = "failed to discover package manifests: %w"
	manifestWriteErrorTemplate         = "failed to write %s: %w"
	syncUpdatePlanTemplateConstant     = "would update %s\n"
	syncUpdateDoneTemplateConstant     = "updated %s\n"
	syncedManifestMessageConstant      = "package manifest synchronized"
	skippedManifestMessageConstant     = "skipping unreadable package manifest"
	logFieldManifestPathConstant       = "manifest_path"
	logFieldFailureReasonConstant      = "reason"
)

// Service synchronizes package manifest dependency versions against the root
// manifest and assembles the drift-audit report.
type Service struct {
	fileSystem   shared.FileSystem
	discoverer   ManifestDiscoverer
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service using the provided collaborators.
func NewService(fileSystem shared.FileSystem, discoverer ManifestDiscoverer, outputWriter io.Writer, logger *zap.Logger) *Service {
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

type packageManifest struct {
	path     string
	document *jsonval.Object
}

// Run executes version synchronization and, when requested, the audit report.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	rootDocument, rootError := service.loadRootManifest(options.RootManifestPath)
	if rootError != nil {
		return rootError
	}

	manifestPaths, discoveryError := service.discoverer.DiscoverFiles(options.PackagesDirectory, packageManifestFileNameConstant)
	if discoveryError != nil {
		return fmt.Errorf(packageDiscoveryErrorTemplate, discoveryError)
	}

	var manifests []packageManifest
	var failures []audit.FileFailure
	for _, manifestPath := range manifestPaths {
		document, loadError := service.loadDocument(manifestPath)
		if loadError != nil {
			service.logger.Warn(
				skippedManifestMessageConstant,
				zap.String(logFieldManifestPathConstant, manifestPath),
				zap.String(logFieldFailureReasonConstant, loadError.Error()),
			)
			failures = append(failures, audit.FileFailure{Origin: manifestPath, Reason: loadError.Error()})
			continue
		}
		manifests = append(manifests, packageManifest{path: manifestPath, document: document})
	}

	if syncError := service.synchronizeManifests(rootDocument, manifests, options.DryRun); syncError != nil {
		return syncError
	}

	if !options.Report {
		return nil
	}

	report := service.buildReport(rootDocument, manifests, options, failures)
	return audit.Render(service.outputWriter, report)
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

func (service *Service) loadDocument(documentPath string) (*jsonval.Object, error) {
	content, readError := service.fileSystem.ReadFile(documentPath)
	if readError != nil {
		return nil, readError
	}
	return jsonval.DecodeObject(content)
}

func (service *Service) synchronizeManifests(rootDocument *jsonval.Object, manifests []packageManifest, dryRun bool) error {
	rootRuntime := objectSection(rootDocument, runtimeDependenciesKeyConstant)
	rootDevelopment := objectSection(rootDocument, developmentDependenciesKeyConstant)

	for _, manifest := range manifests {
		runtimeChanged := SyncVersions(objectSection(manifest.document, runtimeDependenciesKeyConstant), rootRuntime)
		developmentChanged := SyncVersions(objectSection(manifest.document, developmentDependenciesKeyConstant), rootDevelopment)
		if !runtimeChanged && !developmentChanged {
			continue
		}

		if dryRun {
			fmt.Fprintf(service.outputWriter, syncUpdatePlanTemplateConstant, manifest.path)
			continue
		}

		encodedManifest := jsonval.Encode(manifest.document)
		if writeError := service.fileSystem.WriteFile(manifest.path, encodedManifest, manifestFilePermissionsConstant); writeError != nil {
			return fmt.Errorf(manifestWriteErrorTemplate, manifest.path, writeError)
		}

		fmt.Fprintf(service.outputWriter, syncUpdateDoneTemplateConstant, manifest.path)
		service.logger.Info(syncedManifestMessageConstant, zap.String(logFieldManifestPathConstant, manifest.path))
	}

	return nil
}

func (service *Service) buildReport(rootDocument *jsonval.Object, manifests []packageManifest, options CommandOptions, failures []audit.FileFailure) audit.Report {
	dependencyMaps := make([]audit.FileScopedMap, 0, len(manifests)*2)
	scriptMaps := make([]audit.FileScopedMap, 0, len(manifests))
	for _, manifest := range manifests {
		if runtimeSection := objectSection(manifest.document, runtimeDependenciesKeyConstant); runtimeSection != nil {
			dependencyMaps = append(dependencyMaps, audit.FileScopedMap{Origin: manifest.path, Entries: runtimeSection})
		}
		if developmentSection := objectSection(manifest.document, developmentDependenciesKeyConstant); developmentSection != nil {
			dependencyMaps = append(dependencyMaps, audit.FileScopedMap{Origin: manifest.path, Entries: developmentSection})
		}
		if scriptsSection := objectSection(manifest.document, scriptsKeyConstant); scriptsSection != nil {
			scriptMaps = append(scriptMaps, audit.FileScopedMap{Origin: manifest.path, Entries: scriptsSection})
		}
	}

	taskMaps, rootTasks, taskFailures := service.collectTaskRunnerMaps(options)
	failures = append(failures, taskFailures...)

	rootScripts := objectSection(rootDocument, scriptsKeyConstant)
	usedDependencyNames := audit.UsedKeys(dependencyMaps)

	return audit.Report{
		UnusedDependencies: audit.UnusedRootEntries(
			objectSection(rootDocument, runtimeDependenciesKeyConstant),
			objectSection(rootDocument, developmentDependenciesKeyConstant),
			usedDependencyNames,
		),
		Scripts: audit.SectionAudit{
			Missing:    audit.MissingFromFiles(rootScripts, scriptMaps),
			Changed:    audit.ChangedEntries(rootScripts, scriptMaps, audit.CompareAsText),
			Duplicated: audit.DuplicateKeys(scriptMaps),
		},
		TaskRunner: audit.SectionAudit{
			Missing:    audit.MissingFromFiles(rootTasks, taskMaps),
			Changed:    audit.ChangedEntries(rootTasks, taskMaps, audit.CompareStructurally),
			Duplicated: audit.DuplicateKeys(taskMaps),
		},
		Failures: failures,
	}
}

func (service *Service) collectTaskRunnerMaps(options CommandOptions) ([]audit.FileScopedMap, *jsonval.Object, []audit.FileFailure) {
	var taskFailures []audit.FileFailure

	rootTaskRunnerPath := filepath.Join(filepath.Dir(options.RootManifestPath), taskRunnerFileNameConstant)
	var rootTasks *jsonval.Object
	rootDocument, rootError := service.loadDocument(rootTaskRunnerPath)
	switch {
	case rootError == nil:
		rootTasks = objectSection(rootDocument, taskRunnerTasksKeyConstant)
	case errors.Is(rootError, fs.ErrNotExist):
		// A workspace without a root task-runner file audits against an empty set.
	default:
		taskFailures = append(taskFailures, audit.FileFailure{Origin: rootTaskRunnerPath, Reason: rootError.Error()})
	}

	taskRunnerPaths, discoveryError := service.discoverer.DiscoverFiles(options.PackagesDirectory, taskRunnerFileNameConstant)
	if discoveryError != nil {
		return nil, rootTasks, taskFailures
	}

	var taskMaps []audit.FileScopedMap
	for _, taskRunnerPath := range taskRunnerPaths {
		document, loadError := service.loadDocument(taskRunnerPath)
		if loadError != nil {
			taskFailures = append(taskFailures, audit.FileFailure{Origin: taskRunnerPath, Reason: loadError.Error()})
			continue
		}
		if tasksSection := objectSection(document, taskRunnerTasksKeyConstant); tasksSection != nil {
			taskMaps = append(taskMaps, audit.FileScopedMap{Origin: taskRunnerPath, Entries: tasksSection})
		}
	}
	return taskMaps, rootTasks, taskFailures
}

func objectSection(document *jsonval.Object, sectionKey string) *jsonval.Object {
	if document == nil {
		return nil
	}
	sectionValue, exists := document.Get(sectionKey)
	if !exists {
		return nil
	}
	sectionObject, isObject := sectionValue.(*jsonval.Object)
	if !isObject {
		return nil
	}
	return sectionObject
}
