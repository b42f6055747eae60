package workflow

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/confsync/internal/shared"
)

// Operation executes a single workflow step.
type Operation interface {
	Name() string
	Execute(executionContext context.Context, environment *Environment) error
}

// FileDiscoverer locates configuration files beneath a directory tree.
type FileDiscoverer interface {
	DiscoverFiles(rootDirectory string, fileNames ...string) ([]string, error)
	DiscoverFilesBySuffix(rootDirectory string, fileSuffixes ...string) ([]string, error)
}

// Environment exposes shared dependencies for workflow operations.
type Environment struct {
	FileSystem shared.FileSystem
	Discoverer FileDiscoverer
	Output     io.Writer
	Logger     *zap.Logger
	DryRun     bool
}
