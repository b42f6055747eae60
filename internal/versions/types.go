package versions

// ManifestDiscoverer locates manifest files beneath a directory tree.
type ManifestDiscoverer interface {
	DiscoverFiles(rootDirectory string, fileNames ...string) ([]string, error)
}

// CommandOptions captures the configurable parameters for the sync command.
type CommandOptions struct {
	RootManifestPath  string
	PackagesDirectory string
	Report            bool
	DryRun            bool
}
