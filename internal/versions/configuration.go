package versions

import "strings"

const (
	defaultRootManifestPathConstant   = "package.json"
	defaultPackagesDirectoryConstant  = "packages"
	configurationRootSuffixConstant   = ".root"
	configurationPackagesSuffix       = ".packages"
	configurationReportSuffixConstant = ".report"
)

// CommandConfiguration captures persistent settings for the sync command.
type CommandConfiguration struct {
	RootManifestPath  string `mapstructure:"root"`
	PackagesDirectory string `mapstructure:"packages"`
	Report            bool   `mapstructure:"report"`
}

// DefaultConfigurationValues returns baseline configuration values keyed for
// the application configuration loader.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + configurationRootSuffixConstant:   defaultRootManifestPathConstant,
		configurationKeyPrefix + configurationPackagesSuffix:       defaultPackagesDirectoryConstant,
		configurationKeyPrefix + configurationReportSuffixConstant: false,
	}
}

// Sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RootManifestPath = strings.TrimSpace(configuration.RootManifestPath)
	if len(sanitized.RootManifestPath) == 0 {
		sanitized.RootManifestPath = defaultRootManifestPathConstant
	}
	sanitized.PackagesDirectory = strings.TrimSpace(configuration.PackagesDirectory)
	if len(sanitized.PackagesDirectory) == 0 {
		sanitized.PackagesDirectory = defaultPackagesDirectoryConstant
	}
	return sanitized
}
