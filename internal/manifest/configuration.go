package manifest

import "strings"

const (
	defaultRootManifestPathConstant   = "package.json"
	defaultFragmentsDirectoryConstant = "package-parts"
	configurationRootSuffixConstant   = ".root"
	configurationFragmentsSuffix      = ".fragments"
	configurationOutputSuffixConstant = ".output"
	configurationKeysSuffixConstant   = ".keys"
)

// CommandConfiguration captures persistent settings for the manifest command.
type CommandConfiguration struct {
	RootManifestPath   string   `mapstructure:"root"`
	FragmentsDirectory string   `mapstructure:"fragments"`
	OutputPath         string   `mapstructure:"output"`
	ProtectedKeys      []string `mapstructure:"keys"`
}

// DefaultConfigurationValues returns baseline configuration values keyed for
// the application configuration loader.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + configurationRootSuffixConstant:   defaultRootManifestPathConstant,
		configurationKeyPrefix + configurationFragmentsSuffix:      defaultFragmentsDirectoryConstant,
		configurationKeyPrefix + configurationOutputSuffixConstant: "",
		configurationKeyPrefix + configurationKeysSuffixConstant:   []string{},
	}
}

// Sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RootManifestPath = strings.TrimSpace(configuration.RootManifestPath)
	if len(sanitized.RootManifestPath) == 0 {
		sanitized.RootManifestPath = defaultRootManifestPathConstant
	}
	sanitized.FragmentsDirectory = strings.TrimSpace(configuration.FragmentsDirectory)
	if len(sanitized.FragmentsDirectory) == 0 {
		sanitized.FragmentsDirectory = defaultFragmentsDirectoryConstant
	}
	sanitized.OutputPath = strings.TrimSpace(configuration.OutputPath)
	if len(sanitized.OutputPath) == 0 {
		sanitized.OutputPath = sanitized.RootManifestPath
	}
	sanitized.ProtectedKeys = sanitizeKeys(configuration.ProtectedKeys)
	return sanitized
}

func sanitizeKeys(candidateKeys []string) []string {
	sanitizedKeys := make([]string, 0, len(candidateKeys))
	seenKeys := make(map[string]struct{}, len(candidateKeys))
	for _, candidateKey := range candidateKeys {
		trimmedKey := strings.TrimSpace(candidateKey)
		if len(trimmedKey) == 0 {
			continue
		}
		if _, alreadySeen := seenKeys[trimmedKey]; alreadySeen {
			continue
		}
		seenKeys[trimmedKey] = struct{}{}
		sanitizedKeys = append(sanitizedKeys, trimmedKey)
	}
	if len(sanitizedKeys) == 0 {
		return nil
	}
	return sanitizedKeys
}
