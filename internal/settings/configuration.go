package settings

import "strings"

const (
	defaultBaseSettingsPathConstant   = "settings.base.json"
	defaultLocalSettingsPathConstant  = "settings.local.json"
	defaultOutputSettingsPathConstant = "settings.json"
	configurationBaseSuffixConstant   = ".base"
	configurationLocalSuffixConstant  = ".local"
	configurationOutputSuffixConstant = ".output"
)

// CommandConfiguration captures persistent settings for the settings command.
type CommandConfiguration struct {
	BasePath   string `mapstructure:"base"`
	LocalPath  string `mapstructure:"local"`
	OutputPath string `mapstructure:"output"`
}

// DefaultConfigurationValues returns baseline configuration values keyed for
// the application configuration loader.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + configurationBaseSuffixConstant:   defaultBaseSettingsPathConstant,
		configurationKeyPrefix + configurationLocalSuffixConstant:  defaultLocalSettingsPathConstant,
		configurationKeyPrefix + configurationOutputSuffixConstant: defaultOutputSettingsPathConstant,
	}
}

// Sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.BasePath = strings.TrimSpace(configuration.BasePath)
	if len(sanitized.BasePath) == 0 {
		sanitized.BasePath = defaultBaseSettingsPathConstant
	}
	sanitized.LocalPath = strings.TrimSpace(configuration.LocalPath)
	sanitized.OutputPath = strings.TrimSpace(configuration.OutputPath)
	if len(sanitized.OutputPath) == 0 {
		sanitized.OutputPath = defaultOutputSettingsPathConstant
	}
	return sanitized
}
