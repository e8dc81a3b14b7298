package epoch

import (
	"strings"

	"github.com/temirov/git-epoch/internal/gitrepo"
)

const (
	configurationEpochGapDaysKeyConstant = "epoch_gap_days"
	configurationForceKeyConstant        = "force"
	configurationRepositoryKeyConstant   = "repository"
	configurationBackendKeyConstant      = "backend"
	configurationTimezoneKeyConstant     = "timezone"
	defaultEpochGapDaysConstant          = 14
	defaultRepositoryPathConstant        = "."
	defaultTimezoneConstant              = "local"
)

// CommandConfiguration captures persistent settings for the git-epoch command.
type CommandConfiguration struct {
	EpochGapDays   int    `mapstructure:"epoch_gap_days"`
	Force          bool   `mapstructure:"force"`
	RepositoryPath string `mapstructure:"repository"`
	Backend        string `mapstructure:"backend"`
	Timezone       string `mapstructure:"timezone"`
}

// DefaultCommandConfiguration returns baseline configuration values for the git-epoch command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		EpochGapDays:   defaultEpochGapDaysConstant,
		Force:          false,
		RepositoryPath: defaultRepositoryPathConstant,
		Backend:        string(gitrepo.BackendGoGit),
		Timezone:       defaultTimezoneConstant,
	}
}

// DefaultConfigurationValues returns the defaults keyed under rootKey for configuration loading.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationEpochGapDaysKeyConstant: defaults.EpochGapDays,
		rootKey + "." + configurationForceKeyConstant:        defaults.Force,
		rootKey + "." + configurationRepositoryKeyConstant:   defaults.RepositoryPath,
		rootKey + "." + configurationBackendKeyConstant:      defaults.Backend,
		rootKey + "." + configurationTimezoneKeyConstant:     defaults.Timezone,
	}
}

// Sanitize trims string values and restores defaults for blank ones.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	defaults := DefaultCommandConfiguration()

	sanitized.RepositoryPath = strings.TrimSpace(configuration.RepositoryPath)
	if len(sanitized.RepositoryPath) == 0 {
		sanitized.RepositoryPath = defaults.RepositoryPath
	}

	sanitized.Backend = strings.TrimSpace(configuration.Backend)
	if len(sanitized.Backend) == 0 {
		sanitized.Backend = defaults.Backend
	}

	sanitized.Timezone = strings.TrimSpace(configuration.Timezone)
	if len(sanitized.Timezone) == 0 {
		sanitized.Timezone = defaults.Timezone
	}

	return sanitized
}
