package link

import (
	"strings"
	"time"

	"github.com/temirov/ghlink/internal/githubremote"
	"github.com/temirov/ghlink/internal/mirror"
	"github.com/temirov/ghlink/internal/snippet"
)

const (
	configurationClipboardKeyConstant       = "clipboard"
	configurationMarkdownDialectKeyConstant = "markdown_dialect"
	configurationMirrorKeyConstant          = "mirror"
	configurationOrganizationKeyConstant    = "organization"
	configurationLookupBaseURLKeyConstant   = "lookup_base_url"
	configurationTimeoutKeyConstant         = "timeout"
	configurationKeySeparatorConstant       = "."
)

// CommandConfiguration captures configuration values shared by the link and markdown commands.
type CommandConfiguration struct {
	Clipboard       bool                `mapstructure:"clipboard"`
	MarkdownDialect string              `mapstructure:"markdown_dialect"`
	Mirror          MirrorConfiguration `mapstructure:"mirror"`
}

// MirrorConfiguration describes how internally proxied mirror remotes are resolved.
type MirrorConfiguration struct {
	Organization  string        `mapstructure:"organization"`
	LookupBaseURL string        `mapstructure:"lookup_base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// DefaultCommandConfiguration provides baseline configuration values for the link commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Clipboard:       true,
		MarkdownDialect: string(snippet.DialectStandard),
		Mirror: MirrorConfiguration{
			Organization:  githubremote.DefaultMirrorOrganization,
			LookupBaseURL: mirror.DefaultLookupBaseURL,
			Timeout:       0,
		},
	}
}

// DefaultConfigurationValues produces Viper defaults for the link commands rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	mirrorKey := rootKey + configurationKeySeparatorConstant + configurationMirrorKeyConstant
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationClipboardKeyConstant:       defaults.Clipboard,
		rootKey + configurationKeySeparatorConstant + configurationMarkdownDialectKeyConstant: defaults.MarkdownDialect,
		mirrorKey + configurationKeySeparatorConstant + configurationOrganizationKeyConstant:  defaults.Mirror.Organization,
		mirrorKey + configurationKeySeparatorConstant + configurationLookupBaseURLKeyConstant: defaults.Mirror.LookupBaseURL,
		mirrorKey + configurationKeySeparatorConstant + configurationTimeoutKeyConstant:       defaults.Mirror.Timeout.String(),
	}
}

// sanitize trims configuration values and restores defaults for blank entries.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.MarkdownDialect = strings.TrimSpace(configuration.MarkdownDialect)
	if len(sanitized.MarkdownDialect) == 0 {
		sanitized.MarkdownDialect = defaults.MarkdownDialect
	}

	sanitized.Mirror.Organization = strings.TrimSpace(configuration.Mirror.Organization)
	if len(sanitized.Mirror.Organization) == 0 {
		sanitized.Mirror.Organization = defaults.Mirror.Organization
	}

	sanitized.Mirror.LookupBaseURL = strings.TrimSpace(configuration.Mirror.LookupBaseURL)
	if len(sanitized.Mirror.LookupBaseURL) == 0 {
		sanitized.Mirror.LookupBaseURL = defaults.Mirror.LookupBaseURL
	}

	if sanitized.Mirror.Timeout < 0 {
		sanitized.Mirror.Timeout = 0
	}

	return sanitized
}
