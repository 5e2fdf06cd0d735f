package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	configurationKeySeparatorConstant               = "."
	environmentKeySeparatorConstant                 = "_"
	fileExtensionSeparatorConstant                  = "."
	listValueSeparatorConstant                      = ","
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
)

// ConfigurationSource describes the layers a ConfigurationLoader reads, from lowest to highest precedence:
// embedded defaults, programmatic defaults, a configuration file and prefixed environment variables.
type ConfigurationSource struct {
	// FileName is the configuration file name without its extension, such as "config".
	FileName string
	// FileType is the format assumed for discovered files and for embedded defaults without a type.
	FileType          string
	EnvironmentPrefix string
	// SearchDirectories are consulted in order; the first directory holding the file wins.
	SearchDirectories    []string
	EmbeddedDefaults     []byte
	EmbeddedDefaultsType string
}

// LoadedConfiguration reports which layers contributed to a loaded configuration.
type LoadedConfiguration struct {
	ConfigFileUsed string
	// EnvironmentOverrides lists, sorted, the configuration keys whose value came from the environment.
	EnvironmentOverrides []string
}

// ConfigurationLoader decodes layered configuration into mapstructure-tagged structs through Viper.
type ConfigurationLoader struct {
	source                 ConfigurationSource
	environmentKeyReplacer *strings.Replacer
}

// NewConfigurationLoader constructs a loader for source. The source slices are copied.
func NewConfigurationLoader(source ConfigurationSource) *ConfigurationLoader {
	copiedSource := source
	copiedSource.SearchDirectories = append([]string(nil), source.SearchDirectories...)
	copiedSource.EmbeddedDefaults = append([]byte(nil), source.EmbeddedDefaults...)
	copiedSource.EmbeddedDefaultsType = strings.TrimSpace(source.EmbeddedDefaultsType)

	return &ConfigurationLoader{
		source:                 copiedSource,
		environmentKeyReplacer: strings.NewReplacer(configurationKeySeparatorConstant, environmentKeySeparatorConstant),
	}
}

// EnvironmentVariableName returns the variable that overrides configurationKey,
// e.g. GHLINK_TOOLS_LINK_MIRROR_TIMEOUT for tools.link.mirror.timeout.
func (loader *ConfigurationLoader) EnvironmentVariableName(configurationKey string) string {
	environmentKey := strings.ToUpper(loader.environmentKeyReplacer.Replace(configurationKey))
	if len(loader.source.EnvironmentPrefix) == 0 {
		return environmentKey
	}
	return strings.ToUpper(loader.source.EnvironmentPrefix) + environmentKeySeparatorConstant + environmentKey
}

// LoadConfiguration populates targetConfiguration from every layer. When explicitFilePath is set it replaces the
// search directories and must exist; otherwise a missing configuration file is not an error.
func (loader *ConfigurationLoader) LoadConfiguration(explicitFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()

	if mergeError := loader.mergeEmbeddedDefaults(viperInstance); mergeError != nil {
		return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
	}

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	configFileUsed, fileError := loader.mergeConfigurationFile(viperInstance, explicitFilePath)
	if fileError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, fileError)
	}

	environmentOverrides := loader.bindEnvironment(viperInstance)

	if unmarshalError := viperInstance.Unmarshal(targetConfiguration, viper.DecodeHook(configurationDecodeHook())); unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: configFileUsed, EnvironmentOverrides: environmentOverrides}, nil
}

func (loader *ConfigurationLoader) mergeEmbeddedDefaults(viperInstance *viper.Viper) error {
	if len(loader.source.EmbeddedDefaults) == 0 {
		return nil
	}
	embeddedType := loader.source.EmbeddedDefaultsType
	if len(embeddedType) == 0 {
		embeddedType = loader.source.FileType
	}
	viperInstance.SetConfigType(embeddedType)
	return viperInstance.MergeConfig(bytes.NewReader(loader.source.EmbeddedDefaults))
}

func (loader *ConfigurationLoader) mergeConfigurationFile(viperInstance *viper.Viper, explicitFilePath string) (string, error) {
	viperInstance.SetConfigType(loader.source.FileType)

	trimmedFilePath := strings.TrimSpace(explicitFilePath)
	if len(trimmedFilePath) > 0 {
		viperInstance.SetConfigFile(trimmedFilePath)
		if extension := strings.TrimPrefix(filepath.Ext(trimmedFilePath), fileExtensionSeparatorConstant); len(extension) > 0 {
			viperInstance.SetConfigType(extension)
		}
	} else {
		viperInstance.SetConfigName(loader.source.FileName)
		for _, searchDirectory := range loader.source.SearchDirectories {
			viperInstance.AddConfigPath(searchDirectory)
		}
	}

	readError := viperInstance.MergeInConfig()
	var notFoundError viper.ConfigFileNotFoundError
	switch {
	case readError == nil:
		return viperInstance.ConfigFileUsed(), nil
	case errors.As(readError, &notFoundError):
		return "", nil
	default:
		return "", readError
	}
}

// bindEnvironment enables prefixed environment overrides and reports the known keys they affect.
func (loader *ConfigurationLoader) bindEnvironment(viperInstance *viper.Viper) []string {
	viperInstance.SetEnvPrefix(loader.source.EnvironmentPrefix)
	viperInstance.SetEnvKeyReplacer(loader.environmentKeyReplacer)
	viperInstance.AutomaticEnv()

	var environmentOverrides []string
	for _, configurationKey := range viperInstance.AllKeys() {
		if _, isSet := os.LookupEnv(loader.EnvironmentVariableName(configurationKey)); isSet {
			environmentOverrides = append(environmentOverrides, configurationKey)
		}
	}
	sort.Strings(environmentOverrides)
	return environmentOverrides
}

// configurationDecodeHook lets configuration files and environment variables express
// durations such as "5s" and comma-separated lists.
func configurationDecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(listValueSeparatorConstant),
		mapstructure.TextUnmarshallerHookFunc(),
	)
}
