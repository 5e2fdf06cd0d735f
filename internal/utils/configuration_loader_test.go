package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghlink/internal/utils"
)

const (
	configurationLoaderSubtestTemplateConstant = "%d_%s"
	testEnvironmentPrefixConstant              = "TESTGHLINK"
	testConfigurationFileNameConstant          = "config"
	testConfigurationFileTypeConstant          = "yaml"
	testConfigurationFileConstant              = "config.yaml"
	testOrganizationKeyConstant                = "tools.link.mirror.organization"
	testTimeoutKeyConstant                     = "tools.link.mirror.timeout"
	testClipboardKeyConstant                   = "tools.link.clipboard"
	testDialectKeyConstant                     = "tools.link.markdown_dialect"
	testEmbeddedDefaultsConstant               = "tools:\n  link:\n    clipboard: true\n    markdown_dialect: standard\n    mirror:\n      organization: watchpug\n      lookup_base_url: https://lookup.example.com\n      timeout: 0s\n"
	testOrganizationFileTemplateConstant       = "tools:\n  link:\n    mirror:\n      organization: %s\n"
)

type linkConfigurationFixture struct {
	Tools struct {
		Link struct {
			Clipboard       bool   `mapstructure:"clipboard"`
			MarkdownDialect string `mapstructure:"markdown_dialect"`
			Mirror          struct {
				Organization  string        `mapstructure:"organization"`
				LookupBaseURL string        `mapstructure:"lookup_base_url"`
				Timeout       time.Duration `mapstructure:"timeout"`
			} `mapstructure:"mirror"`
		} `mapstructure:"link"`
	} `mapstructure:"tools"`
}

func newLinkConfigurationLoader(searchDirectories ...string) *utils.ConfigurationLoader {
	return utils.NewConfigurationLoader(utils.ConfigurationSource{
		FileName:             testConfigurationFileNameConstant,
		FileType:             testConfigurationFileTypeConstant,
		EnvironmentPrefix:    testEnvironmentPrefixConstant,
		SearchDirectories:    searchDirectories,
		EmbeddedDefaults:     []byte(testEmbeddedDefaultsConstant),
		EmbeddedDefaultsType: testConfigurationFileTypeConstant,
	})
}

func writeConfigurationFile(testInstance *testing.T, directory string, fileName string, content string) string {
	testInstance.Helper()
	filePath := filepath.Join(directory, fileName)
	require.NoError(testInstance, os.WriteFile(filePath, []byte(content), 0o600))
	return filePath
}

func TestConfigurationLoaderLayersMirrorOrganization(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		defaultOrganization  string
		fileOrganization     string
		environmentValue     string
		expectedOrganization string
		expectFileUsed       bool
		expectedOverrides    []string
	}{
		{name: "embedded_defaults", expectedOrganization: "watchpug"},
		{name: "programmatic_default_over_embedded", defaultOrganization: "proxied", expectedOrganization: "proxied"},
		{name: "file_over_defaults", defaultOrganization: "proxied", fileOrganization: "internal-mirrors", expectedOrganization: "internal-mirrors", expectFileUsed: true},
		{
			name:                 "environment_over_file",
			fileOrganization:     "internal-mirrors",
			environmentValue:     "from-environment",
			expectedOrganization: "from-environment",
			expectFileUsed:       true,
			expectedOverrides:    []string{testOrganizationKeyConstant},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			searchDirectory := testInstance.TempDir()
			expectedFilePath := ""
			if len(testCase.fileOrganization) > 0 {
				expectedFilePath = writeConfigurationFile(testInstance, searchDirectory, testConfigurationFileConstant, fmt.Sprintf(testOrganizationFileTemplateConstant, testCase.fileOrganization))
			}

			loader := newLinkConfigurationLoader(searchDirectory)
			if len(testCase.environmentValue) > 0 {
				testInstance.Setenv(loader.EnvironmentVariableName(testOrganizationKeyConstant), testCase.environmentValue)
			}

			defaultValues := map[string]any{}
			if len(testCase.defaultOrganization) > 0 {
				defaultValues[testOrganizationKeyConstant] = testCase.defaultOrganization
			}

			var configuration linkConfigurationFixture
			metadata, loadError := loader.LoadConfiguration("", defaultValues, &configuration)
			require.NoError(testInstance, loadError)

			require.Equal(testInstance, testCase.expectedOrganization, configuration.Tools.Link.Mirror.Organization)
			require.Equal(testInstance, "https://lookup.example.com", configuration.Tools.Link.Mirror.LookupBaseURL)
			if testCase.expectFileUsed {
				require.Equal(testInstance, expectedFilePath, metadata.ConfigFileUsed)
			} else {
				require.Empty(testInstance, metadata.ConfigFileUsed)
			}
			require.Equal(testInstance, testCase.expectedOverrides, metadata.EnvironmentOverrides)
		})
	}
}

func TestConfigurationLoaderDecodesLinkValuesFromEnvironment(testInstance *testing.T) {
	loader := newLinkConfigurationLoader(testInstance.TempDir())
	require.Equal(testInstance, "TESTGHLINK_TOOLS_LINK_MIRROR_TIMEOUT", loader.EnvironmentVariableName(testTimeoutKeyConstant))

	testInstance.Setenv(loader.EnvironmentVariableName(testTimeoutKeyConstant), "1500ms")
	testInstance.Setenv(loader.EnvironmentVariableName(testClipboardKeyConstant), "false")

	var configuration linkConfigurationFixture
	metadata, loadError := loader.LoadConfiguration("", nil, &configuration)
	require.NoError(testInstance, loadError)

	require.Equal(testInstance, 1500*time.Millisecond, configuration.Tools.Link.Mirror.Timeout)
	require.False(testInstance, configuration.Tools.Link.Clipboard)
	require.Equal(testInstance, "standard", configuration.Tools.Link.MarkdownDialect)
	require.Equal(testInstance, []string{testClipboardKeyConstant, testTimeoutKeyConstant}, metadata.EnvironmentOverrides)
}

func TestConfigurationLoaderSearchesDirectoriesInOrder(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	userDirectory := testInstance.TempDir()
	userFilePath := writeConfigurationFile(testInstance, userDirectory, testConfigurationFileConstant, fmt.Sprintf(testOrganizationFileTemplateConstant, "from-home"))

	var homeOnly linkConfigurationFixture
	metadata, loadError := newLinkConfigurationLoader(workingDirectory, userDirectory).LoadConfiguration("", nil, &homeOnly)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "from-home", homeOnly.Tools.Link.Mirror.Organization)
	require.Equal(testInstance, userFilePath, metadata.ConfigFileUsed)

	workingFilePath := writeConfigurationFile(testInstance, workingDirectory, testConfigurationFileConstant, fmt.Sprintf(testOrganizationFileTemplateConstant, "from-working-directory"))

	var both linkConfigurationFixture
	metadata, loadError = newLinkConfigurationLoader(workingDirectory, userDirectory).LoadConfiguration("", nil, &both)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "from-working-directory", both.Tools.Link.Mirror.Organization)
	require.Equal(testInstance, workingFilePath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderExplicitFile(testInstance *testing.T) {
	configurationDirectory := testInstance.TempDir()
	jsonFilePath := writeConfigurationFile(testInstance, configurationDirectory, "ghlink.json", `{"tools":{"link":{"markdown_dialect":"hacknote","mirror":{"timeout":"2s"}}}}`)

	var configuration linkConfigurationFixture
	metadata, loadError := newLinkConfigurationLoader().LoadConfiguration(jsonFilePath, nil, &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, jsonFilePath, metadata.ConfigFileUsed)
	require.Equal(testInstance, "hacknote", configuration.Tools.Link.MarkdownDialect)
	require.Equal(testInstance, 2*time.Second, configuration.Tools.Link.Mirror.Timeout)
	require.True(testInstance, configuration.Tools.Link.Clipboard)

	_, missingError := newLinkConfigurationLoader().LoadConfiguration(filepath.Join(configurationDirectory, "absent.yaml"), nil, &configuration)
	require.Error(testInstance, missingError)
}

func TestConfigurationLoaderRejectsMalformedFiles(testInstance *testing.T) {
	configurationDirectory := testInstance.TempDir()
	writeConfigurationFile(testInstance, configurationDirectory, testConfigurationFileConstant, "tools: [unterminated\n")

	var configuration linkConfigurationFixture
	_, loadError := newLinkConfigurationLoader(configurationDirectory).LoadConfiguration("", nil, &configuration)
	require.Error(testInstance, loadError)

	brokenDefaults := utils.NewConfigurationLoader(utils.ConfigurationSource{
		FileName:         testConfigurationFileNameConstant,
		FileType:         testConfigurationFileTypeConstant,
		EmbeddedDefaults: []byte("tools: [unterminated\n"),
	})
	_, embeddedError := brokenDefaults.LoadConfiguration("", map[string]any{testDialectKeyConstant: "standard"}, &configuration)
	require.Error(testInstance, embeddedError)
}
