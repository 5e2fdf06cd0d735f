package gitrepo

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	formatconfig "github.com/go-git/go-git/v5/plumbing/format/config"
)

const (
	configFileNameConstant              = "config"
	remoteSectionNameConstant           = "remote"
	branchSectionNameConstant           = "branch"
	urlOptionKeyConstant                = "url"
	remoteOptionKeyConstant             = "remote"
	mergeOptionKeyConstant              = "merge"
	configReadErrorTemplateConstant     = "unable to read repository configuration %s: %w"
	configDecodeErrorTemplateConstant   = "unable to parse repository configuration %s: %w"
	firstRemoteNoticeTemplateConstant   = "No branch info found, using first remote %q"
	branchMergeStrategyNameConstant     = "branch-merge"
	firstRemoteStrategyNameConstant     = "first-remote"
	legacySubsectionReplacementConstant = `${indent}[${section} "${subsection}"]${trailer}`
)

// legacySubsectionHeaderPattern matches the deprecated [section.subsection] header form git still accepts.
var legacySubsectionHeaderPattern = regexp.MustCompile(`(?m)^(?P<indent>[ \t]*)\[(?P<section>[A-Za-z0-9-]+)\.(?P<subsection>[^\]\s"]+)\](?P<trailer>[ \t]*(?:[#;].*)?)$`)

func rewriteLegacySubsectionHeaders(content []byte) []byte {
	return legacySubsectionHeaderPattern.ReplaceAll(content, []byte(legacySubsectionReplacementConstant))
}

// RemoteSection captures a `remote "<name>"` configuration section.
type RemoteSection struct {
	Name   string
	URL    string
	HasURL bool
}

// BranchSection captures a `branch "<name>"` configuration section.
type BranchSection struct {
	Name   string
	Remote string
	Merge  plumbing.ReferenceName
}

// RepositoryConfiguration lists remote and branch sections in declaration order.
type RepositoryConfiguration struct {
	Remotes  []RemoteSection
	Branches []BranchSection
}

// Remote returns the section describing the named remote.
func (configuration RepositoryConfiguration) Remote(name string) (RemoteSection, bool) {
	for _, remote := range configuration.Remotes {
		if remote.Name == name {
			return remote, true
		}
	}
	return RemoteSection{}, false
}

// DecodeRepositoryConfiguration parses an INI-style repository configuration file. Legacy dotted
// section headers such as [branch.main] are read as [branch "main"].
func DecodeRepositoryConfiguration(reader io.Reader) (RepositoryConfiguration, error) {
	content, readError := io.ReadAll(reader)
	if readError != nil {
		return RepositoryConfiguration{}, readError
	}

	decodedConfiguration := formatconfig.New()
	decoder := formatconfig.NewDecoder(bytes.NewReader(rewriteLegacySubsectionHeaders(content)))
	if decodeError := decoder.Decode(decodedConfiguration); decodeError != nil {
		return RepositoryConfiguration{}, decodeError
	}

	configuration := RepositoryConfiguration{}
	for _, section := range decodedConfiguration.Sections {
		switch {
		case section.IsName(remoteSectionNameConstant):
			for _, subsection := range section.Subsections {
				configuration.Remotes = append(configuration.Remotes, RemoteSection{
					Name:   subsection.Name,
					URL:    subsection.Options.Get(urlOptionKeyConstant),
					HasURL: subsection.Options.Has(urlOptionKeyConstant),
				})
			}
		case section.IsName(branchSectionNameConstant):
			for _, subsection := range section.Subsections {
				configuration.Branches = append(configuration.Branches, BranchSection{
					Name:   subsection.Name,
					Remote: subsection.Options.Get(remoteOptionKeyConstant),
					Merge:  plumbing.ReferenceName(subsection.Options.Get(mergeOptionKeyConstant)),
				})
			}
		}
	}

	return configuration, nil
}

// RemoteSelection reports the remote chosen for a checkout and how it was chosen.
type RemoteSelection struct {
	Name     string
	URL      string
	Strategy string
	// Notice is a non-fatal message for the user, set when a fallback was used.
	Notice string
}

// remoteCandidate names the remote a strategy picked and, when known, the branch section that named it.
type remoteCandidate struct {
	remoteName string
	branchName string
}

type remoteNameStrategy struct {
	name       string
	selectName func(configuration RepositoryConfiguration, reference ResolvedRef) (remoteCandidate, bool)
	notice     func(remoteName string) string
}

// RemoteResolver selects the remote URL tracked by the checked-out branch.
type RemoteResolver struct {
	fileSystem FileSystem
	strategies []remoteNameStrategy
}

// NewRemoteResolver constructs a RemoteResolver reading through the provided filesystem.
func NewRemoteResolver(fileSystem FileSystem) *RemoteResolver {
	return &RemoteResolver{
		fileSystem: resolveFileSystem(fileSystem),
		strategies: []remoteNameStrategy{
			{name: branchMergeStrategyNameConstant, selectName: selectBranchMergeRemote},
			{name: firstRemoteStrategyNameConstant, selectName: selectFirstRemote, notice: firstRemoteNotice},
		},
	}
}

// Resolve reads the repository configuration and returns the URL of the remote tracked by reference.
func (resolver *RemoteResolver) Resolve(location RepositoryLocation, reference ResolvedRef) (RemoteSelection, error) {
	configurationPath := filepath.Join(location.CommonMetadataPath, configFileNameConstant)
	configurationContent, readError := resolver.fileSystem.ReadFile(configurationPath)
	if readError != nil {
		return RemoteSelection{}, fmt.Errorf(configReadErrorTemplateConstant, configurationPath, readError)
	}

	configuration, decodeError := DecodeRepositoryConfiguration(bytes.NewReader(configurationContent))
	if decodeError != nil {
		return RemoteSelection{}, fmt.Errorf(configDecodeErrorTemplateConstant, configurationPath, decodeError)
	}

	return resolver.selectRemote(configuration, reference)
}

func (resolver *RemoteResolver) selectRemote(configuration RepositoryConfiguration, reference ResolvedRef) (RemoteSelection, error) {
	for _, strategy := range resolver.strategies {
		candidate, selected := strategy.selectName(configuration, reference)
		if !selected {
			continue
		}
		remoteName := candidate.remoteName
		if len(remoteName) == 0 {
			return RemoteSelection{}, BranchRemoteMissingError{Branch: candidate.branchName, Merge: reference.SymbolicName.String()}
		}

		remote, remoteExists := configuration.Remote(remoteName)
		if !remoteExists {
			return RemoteSelection{}, RemoteNotFoundError{Name: remoteName}
		}
		if !remote.HasURL || len(remote.URL) == 0 {
			return RemoteSelection{}, NoURLConfiguredError{Name: remoteName}
		}

		selection := RemoteSelection{Name: remoteName, URL: remote.URL, Strategy: strategy.name}
		if strategy.notice != nil {
			selection.Notice = strategy.notice(remoteName)
		}
		return selection, nil
	}

	return RemoteSelection{}, RemoteNotFoundError{}
}

func selectBranchMergeRemote(configuration RepositoryConfiguration, reference ResolvedRef) (remoteCandidate, bool) {
	if len(reference.SymbolicName) == 0 {
		return remoteCandidate{}, false
	}
	for _, branch := range configuration.Branches {
		if branch.Merge == reference.SymbolicName {
			return remoteCandidate{remoteName: strings.TrimSpace(branch.Remote), branchName: branch.Name}, true
		}
	}
	return remoteCandidate{}, false
}

func selectFirstRemote(configuration RepositoryConfiguration, _ ResolvedRef) (remoteCandidate, bool) {
	if len(configuration.Remotes) == 0 {
		return remoteCandidate{}, false
	}
	return remoteCandidate{remoteName: configuration.Remotes[0].Name}, true
}

func firstRemoteNotice(remoteName string) string {
	return fmt.Sprintf(firstRemoteNoticeTemplateConstant, remoteName)
}
