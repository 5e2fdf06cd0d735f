package githubremote

import (
	"fmt"
	"net"
	"strings"
)

const (
	schemeSeparatorConstant             = "://"
	sshUserDelimiterConstant            = "@"
	scpPathDelimiterConstant            = ":"
	pathSeparatorConstant               = "/"
	gitSuffixConstant                   = ".git"
	remoteURLParseErrorTemplateConstant = "%s: %s"
	invalidRemoteURLMessageConstant     = "invalid remote url"
	missingOwnerMessageConstant         = "remote url has no owner/repository path"
	requiredValueMessageConstant        = "value required"
)

// RemoteURL represents a structured git remote URL.
type RemoteURL struct {
	Scheme     string
	Host       string
	Owner      string
	Repository string
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLParseErrorTemplateConstant, parseError.Input, parseError.Message)
}

// ParseRemoteURL converts scheme URLs (ssh, git, http, https) and scp-like
// remotes into a structured representation. Ports are dropped from the host.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	schemeIndex := strings.Index(trimmedRemote, schemeSeparatorConstant)
	if schemeIndex > 0 {
		return parseSchemeRemote(trimmedRemote[:schemeIndex], trimmedRemote[schemeIndex+len(schemeSeparatorConstant):])
	}

	return parseSCPRemote(trimmedRemote)
}

func parseSchemeRemote(scheme string, remainder string) (RemoteURL, error) {
	slashIndex := strings.Index(remainder, pathSeparatorConstant)
	if slashIndex == -1 {
		return RemoteURL{}, RemoteURLParseError{Input: remainder, Message: missingOwnerMessageConstant}
	}
	authority := remainder[:slashIndex]
	if userIndex := strings.LastIndex(authority, sshUserDelimiterConstant); userIndex != -1 {
		authority = authority[userIndex+1:]
	}
	owner, repository, parseError := splitOwnerAndRepository(remainder[slashIndex+1:])
	if parseError != nil {
		return RemoteURL{}, parseError
	}
	return RemoteURL{Scheme: strings.ToLower(scheme), Host: stripPort(authority), Owner: owner, Repository: repository}, nil
}

func parseSCPRemote(remote string) (RemoteURL, error) {
	pathSplitIndex := strings.Index(remote, scpPathDelimiterConstant)
	if pathSplitIndex == -1 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	host := remote[:pathSplitIndex]
	if userIndex := strings.LastIndex(host, sshUserDelimiterConstant); userIndex != -1 {
		host = host[userIndex+1:]
	}
	owner, repository, parseError := splitOwnerAndRepository(remote[pathSplitIndex+1:])
	if parseError != nil {
		return RemoteURL{}, parseError
	}
	return RemoteURL{Host: strings.ToLower(host), Owner: owner, Repository: repository}, nil
}

func stripPort(authority string) string {
	if host, _, splitError := net.SplitHostPort(authority); splitError == nil {
		return strings.ToLower(host)
	}
	return strings.ToLower(authority)
}

func splitOwnerAndRepository(path string) (string, string, error) {
	segments := strings.Split(strings.Trim(path, pathSeparatorConstant), pathSeparatorConstant)
	if len(segments) < 2 || len(segments[0]) == 0 {
		return "", "", RemoteURLParseError{Input: path, Message: missingOwnerMessageConstant}
	}
	repository := strings.TrimSuffix(strings.Join(segments[1:], pathSeparatorConstant), gitSuffixConstant)
	if len(repository) == 0 {
		return "", "", RemoteURLParseError{Input: path, Message: invalidRemoteURLMessageConstant}
	}
	return segments[0], repository, nil
}

// canonicalize removes trailing slashes and .git suffixes from a repository URL.
func canonicalize(repositoryURL string) string {
	canonical := strings.TrimSpace(repositoryURL)
	for {
		trimmed := strings.TrimSuffix(strings.TrimSuffix(canonical, pathSeparatorConstant), gitSuffixConstant)
		if trimmed == canonical {
			return canonical
		}
		canonical = trimmed
	}
}
