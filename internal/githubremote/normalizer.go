package githubremote

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/ghlink/internal/mirror"
)

const (
	// DefaultMirrorOrganization is the reserved path namespace of internally proxied mirrors.
	DefaultMirrorOrganization = "watchpug"

	githubHTTPSPrefixConstant          = "https://github.com/"
	githubHostConstant                 = "github.com"
	mirrorPatternTemplateConstant      = `^\w+://[^/]+(/%s/.+)$`
	fetchingOriginalURLTitleConstant   = "Fetching original url ..."
	unrecognizedRemoteTemplateConstant = "the remote %q does not look like it is hosted at GitHub"
	githubHTTPSStrategyNameConstant    = "github-https"
	mirrorStrategyNameConstant         = "mirror"
	githubSchemeStrategyNameConstant   = "github-scheme"
	prefixStripStrategyNameConstant    = "prefix-strip"
	normalizedMessageConstant          = "remote normalized"
	mirrorCacheHitMessageConstant      = "mirror url served from cache"
	logFieldRawURLConstant             = "raw_url"
	logFieldNormalizedURLConstant      = "normalized_url"
	logFieldStrategyConstant           = "strategy"
	logFieldMirrorPathConstant         = "mirror_path"
)

// UnrecognizedRemoteFormatError indicates no normalization strategy accepted the remote URL.
type UnrecognizedRemoteFormatError struct {
	RemoteURL string
}

// Error describes the unrecognized remote.
func (formatError UnrecognizedRemoteFormatError) Error() string {
	return fmt.Sprintf(unrecognizedRemoteTemplateConstant, formatError.RemoteURL)
}

// OriginalURLLookup recovers the upstream URL of a mirror path such as "/watchpug/widgets".
type OriginalURLLookup interface {
	LookupOriginalURL(executionContext context.Context, mirrorPath string) (string, error)
}

// ProgressReporter shows a non-cancellable progress indicator; the returned function ends it.
type ProgressReporter interface {
	Begin(title string) func()
}

// NormalizerDependencies enumerates collaborators of the Normalizer.
type NormalizerDependencies struct {
	MirrorOrganization string
	Lookup             OriginalURLLookup
	Cache              *mirror.Cache
	Progress           ProgressReporter
	Logger             *zap.Logger
}

type normalizationStrategy struct {
	name      string
	normalize func(executionContext context.Context, remoteURL string) (string, bool, error)
}

// Normalizer converts remote URLs into canonical public GitHub repository URLs.
type Normalizer struct {
	strategies    []normalizationStrategy
	mirrorPattern *regexp.Regexp
	lookup        OriginalURLLookup
	cache         *mirror.Cache
	progress      ProgressReporter
	logger        *zap.Logger
}

// NewNormalizer constructs a Normalizer. Without a Lookup the mirror strategy never matches.
func NewNormalizer(dependencies NormalizerDependencies) *Normalizer {
	organization := strings.Trim(strings.TrimSpace(dependencies.MirrorOrganization), pathSeparatorConstant)
	if len(organization) == 0 {
		organization = DefaultMirrorOrganization
	}

	cache := dependencies.Cache
	if cache == nil {
		cache = mirror.NewCache(nil)
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	normalizer := &Normalizer{
		mirrorPattern: regexp.MustCompile(fmt.Sprintf(mirrorPatternTemplateConstant, regexp.QuoteMeta(organization))),
		lookup:        dependencies.Lookup,
		cache:         cache,
		progress:      dependencies.Progress,
		logger:        logger,
	}
	normalizer.strategies = []normalizationStrategy{
		{name: githubHTTPSStrategyNameConstant, normalize: normalizeGitHubHTTPS},
		{name: mirrorStrategyNameConstant, normalize: normalizer.normalizeMirror},
		{name: githubSchemeStrategyNameConstant, normalize: normalizeGitHubScheme},
		{name: prefixStripStrategyNameConstant, normalize: normalizeByPrefixStrip},
	}
	return normalizer
}

// Normalize returns the canonical https://github.com/<owner>/<repo> URL for remoteURL.
func (normalizer *Normalizer) Normalize(executionContext context.Context, remoteURL string) (string, error) {
	trimmedURL := strings.TrimSuffix(strings.TrimSpace(remoteURL), gitSuffixConstant)

	for _, strategy := range normalizer.strategies {
		normalizedURL, matched, strategyError := strategy.normalize(executionContext, trimmedURL)
		if strategyError != nil {
			return "", strategyError
		}
		if !matched {
			continue
		}

		canonicalURL := canonicalize(normalizedURL)
		normalizer.logger.Debug(
			normalizedMessageConstant,
			zap.String(logFieldRawURLConstant, remoteURL),
			zap.String(logFieldNormalizedURLConstant, canonicalURL),
			zap.String(logFieldStrategyConstant, strategy.name),
		)
		return canonicalURL, nil
	}

	return "", UnrecognizedRemoteFormatError{RemoteURL: remoteURL}
}

func normalizeGitHubHTTPS(_ context.Context, remoteURL string) (string, bool, error) {
	if !strings.HasPrefix(remoteURL, githubHTTPSPrefixConstant) {
		return "", false, nil
	}
	return remoteURL, true, nil
}

func (normalizer *Normalizer) normalizeMirror(executionContext context.Context, remoteURL string) (string, bool, error) {
	if normalizer.lookup == nil {
		return "", false, nil
	}
	matches := normalizer.mirrorPattern.FindStringSubmatch(remoteURL)
	if len(matches) < 2 || len(matches[1]) == 0 {
		return "", false, nil
	}
	mirrorPath := matches[1]

	if cachedURL, cached := normalizer.cache.Get(mirrorPath); cached {
		normalizer.logger.Debug(mirrorCacheHitMessageConstant, zap.String(logFieldMirrorPathConstant, mirrorPath))
		return cachedURL, true, nil
	}

	endProgress := normalizer.beginProgress()
	originalURL, lookupError := normalizer.lookup.LookupOriginalURL(executionContext, mirrorPath)
	endProgress()
	if lookupError != nil {
		return "", false, lookupError
	}

	normalizer.cache.Put(mirrorPath, originalURL)
	return originalURL, true, nil
}

func (normalizer *Normalizer) beginProgress() func() {
	if normalizer.progress == nil {
		return func() {}
	}
	endProgress := normalizer.progress.Begin(fetchingOriginalURLTitleConstant)
	if endProgress == nil {
		return func() {}
	}
	return endProgress
}

func normalizeGitHubScheme(_ context.Context, remoteURL string) (string, bool, error) {
	if !strings.Contains(remoteURL, schemeSeparatorConstant) {
		return "", false, nil
	}
	parsedRemote, parseError := ParseRemoteURL(remoteURL)
	if parseError != nil || parsedRemote.Host != githubHostConstant {
		return "", false, nil
	}
	return githubHTTPSPrefixConstant + parsedRemote.Owner + pathSeparatorConstant + parsedRemote.Repository, true, nil
}

// normalizeByPrefixStrip treats scp-like remotes (including ssh host aliases) as GitHub paths.
func normalizeByPrefixStrip(_ context.Context, remoteURL string) (string, bool, error) {
	if strings.Contains(remoteURL, schemeSeparatorConstant) {
		return "", false, nil
	}
	delimiterIndex := strings.Index(remoteURL, scpPathDelimiterConstant)
	if delimiterIndex == -1 {
		return "", false, nil
	}
	repositoryPath := strings.TrimLeft(remoteURL[delimiterIndex+1:], pathSeparatorConstant)
	if len(repositoryPath) == 0 {
		return "", false, nil
	}
	return githubHTTPSPrefixConstant + repositoryPath, true, nil
}
