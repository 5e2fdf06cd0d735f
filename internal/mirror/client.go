package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultLookupBaseURL is the endpoint that maps mirror paths to original repository URLs.
	DefaultLookupBaseURL = "https://eo5451bufu073qw.m.pipedream.net"

	pathSeparatorConstant             = "/"
	acceptHeaderNameConstant          = "Accept"
	acceptHeaderValueConstant         = "application/json"
	responseBodyLimitConstant         = 1 << 20
	lookupErrorTemplateConstant       = "mirror lookup for %s failed: %s"
	lookupCauseTemplateConstant       = "mirror lookup for %s failed: %s: %v"
	requestBuildMessageConstant       = "unable to build request"
	requestFailedMessageConstant      = "request failed"
	unexpectedStatusTemplateConstant  = "unexpected status %d"
	responseDecodeMessageConstant     = "unable to decode response"
	missingOriginalURLMessageConstant = "response has no original_url"
	baseURLRequiredMessageConstant    = "mirror lookup base url must be provided"
)

// ErrBaseURLRequired indicates the client was constructed without an endpoint.
var ErrBaseURLRequired = errors.New(baseURLRequiredMessageConstant)

// LookupError describes a failed mirror lookup.
type LookupError struct {
	MirrorPath string
	Message    string
	Cause      error
}

// Error describes the lookup failure.
func (lookupError LookupError) Error() string {
	if lookupError.Cause != nil {
		return fmt.Sprintf(lookupCauseTemplateConstant, lookupError.MirrorPath, lookupError.Message, lookupError.Cause)
	}
	return fmt.Sprintf(lookupErrorTemplateConstant, lookupError.MirrorPath, lookupError.Message)
}

// Unwrap exposes the underlying cause.
func (lookupError LookupError) Unwrap() error {
	return lookupError.Cause
}

type lookupResponse struct {
	OriginalURL string `json:"original_url"`
}

// ClientConfiguration configures the lookup client.
type ClientConfiguration struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client queries the mirror lookup service.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient constructs a Client. A zero timeout leaves the request bounded only by its context.
func NewClient(configuration ClientConfiguration) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(configuration.BaseURL), pathSeparatorConstant)
	if len(baseURL) == 0 {
		return nil, ErrBaseURLRequired
	}
	httpClient := configuration.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, timeout: configuration.Timeout, httpClient: httpClient}, nil
}

// LookupOriginalURL fetches the original URL for mirrorPath, e.g. "/org/repo".
func (client *Client) LookupOriginalURL(executionContext context.Context, mirrorPath string) (string, error) {
	if executionContext == nil {
		executionContext = context.Background()
	}
	if client.timeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, client.timeout)
		defer cancel()
	}

	if !strings.HasPrefix(mirrorPath, pathSeparatorConstant) {
		mirrorPath = pathSeparatorConstant + mirrorPath
	}

	request, requestError := http.NewRequestWithContext(executionContext, http.MethodGet, client.baseURL+mirrorPath, nil)
	if requestError != nil {
		return "", LookupError{MirrorPath: mirrorPath, Message: requestBuildMessageConstant, Cause: requestError}
	}
	request.Header.Set(acceptHeaderNameConstant, acceptHeaderValueConstant)

	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		return "", LookupError{MirrorPath: mirrorPath, Message: requestFailedMessageConstant, Cause: responseError}
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return "", LookupError{MirrorPath: mirrorPath, Message: fmt.Sprintf(unexpectedStatusTemplateConstant, response.StatusCode)}
	}

	var decoded lookupResponse
	if decodeError := json.NewDecoder(io.LimitReader(response.Body, responseBodyLimitConstant)).Decode(&decoded); decodeError != nil {
		return "", LookupError{MirrorPath: mirrorPath, Message: responseDecodeMessageConstant, Cause: decodeError}
	}

	originalURL := strings.TrimSpace(decoded.OriginalURL)
	if len(originalURL) == 0 {
		return "", LookupError{MirrorPath: mirrorPath, Message: missingOriginalURLMessageConstant}
	}

	return originalURL, nil
}
