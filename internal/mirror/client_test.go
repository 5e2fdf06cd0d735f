package mirror_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/ghlink/internal/mirror"
)

const (
	testMirrorPathConstant        = "/watchpug/widgets"
	testOriginalURLConstant       = "https://github.com/acme/widgets"
	mirrorSubtestTemplateConstant = "%d_%s"
)

func TestClientLookupOriginalURL(testInstance *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		body          string
		expectedURL   string
		expectedError bool
	}{
		{name: "success", statusCode: http.StatusOK, body: `{"original_url":"` + testOriginalURLConstant + `"}`, expectedURL: testOriginalURLConstant},
		{name: "missing_field", statusCode: http.StatusOK, body: `{"other":"value"}`, expectedError: true},
		{name: "server_error", statusCode: http.StatusBadGateway, body: `{}`, expectedError: true},
		{name: "invalid_json", statusCode: http.StatusOK, body: `not json`, expectedError: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(mirrorSubtestTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			var requestedPath atomic.Value
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				requestedPath.Store(request.URL.Path)
				writer.WriteHeader(testCase.statusCode)
				_, _ = writer.Write([]byte(testCase.body))
			}))
			defer server.Close()

			client, clientError := mirror.NewClient(mirror.ClientConfiguration{BaseURL: server.URL + "/", HTTPClient: server.Client()})
			require.NoError(testInstance, clientError)

			originalURL, lookupError := client.LookupOriginalURL(context.Background(), testMirrorPathConstant)
			require.Equal(testInstance, testMirrorPathConstant, requestedPath.Load())
			if testCase.expectedError {
				require.Error(testInstance, lookupError)
				var typedError mirror.LookupError
				require.True(testInstance, errors.As(lookupError, &typedError))
				require.Equal(testInstance, testMirrorPathConstant, typedError.MirrorPath)
				return
			}
			require.NoError(testInstance, lookupError)
			require.Equal(testInstance, testCase.expectedURL, originalURL)
		})
	}
}

func TestClientHonoursTimeout(testInstance *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		select {
		case <-release:
		case <-request.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client, clientError := mirror.NewClient(mirror.ClientConfiguration{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	require.NoError(testInstance, clientError)

	_, lookupError := client.LookupOriginalURL(context.Background(), "watchpug/widgets")
	require.Error(testInstance, lookupError)
	require.True(testInstance, errors.Is(lookupError, context.DeadlineExceeded))
}

func TestNewClientRequiresBaseURL(testInstance *testing.T) {
	_, clientError := mirror.NewClient(mirror.ClientConfiguration{BaseURL: "  "})
	require.ErrorIs(testInstance, clientError, mirror.ErrBaseURLRequired)
}

func TestCacheRoundTrip(testInstance *testing.T) {
	cache := mirror.NewCache(nil)
	_, found := cache.Get(testMirrorPathConstant)
	require.False(testInstance, found)

	cache.Put(testMirrorPathConstant, testOriginalURLConstant)
	cachedURL, found := cache.Get(testMirrorPathConstant)
	require.True(testInstance, found)
	require.Equal(testInstance, testOriginalURLConstant, cachedURL)

	cache.Put(testMirrorPathConstant, testOriginalURLConstant)
	cachedURL, found = cache.Get(testMirrorPathConstant)
	require.True(testInstance, found)
	require.Equal(testInstance, testOriginalURLConstant, cachedURL)
}
