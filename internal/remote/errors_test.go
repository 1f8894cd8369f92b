package remote_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonesrussell/spacesync/internal/remote"
)

func TestClassifyStatus(t *testing.T) {
	testCases := []struct {
		status int
		want   remote.Kind
	}{
		{status: 401, want: remote.KindAuthorization},
		{status: 404, want: remote.KindNotFound},
		{status: 400, want: remote.KindUnclassified},
		{status: 429, want: remote.KindUnclassified},
		{status: 500, want: remote.KindUnclassified},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("HTTP %d", tc.status), func(t *testing.T) {
			err := remote.ClassifyStatus(tc.status, "https://example.test/entries")
			assert.Equal(t, tc.want, err.Kind)
			assert.Equal(t, tc.status, err.StatusCode)
		})
	}
}

func TestClassifyTransport(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := remote.ClassifyTransport(cause, "https://example.test/locales")

	assert.Equal(t, remote.KindConnectivity, err.Kind)
	assert.ErrorIs(t, err, cause)
}

func TestKindHelpersSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("fetch entries: %w", remote.ClassifyStatus(401, "https://x"))

	assert.True(t, remote.IsAuthorization(wrapped))
	assert.False(t, remote.IsNotFound(wrapped))
	assert.False(t, remote.IsConnectivity(wrapped))
	assert.Equal(t, remote.KindAuthorization, remote.ErrorKind(wrapped))
}

func TestErrorKindOfPlainError(t *testing.T) {
	assert.Equal(t, remote.KindUnclassified, remote.ErrorKind(errors.New("boom")))
}

func TestAPIErrorMessage(t *testing.T) {
	withStatus := remote.ClassifyStatus(404, "https://example.test/spaces/abc")
	assert.Contains(t, withStatus.Error(), "404")
	assert.Contains(t, withStatus.Error(), "https://example.test/spaces/abc")

	transport := remote.ClassifyTransport(errors.New("no route to host"), "https://example.test")
	assert.Contains(t, transport.Error(), "no route to host")
}
