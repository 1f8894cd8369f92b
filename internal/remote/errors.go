package remote

import (
	"errors"
	"fmt"
)

// Kind classifies a remote API failure. The pipeline maps kinds to the
// diagnostics it emits; every kind except the degraded content-type path is
// fatal for a run.
type Kind string

const (
	// KindConnectivity marks transport-level failures (DNS, refused
	// connection, timeout): the host is unreachable.
	KindConnectivity Kind = "connectivity"
	// KindNotFound marks HTTP 404: misconfigured host or space identifier.
	KindNotFound Kind = "not_found"
	// KindAuthorization marks HTTP 401: bad access token or environment.
	KindAuthorization Kind = "authorization"
	// KindUnclassified covers every other remote failure.
	KindUnclassified Kind = "unclassified"
)

// HTTP status codes classified specially.
const (
	statusUnauthorized = 401
	statusNotFound     = 404
)

// APIError is a remote failure classified once at the point of catch.
type APIError struct {
	Kind       Kind
	StatusCode int
	URL        string
	Cause      error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("remote %s: HTTP %d for %s", e.Kind, e.StatusCode, e.URL)
	}
	return fmt.Sprintf("remote %s: %s for %s", e.Kind, e.Cause, e.URL)
}

func (e *APIError) Unwrap() error { return e.Cause }

// ClassifyStatus creates an APIError from a non-OK HTTP status.
func ClassifyStatus(statusCode int, url string) *APIError {
	cause := fmt.Errorf("HTTP %d", statusCode)

	switch statusCode {
	case statusUnauthorized:
		return &APIError{Kind: KindAuthorization, StatusCode: statusCode, URL: url, Cause: cause}
	case statusNotFound:
		return &APIError{Kind: KindNotFound, StatusCode: statusCode, URL: url, Cause: cause}
	default:
		return &APIError{Kind: KindUnclassified, StatusCode: statusCode, URL: url, Cause: cause}
	}
}

// ClassifyTransport creates an APIError for a failure below the HTTP layer.
func ClassifyTransport(cause error, url string) *APIError {
	return &APIError{Kind: KindConnectivity, URL: url, Cause: cause}
}

// ErrorKind extracts the classification of err, or KindUnclassified when err
// is not an APIError.
func ErrorKind(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnclassified
}

// IsAuthorization reports whether err is a classified 401-equivalent.
func IsAuthorization(err error) bool { return ErrorKind(err) == KindAuthorization }

// IsNotFound reports whether err is a classified 404-equivalent.
func IsNotFound(err error) bool { return ErrorKind(err) == KindNotFound }

// IsConnectivity reports whether err is a classified transport failure.
func IsConnectivity(err error) bool { return ErrorKind(err) == KindConnectivity }
