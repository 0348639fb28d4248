package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	require.Equal(t, CodePermissionDenied, CodeOf(PermissionDenied("nope")))
	require.Equal(t, CodeInternal, CodeOf(errors.New("some db error")))

	wrapped := fmt.Errorf("handler: %w", NotFound("vendor not found"))
	require.Equal(t, CodeNotFound, CodeOf(wrapped))
}

func TestMessageOf_HidesUncodedErrors(t *testing.T) {
	require.Equal(t, "vendor not found", MessageOf(NotFound("vendor not found")))
	require.Equal(t, "something went wrong", MessageOf(errors.New("dial tcp: connection refused")))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(cause, CodeAlreadyExists, "email already registered")

	require.ErrorIs(t, err, cause)
	require.Equal(t, CodeAlreadyExists, CodeOf(err))
	require.Equal(t, "email already registered", MessageOf(err))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeUnauthenticated:  http.StatusUnauthorized,
		CodePermissionDenied: http.StatusForbidden,
		CodeInvalidArgument:  http.StatusBadRequest,
		CodeAlreadyExists:    http.StatusConflict,
		CodeNotFound:         http.StatusNotFound,
		CodeInternal:         http.StatusInternalServerError,
	}

	for code, want := range cases {
		require.Equal(t, want, HTTPStatus(code), string(code))
	}

	require.Equal(t, http.StatusInternalServerError, HTTPStatus(Code("unmapped")))
}
