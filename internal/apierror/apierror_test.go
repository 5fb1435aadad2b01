package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("bad input"), http.StatusUnprocessableEntity},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("duplicate"), http.StatusConflict},
		{Internal(errors.New("db down")), http.StatusInternalServerError},
	}
	for _, c := range cases {
		require.Equal(t, c.status, c.err.Status())
	}
}

func TestInternalHidesCause(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"))
	require.Equal(t, "internal server error", err.Detail)
}

func TestFromPassesThroughAndWraps(t *testing.T) {
	orig := NotFound("staff gone")
	require.Same(t, orig, From(orig))
	require.Same(t, orig, From(fmt.Errorf("lookup: %w", orig)))

	wrapped := From(errors.New("anything else"))
	require.Equal(t, KindInternal, wrapped.Kind)
}

func TestIsKind(t *testing.T) {
	err := Conflict("code taken")
	require.True(t, IsKind(err, KindConflict))
	require.False(t, IsKind(err, KindNotFound))
	require.False(t, IsKind(errors.New("plain"), KindConflict))
}
