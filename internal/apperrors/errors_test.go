package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := New(KindNotFound, "NOT_FOUND", "block 12 not found")
	assert.Equal(t, "[NOT_FOUND] block 12 not found", err.Error())

	cause := errors.New("connection refused")
	wrapped := Unavailable(cause, "GET %s", "/blocks").WithSource("mempool")
	assert.Equal(t, "[mempool: UPSTREAM_UNAVAILABLE] GET /blocks: connection refused", wrapped.Error())
	assert.Equal(t, cause, wrapped.Unwrap())
}

func TestError_Is(t *testing.T) {
	err := NotFound("tx %s", "abc")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnavailable))

	wrapped := fmt.Errorf("provider: %w", Malformed("empty list"))
	assert.True(t, errors.Is(wrapped, ErrUnavailable))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("x: %w", NotFound("y"))))
	assert.Equal(t, KindUnavailable, KindOf(Unavailable(nil, "down")))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKind_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindInvalidNetwork, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.HTTPStatus())
		})
	}
}

func TestWithOpCopies(t *testing.T) {
	base := NotFound("missing")
	tagged := base.WithOp("wallet")
	assert.Equal(t, "wallet", tagged.Op)
	assert.Empty(t, base.Op)
}
