package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, MetadataFor(CodeNotFound).HTTPStatus)
	assert.Equal(t, http.StatusConflict, MetadataFor(CodeConflict).HTTPStatus)
	assert.Equal(t, http.StatusConflict, MetadataFor(CodeStateConflict).HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, MetadataFor(CodeValidation).HTTPStatus)
	assert.True(t, MetadataFor(CodeDependency).Retryable)
	assert.False(t, MetadataFor(CodeConflict).Retryable)
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(CodeDependency, cause, "load assignment")

	require.NotNil(t, err)
	assert.Equal(t, CodeDependency, err.Code())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "DEPENDENCY_ERROR: load assignment", err.Error())
}

func TestAsUnwrapsThroughChain(t *testing.T) {
	inner := New(CodeStateConflict, "transition not allowed")
	wrapped := fmt.Errorf("handler: %w", inner)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeStateConflict, typed.Code())
	assert.Nil(t, As(fmt.Errorf("plain error")))
}

func TestIsCode(t *testing.T) {
	err := New(CodeConflict, "status changed underneath caller")
	assert.True(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(nil, CodeConflict))
}

func TestWithDetails(t *testing.T) {
	err := New(CodeStateConflict, "transition not allowed").
		WithDetails(map[string]any{"allowed_next": []string{"ACCEPTED", "REJECTED"}})
	require.NotNil(t, err.Details())
}
