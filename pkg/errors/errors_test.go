package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := Wrap(CodeNetwork, cause, "fetch cart")

	assert.Equal(t, CodeNetwork, err.Code())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "NETWORK_ERROR: fetch cart", err.Error())
}

func TestAsUnwrapsNestedError(t *testing.T) {
	inner := New(CodeValidation, "quantity must be positive")
	wrapped := fmt.Errorf("engine: %w", inner)

	typed := As(wrapped)
	require.NotNil(t, typed)
	assert.Equal(t, CodeValidation, typed.Code())
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(fmt.Errorf("plain")))
	assert.Equal(t, CodeTimeout, CodeOf(New(CodeTimeout, "slow")))
}

func TestUserMessageFallsBackToPublicMessage(t *testing.T) {
	assert.Equal(t, "request timed out, please try again", UserMessage(New(CodeTimeout, "")))
	assert.Equal(t, "server said no", UserMessage(New(CodeRejected, "server said no")))
	assert.Equal(t, "something went wrong", UserMessage(fmt.Errorf("plain")))
}

func TestTransientMetadata(t *testing.T) {
	assert.True(t, MetadataFor(CodeNetwork).Transient)
	assert.True(t, MetadataFor(CodeTimeout).Transient)
	assert.False(t, MetadataFor(CodeValidation).Transient)
	assert.Equal(t, MetadataFor(CodeInternal), MetadataFor(Code("UNKNOWN")))
}
