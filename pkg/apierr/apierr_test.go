package apierr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mzigoego/mzigo/pkg/apierr"
)

func TestSessionExpired_SentinelMatchesThroughWrapping(t *testing.T) {
	err := apierr.NewSessionExpired()
	assert.True(t, apierr.IsSessionExpired(err))
	assert.True(t, errors.Is(err, apierr.ErrSessionExpired))

	wrapped := fmt.Errorf("bootstrap: %w", err)
	assert.True(t, apierr.IsSessionExpired(wrapped))
}

func TestIsSessionExpired_FalseForOtherErrors(t *testing.T) {
	assert.False(t, apierr.IsSessionExpired(errors.New("session expired, please login again")),
		"matching is by identity, not message text")
	assert.False(t, apierr.IsSessionExpired(nil))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, apierr.Transport, apierr.TypeOf(apierr.New(apierr.Transport, "dial tcp: refused", nil)))
	assert.Equal(t, apierr.AuthExpired, apierr.TypeOf(apierr.NewSessionExpired()))
	assert.Equal(t, apierr.Validation, apierr.TypeOf(apierr.NewValidation("bad input", nil)))
	assert.Equal(t, apierr.Unknown, apierr.TypeOf(errors.New("plain")))

	wrapped := fmt.Errorf("login: %w", apierr.NewValidation("bad input", nil))
	assert.Equal(t, apierr.Validation, apierr.TypeOf(wrapped))
}

func TestFieldsOf(t *testing.T) {
	fields := map[string][]string{"email": {"already taken"}}
	err := apierr.NewValidation("Request failed", fields)
	assert.Equal(t, fields, apierr.FieldsOf(err))
	assert.Nil(t, apierr.FieldsOf(errors.New("plain")))
}

func TestError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := apierr.New(apierr.Transport, "Network error", cause)
	assert.Equal(t, "Network error", err.Error())
	assert.ErrorIs(t, err, cause)
}
