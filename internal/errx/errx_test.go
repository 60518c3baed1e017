package errx

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapNil(t *testing.T) {
	assert.NoError(t, WrapRedis(nil))
	assert.NoError(t, WrapDatabase(nil))
	assert.NoError(t, WrapRemote(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapRemote(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
	assert.Equal(t, RemoteErrorMessage, MessageOf(err))
	assert.Equal(t, "answer service unavailable: connection refused", err.Error())
}

func TestStatusOfPlainError(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
	assert.Equal(t, SystemErrorMessage, MessageOf(err))
}

func TestStatusOfWrappedChain(t *testing.T) {
	err := WrapDatabase(errors.New("no such table"))
	outer := errors.Join(errors.New("saving feedback"), err)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(outer))
	assert.Equal(t, DatabaseErrorMessage, MessageOf(outer))

	bad := New(nil, http.StatusBadRequest, "message is required")
	assert.Equal(t, "message is required", bad.Error())
	assert.Equal(t, http.StatusBadRequest, StatusOf(bad))
}
