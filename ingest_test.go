package ingest_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/ingest"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := ingest.Errorf(ingest.ENOTFOUND, "page %q not found", "test")

	assert.Equal(t, ingest.ENOTFOUND, ingest.ErrorCode(err))
	assert.Equal(t, "page \"test\" not found", ingest.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ingest.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ingest.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetch: %w", ingest.Errorf(ingest.EFORBIDDEN, "Access denied by website"))

	assert.Equal(t, ingest.EFORBIDDEN, ingest.ErrorCode(err))
	assert.Equal(t, "Access denied by website", ingest.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, ingest.EINTERNAL, ingest.ErrorCode(err))
	assert.Equal(t, "Internal error.", ingest.ErrorMessage(err))
}

func TestIsUserError(t *testing.T) {
	t.Parallel()

	for _, code := range []string{
		ingest.EINVALID,
		ingest.ECAPTIONSDISABLED,
		ingest.ENOTRANSCRIPT,
		ingest.ERATELIMITED,
		ingest.ETRANSCRIPT,
		ingest.EFORBIDDEN,
		ingest.ENOTFOUND,
		ingest.EFETCH,
		ingest.ENOTTEXTUAL,
		ingest.EINSUFFICIENT,
	} {
		assert.True(t, ingest.IsUserError(ingest.Errorf(code, "x")), code)
	}

	assert.False(t, ingest.IsUserError(nil))
	assert.False(t, ingest.IsUserError(errors.New("boom")))
	assert.False(t, ingest.IsUserError(ingest.Errorf(ingest.EUNAUTHORIZED, "x")))
	assert.False(t, ingest.IsUserError(ingest.Errorf(ingest.EINTERNAL, "x")))
}

func TestNormalizeSpace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", ingest.NormalizeSpace("  a \n\t b   c \r\n"))
	assert.Empty(t, ingest.NormalizeSpace(" \n\t "))
}
