package sitemd_test

import (
	"testing"

	"github.com/sitemd/sitemd"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := sitemd.Errorf(sitemd.EINVALID, "seed URL %q required", "test")

	assert.Equal(t, sitemd.EINVALID, sitemd.ErrorCode(err))
	assert.Equal(t, "seed URL \"test\" required", sitemd.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitemd.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sitemd.ErrorMessage(nil))
}
