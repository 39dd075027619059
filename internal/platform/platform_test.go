package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSupport(t *testing.T) {
	assert.Equal(t, SupportedOS(runtime.GOOS), GetOS())

	if runtime.GOOS == "darwin" {
		assert.True(t, HasSMC())
		assert.NoError(t, ValidateSupport())
	} else {
		assert.False(t, HasSMC())
		assert.ErrorContains(t, ValidateSupport(), runtime.GOOS)
	}
}
