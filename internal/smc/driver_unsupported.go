//go:build !darwin

package smc

import (
	"fmt"
	"runtime"
)

// openPlatformDriver fails everywhere but macOS
func openPlatformDriver() (Driver, error) {
	return nil, fmt.Errorf("%w: no AppleSMC on %s", ErrServiceUnavailable, runtime.GOOS)
}
