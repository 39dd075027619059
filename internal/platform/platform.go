package platform

import (
	"fmt"
	"runtime"
)

// SupportedOS represents supported operating systems
type SupportedOS string

const (
	Darwin  SupportedOS = "darwin"
	Linux   SupportedOS = "linux"
	Windows SupportedOS = "windows"
)

// GetOS returns the current operating system
func GetOS() SupportedOS {
	return SupportedOS(runtime.GOOS)
}

// HasSMC returns true if the current OS exposes the AppleSMC service
func HasSMC() bool {
	return GetOS() == Darwin
}

// HasPowerSource returns true if battery information can be read on the current OS
func HasPowerSource() bool {
	os := GetOS()
	return os == Darwin || os == Linux || os == Windows
}

// ValidateSupport returns an error if the current OS cannot run a monitoring session
func ValidateSupport() error {
	if !HasSMC() {
		return fmt.Errorf("unsupported operating system: %s. Supported: darwin", runtime.GOOS)
	}
	return nil
}
