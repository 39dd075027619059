//go:build linux

package power

// newPlatformSource creates a new Linux power source reader
func newPlatformSource() Source {
	return &SysfsSource{Root: "/sys/class/power_supply"}
}
