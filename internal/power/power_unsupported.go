//go:build !darwin && !linux && !windows

package power

import "context"

// UnsupportedSource reports no power source
type UnsupportedSource struct{}

// newPlatformSource creates a fallback power source reader for unsupported platforms
func newPlatformSource() Source {
	return &UnsupportedSource{}
}

// Query always reports that there is no battery
func (s *UnsupportedSource) Query(ctx context.Context) (*Descriptor, error) {
	return nil, nil
}
