package disk

import (
	"context"

	"github.com/shirou/gopsutil/v3/disk"
)

// Info represents disk space of one filesystem
type Info struct {
	Path      string  `json:"path"`
	Total     float64 `json:"total_gb"`
	Used      float64 `json:"used_gb"`
	Available float64 `json:"available_gb"`
	Usage     float64 `json:"usage_percent"`
}

const bytesPerGB = 1024 * 1024 * 1024

// Reader interface for disk monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
}

// NewReader creates a disk reader for the filesystem holding path
func NewReader(path string) Reader {
	if path == "" {
		path = "/"
	}
	return &UsageReader{path: path}
}

// UsageReader reads filesystem usage through gopsutil
type UsageReader struct {
	path string
}

// GetInfo returns disk space information
func (r *UsageReader) GetInfo(ctx context.Context) (*Info, error) {
	usage, err := disk.UsageWithContext(ctx, r.path)
	if err != nil {
		return nil, err
	}

	// used counts every block that is not free, as statvfs reports it
	used := usage.Total - usage.Free

	info := &Info{
		Path:      r.path,
		Total:     float64(usage.Total) / bytesPerGB,
		Used:      float64(used) / bytesPerGB,
		Available: float64(usage.Free) / bytesPerGB,
	}
	if usage.Total > 0 {
		info.Usage = float64(used) * 100 / float64(usage.Total)
	}

	return info, nil
}
