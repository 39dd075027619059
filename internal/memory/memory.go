package memory

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"
)

// Info represents memory information
type Info struct {
	Total     float64 `json:"total_gb"`
	Used      float64 `json:"used_gb"`
	Available float64 `json:"available_gb"`
	Usage     float64 `json:"usage_percent"`
}

const bytesPerGB = 1024 * 1024 * 1024

// Reader interface for memory monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
}

// NewReader creates a new memory reader
func NewReader() Reader {
	return &VirtualMemoryReader{}
}

// VirtualMemoryReader reads memory usage through gopsutil
type VirtualMemoryReader struct{}

// GetInfo returns memory information
func (r *VirtualMemoryReader) GetInfo(ctx context.Context) (*Info, error) {
	memInfo, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Total:     float64(memInfo.Total) / bytesPerGB,
		Used:      float64(memInfo.Used) / bytesPerGB,
		Available: float64(memInfo.Available) / bytesPerGB,
		Usage:     memInfo.UsedPercent,
	}

	return info, nil
}
