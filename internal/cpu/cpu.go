package cpu

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

// Info represents CPU load alongside the SMC temperatures
type Info struct {
	Model     string  `json:"model"`
	Cores     int     `json:"cores"`
	Threads   int     `json:"threads"`
	Usage     float64 `json:"usage_percent"`
	Frequency float64 `json:"frequency_mhz"`
}

// Reader interface for CPU monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
}

// NewReader creates a CPU reader sampling usage over interval. A zero
// interval compares against the previous call.
func NewReader(interval time.Duration) Reader {
	return &LoadReader{interval: interval}
}

// LoadReader reads CPU model and usage through gopsutil
type LoadReader struct {
	interval time.Duration
}

// GetInfo returns CPU information
func (r *LoadReader) GetInfo(ctx context.Context) (*Info, error) {
	cpuInfo, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, err
	}
	if len(cpuInfo) == 0 {
		return nil, nil
	}

	info := &Info{
		Model:     cpuInfo[0].ModelName,
		Frequency: cpuInfo[0].Mhz,
	}

	if cores, err := cpu.CountsWithContext(ctx, false); err == nil {
		info.Cores = cores
	}
	if threads, err := cpu.CountsWithContext(ctx, true); err == nil {
		info.Threads = threads
	}
	if info.Cores == 0 || info.Cores > info.Threads {
		info.Cores = info.Threads
	}

	percentages, err := cpu.PercentWithContext(ctx, r.interval, false)
	if err != nil {
		return nil, err
	}
	if len(percentages) > 0 {
		info.Usage = percentages[0]
	}

	return info, nil
}
