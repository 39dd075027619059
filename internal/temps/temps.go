package temps

import (
	"context"

	"github.com/CristiGvl/smcmon/internal/smc"
)

// Sensor represents a temperature sensor
type Sensor struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Temperature float64 `json:"temperature_celsius"`
	// Available is false when the key could not be read; Temperature is
	// then 0.
	Available bool `json:"available"`
}

// Info represents temperature information
type Info struct {
	CPU     []*Sensor `json:"cpu"`
	GPU     []*Sensor `json:"gpu"`
	Memory  []*Sensor `json:"memory"`
	Battery []*Sensor `json:"battery"`
	System  []*Sensor `json:"system"`
}

// First returns the first available sensor of group, or nil.
func (i *Info) First(group smc.Group) *Sensor {
	for _, s := range i.group(group) {
		if s.Available {
			return s
		}
	}
	return nil
}

func (i *Info) group(g smc.Group) []*Sensor {
	switch g {
	case smc.GroupCPU:
		return i.CPU
	case smc.GroupGPU:
		return i.GPU
	case smc.GroupMemory:
		return i.Memory
	case smc.GroupBattery:
		return i.Battery
	default:
		return i.System
	}
}

func (i *Info) add(g smc.Group, s *Sensor) {
	switch g {
	case smc.GroupCPU:
		i.CPU = append(i.CPU, s)
	case smc.GroupGPU:
		i.GPU = append(i.GPU, s)
	case smc.GroupMemory:
		i.Memory = append(i.Memory, s)
	case smc.GroupBattery:
		i.Battery = append(i.Battery, s)
	default:
		i.System = append(i.System, s)
	}
}

// Querier reads one temperature key.
type Querier interface {
	ReadTemperature(key smc.Key) (float64, error)
}

// Reader interface for temperature monitoring
type Reader interface {
	GetInfo(ctx context.Context) (*Info, error)
}

// NewReader creates a temperature reader for the given catalog sensors
func NewReader(q Querier, sensors []smc.Sensor) Reader {
	return &SMCReader{querier: q, sensors: sensors}
}

// SMCReader reads temperatures from the SMC
type SMCReader struct {
	querier Querier
	sensors []smc.Sensor
}

// GetInfo returns temperature information. Keys that cannot be read are
// reported as unavailable rather than failing the whole call.
func (r *SMCReader) GetInfo(ctx context.Context) (*Info, error) {
	info := &Info{
		CPU:     []*Sensor{},
		GPU:     []*Sensor{},
		Memory:  []*Sensor{},
		Battery: []*Sensor{},
		System:  []*Sensor{},
	}

	for _, s := range r.sensors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		temp, err := r.querier.ReadTemperature(s.Key)
		info.add(s.Group, &Sensor{
			Key:         s.Key.String(),
			Label:       s.Name,
			Temperature: temp,
			Available:   err == nil,
		})
	}

	return info, nil
}
