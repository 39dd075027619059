package power

import (
	"context"
	"fmt"
	"time"
)

// Keys of a power source description, as published by the OS power
// information service.
const (
	KeyCurrentCapacity = "Current Capacity"
	KeyMaxCapacity     = "Max Capacity"
	KeyIsCharging      = "Is Charging"
	KeyIsCharged       = "Is Charged"
	KeyTimeToEmpty     = "Time to Empty"
)

// TimeEstimating is the time-to-empty value reported while the system is
// still estimating.
const TimeEstimating = -1

// Descriptor represents the state of the first power source
type Descriptor struct {
	CurrentCapacityPercent int  `json:"capacity_percent"`
	IsCharging             bool `json:"is_charging"`
	IsFullyCharged         bool `json:"is_fully_charged"`
	// TimeToEmptyMinutes is TimeEstimating (-1) while the system is
	// still estimating.
	TimeToEmptyMinutes int `json:"time_to_empty_minutes"`
}

// IsPowered reports whether the machine runs on external power, i.e. the
// battery is charging or already full.
func (d *Descriptor) IsPowered() bool {
	return d.IsCharging || d.IsFullyCharged
}

// Estimating reports whether the time to empty is still being estimated.
func (d *Descriptor) Estimating() bool {
	return d.TimeToEmptyMinutes == TimeEstimating
}

// Remaining returns the time to empty. ok is false while estimating.
func (d *Descriptor) Remaining() (time.Duration, bool) {
	if d.TimeToEmptyMinutes < 0 {
		return 0, false
	}
	return time.Duration(d.TimeToEmptyMinutes) * time.Minute, true
}

// Source interface for power source information
type Source interface {
	// Query returns the first power source, or nil and no error when the
	// machine has none.
	Query(ctx context.Context) (*Descriptor, error)
}

// NewSource creates a power source reader for the current platform
func NewSource() Source {
	return newPlatformSource()
}

// ParseDescription converts a power source description into a
// Descriptor. Missing charging flags read as false and a missing time to
// empty reads as TimeEstimating. When a max capacity other than 100 is
// present the current capacity is scaled to percent.
func ParseDescription(desc map[string]any) (*Descriptor, error) {
	d := &Descriptor{TimeToEmptyMinutes: TimeEstimating}

	if v, ok := desc[KeyCurrentCapacity]; ok {
		n, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyCurrentCapacity, err)
		}
		d.CurrentCapacityPercent = n
	}

	if v, ok := desc[KeyMaxCapacity]; ok {
		max, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyMaxCapacity, err)
		}
		if max > 0 && max != 100 {
			d.CurrentCapacityPercent = d.CurrentCapacityPercent * 100 / max
		}
	}
	if d.CurrentCapacityPercent < 0 {
		d.CurrentCapacityPercent = 0
	}
	if d.CurrentCapacityPercent > 100 {
		d.CurrentCapacityPercent = 100
	}

	var err error
	if d.IsCharging, err = boolField(desc, KeyIsCharging); err != nil {
		return nil, err
	}
	if d.IsFullyCharged, err = boolField(desc, KeyIsCharged); err != nil {
		return nil, err
	}

	if v, ok := desc[KeyTimeToEmpty]; ok {
		n, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyTimeToEmpty, err)
		}
		d.TimeToEmptyMinutes = n
	}

	return d, nil
}

func boolField(desc map[string]any, key string) (bool, error) {
	v, ok := desc[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: unexpected type %T", key, v)
	}
	return b, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case uint8:
		return int(n), nil
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
