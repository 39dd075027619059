package fan

import (
	"context"
	"fmt"
	"sync"

	"github.com/CristiGvl/smcmon/internal/smc"
)

// Info represents fan information
type Info struct {
	Index  int     `json:"index"`
	Name   string  `json:"name"`
	RPM    float64 `json:"rpm"`
	MaxRPM float64 `json:"max_rpm"`
	// Speed is RPM as a percentage of MaxRPM, 0 when MaxRPM is unknown.
	Speed int `json:"speed_percent"`
}

// Querier is the part of smc.Sensors the fan reader needs.
type Querier interface {
	FanKeys() []smc.Key
	ReadFanSpeed(index int) (float64, error)
	ReadMaxFanSpeed() (float64, error)
}

// Reader interface for fan monitoring
type Reader interface {
	GetFans(ctx context.Context) ([]*Info, error)
}

// NewReader creates a fan reader on top of the SMC sensors
func NewReader(q Querier) Reader {
	return &SMCReader{querier: q}
}

// SMCReader reads fan speeds from the SMC
type SMCReader struct {
	querier Querier

	mu     sync.Mutex
	maxRPM float64
}

// GetFans returns one entry per installed fan. A machine without fans, or
// whose fan count cannot be read, returns an empty list.
func (r *SMCReader) GetFans(ctx context.Context) ([]*Info, error) {
	keys := r.querier.FanKeys()
	maxRPM := r.max()

	fans := make([]*Info, 0, len(keys))
	for i := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rpm, _ := r.querier.ReadFanSpeed(i) // fallback to 0 if we can't read it
		fan := &Info{
			Index:  i,
			Name:   fmt.Sprintf("Fan %d", i),
			RPM:    rpm,
			MaxRPM: maxRPM,
		}
		if maxRPM > 0 {
			fan.Speed = int(rpm * 100 / maxRPM)
		}
		fans = append(fans, fan)
	}

	return fans, nil
}

// max reads the fan 0 maximum once; it only serves as a denominator.
func (r *SMCReader) max() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxRPM == 0 {
		if rpm, err := r.querier.ReadMaxFanSpeed(); err == nil {
			r.maxRPM = rpm
		}
	}
	return r.maxRPM
}
