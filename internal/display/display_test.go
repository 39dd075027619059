package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CristiGvl/smcmon/internal/cpu"
	"github.com/CristiGvl/smcmon/internal/fan"
	"github.com/CristiGvl/smcmon/internal/monitor"
	"github.com/CristiGvl/smcmon/internal/power"
	"github.com/CristiGvl/smcmon/internal/temps"
)

func TestBar(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		want     string
	}{
		{"empty", 0, "  0% [                              ]"},
		{"half", 0.5, " 50% [|||||||||||||||               ]"},
		{"full", 1, "100% [||||||||||||||||||||||||||||||]"},
		{"clamped", 1.7, "100% [||||||||||||||||||||||||||||||]"},
		{"negative", -0.2, "  0% [                              ]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bar(tt.fraction))
		})
	}
}

func TestRender(t *testing.T) {
	snap := &monitor.Snapshot{
		Temperatures: &temps.Info{
			CPU: []*temps.Sensor{{Key: "TC0P", Label: "CPU Proximity", Temperature: 42.25, Available: true}},
			GPU: []*temps.Sensor{{Key: "TG0P", Label: "GPU Proximity"}},
		},
		CPU:     &cpu.Info{Usage: 25},
		Fans:    []*fan.Info{{Index: 0, RPM: 2000, MaxRPM: 6000}},
		Battery: &power.Descriptor{CurrentCapacityPercent: 64, TimeToEmptyMinutes: power.TimeEstimating},
	}

	var buf bytes.Buffer
	Render(&buf, snap)
	out := buf.String()

	assert.Contains(t, out, "CPU Temperature (CPU Proximity)\n")
	assert.Contains(t, out, "42.25°C/100.00°C")
	assert.Contains(t, out, "CPU Usage\n 25% [|||||||")
	assert.Contains(t, out, "Fan 0 Speed\n")
	assert.Contains(t, out, "2000.00rpm/6000.00rpm")
	assert.Contains(t, out, "GPU Temperature (GPU Proximity)\nn/a\n")
	assert.Contains(t, out, "Time remaining: Calculating")
	assert.NotContains(t, out, "-1 minutes")
}

func TestRenderBatteryStates(t *testing.T) {
	tests := []struct {
		name string
		d    power.Descriptor
		want string
	}{
		{"charged", power.Descriptor{CurrentCapacityPercent: 100, IsFullyCharged: true}, "battery charged!"},
		{"charging", power.Descriptor{CurrentCapacityPercent: 20, IsCharging: true}, "Charging"},
		{"discharging", power.Descriptor{CurrentCapacityPercent: 70, TimeToEmptyMinutes: 95}, "Time remaining: 95 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Render(&buf, &monitor.Snapshot{Battery: &tt.d})
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
