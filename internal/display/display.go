package display

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/CristiGvl/smcmon/internal/monitor"
)

const (
	barWidth  = 30
	separator = "-----------------------------------------------------------"
	tempScale = 100.0
	noReading = "n/a"
)

// Bar renders a percentage bar such as " 42% [|||||||||||||         ]".
// fraction is clamped to [0, 1].
func Bar(fraction float64) string {
	if fraction < 0 || math.IsNaN(fraction) {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * barWidth)
	return fmt.Sprintf("%3d%% [%s%s]", int(fraction*100), strings.Repeat("|", filled), strings.Repeat(" ", barWidth-filled))
}

// Block writes one titled readout of numerator out of denominator.
func Block(w io.Writer, title, unit string, numerator, denominator float64) {
	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, title)
	fraction := 0.0
	if denominator > 0 {
		fraction = numerator / denominator
	}
	fmt.Fprintf(w, "%s%.2f%s/%.2f%s\n", Bar(fraction), numerator, unit, denominator, unit)
}

// Render writes every section present in snap.
func Render(w io.Writer, snap *monitor.Snapshot) {
	if snap.Disk != nil {
		Block(w, "Disk Space:", "GB", snap.Disk.Used, snap.Disk.Total)
	}

	if t := snap.Temperatures; t != nil {
		for _, s := range t.CPU {
			temperature(w, "CPU Temperature", s.Label, s.Temperature, s.Available)
		}
	}
	if c := snap.CPU; c != nil {
		Block(w, "CPU Usage", "%", c.Usage, 100)
	}

	for _, f := range snap.Fans {
		Block(w, fmt.Sprintf("Fan %d Speed", f.Index), "rpm", f.RPM, f.MaxRPM)
	}

	if t := snap.Temperatures; t != nil {
		for _, s := range t.Memory {
			temperature(w, "Memory Slot Temperature", s.Label, s.Temperature, s.Available)
		}
	}
	if snap.Memory != nil {
		Block(w, "Memory Usage", "GB", snap.Memory.Used, snap.Memory.Total)
	}

	if t := snap.Temperatures; t != nil {
		for _, s := range t.GPU {
			temperature(w, "GPU Temperature", s.Label, s.Temperature, s.Available)
		}
	}

	if b := snap.Battery; b != nil {
		Block(w, "Battery Charge", "", float64(b.CurrentCapacityPercent), 100)
		switch {
		case b.IsFullyCharged:
			fmt.Fprintln(w, "battery charged!")
		case b.IsCharging:
			fmt.Fprintln(w, "Charging")
		case b.Estimating():
			fmt.Fprintln(w, "Time remaining: Calculating")
		default:
			fmt.Fprintf(w, "Time remaining: %d minutes\n", b.TimeToEmptyMinutes)
		}
	}

	if t := snap.Temperatures; t != nil {
		for _, s := range t.Battery {
			temperature(w, "Battery Temperature", s.Label, s.Temperature, s.Available)
		}
		for _, s := range t.System {
			temperature(w, s.Label, s.Label, s.Temperature, s.Available)
		}
	}
}

func temperature(w io.Writer, title, label string, celsius float64, ok bool) {
	if label != "" && label != title {
		title = fmt.Sprintf("%s (%s)", title, label)
	}
	if !ok {
		fmt.Fprintln(w, separator)
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, noReading)
		return
	}
	Block(w, title, "°C", celsius, tempScale)
}
