//go:build windows

package power

import (
	"context"

	"github.com/StackExchange/wmi"
)

// WindowsSource implements power source reading for Windows
type WindowsSource struct{}

// newPlatformSource creates a new Windows power source reader
func newPlatformSource() Source {
	return &WindowsSource{}
}

// Win32_Battery represents WMI battery data
type Win32_Battery struct {
	DeviceID                 string
	EstimatedChargeRemaining *uint16
	EstimatedRunTime         *uint32
	BatteryStatus            *uint16
}

// runTimeUnknown is what Win32_Battery reports for EstimatedRunTime while
// on AC power or still estimating.
const runTimeUnknown = 71582788

// Query returns the first battery reported by WMI
func (s *WindowsSource) Query(ctx context.Context) (*Descriptor, error) {
	var batteries []Win32_Battery
	err := wmi.Query("SELECT DeviceID, EstimatedChargeRemaining, EstimatedRunTime, BatteryStatus FROM Win32_Battery", &batteries)
	if err != nil {
		return nil, err
	}
	if len(batteries) == 0 {
		return nil, nil
	}

	return ParseDescription(wmiDescription(batteries[0]))
}

func wmiDescription(b Win32_Battery) map[string]any {
	desc := map[string]any{}
	if b.EstimatedChargeRemaining != nil {
		desc[KeyCurrentCapacity] = *b.EstimatedChargeRemaining
	}
	if b.BatteryStatus != nil {
		switch *b.BatteryStatus {
		case 3: // Fully Charged
			desc[KeyIsCharged] = true
		case 6, 7, 8, 9: // Charging, Charging and High/Low/Critical
			desc[KeyIsCharging] = true
		}
	}
	if b.EstimatedRunTime != nil && *b.EstimatedRunTime != runTimeUnknown {
		desc[KeyTimeToEmpty] = *b.EstimatedRunTime
	}
	return desc
}
