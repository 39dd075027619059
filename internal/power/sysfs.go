package power

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// SysfsSource reads the first battery under a Linux power_supply class
// directory.
type SysfsSource struct {
	Root string
}

// Query returns the first battery found under Root, or nil when there is
// none.
func (s *SysfsSource) Query(ctx context.Context) (*Descriptor, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(filepath.Join(s.Root, name, "uevent"))
		if err != nil {
			continue // Skip supplies without a uevent file
		}
		props := parseUevent(f)
		f.Close()

		if props["POWER_SUPPLY_TYPE"] != "Battery" {
			continue
		}
		return ParseDescription(ueventDescription(props))
	}
	return nil, nil
}

func parseUevent(r io.Reader) map[string]string {
	props := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		k, v, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if ok {
			props[k] = v
		}
	}
	return props
}

// ueventDescription maps power_supply uevent properties onto the keys of
// a power source description.
func ueventDescription(props map[string]string) map[string]any {
	desc := map[string]any{}
	num := func(key string) (int64, bool) {
		v, ok := props[key]
		if !ok {
			return 0, false
		}
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}

	if c, ok := num("POWER_SUPPLY_CAPACITY"); ok {
		desc[KeyCurrentCapacity] = c
	} else if now, full, ok := ratio(num, "POWER_SUPPLY_ENERGY_NOW", "POWER_SUPPLY_ENERGY_FULL"); ok {
		desc[KeyCurrentCapacity] = now
		desc[KeyMaxCapacity] = full
	} else if now, full, ok := ratio(num, "POWER_SUPPLY_CHARGE_NOW", "POWER_SUPPLY_CHARGE_FULL"); ok {
		desc[KeyCurrentCapacity] = now
		desc[KeyMaxCapacity] = full
	}

	status := props["POWER_SUPPLY_STATUS"]
	desc[KeyIsCharging] = status == "Charging"
	desc[KeyIsCharged] = status == "Full"

	if status != "Discharging" {
		return desc
	}
	if secs, ok := num("POWER_SUPPLY_TIME_TO_EMPTY_NOW"); ok {
		desc[KeyTimeToEmpty] = secs / 60
		return desc
	}
	if energy, ok := num("POWER_SUPPLY_ENERGY_NOW"); ok {
		if power, ok := num("POWER_SUPPLY_POWER_NOW"); ok && power > 0 {
			desc[KeyTimeToEmpty] = energy * 60 / power
		}
		return desc
	}
	if charge, ok := num("POWER_SUPPLY_CHARGE_NOW"); ok {
		if current, ok := num("POWER_SUPPLY_CURRENT_NOW"); ok && current > 0 {
			desc[KeyTimeToEmpty] = charge * 60 / current
		}
	}
	return desc
}

// ratio returns a now/full pair only when both are present and full is
// positive. Without full the raw µWh or µAh value is not a percentage.
func ratio(num func(string) (int64, bool), nowKey, fullKey string) (int64, int64, bool) {
	now, ok := num(nowKey)
	if !ok {
		return 0, 0, false
	}
	full, ok := num(fullKey)
	if !ok || full <= 0 {
		return 0, 0, false
	}
	return now, full, true
}
