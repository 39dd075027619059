//go:build darwin

package power

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <string.h>
#include <CoreFoundation/CoreFoundation.h>
#include <IOKit/ps/IOPowerSources.h>
#include <IOKit/ps/IOPSKeys.h>

typedef struct {
	int found;
	int hasCapacity;
	int capacity;
	int hasMaxCapacity;
	int maxCapacity;
	int hasCharging;
	int charging;
	int hasCharged;
	int charged;
	int hasTimeToEmpty;
	int timeToEmpty;
} ps_description;

static int ps_get_int(CFDictionaryRef desc, CFStringRef key, int *out) {
	CFTypeRef v = CFDictionaryGetValue(desc, key);
	if (v == NULL || CFGetTypeID(v) != CFNumberGetTypeID()) {
		return 0;
	}
	return CFNumberGetValue((CFNumberRef)v, kCFNumberIntType, out) ? 1 : 0;
}

static int ps_get_bool(CFDictionaryRef desc, CFStringRef key, int *out) {
	CFTypeRef v = CFDictionaryGetValue(desc, key);
	if (v == NULL || CFGetTypeID(v) != CFBooleanGetTypeID()) {
		return 0;
	}
	*out = CFBooleanGetValue((CFBooleanRef)v) ? 1 : 0;
	return 1;
}

static void ps_query(ps_description *out) {
	memset(out, 0, sizeof(*out));

	CFTypeRef info = IOPSCopyPowerSourcesInfo();
	if (info == NULL) {
		return;
	}
	CFArrayRef list = IOPSCopyPowerSourcesList(info);
	if (list == NULL) {
		CFRelease(info);
		return;
	}

	if (CFArrayGetCount(list) > 0) {
		CFDictionaryRef desc = IOPSGetPowerSourceDescription(info, CFArrayGetValueAtIndex(list, 0));
		if (desc != NULL) {
			out->found = 1;
			out->hasCapacity = ps_get_int(desc, CFSTR(kIOPSCurrentCapacityKey), &out->capacity);
			out->hasMaxCapacity = ps_get_int(desc, CFSTR(kIOPSMaxCapacityKey), &out->maxCapacity);
			out->hasCharging = ps_get_bool(desc, CFSTR(kIOPSIsChargingKey), &out->charging);
			out->hasCharged = ps_get_bool(desc, CFSTR(kIOPSIsChargedKey), &out->charged);
			out->hasTimeToEmpty = ps_get_int(desc, CFSTR(kIOPSTimeToEmptyKey), &out->timeToEmpty);
		}
	}

	CFRelease(list);
	CFRelease(info);
}
*/
import "C"

import "context"

// DarwinSource reads IOKit power source descriptions
type DarwinSource struct{}

// newPlatformSource creates a new macOS power source reader
func newPlatformSource() Source {
	return &DarwinSource{}
}

// Query returns the first power source description
func (s *DarwinSource) Query(ctx context.Context) (*Descriptor, error) {
	var ps C.ps_description
	C.ps_query(&ps)
	if ps.found == 0 {
		return nil, nil
	}

	desc := map[string]any{}
	if ps.hasCapacity != 0 {
		desc[KeyCurrentCapacity] = int(ps.capacity)
	}
	if ps.hasMaxCapacity != 0 {
		desc[KeyMaxCapacity] = int(ps.maxCapacity)
	}
	if ps.hasCharging != 0 {
		desc[KeyIsCharging] = ps.charging != 0
	}
	if ps.hasCharged != 0 {
		desc[KeyIsCharged] = ps.charged != 0
	}
	if ps.hasTimeToEmpty != 0 {
		desc[KeyTimeToEmpty] = int(ps.timeToEmpty)
	}

	return ParseDescription(desc)
}
