package smc

// Temperature keys. The first character T marks a temperature; the
// second names the component (C CPU, G GPU, M memory, B battery or
// enclosure base); the last is the placement (P proximity, D diode,
// H heatsink).
var (
	AmbientAir0          = MustParseKey("TA0P")
	AmbientAir1          = MustParseKey("TA1P")
	CPU0Diode            = MustParseKey("TC0D")
	CPU0Heatsink         = MustParseKey("TC0H")
	CPU0Proximity        = MustParseKey("TC0P")
	EnclosureBase0       = MustParseKey("TB0T")
	EnclosureBase1       = MustParseKey("TB1T")
	EnclosureBase2       = MustParseKey("TB2T")
	EnclosureBase3       = MustParseKey("TB3T")
	GPU0Diode            = MustParseKey("TG0D")
	GPU0Heatsink         = MustParseKey("TG0H")
	GPU0Proximity        = MustParseKey("TG0P")
	HardDriveBay         = MustParseKey("TH0P")
	MemorySlot0          = MustParseKey("TM0S")
	MemorySlotsProximity = MustParseKey("TM0P")
	Northbridge          = MustParseKey("TN0H")
	NorthbridgeDiode     = MustParseKey("TN0D")
	NorthbridgeProximity = MustParseKey("TN0P")
	Thunderbolt0         = MustParseKey("TI0P")
	Thunderbolt1         = MustParseKey("TI1P")
	WirelessModule       = MustParseKey("TW0P")

	// Battery0 is the first battery/enclosure sensor on portables.
	Battery0 = EnclosureBase0
)

// Fan keys.
var (
	Fan0          = MustParseKey("F0Ac")
	Fan0MinRPM    = MustParseKey("F0Mn")
	Fan0MaxRPM    = MustParseKey("F0Mx")
	Fan0SafeRPM   = MustParseKey("F0Sf")
	Fan0TargetRPM = MustParseKey("F0Tg")
	NumFans       = MustParseKey("FNum")
)

// Fan key suffixes, appended to "F<index>".
const (
	FanActual = "Ac"
	FanMin    = "Mn"
	FanMax    = "Mx"
	FanSafe   = "Sf"
	FanTarget = "Tg"
)

// Group classifies a temperature sensor for display.
type Group string

const (
	GroupCPU     Group = "cpu"
	GroupGPU     Group = "gpu"
	GroupMemory  Group = "memory"
	GroupBattery Group = "battery"
	GroupSystem  Group = "system"
)

// Sensor is one catalog entry.
type Sensor struct {
	Key   Key
	Name  string
	Group Group
}

// Catalog lists the temperature keys known to this package.
var Catalog = []Sensor{
	{CPU0Proximity, "CPU Proximity", GroupCPU},
	{CPU0Diode, "CPU Diode", GroupCPU},
	{CPU0Heatsink, "CPU Heatsink", GroupCPU},
	{GPU0Proximity, "GPU Proximity", GroupGPU},
	{GPU0Diode, "GPU Diode", GroupGPU},
	{GPU0Heatsink, "GPU Heatsink", GroupGPU},
	{MemorySlotsProximity, "Memory Slots Proximity", GroupMemory},
	{MemorySlot0, "Memory Slot 0", GroupMemory},
	{EnclosureBase0, "Battery / Enclosure Base 0", GroupBattery},
	{EnclosureBase1, "Enclosure Base 1", GroupBattery},
	{EnclosureBase2, "Enclosure Base 2", GroupBattery},
	{EnclosureBase3, "Enclosure Base 3", GroupBattery},
	{AmbientAir0, "Ambient Air 0", GroupSystem},
	{AmbientAir1, "Ambient Air 1", GroupSystem},
	{HardDriveBay, "Hard Drive Bay", GroupSystem},
	{Northbridge, "Northbridge Heatsink", GroupSystem},
	{NorthbridgeDiode, "Northbridge Diode", GroupSystem},
	{NorthbridgeProximity, "Northbridge Proximity", GroupSystem},
	{Thunderbolt0, "Thunderbolt 0", GroupSystem},
	{Thunderbolt1, "Thunderbolt 1", GroupSystem},
	{WirelessModule, "Wireless Module", GroupSystem},
}

// Lookup returns the catalog entry for key. Keys outside the catalog
// are returned with their own name in GroupSystem.
func Lookup(key Key) Sensor {
	for _, s := range Catalog {
		if s.Key == key {
			return s
		}
	}
	return Sensor{Key: key, Name: key.String(), Group: GroupSystem}
}
