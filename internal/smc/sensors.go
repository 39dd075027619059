package smc

import (
	"fmt"
	"slices"
	"sync"
)

// MaxFans is the size of the fan key table. Fan keys carry the index as
// a single decimal digit, so "F0Ac" through "F9Ac" are the only ones
// that can be addressed.
const MaxFans = 10

// fanCountAbsent is the FNum value of a machine without fan control.
const fanCountAbsent = 0xff

// Sensors provides the typed reads on top of a Channel.
//
// Each read has two forms: ReadX returns the error, X returns the
// documented fallback (0.0 for temperatures and speeds, -1 for the fan
// count). A fallback of 0.0 is also a legitimate reading; callers that
// need to tell them apart must use the ReadX form.
type Sensors struct {
	ch *Channel

	mu      sync.Mutex
	fanKeys []Key
	fanInit bool
}

// NewSensors returns a Sensors reading through ch.
func NewSensors(ch *Channel) *Sensors {
	return &Sensors{ch: ch}
}

// ReadTemperature reads an sp78 temperature key in degrees Celsius.
func (s *Sensors) ReadTemperature(key Key) (float64, error) {
	r, err := s.read(key, TypeSP78)
	if err != nil {
		return 0, err
	}
	return r.(TemperatureReading).Celsius, nil
}

// Temperature is ReadTemperature with 0.0 for "no reading".
func (s *Sensors) Temperature(key Key) float64 {
	t, _ := s.ReadTemperature(key)
	return t
}

// ReadFanCount reads the installed fan count. An FNum of 255 marks the
// feature as absent and reads as zero fans.
func (s *Sensors) ReadFanCount() (int, error) {
	r, err := s.read(NumFans, TypeUI8)
	if err != nil {
		return -1, err
	}
	n := r.(CountReading).Count
	if n == fanCountAbsent {
		return 0, nil
	}
	return int(n), nil
}

// FanCount returns the number of fans, or -1 if the count could not be
// read. Zero means the read succeeded and there are no fans.
func (s *Sensors) FanCount() int {
	n, _ := s.ReadFanCount()
	return n
}

// FanKey returns the key "F<index><suffix>".
func FanKey(index int, suffix string) (Key, error) {
	if index < 0 || index >= MaxFans {
		return Key{}, fmt.Errorf("%w: %d not in [0, %d)", ErrFanIndex, index, MaxFans)
	}
	return ParseKey(fmt.Sprintf("F%d%s", index, suffix))
}

// FanKeys returns the actual-speed keys of every installed fan. The
// table is built once from the first successful fan count; a failed
// count yields an empty table and is retried on the next call.
func (s *Sensors) FanKeys() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fanInit {
		return slices.Clone(s.fanKeys)
	}

	n, err := s.ReadFanCount()
	if err != nil {
		return nil
	}
	if n > MaxFans {
		s.ch.log.WithField("fans", n).Warnf("fan count exceeds addressable keys, using first %d", MaxFans)
		n = MaxFans
	}

	keys := make([]Key, 0, n)
	for i := 0; i < n; i++ {
		k, err := FanKey(i, FanActual)
		if err != nil {
			return nil
		}
		keys = append(keys, k)
	}
	s.fanKeys = keys
	s.fanInit = true
	return slices.Clone(s.fanKeys)
}

// ReadFanSpeed reads the actual speed of fan index in rpm. Indices
// outside the fan table fail with ErrFanIndex without touching the SMC.
func (s *Sensors) ReadFanSpeed(index int) (float64, error) {
	keys := s.FanKeys()
	if index < 0 || index >= len(keys) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrFanIndex, index, len(keys))
	}
	return s.readRPM(keys[index])
}

// FanSpeed is ReadFanSpeed with 0.0 for "no reading".
func (s *Sensors) FanSpeed(index int) float64 {
	rpm, _ := s.ReadFanSpeed(index)
	return rpm
}

// FanSpeeds returns the speed of every installed fan.
func (s *Sensors) FanSpeeds() []float64 {
	keys := s.FanKeys()
	speeds := make([]float64, len(keys))
	for i, k := range keys {
		speeds[i], _ = s.readRPM(k)
	}
	return speeds
}

// ReadFanLimit reads a per-fan rpm key such as FanMax or FanTarget.
func (s *Sensors) ReadFanLimit(index int, suffix string) (float64, error) {
	key, err := FanKey(index, suffix)
	if err != nil {
		return 0, err
	}
	return s.readRPM(key)
}

// ReadMaxFanSpeed reads the maximum speed of fan 0.
func (s *Sensors) ReadMaxFanSpeed() (float64, error) {
	return s.readRPM(Fan0MaxRPM)
}

// MaxFanSpeed returns the maximum speed of fan 0, or 0.0. It is meant
// as a display denominator only.
func (s *Sensors) MaxFanSpeed() float64 {
	rpm, _ := s.ReadMaxFanSpeed()
	return rpm
}

func (s *Sensors) readRPM(key Key) (float64, error) {
	r, err := s.read(key, TypeFPE2)
	if err != nil {
		return 0, err
	}
	return r.(FanSpeedReading).RPM, nil
}

// read fetches key and decodes it, requiring the reading to be of type want.
func (s *Sensors) read(key Key, want DataType) (Reading, error) {
	v, err := s.ch.ReadKey(key)
	if err != nil {
		return nil, err
	}
	r := Decode(v)
	if r.dataType() != want {
		return nil, &TypeMismatchError{Key: key, Want: want, Got: v.Info.DataType, Size: v.Info.DataSize}
	}
	if _, ok := r.(Unrecognized); ok {
		return nil, &TypeMismatchError{Key: key, Want: want, Got: v.Info.DataType, Size: v.Info.DataSize}
	}
	return r, nil
}
