package smc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CristiGvl/smcmon/internal/smc"
	"github.com/CristiGvl/smcmon/internal/smc/smctest"
)

func TestTemperature(t *testing.T) {
	s := smc.NewSensors(smc.NewChannel(smctest.Laptop()))

	assert.Equal(t, 42.25, s.Temperature(smc.CPU0Proximity))
	assert.Equal(t, 50.5, s.Temperature(smc.GPU0Proximity))
}

func TestTemperatureFallbacks(t *testing.T) {
	d := smctest.Laptop().
		Set("TA0P", smc.TypeFPE2, 0x07, 0xd0).
		SetSized("TA1P", smc.TypeSP78, 0)
	s := smc.NewSensors(smc.NewChannel(d))

	tests := []struct {
		name string
		key  smc.Key
		err  error
	}{
		{"missing key", smc.Northbridge, smc.ErrCallFailed},
		{"wrong type", smc.AmbientAir0, smc.ErrTypeMismatch},
		{"zero size", smc.AmbientAir1, smc.ErrTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := s.ReadTemperature(tt.key)
			assert.ErrorIs(t, err, tt.err)
			assert.Zero(t, c)
			assert.Zero(t, s.Temperature(tt.key))
		})
	}
}

func TestFanCount(t *testing.T) {
	s := smc.NewSensors(smc.NewChannel(smctest.Laptop()))
	assert.Equal(t, 2, s.FanCount())
}

func TestFanCountZeroAndMissing(t *testing.T) {
	fanless := smc.NewSensors(smc.NewChannel(smctest.NewDriver().Set("FNum", smc.TypeUI8, 0)))
	assert.Equal(t, 0, fanless.FanCount())

	broken := smc.NewSensors(smc.NewChannel(smctest.NewDriver()))
	n, err := broken.ReadFanCount()
	assert.ErrorIs(t, err, smc.ErrCallFailed)
	assert.Equal(t, -1, n)
	assert.Equal(t, -1, broken.FanCount())
}

func TestFanCountAbsent(t *testing.T) {
	d := smctest.NewDriver().Set("FNum", smc.TypeUI8, 0xff)
	s := smc.NewSensors(smc.NewChannel(d))

	n, err := s.ReadFanCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, s.FanCount())
	assert.Empty(t, s.FanKeys())
	assert.Empty(t, s.FanSpeeds())

	_, err = s.ReadFanSpeed(0)
	assert.ErrorIs(t, err, smc.ErrFanIndex)
}

func TestFanCountRejectsWrongType(t *testing.T) {
	s := smc.NewSensors(smc.NewChannel(smctest.NewDriver().Set("FNum", smc.TypeUI16, 0, 2)))
	_, err := s.ReadFanCount()
	assert.ErrorIs(t, err, smc.ErrTypeMismatch)
	assert.Equal(t, -1, s.FanCount())
}

func TestFanSpeed(t *testing.T) {
	s := smc.NewSensors(smc.NewChannel(smctest.Laptop()))

	assert.Equal(t, 2000.0, s.FanSpeed(0))
	assert.Equal(t, 1800.0, s.FanSpeed(1))
	assert.Equal(t, []float64{2000, 1800}, s.FanSpeeds())
	assert.Equal(t, 6000.0, s.MaxFanSpeed())

	limit, err := s.ReadFanLimit(1, smc.FanMax)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, limit)
}

func TestFanSpeedStaysInsideFanTable(t *testing.T) {
	// F2Ac exists but FNum says there are two fans.
	d := smctest.Laptop().Set("F2Ac", smc.TypeFPE2, 0x07, 0xd0)
	s := smc.NewSensors(smc.NewChannel(d))
	require.Len(t, s.FanKeys(), 2)
	reads := d.Calls[smc.CmdReadKey]

	for _, i := range []int{-1, 2, 9, 10} {
		_, err := s.ReadFanSpeed(i)
		assert.ErrorIs(t, err, smc.ErrFanIndex, "index %d", i)
		assert.Zero(t, s.FanSpeed(i))
	}
	assert.Equal(t, reads, d.Calls[smc.CmdReadKey], "out of range indices must not reach the SMC")
}

func TestFanKeysBuiltOnce(t *testing.T) {
	d := smctest.Laptop()
	s := smc.NewSensors(smc.NewChannel(d))

	keys := s.FanKeys()
	assert.Equal(t, []smc.Key{smc.MustParseKey("F0Ac"), smc.MustParseKey("F1Ac")}, keys)
	s.FanKeys()
	s.FanSpeeds()
	assert.Equal(t, 1+2, d.Calls[smc.CmdReadKey])
}

func TestFanKeysReturnsCopy(t *testing.T) {
	s := smc.NewSensors(smc.NewChannel(smctest.Laptop()))

	keys := s.FanKeys()
	keys[0] = smc.MustParseKey("F1Ac")

	assert.Equal(t, smc.MustParseKey("F0Ac"), s.FanKeys()[0])
	assert.Equal(t, 2000.0, s.FanSpeed(0))
}

func TestFanKeysClampedToAddressableRange(t *testing.T) {
	d := smctest.NewDriver().Set("FNum", smc.TypeUI8, 12)
	s := smc.NewSensors(smc.NewChannel(d))

	keys := s.FanKeys()
	require.Len(t, keys, smc.MaxFans)
	assert.Equal(t, smc.MustParseKey("F9Ac"), keys[9])
}

func TestFanKeysRetriedAfterFailedCount(t *testing.T) {
	d := smctest.NewDriver()
	s := smc.NewSensors(smc.NewChannel(d))
	assert.Empty(t, s.FanKeys())

	d.Set("FNum", smc.TypeUI8, 1).Set("F0Ac", smc.TypeFPE2, 0x07, 0xd0)
	assert.Len(t, s.FanKeys(), 1)
	assert.Equal(t, 500.0, s.FanSpeed(0))
}

func TestFanKey(t *testing.T) {
	k, err := smc.FanKey(3, smc.FanTarget)
	require.NoError(t, err)
	assert.Equal(t, "F3Tg", k.String())

	_, err = smc.FanKey(10, smc.FanActual)
	assert.ErrorIs(t, err, smc.ErrFanIndex)
}

func TestMissingKeyThenCloseSucceeds(t *testing.T) {
	d := smctest.NewDriver()
	ch := smc.NewChannel(d)
	s := smc.NewSensors(ch)

	var temp float64
	assert.NotPanics(t, func() { temp = s.Temperature(smc.CPU0Proximity) })
	assert.Equal(t, 0.0, temp)
	assert.NoError(t, ch.Close())
}

func TestLookup(t *testing.T) {
	assert.Equal(t, smc.GroupGPU, smc.Lookup(smc.GPU0Diode).Group)

	other := smc.Lookup(smc.MustParseKey("Tp0C"))
	assert.Equal(t, "Tp0C", other.Name)
	assert.Equal(t, smc.GroupSystem, other.Group)
}
