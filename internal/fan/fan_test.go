package fan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CristiGvl/smcmon/internal/smc"
	"github.com/CristiGvl/smcmon/internal/smc/smctest"
)

func TestGetFans(t *testing.T) {
	r := NewReader(smc.NewSensors(smc.NewChannel(smctest.Laptop())))

	fans, err := r.GetFans(context.Background())
	require.NoError(t, err)
	require.Len(t, fans, 2)

	assert.Equal(t, &Info{Index: 0, Name: "Fan 0", RPM: 2000, MaxRPM: 6000, Speed: 33}, fans[0])
	assert.Equal(t, &Info{Index: 1, Name: "Fan 1", RPM: 1800, MaxRPM: 6000, Speed: 30}, fans[1])
}

func TestGetFansFanless(t *testing.T) {
	r := NewReader(smc.NewSensors(smc.NewChannel(smctest.NewDriver())))

	fans, err := r.GetFans(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fans)
}

func TestGetFansWithoutMax(t *testing.T) {
	d := smctest.NewDriver().
		Set("FNum", smc.TypeUI8, 1).
		Set("F0Ac", smc.TypeFPE2, 0x07, 0xd0)
	r := NewReader(smc.NewSensors(smc.NewChannel(d)))

	fans, err := r.GetFans(context.Background())
	require.NoError(t, err)
	require.Len(t, fans, 1)
	assert.Equal(t, 500.0, fans[0].RPM)
	assert.Zero(t, fans[0].Speed)
}
