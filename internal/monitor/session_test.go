package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CristiGvl/smcmon/internal/config"
	"github.com/CristiGvl/smcmon/internal/cpu"
	"github.com/CristiGvl/smcmon/internal/disk"
	"github.com/CristiGvl/smcmon/internal/memory"
	"github.com/CristiGvl/smcmon/internal/power"
	"github.com/CristiGvl/smcmon/internal/smc"
	"github.com/CristiGvl/smcmon/internal/smc/smctest"
)

type fakePower struct {
	d   *power.Descriptor
	err error
}

func (f fakePower) Query(ctx context.Context) (*power.Descriptor, error) { return f.d, f.err }

type fakeCPU struct{ err error }

func (f fakeCPU) GetInfo(ctx context.Context) (*cpu.Info, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &cpu.Info{Model: "Test CPU", Cores: 4, Threads: 8, Usage: 12.5}, nil
}

type fakeDisk struct{}

func (fakeDisk) GetInfo(ctx context.Context) (*disk.Info, error) {
	return &disk.Info{Path: "/", Total: 500, Used: 125, Available: 375, Usage: 25}, nil
}

type fakeMemory struct{ err error }

func (f fakeMemory) GetInfo(ctx context.Context) (*memory.Info, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &memory.Info{Total: 16, Used: 8, Available: 8, Usage: 50}, nil
}

func newSession(t *testing.T, cfg *config.Config, d *smctest.Driver, src power.Source, m memory.Reader) *Session {
	t.Helper()
	s, err := New(cfg, smc.NewChannel(d), src, fakeDisk{}, m)
	require.NoError(t, err)
	return s
}

func TestCollect(t *testing.T) {
	battery := &power.Descriptor{CurrentCapacityPercent: 80, TimeToEmptyMinutes: power.TimeEstimating}
	s := newSession(t, config.Default(), smctest.Laptop(), fakePower{d: battery}, fakeMemory{})
	defer s.Close()

	snap, err := s.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 42.25, snap.Temperatures.First(smc.GroupCPU).Temperature)
	assert.Equal(t, 50.5, snap.Temperatures.First(smc.GroupGPU).Temperature)
	assert.Equal(t, 38.0, snap.Temperatures.First(smc.GroupMemory).Temperature)
	assert.Equal(t, 31.0, snap.Temperatures.First(smc.GroupBattery).Temperature)
	require.Len(t, snap.Fans, 2)
	assert.Equal(t, 2000.0, snap.Fans[0].RPM)
	assert.Equal(t, battery, snap.Battery)
	assert.Equal(t, -1, snap.Battery.TimeToEmptyMinutes)
	assert.Equal(t, 25.0, snap.Disk.Usage)
	assert.Equal(t, 50.0, snap.Memory.Usage)
}

func TestCollectSelectedSections(t *testing.T) {
	cfg := config.Default()
	cfg.Sections = config.Sections{CPU: true}
	s := newSession(t, cfg, smctest.Laptop(), fakePower{}, fakeMemory{})

	snap, err := s.Collect(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap.Temperatures.CPU, 1)
	assert.Empty(t, snap.Temperatures.GPU)
	assert.Empty(t, snap.Temperatures.Battery)
	assert.Nil(t, snap.Fans)
	assert.Nil(t, snap.Battery)
	assert.Nil(t, snap.Disk)
	assert.Nil(t, snap.Memory)
}

func TestCollectDegradesPerReader(t *testing.T) {
	s := newSession(t, config.Default(), smctest.NewDriver(),
		fakePower{err: errors.New("power service down")},
		fakeMemory{err: errors.New("no vm stats")})

	snap, err := s.Collect(context.Background())
	require.NoError(t, err)

	proximity := snap.Temperatures.CPU[0]
	assert.False(t, proximity.Available)
	assert.Equal(t, 0.0, proximity.Temperature)
	assert.Empty(t, snap.Fans)
	assert.Nil(t, snap.Battery)
	assert.Nil(t, snap.Memory)
	assert.NotNil(t, snap.Disk)
}

func TestCollectCPULoad(t *testing.T) {
	s := newSession(t, config.Default(), smctest.Laptop(), fakePower{}, fakeMemory{})
	defer s.Close()

	snap, err := s.Collect(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.CPU)

	s.SetCPUReader(fakeCPU{})
	snap, err = s.Collect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap.CPU)
	assert.Equal(t, 12.5, snap.CPU.Usage)

	s.SetCPUReader(fakeCPU{err: errors.New("no cpu stats")})
	snap, err = s.Collect(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap.CPU)
	assert.NotNil(t, snap.Temperatures)
}

func TestSectionReads(t *testing.T) {
	cfg := config.Default()
	cfg.Sections = config.Sections{Fans: true, Disk: true}
	d := smctest.Laptop()
	s := newSession(t, cfg, d, fakePower{}, fakeMemory{})
	defer s.Close()
	ctx := context.Background()

	fans, err := s.Fans(ctx)
	require.NoError(t, err)
	assert.Len(t, fans, 2)

	info, err := s.Disk(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25.0, info.Usage)

	_, err = s.Temperatures(ctx)
	assert.ErrorIs(t, err, ErrSectionDisabled)
	_, err = s.Battery(ctx)
	assert.ErrorIs(t, err, ErrSectionDisabled)
	_, err = s.Memory(ctx)
	assert.ErrorIs(t, err, ErrSectionDisabled)
	_, err = s.CPU(ctx)
	assert.ErrorIs(t, err, ErrSectionDisabled)
}

func TestSectionReadsUnavailable(t *testing.T) {
	s := newSession(t, config.Default(), smctest.Laptop(), fakePower{}, fakeMemory{})
	defer s.Close()

	_, err := s.CPU(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	d, err := s.Battery(context.Background())
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestMissingKeyThenClose(t *testing.T) {
	d := smctest.NewDriver()
	s := newSession(t, config.Default(), d, fakePower{}, fakeMemory{})

	assert.Equal(t, 0.0, s.Sensors().Temperature(smc.CPU0Proximity))
	require.NoError(t, s.Close())
	assert.Equal(t, 1, d.Closes)
}

func TestWatchStopsOnCancel(t *testing.T) {
	s := newSession(t, config.Default(), smctest.Laptop(), fakePower{}, fakeMemory{})
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var snaps int
	err := s.Watch(ctx, 5*time.Millisecond, func(*Snapshot) {
		snaps++
		if snaps == 3 {
			cancel()
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 3, snaps)
}

func TestNewRejectsBadKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Temperatures.CPU = []string{"bad"}

	_, err := New(cfg, smc.NewChannel(smctest.Laptop()), fakePower{}, fakeDisk{}, fakeMemory{})
	assert.ErrorIs(t, err, smc.ErrInvalidKey)
}
