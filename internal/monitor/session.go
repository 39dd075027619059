package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/CristiGvl/smcmon/internal/config"
	"github.com/CristiGvl/smcmon/internal/cpu"
	"github.com/CristiGvl/smcmon/internal/disk"
	"github.com/CristiGvl/smcmon/internal/fan"
	"github.com/CristiGvl/smcmon/internal/memory"
	"github.com/CristiGvl/smcmon/internal/power"
	"github.com/CristiGvl/smcmon/internal/smc"
	"github.com/CristiGvl/smcmon/internal/temps"
)

// Snapshot is one refresh worth of readings. Sections that are disabled
// are left empty. Battery is nil when the machine has no battery.
type Snapshot struct {
	Timestamp    time.Time         `json:"timestamp"`
	Temperatures *temps.Info       `json:"temperatures,omitempty"`
	CPU          *cpu.Info         `json:"cpu,omitempty"`
	Fans         []*fan.Info       `json:"fans,omitempty"`
	Battery      *power.Descriptor `json:"battery,omitempty"`
	Disk         *disk.Info        `json:"disk,omitempty"`
	Memory       *memory.Info      `json:"memory,omitempty"`
}

// Session owns the SMC channel and every reader for the lifetime of the
// program.
type Session struct {
	cfg     *config.Config
	channel *smc.Channel
	sensors *smc.Sensors
	temps   temps.Reader
	fans    fan.Reader
	cpu     cpu.Reader
	power   power.Source
	disk    disk.Reader
	memory  memory.Reader
	log     *log.Entry
}

// Open connects to the SMC and builds a session with the platform
// readers. Failing to open the SMC is the only fatal error; it wraps
// smc.ErrServiceUnavailable.
func Open(cfg *config.Config) (*Session, error) {
	opts := []smc.Option{smc.WithLogger(log.WithField("package", "smc"))}
	if cfg.CacheKeyInfo {
		opts = append(opts, smc.WithKeyInfoCache())
	}

	ch, err := smc.Open(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open SMC: %w", err)
	}

	s, err := New(cfg, ch, power.NewSource(), disk.NewReader(cfg.DiskPath), memory.NewReader())
	if err != nil {
		ch.Close()
		return nil, err
	}
	s.SetCPUReader(cpu.NewReader(0))
	return s, nil
}

// New builds a session around an open channel.
func New(cfg *config.Config, ch *smc.Channel, src power.Source, d disk.Reader, m memory.Reader) (*Session, error) {
	all, err := cfg.Sensors()
	if err != nil {
		return nil, err
	}

	var selected []smc.Sensor
	for _, s := range all {
		if sectionEnabled(cfg.Sections, s.Group) {
			selected = append(selected, s)
		}
	}

	sensors := smc.NewSensors(ch)
	return &Session{
		cfg:     cfg,
		channel: ch,
		sensors: sensors,
		temps:   temps.NewReader(sensors, selected),
		fans:    fan.NewReader(sensors),
		power:   src,
		disk:    d,
		memory:  m,
		log:     log.WithField("package", "monitor"),
	}, nil
}

func sectionEnabled(s config.Sections, g smc.Group) bool {
	switch g {
	case smc.GroupCPU:
		return s.CPU
	case smc.GroupGPU:
		return s.GPU
	case smc.GroupMemory:
		return s.Memory
	case smc.GroupBattery:
		return s.Battery
	default:
		return true
	}
}

// SetCPUReader adds CPU load to the CPU section. Sessions built with New
// have none.
func (s *Session) SetCPUReader(r cpu.Reader) {
	s.cpu = r
}

// Sensors returns the typed SMC reads of the session.
func (s *Session) Sensors() *smc.Sensors {
	return s.sensors
}

// Channel returns the session's SMC channel.
func (s *Session) Channel() *smc.Channel {
	return s.channel
}

// ErrSectionDisabled is returned by the section reads for a section the
// configuration turned off.
var ErrSectionDisabled = errors.New("section disabled")

// ErrUnavailable is returned when an enabled section has no reading on
// this machine.
var ErrUnavailable = errors.New("reading unavailable")

func (s *Session) tempsEnabled() bool {
	sec := s.cfg.Sections
	return sec.CPU || sec.GPU || sec.Memory || sec.Battery
}

// Temperatures reads the configured temperature sensors.
func (s *Session) Temperatures(ctx context.Context) (*temps.Info, error) {
	if !s.tempsEnabled() {
		return nil, ErrSectionDisabled
	}
	return s.temps.GetInfo(ctx)
}

// Fans reads every installed fan.
func (s *Session) Fans(ctx context.Context) ([]*fan.Info, error) {
	if !s.cfg.Sections.Fans {
		return nil, ErrSectionDisabled
	}
	return s.fans.GetFans(ctx)
}

// Battery queries the power source. A machine without a battery returns
// nil and no error.
func (s *Session) Battery(ctx context.Context) (*power.Descriptor, error) {
	if !s.cfg.Sections.Battery {
		return nil, ErrSectionDisabled
	}
	return s.power.Query(ctx)
}

// CPU reads CPU load.
func (s *Session) CPU(ctx context.Context) (*cpu.Info, error) {
	if !s.cfg.Sections.CPU {
		return nil, ErrSectionDisabled
	}
	if s.cpu == nil {
		return nil, ErrUnavailable
	}
	c, err := s.cpu.GetInfo(ctx)
	return present(c, err)
}

// Disk reads disk usage.
func (s *Session) Disk(ctx context.Context) (*disk.Info, error) {
	if !s.cfg.Sections.Disk {
		return nil, ErrSectionDisabled
	}
	d, err := s.disk.GetInfo(ctx)
	return present(d, err)
}

// Memory reads memory usage.
func (s *Session) Memory(ctx context.Context) (*memory.Info, error) {
	if !s.cfg.Sections.Memory {
		return nil, ErrSectionDisabled
	}
	m, err := s.memory.GetInfo(ctx)
	return present(m, err)
}

func present[T any](v *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrUnavailable
	}
	return v, nil
}

// Collect reads every enabled section. Individual readers that fail are
// logged and left out of the snapshot; only a cancelled context fails the
// whole collection.
func (s *Session) Collect(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Timestamp: time.Now()}
	sec := s.cfg.Sections

	if s.tempsEnabled() {
		info, err := s.Temperatures(ctx)
		if err != nil {
			return nil, err
		}
		snap.Temperatures = info
	}

	if sec.CPU && s.cpu != nil {
		c, err := s.CPU(ctx)
		s.warn(err, "failed to read CPU usage")
		snap.CPU = c
	}

	if sec.Fans {
		fans, err := s.Fans(ctx)
		if err != nil {
			return nil, err
		}
		snap.Fans = fans
	}

	if sec.Battery {
		d, err := s.Battery(ctx)
		s.warn(err, "failed to read power source")
		snap.Battery = d
	}

	if sec.Disk {
		d, err := s.Disk(ctx)
		s.warn(err, "failed to read disk usage")
		snap.Disk = d
	}

	if sec.Memory {
		m, err := s.Memory(ctx)
		s.warn(err, "failed to read memory usage")
		snap.Memory = m
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Session) warn(err error, msg string) {
	if err != nil && !errors.Is(err, ErrUnavailable) {
		s.log.WithError(err).Warn(msg)
	}
}

// Watch collects a snapshot immediately and then every interval, handing
// each to fn, until ctx is done.
func (s *Session) Watch(ctx context.Context, interval time.Duration, fn func(*Snapshot)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		snap, err := s.Collect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fn(snap)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Close releases the SMC channel.
func (s *Session) Close() error {
	return s.channel.Close()
}
