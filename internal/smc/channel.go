package smc

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Channel is an open connection to the SMC. All reads of a session go
// through one Channel; it serialises the two-phase exchange so it may be
// shared between goroutines.
type Channel struct {
	mu     sync.Mutex
	driver Driver
	cache  map[Key]KeyInfo
	log    *log.Entry
}

// Option configures a Channel.
type Option func(*Channel)

// WithKeyInfoCache remembers discovery results per key for the lifetime
// of the channel. A key's size and type do not change within a session.
func WithKeyInfoCache() Option {
	return func(c *Channel) {
		c.cache = make(map[Key]KeyInfo)
	}
}

// WithLogger sets the logger used for per-key diagnostics.
func WithLogger(l *log.Entry) Option {
	return func(c *Channel) {
		c.log = l
	}
}

// Open connects to the platform SMC service. The returned error wraps
// ErrServiceUnavailable when no service could be opened.
func Open(opts ...Option) (*Channel, error) {
	d, err := openPlatformDriver()
	if err != nil {
		return nil, err
	}
	return NewChannel(d, opts...), nil
}

// NewChannel wraps an already open driver.
func NewChannel(d Driver, opts ...Option) *Channel {
	c := &Channel{
		driver: d,
		log:    log.WithField("package", "smc"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the connection. Calling Close twice returns
// ErrChannelClosed.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.driver == nil {
		return ErrChannelClosed
	}
	err := c.driver.Close()
	c.driver = nil
	c.cache = nil
	return err
}
