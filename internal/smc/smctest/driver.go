// Package smctest provides an in-memory SMC for tests.
package smctest

import (
	"fmt"
	"sync"

	"github.com/CristiGvl/smcmon/internal/smc"
)

type entry struct {
	dataType smc.DataType
	size     uint32
	bytes    []byte
}

// Driver is a fake smc.Driver. It decodes the real KeyData frames sent by
// smc.Channel and answers from a table of keys.
type Driver struct {
	mu       sync.Mutex
	keys     map[smc.Key]entry
	failKern map[smc.Key]smc.KernReturn
	failRead map[smc.Key]bool
	closed   bool

	// Calls counts structured calls by SMC command.
	Calls map[uint8]int
	// Closes counts Close calls.
	Closes int
}

// NewDriver returns an empty fake SMC.
func NewDriver() *Driver {
	return &Driver{
		keys:     make(map[smc.Key]entry),
		failKern: make(map[smc.Key]smc.KernReturn),
		failRead: make(map[smc.Key]bool),
		Calls:    make(map[uint8]int),
	}
}

// Set registers key with its type tag and payload. The reported data size
// is len(payload).
func (d *Driver) Set(key string, t smc.DataType, payload ...byte) *Driver {
	return d.SetSized(key, t, uint32(len(payload)), payload...)
}

// SetSized registers key with an explicit reported data size.
func (d *Driver) SetSized(key string, t smc.DataType, size uint32, payload ...byte) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys[smc.MustParseKey(key)] = entry{dataType: t, size: size, bytes: payload}
	return d
}

// FailKern makes every call for key return a kern_return error.
func (d *Driver) FailKern(key string, kr smc.KernReturn) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failKern[smc.MustParseKey(key)] = kr
	return d
}

// FailRead makes the read phase for key fail after a successful
// discovery.
func (d *Driver) FailRead(key string) *Driver {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failRead[smc.MustParseKey(key)] = true
	return d
}

// Call implements smc.Driver.
func (d *Driver) Call(selector uint32, in, out []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return smc.KernIOReturnError
	}
	if selector != smc.SelectorHandleYPCEvent {
		return fmt.Errorf("smctest: unexpected selector %d", selector)
	}

	var req smc.KeyData
	if err := req.UnmarshalBinary(in); err != nil {
		return err
	}
	d.Calls[req.Data8]++

	key := smc.KeyFromPacked(req.Key)
	if kr, ok := d.failKern[key]; ok {
		return kr
	}

	resp := smc.KeyData{Key: req.Key}
	e, ok := d.keys[key]
	switch {
	case !ok:
		resp.Result = smc.ResultKeyNotFound
	case req.Data8 == smc.CmdGetKeyInfo:
		packed, err := smc.Encode(string(e.dataType))
		if err != nil {
			return err
		}
		resp.DataSize = e.size
		resp.DataType = packed
	case req.Data8 == smc.CmdReadKey:
		if d.failRead[key] {
			resp.Result = 0x82
			break
		}
		if req.DataSize != e.size {
			return fmt.Errorf("smctest: read of %q with size %d, discovered %d", key, req.DataSize, e.size)
		}
		copy(resp.Bytes[:], e.bytes)
	default:
		return fmt.Errorf("smctest: unsupported command %d", req.Data8)
	}

	buf, err := resp.MarshalBinary()
	if err != nil {
		return err
	}
	copy(out, buf)
	return nil
}

// Close implements smc.Driver.
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closes++
	d.closed = true
	return nil
}

// Laptop returns a fake SMC populated like a two-fan portable: CPU at
// 42.25 °C, GPU at 50.5 °C, memory at 38 °C, battery at 31 °C, fans at
// 2000 and 1800 rpm with a 6000 rpm maximum.
func Laptop() *Driver {
	return NewDriver().
		Set("TC0P", smc.TypeSP78, 0x2a, 0x40).
		Set("TG0P", smc.TypeSP78, 0x32, 0x80).
		Set("TM0P", smc.TypeSP78, 0x26, 0x00).
		Set("TB0T", smc.TypeSP78, 0x1f, 0x00).
		Set("FNum", smc.TypeUI8, 0x02).
		Set("F0Ac", smc.TypeFPE2, 0x1f, 0x40).
		Set("F1Ac", smc.TypeFPE2, 0x1c, 0x20).
		Set("F0Mx", smc.TypeFPE2, 0x5d, 0xc0).
		Set("F1Mx", smc.TypeFPE2, 0x5d, 0xc0)
}
