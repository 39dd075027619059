package smc

import "fmt"

// Driver performs one structured call against the SMC user client.
// in and out are KeyDataSize bytes long. Implementations need not be
// safe for concurrent use; Channel serialises calls.
type Driver interface {
	Call(selector uint32, in, out []byte) error
	Close() error
}

// KernReturn is a non-success kern_return_t reported by IOKit.
type KernReturn uint32

func (r KernReturn) Error() string {
	return fmt.Sprintf("kern_return %#08x", uint32(r))
}

// Common kern_return_t values.
const (
	KernSuccess       KernReturn = 0
	KernIOReturnError KernReturn = 0xe00002bc
	KernNotFound      KernReturn = 0xe00002f0
)
