//go:build darwin

package smc

/*
#cgo LDFLAGS: -framework IOKit -framework CoreFoundation
#include <IOKit/IOKitLib.h>
#include <mach/mach.h>

static kern_return_t smc_open(io_connect_t *conn) {
	io_iterator_t iterator = 0;
	kern_return_t result = IOServiceGetMatchingServices(MACH_PORT_NULL, IOServiceMatching("AppleSMC"), &iterator);
	if (result != kIOReturnSuccess) {
		return result;
	}

	io_object_t device = IOIteratorNext(iterator);
	IOObjectRelease(iterator);
	if (device == 0) {
		return kIOReturnNotFound;
	}

	result = IOServiceOpen(device, mach_task_self(), 0, conn);
	IOObjectRelease(device);
	return result;
}

static kern_return_t smc_call(io_connect_t conn, uint32_t selector, void *in, size_t inSize, void *out, size_t *outSize) {
	return IOConnectCallStructMethod(conn, selector, in, inSize, out, outSize);
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// iokitDriver talks to the AppleSMC user client through IOKit.
type iokitDriver struct {
	conn C.io_connect_t
}

// openPlatformDriver locates the first AppleSMC service and opens a connection to it
func openPlatformDriver() (Driver, error) {
	var conn C.io_connect_t
	if kr := C.smc_open(&conn); kr != C.KERN_SUCCESS {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, KernReturn(uint32(kr)))
	}
	return &iokitDriver{conn: conn}, nil
}

func (d *iokitDriver) Call(selector uint32, in, out []byte) error {
	if len(in) != KeyDataSize || len(out) != KeyDataSize {
		return fmt.Errorf("smc: call buffers must be %d bytes", KeyDataSize)
	}
	outSize := C.size_t(len(out))
	kr := C.smc_call(d.conn, C.uint32_t(selector),
		unsafe.Pointer(&in[0]), C.size_t(len(in)),
		unsafe.Pointer(&out[0]), &outSize)
	if kr != C.KERN_SUCCESS {
		return KernReturn(uint32(kr))
	}
	return nil
}

func (d *iokitDriver) Close() error {
	if kr := C.IOServiceClose(d.conn); kr != C.KERN_SUCCESS {
		return KernReturn(uint32(kr))
	}
	return nil
}
