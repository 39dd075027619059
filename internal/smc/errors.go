package smc

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceUnavailable means the AppleSMC service could not be found
	// or opened. It is fatal for the session.
	ErrServiceUnavailable = errors.New("smc: service unavailable")

	// ErrChannelClosed is returned by calls made after Close.
	ErrChannelClosed = errors.New("smc: channel closed")

	// ErrCallFailed matches every *CallError.
	ErrCallFailed = errors.New("smc: call failed")

	// ErrTypeMismatch matches every *TypeMismatchError.
	ErrTypeMismatch = errors.New("smc: type mismatch")

	ErrInvalidKey = errors.New("smc: invalid key")
	ErrFanIndex   = errors.New("smc: fan index out of range")
)

// Phase names one half of the two-phase read.
type Phase string

const (
	PhaseKeyInfo Phase = "key-info"
	PhaseRead    Phase = "read"
)

// CallError reports a discovery or read call that did not succeed.
// On most machines this just means the key does not exist.
type CallError struct {
	Key   Key
	Phase Phase
	// Code is the kern_return_t of the IOKit call, or the SMC result byte
	// when the call itself went through.
	Code uint32
	Err  error
}

func (e *CallError) Error() string {
	msg := fmt.Sprintf("smc: %s call for %q failed with code %#x", e.Phase, e.Key, e.Code)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CallError) Is(target error) bool { return target == ErrCallFailed }
func (e *CallError) Unwrap() error        { return e.Err }

// TypeMismatchError reports a reading whose type is not what the caller
// asked for.
type TypeMismatchError struct {
	Key  Key
	Want DataType
	Got  DataType
	Size uint32
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("smc: key %q has type %q (%d bytes), want %q", e.Key, e.Got, e.Size, e.Want)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }
