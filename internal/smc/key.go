package smc

import (
	"encoding/binary"
	"fmt"
)

// Key is a four-character SMC key such as "TC0P" or "F0Ac".
type Key [4]byte

// ParseKey validates s and returns it as a Key.
// The key must be exactly four printable ASCII characters.
func ParseKey(s string) (Key, error) {
	var k Key
	if len(s) != len(k) {
		return k, fmt.Errorf("%w: %q must be 4 characters", ErrInvalidKey, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return k, fmt.Errorf("%w: %q contains a non-printable byte at %d", ErrInvalidKey, s, i)
		}
		k[i] = s[i]
	}
	return k, nil
}

// MustParseKey is like ParseKey but panics on an invalid key.
// It is meant for the static catalog.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// KeyFromPacked unpacks a big-endian packed key.
func KeyFromPacked(v uint32) Key {
	var k Key
	binary.BigEndian.PutUint32(k[:], v)
	return k
}

// Packed returns the key packed into a big-endian uint32, first character
// in the most significant byte.
func (k Key) Packed() uint32 {
	return binary.BigEndian.Uint32(k[:])
}

func (k Key) String() string {
	return string(k[:])
}

// Encode packs a four-character key into its 32-bit form.
func Encode(s string) (uint32, error) {
	k, err := ParseKey(s)
	if err != nil {
		return 0, err
	}
	return k.Packed(), nil
}

// DecodeKey unpacks a 32-bit key or type tag into its four characters.
func DecodeKey(v uint32) string {
	return KeyFromPacked(v).String()
}

// DataType is the four-character type tag the SMC reports for a key.
type DataType string

const (
	TypeSP78 DataType = "sp78"
	TypeFPE2 DataType = "fpe2"
	TypeUI8  DataType = "ui8 "
	TypeUI16 DataType = "ui16"
	TypeUI32 DataType = "ui32"
	TypeFlag DataType = "flag"
)

// KeyInfo is the size and type of a key's payload, learned by the
// discovery call.
type KeyInfo struct {
	DataSize   uint32   `json:"data_size"`
	DataType   DataType `json:"data_type"`
	Attributes uint8    `json:"attributes"`
}
