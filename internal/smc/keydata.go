package smc

import (
	"encoding/binary"
	"fmt"
)

// Sizes of the SMCKeyData_t structure exchanged with the AppleSMC user client.
const (
	KeyDataSize = 80
	PayloadSize = 32
)

// IOKit selector used for every SMC request.
const SelectorHandleYPCEvent uint32 = 2

// SMC commands carried in KeyData.Data8.
const (
	CmdReadKey    uint8 = 5
	CmdGetKeyInfo uint8 = 9
)

// ResultKeyNotFound is the SMC result byte for an unknown key.
const ResultKeyNotFound uint8 = 0x84

// Field offsets inside the C structure, natural alignment.
const (
	offKey         = 0
	offVersMajor   = 4
	offVersMinor   = 5
	offVersBuild   = 6
	offVersRelease = 8
	offPLimitVer   = 12
	offPLimitLen   = 14
	offPLimitCPU   = 16
	offPLimitGPU   = 20
	offPLimitMem   = 24
	offDataSize    = 28
	offDataType    = 32
	offDataAttr    = 36
	offResult      = 40
	offStatus      = 41
	offData8       = 42
	offData32      = 44
	offBytes       = 48
)

// Version mirrors SMCKeyData_vers_t.
type Version struct {
	Major, Minor, Build uint8
	Release             uint16
}

// PLimitData mirrors SMCKeyData_pLimitData_t.
type PLimitData struct {
	Version  uint16
	Length   uint16
	CPULimit uint32
	GPULimit uint32
	MemLimit uint32
}

// KeyData mirrors SMCKeyData_t, the single input/output structure of
// every SMC call. MarshalBinary and UnmarshalBinary produce the exact
// 80-byte layout the kernel expects, in host byte order.
type KeyData struct {
	Key        uint32
	Vers       Version
	PLimit     PLimitData
	DataSize   uint32
	DataType   uint32
	Attributes uint8
	Result     uint8
	Status     uint8
	Data8      uint8
	Data32     uint32
	Bytes      [PayloadSize]byte
}

// MarshalBinary encodes k in the C layout.
func (k *KeyData) MarshalBinary() ([]byte, error) {
	buf := make([]byte, KeyDataSize)
	k.put(buf)
	return buf, nil
}

func (k *KeyData) put(buf []byte) {
	order := binary.NativeEndian
	order.PutUint32(buf[offKey:], k.Key)
	buf[offVersMajor] = k.Vers.Major
	buf[offVersMinor] = k.Vers.Minor
	buf[offVersBuild] = k.Vers.Build
	order.PutUint16(buf[offVersRelease:], k.Vers.Release)
	order.PutUint16(buf[offPLimitVer:], k.PLimit.Version)
	order.PutUint16(buf[offPLimitLen:], k.PLimit.Length)
	order.PutUint32(buf[offPLimitCPU:], k.PLimit.CPULimit)
	order.PutUint32(buf[offPLimitGPU:], k.PLimit.GPULimit)
	order.PutUint32(buf[offPLimitMem:], k.PLimit.MemLimit)
	order.PutUint32(buf[offDataSize:], k.DataSize)
	order.PutUint32(buf[offDataType:], k.DataType)
	buf[offDataAttr] = k.Attributes
	buf[offResult] = k.Result
	buf[offStatus] = k.Status
	buf[offData8] = k.Data8
	order.PutUint32(buf[offData32:], k.Data32)
	copy(buf[offBytes:], k.Bytes[:])
}

// UnmarshalBinary decodes an 80-byte SMCKeyData_t.
func (k *KeyData) UnmarshalBinary(buf []byte) error {
	if len(buf) != KeyDataSize {
		return fmt.Errorf("smc: key data is %d bytes, want %d", len(buf), KeyDataSize)
	}
	order := binary.NativeEndian
	k.Key = order.Uint32(buf[offKey:])
	k.Vers = Version{
		Major:   buf[offVersMajor],
		Minor:   buf[offVersMinor],
		Build:   buf[offVersBuild],
		Release: order.Uint16(buf[offVersRelease:]),
	}
	k.PLimit = PLimitData{
		Version:  order.Uint16(buf[offPLimitVer:]),
		Length:   order.Uint16(buf[offPLimitLen:]),
		CPULimit: order.Uint32(buf[offPLimitCPU:]),
		GPULimit: order.Uint32(buf[offPLimitGPU:]),
		MemLimit: order.Uint32(buf[offPLimitMem:]),
	}
	k.DataSize = order.Uint32(buf[offDataSize:])
	k.DataType = order.Uint32(buf[offDataType:])
	k.Attributes = buf[offDataAttr]
	k.Result = buf[offResult]
	k.Status = buf[offStatus]
	k.Data8 = buf[offData8]
	k.Data32 = order.Uint32(buf[offData32:])
	copy(k.Bytes[:], buf[offBytes:offBytes+PayloadSize])
	return nil
}
