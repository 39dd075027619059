package smc

import "encoding/binary"

// Reading is a decoded SMC value. It is one of TemperatureReading,
// FanSpeedReading, CountReading or Unrecognized.
type Reading interface {
	dataType() DataType
}

// TemperatureReading is an sp78 value in degrees Celsius.
type TemperatureReading struct {
	Celsius float64
}

// FanSpeedReading is an fpe2 value in rpm.
type FanSpeedReading struct {
	RPM float64
}

// CountReading is an unsigned integer or flag value.
type CountReading struct {
	Type  DataType
	Count uint32
}

// Unrecognized carries the type and size of a payload that was not
// decoded. Its bytes are never interpreted.
type Unrecognized struct {
	Type DataType
	Size uint32
}

func (TemperatureReading) dataType() DataType { return TypeSP78 }
func (FanSpeedReading) dataType() DataType    { return TypeFPE2 }
func (r CountReading) dataType() DataType     { return r.Type }
func (r Unrecognized) dataType() DataType     { return r.Type }

// widths lists the only payload sizes accepted for each known type.
var widths = map[DataType]uint32{
	TypeSP78: 2,
	TypeFPE2: 2,
	TypeUI8:  1,
	TypeUI16: 2,
	TypeUI32: 4,
	TypeFlag: 1,
}

// Decode interprets v according to its reported type tag. A zero size,
// an unknown tag, or a size that does not match the tag yields
// Unrecognized.
func Decode(v Value) Reading {
	t := v.Info.DataType
	want, known := widths[t]
	if !known || v.Info.DataSize != want || uint32(len(v.Bytes)) < want {
		return Unrecognized{Type: t, Size: v.Info.DataSize}
	}

	b := v.Bytes
	switch t {
	case TypeSP78:
		// signed 8.8 fixed point
		return TemperatureReading{Celsius: float64(int16(binary.BigEndian.Uint16(b))) / 256.0}
	case TypeFPE2:
		// unsigned 14.2 fixed point
		return FanSpeedReading{RPM: float64(binary.BigEndian.Uint16(b)) / 4.0}
	case TypeUI8, TypeFlag:
		return CountReading{Type: t, Count: uint32(b[0])}
	case TypeUI16:
		return CountReading{Type: t, Count: uint32(binary.BigEndian.Uint16(b))}
	case TypeUI32:
		return CountReading{Type: t, Count: binary.BigEndian.Uint32(b)}
	}
	return Unrecognized{Type: t, Size: v.Info.DataSize}
}
