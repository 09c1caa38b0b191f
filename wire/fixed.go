package wire

import (
	"encoding/binary"
	"math"
)

// Fixed-width reads are defined little-endian regardless of host order.

// DecodeFixed32 decodes a 32-bit fixed-width value
func (d *Decoder) DecodeFixed32() (uint32, error) {
	if d.Remaining() < 4 {
		return 0, ErrUnexpectedEOF
	}

	value := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return value, nil
}

// DecodeFixed64 decodes a 64-bit fixed-width value
func (d *Decoder) DecodeFixed64() (uint64, error) {
	if d.Remaining() < 8 {
		return 0, ErrUnexpectedEOF
	}

	value := binary.LittleEndian.Uint64(d.buf[d.pos:])
	d.pos += 8
	return value, nil
}

// DecodeSfixed32 decodes a signed 32-bit fixed-width value. The unsigned
// little-endian word is reinterpreted as two's complement of the same width.
func (d *Decoder) DecodeSfixed32() (int32, error) {
	v, err := d.DecodeFixed32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// DecodeSfixed64 decodes a signed 64-bit fixed-width value
func (d *Decoder) DecodeSfixed64() (int64, error) {
	v, err := d.DecodeFixed64()
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// DecodeFloat32 decodes a 32-bit float from fixed32 data
func (d *Decoder) DecodeFloat32() (float32, error) {
	v, err := d.DecodeFixed32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// DecodeFloat64 decodes a 64-bit float from fixed64 data
func (d *Decoder) DecodeFloat64() (float64, error) {
	v, err := d.DecodeFixed64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}
