package wire

// Value parsers route a (domain, wire type) pair to the primitive readers.
// Callers narrow the raw result to the field's declared width by truncation.

// ParseIntegralValue parses one integral value. Varint yields the raw 64-bit
// word; fixed32 is zero-extended; fixed64 is taken verbatim.
func (d *Decoder) ParseIntegralValue(wireType WireType) (uint64, error) {
	switch wireType {
	case WireVarint:
		return d.DecodeVarint()
	case WireFixed64:
		return d.DecodeFixed64()
	case WireFixed32:
		v, err := d.DecodeFixed32()
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	default:
		return 0, &TypeMismatchError{Domain: "integral", WireType: wireType}
	}
}

// ParseZigzagValue parses one zigzag-encoded signed value. A varint is
// zigzag-decoded; fixed-width values are reinterpreted as signed directly.
func (d *Decoder) ParseZigzagValue(wireType WireType) (int64, error) {
	switch wireType {
	case WireVarint:
		v, err := d.DecodeVarint()
		if err != nil {
			return 0, err
		}
		return DecodeZigZag64(v), nil
	case WireFixed64:
		return d.DecodeSfixed64()
	case WireFixed32:
		v, err := d.DecodeSfixed32()
		if err != nil {
			return 0, err
		}
		return int64(v), nil
	default:
		return 0, &TypeMismatchError{Domain: "zigzag", WireType: wireType}
	}
}

// ParseFloatValue parses one IEEE-754 value: fixed32 as float32, fixed64 as
// float64, converted to the requested width.
func ParseFloatValue[T ~float32 | ~float64](d *Decoder, wireType WireType) (T, error) {
	switch wireType {
	case WireFixed64:
		v, err := d.DecodeFloat64()
		if err != nil {
			return 0, err
		}
		return T(v), nil
	case WireFixed32:
		v, err := d.DecodeFloat32()
		if err != nil {
			return 0, err
		}
		return T(v), nil
	default:
		return 0, &TypeMismatchError{Domain: "fp", WireType: wireType}
	}
}
