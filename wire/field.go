package wire

// Field helpers write a parsed value through a pointer and mark a presence
// flag; the repeated variants append to a caller-provided slice. Generated
// decode routines dispatch to these from their field-number switch.

type integral interface {
	~int32 | ~int64 | ~uint32 | ~uint64
}

type byteArray interface {
	~string | ~[]byte
}

// ParseIntegralField parses one integral value into field, truncating the
// raw 64-bit word to the field's width.
func ParseIntegralField[T integral](d *Decoder, wireType WireType, field *T, hasField *bool) error {
	value, err := d.ParseIntegralValue(wireType)
	if err != nil {
		return err
	}

	*field = T(value)
	if hasField != nil {
		*hasField = true
	}
	return nil
}

// ParseRepeatedIntegralField appends one integral value to field.
func ParseRepeatedIntegralField[T integral](d *Decoder, wireType WireType, field *[]T) error {
	value, err := d.ParseIntegralValue(wireType)
	if err != nil {
		return err
	}

	*field = append(*field, T(value))
	return nil
}

// ParseZigzagField parses one zigzag-encoded signed value into field.
func ParseZigzagField[T ~int32 | ~int64](d *Decoder, wireType WireType, field *T, hasField *bool) error {
	value, err := d.ParseZigzagValue(wireType)
	if err != nil {
		return err
	}

	*field = T(value)
	if hasField != nil {
		*hasField = true
	}
	return nil
}

// ParseRepeatedZigzagField appends one zigzag-encoded signed value to field.
func ParseRepeatedZigzagField[T ~int32 | ~int64](d *Decoder, wireType WireType, field *[]T) error {
	value, err := d.ParseZigzagValue(wireType)
	if err != nil {
		return err
	}

	*field = append(*field, T(value))
	return nil
}

// ParseBoolField parses one varint-carried boolean into field. Any non-zero
// value is true.
func ParseBoolField(d *Decoder, wireType WireType, field *bool, hasField *bool) error {
	value, err := d.ParseIntegralValue(wireType)
	if err != nil {
		return err
	}

	*field = value != 0
	if hasField != nil {
		*hasField = true
	}
	return nil
}

// ParseRepeatedBoolField appends one boolean to field.
func ParseRepeatedBoolField(d *Decoder, wireType WireType, field *[]bool) error {
	value, err := d.ParseIntegralValue(wireType)
	if err != nil {
		return err
	}

	*field = append(*field, value != 0)
	return nil
}

// ParseFloatField parses one floating-point value into field.
func ParseFloatField[T ~float32 | ~float64](d *Decoder, wireType WireType, field *T, hasField *bool) error {
	value, err := ParseFloatValue[T](d, wireType)
	if err != nil {
		return err
	}

	*field = value
	if hasField != nil {
		*hasField = true
	}
	return nil
}

// ParseRepeatedFloatField appends one floating-point value to field.
func ParseRepeatedFloatField[T ~float32 | ~float64](d *Decoder, wireType WireType, field *[]T) error {
	value, err := ParseFloatValue[T](d, wireType)
	if err != nil {
		return err
	}

	*field = append(*field, value)
	return nil
}

// ParseBytesField parses one length-delimited value into field. String
// targets always own their storage; byte-slice targets follow the
// ParseBytesValue view contract.
func ParseBytesField[T byteArray](d *Decoder, wireType WireType, field *T, hasField *bool) error {
	value, err := d.ParseBytesValue(wireType)
	if err != nil {
		return err
	}

	*field = T(value)
	if hasField != nil {
		*hasField = true
	}
	return nil
}

// ParseRepeatedBytesField appends one length-delimited value to field.
func ParseRepeatedBytesField[T byteArray](d *Decoder, wireType WireType, field *[]T) error {
	value, err := d.ParseBytesValue(wireType)
	if err != nil {
		return err
	}

	*field = append(*field, T(value))
	return nil
}

// ParseMessageField decodes one embedded message into field through a
// sub-decoder. Errors from the sub-decoder propagate unmodified.
func ParseMessageField[M Decodable](d *Decoder, wireType WireType, field M, hasField *bool) error {
	sub, err := d.ParseMessageValue(wireType)
	if err != nil {
		return err
	}

	if err := field.Decode(sub); err != nil {
		return err
	}
	if hasField != nil {
		*hasField = true
	}
	return nil
}

// ParseRepeatedMessageField decodes one embedded message and appends it to
// field.
func ParseRepeatedMessageField[M any, PM interface {
	Decodable
	*M
}](d *Decoder, wireType WireType, field *[]M) error {
	sub, err := d.ParseMessageValue(wireType)
	if err != nil {
		return err
	}

	var value M
	if err := PM(&value).Decode(sub); err != nil {
		return err
	}
	*field = append(*field, value)
	return nil
}
