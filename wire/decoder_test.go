package wire

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"testing"
)

// appendVarint encodes v for building test inputs.
func appendVarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

func TestDecodeVarint(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected uint64
		err      error
	}{
		{"zero", []byte{0x00}, 0, nil},
		{"one", []byte{0x01}, 1, nil},
		{"single_byte_max", []byte{0x7F}, 127, nil},
		{"two_bytes", []byte{0x80, 0x01}, 128, nil},
		{"uint64_max", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}, math.MaxUint64, nil},
		{"eleven_bytes", []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}, 0, ErrVarintTooLong},
		{"empty", []byte{}, 0, ErrUnexpectedEOF},
		{"truncated", []byte{0x80}, 0, ErrUnexpectedEOF},
		{"truncated_long", []byte{0xFF, 0xFF, 0xFF}, 0, ErrUnexpectedEOF},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := NewDecoder(test.input)
			v, err := d.DecodeVarint()
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Fatalf("expected error %v, got %v", test.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v != test.expected {
				t.Errorf("expected %d, got %d", test.expected, v)
			}
			if d.Remaining() != 0 {
				t.Errorf("expected all %d bytes consumed, %d remain", len(test.input), d.Remaining())
			}
		})
	}
}

func TestDecodeZigZag(t *testing.T) {
	tests := []struct {
		encoded  uint64
		expected int64
	}{
		{0, 0},
		{1, -1},
		{2, 1},
		{3, -2},
		{4294967294, 2147483647},
		{4294967295, -2147483648},
	}

	for _, test := range tests {
		if got := DecodeZigZag64(test.encoded); got != test.expected {
			t.Errorf("DecodeZigZag64(%d): expected %d, got %d", test.encoded, test.expected, got)
		}
		if got := DecodeZigZag32(test.encoded); got != int32(test.expected) {
			t.Errorf("DecodeZigZag32(%d): expected %d, got %d", test.encoded, int32(test.expected), got)
		}
	}
}

func TestNextField(t *testing.T) {
	t.Run("empty_window", func(t *testing.T) {
		d := NewDecoder(nil)
		_, _, ok, err := d.NextField()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected end of stream on empty window")
		}
	})

	t.Run("tag_split", func(t *testing.T) {
		d := NewDecoder([]byte{0x08, 0x2A})
		num, wt, ok, err := d.NextField()
		if err != nil || !ok {
			t.Fatalf("expected field, got ok=%v err=%v", ok, err)
		}
		if num != 1 || wt != WireVarint {
			t.Errorf("expected field 1 varint, got field %d wire type %v", num, wt)
		}
		if MakeTag(num, wt) != 0x08 {
			t.Errorf("tag must round-trip, got %#x", MakeTag(num, wt))
		}
	})

	t.Run("end_after_last_field", func(t *testing.T) {
		d := NewDecoder([]byte{0x08, 0x2A})
		if _, _, _, err := d.NextField(); err != nil {
			t.Fatal(err)
		}
		if err := d.Skip(WireVarint); err != nil {
			t.Fatal(err)
		}
		_, _, ok, err := d.NextField()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected end of stream")
		}
		if d.Remaining() != 0 {
			t.Errorf("cursor must sit at window end, %d bytes remain", d.Remaining())
		}
	})

	t.Run("partial_tag", func(t *testing.T) {
		d := NewDecoder([]byte{0x80})
		_, _, _, err := d.NextField()
		if !errors.Is(err, ErrUnexpectedEOF) {
			t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
		}
	})
}

func TestSkip(t *testing.T) {
	tests := []struct {
		name      string
		wireType  WireType
		input     []byte
		remaining int
		err       error
	}{
		{"varint", WireVarint, []byte{0xAC, 0x02, 0x55}, 1, nil},
		{"fixed64", WireFixed64, []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}, 1, nil},
		{"fixed32", WireFixed32, []byte{1, 2, 3, 4, 5}, 1, nil},
		{"bytes", WireBytes, []byte{0x03, 0xAA, 0xBB, 0xCC, 0xDD}, 1, nil},
		{"bytes_truncated", WireBytes, []byte{0x05, 0xAA}, 0, ErrUnexpectedEOF},
		{"fixed64_truncated", WireFixed64, []byte{1, 2, 3}, 0, ErrUnexpectedEOF},
		{"start_group", WireStartGroup, []byte{0x01}, 0, &UnsupportedWireTypeError{WireType: WireStartGroup}},
		{"end_group", WireEndGroup, []byte{0x01}, 0, &UnsupportedWireTypeError{WireType: WireEndGroup}},
		{"out_of_range", WireType(7), []byte{0x01}, 0, &UnsupportedWireTypeError{WireType: WireType(7)}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := NewDecoder(test.input)
			err := d.Skip(test.wireType)
			if test.err != nil {
				if err == nil {
					t.Fatal("expected error")
				}
				var unsupported *UnsupportedWireTypeError
				if errors.As(test.err, &unsupported) {
					var got *UnsupportedWireTypeError
					if !errors.As(err, &got) || got.WireType != unsupported.WireType {
						t.Fatalf("expected %v, got %v", test.err, err)
					}
					return
				}
				if !errors.Is(err, test.err) {
					t.Fatalf("expected %v, got %v", test.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Remaining() != test.remaining {
				t.Errorf("expected %d bytes remaining after skip, got %d", test.remaining, d.Remaining())
			}
		})
	}
}

func TestParseIntegralValue(t *testing.T) {
	tests := []struct {
		name     string
		wireType WireType
		input    []byte
		expected uint64
	}{
		{"varint", WireVarint, []byte{0xAC, 0x02}, 300},
		{"fixed64", WireFixed64, []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80}, 0x8000000000000001},
		{"fixed32_zero_extended", WireFixed32, []byte{0xFF, 0xFF, 0xFF, 0xFF}, 0xFFFFFFFF},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := NewDecoder(test.input)
			v, err := d.ParseIntegralValue(test.wireType)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v != test.expected {
				t.Errorf("expected %#x, got %#x", test.expected, v)
			}
		})
	}

	t.Run("type_mismatch", func(t *testing.T) {
		d := NewDecoder([]byte{0x01, 0x61})
		_, err := d.ParseIntegralValue(WireBytes)
		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected TypeMismatchError, got %v", err)
		}
		if mismatch.Domain != "integral" || mismatch.WireType != WireBytes {
			t.Errorf("unexpected mismatch details: %+v", mismatch)
		}
	})
}

func TestParseZigzagValue(t *testing.T) {
	tests := []struct {
		name     string
		wireType WireType
		input    []byte
		expected int64
	}{
		{"varint", WireVarint, []byte{0x03}, -2},
		{"fixed64_reinterpreted", WireFixed64, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, -1},
		{"fixed32_sign_extended", WireFixed32, []byte{0xFE, 0xFF, 0xFF, 0xFF}, -2},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := NewDecoder(test.input)
			v, err := d.ParseZigzagValue(test.wireType)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if v != test.expected {
				t.Errorf("expected %d, got %d", test.expected, v)
			}
		})
	}

	t.Run("type_mismatch", func(t *testing.T) {
		d := NewDecoder([]byte{0x00})
		_, err := d.ParseZigzagValue(WireBytes)
		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected TypeMismatchError, got %v", err)
		}
	})
}

func TestParseFloatValue(t *testing.T) {
	t.Run("fixed32_to_float32", func(t *testing.T) {
		input := []byte{0x00, 0x00, 0xC0, 0x3F} // 1.5
		d := NewDecoder(input)
		v, err := ParseFloatValue[float32](d, WireFixed32)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 1.5 {
			t.Errorf("expected 1.5, got %v", v)
		}
	})

	t.Run("fixed64_to_float64", func(t *testing.T) {
		input := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x05, 0x40} // 2.625
		d := NewDecoder(input)
		v, err := ParseFloatValue[float64](d, WireFixed64)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 2.625 {
			t.Errorf("expected 2.625, got %v", v)
		}
	})

	t.Run("fixed64_to_float32_converted", func(t *testing.T) {
		input := []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x05, 0x40}
		d := NewDecoder(input)
		v, err := ParseFloatValue[float32](d, WireFixed64)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 2.625 {
			t.Errorf("expected 2.625, got %v", v)
		}
	})

	t.Run("type_mismatch", func(t *testing.T) {
		d := NewDecoder([]byte{0x00})
		_, err := ParseFloatValue[float64](d, WireVarint)
		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected TypeMismatchError, got %v", err)
		}
		if mismatch.Domain != "fp" {
			t.Errorf("unexpected domain %q", mismatch.Domain)
		}
	})
}

func TestParseBytesValue(t *testing.T) {
	t.Run("view_into_window", func(t *testing.T) {
		input := []byte{0x03, 'a', 'b', 'c', 0xFF}
		d := NewDecoder(input)
		v, err := d.ParseBytesValue(WireBytes)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(v, []byte("abc")) {
			t.Fatalf("expected abc, got %q", v)
		}
		input[1] = 'x'
		if v[0] != 'x' {
			t.Error("expected a view aliasing the input window")
		}
		if d.Remaining() != 1 {
			t.Errorf("expected 1 byte remaining, got %d", d.Remaining())
		}
	})

	t.Run("owned_copy_when_configured", func(t *testing.T) {
		SetConfig(Config{CopyBytes: true})
		defer SetConfig(Config{})

		input := []byte{0x03, 'a', 'b', 'c'}
		d := NewDecoder(input)
		v, err := d.ParseBytesValue(WireBytes)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		input[1] = 'x'
		if v[0] != 'a' {
			t.Error("expected an owned copy")
		}
	})

	t.Run("zero_length_at_window_end", func(t *testing.T) {
		d := NewDecoder([]byte{0x00})
		v, err := d.ParseBytesValue(WireBytes)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(v) != 0 {
			t.Errorf("expected empty payload, got %q", v)
		}
	})

	t.Run("length_exceeds_window", func(t *testing.T) {
		d := NewDecoder([]byte{0x05, 'a'})
		_, err := d.ParseBytesValue(WireBytes)
		if !errors.Is(err, ErrUnexpectedEOF) {
			t.Fatalf("expected ErrUnexpectedEOF, got %v", err)
		}
	})

	t.Run("type_mismatch", func(t *testing.T) {
		d := NewDecoder([]byte{0x00})
		_, err := d.ParseBytesValue(WireVarint)
		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected TypeMismatchError, got %v", err)
		}
	})
}

func TestParseMessageValue(t *testing.T) {
	t.Run("parent_cursor_advances_immediately", func(t *testing.T) {
		// Submessage of 2 bytes followed by a sibling varint field.
		input := []byte{0x02, 0x08, 0x07, 0x58, 0x01}
		d := NewDecoder(input)
		sub, err := d.ParseMessageValue(WireBytes)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Sibling is parseable without consuming the sub-decoder.
		num, wt, ok, err := d.NextField()
		if err != nil || !ok {
			t.Fatalf("expected sibling field, got ok=%v err=%v", ok, err)
		}
		if num != 11 || wt != WireVarint {
			t.Errorf("expected field 11 varint, got field %d wire type %v", num, wt)
		}
		if sub.Remaining() != 2 {
			t.Errorf("sub-decoder should hold 2 bytes, has %d", sub.Remaining())
		}
	})

	t.Run("zero_byte_submessage", func(t *testing.T) {
		d := NewDecoder([]byte{0x00})
		sub, err := d.ParseMessageValue(WireBytes)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, _, ok, err := sub.NextField()
		if err != nil || ok {
			t.Errorf("expected immediate end of stream, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("depth_limit", func(t *testing.T) {
		// Innermost empty message, each wrap prefixing tag 0x0A plus the
		// length of what is inside.
		var buf []byte
		for i := 0; i < defaultMaxDepth+1; i++ {
			inner := buf
			buf = append([]byte{0x0A}, appendVarint(nil, uint64(len(inner)))...)
			buf = append(buf, inner...)
		}

		d := NewDecoder(buf)
		var err error
		for {
			var ok bool
			_, _, ok, err = d.NextField()
			if err != nil || !ok {
				break
			}
			d, err = d.ParseMessageValue(WireBytes)
			if err != nil {
				break
			}
		}
		if !errors.Is(err, ErrDepthLimit) {
			t.Fatalf("expected ErrDepthLimit, got %v", err)
		}
	})

	t.Run("type_mismatch", func(t *testing.T) {
		d := NewDecoder([]byte{0x00})
		_, err := d.ParseMessageValue(WireVarint)
		var mismatch *TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected TypeMismatchError, got %v", err)
		}
		if mismatch.Domain != "message" {
			t.Errorf("unexpected domain %q", mismatch.Domain)
		}
	})
}

func TestParseFieldHelpers(t *testing.T) {
	t.Run("integral_sets_presence", func(t *testing.T) {
		d := NewDecoder([]byte{0x2A})
		var field int64
		var has bool
		if err := ParseIntegralField(d, WireVarint, &field, &has); err != nil {
			t.Fatal(err)
		}
		if field != 42 || !has {
			t.Errorf("expected 42/true, got %d/%v", field, has)
		}
	})

	t.Run("integral_narrowing_truncates", func(t *testing.T) {
		d := NewDecoder(appendVarint(nil, 0x1_0000_0001))
		var field uint32
		if err := ParseIntegralField(d, WireVarint, &field, nil); err != nil {
			t.Fatal(err)
		}
		if field != 1 {
			t.Errorf("expected low-order truncation to 1, got %d", field)
		}
	})

	t.Run("repeated_integral_appends", func(t *testing.T) {
		d := NewDecoder([]byte{0x01})
		var field []uint32
		if err := ParseRepeatedIntegralField(d, WireVarint, &field); err != nil {
			t.Fatal(err)
		}
		d = NewDecoder([]byte{0x02})
		if err := ParseRepeatedIntegralField(d, WireVarint, &field); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(field, []uint32{1, 2}) {
			t.Errorf("expected [1 2], got %v", field)
		}
	})

	t.Run("zigzag", func(t *testing.T) {
		d := NewDecoder([]byte{0x03})
		var field int32
		var has bool
		if err := ParseZigzagField(d, WireVarint, &field, &has); err != nil {
			t.Fatal(err)
		}
		if field != -2 || !has {
			t.Errorf("expected -2/true, got %d/%v", field, has)
		}
	})

	t.Run("bool", func(t *testing.T) {
		d := NewDecoder([]byte{0x01})
		var field, has bool
		if err := ParseBoolField(d, WireVarint, &field, &has); err != nil {
			t.Fatal(err)
		}
		if !field || !has {
			t.Errorf("expected true/true, got %v/%v", field, has)
		}
	})

	t.Run("bytes_into_string", func(t *testing.T) {
		d := NewDecoder([]byte{0x05, 'H', 'e', 'l', 'l', 'o'})
		var field string
		var has bool
		if err := ParseBytesField(d, WireBytes, &field, &has); err != nil {
			t.Fatal(err)
		}
		if field != "Hello" || !has {
			t.Errorf("expected Hello/true, got %q/%v", field, has)
		}
	})

	t.Run("float", func(t *testing.T) {
		d := NewDecoder([]byte{0x00, 0x00, 0xC0, 0x3F})
		var field float32
		var has bool
		if err := ParseFloatField(d, WireFixed32, &field, &has); err != nil {
			t.Fatal(err)
		}
		if field != 1.5 || !has {
			t.Errorf("expected 1.5/true, got %v/%v", field, has)
		}
	})

	t.Run("error_leaves_presence_unset", func(t *testing.T) {
		d := NewDecoder([]byte{0x80}) // truncated varint
		var field int64
		var has bool
		if err := ParseIntegralField(d, WireVarint, &field, &has); err == nil {
			t.Fatal("expected error")
		}
		if has {
			t.Error("presence flag must stay unset on error")
		}
	})
}
