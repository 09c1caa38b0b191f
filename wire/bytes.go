package wire

// ParseBytesValue parses one length-delimited value. The returned slice is a
// view into the underlying window, valid for the window's lifetime; set
// Config.CopyBytes to receive owned copies instead.
func (d *Decoder) ParseBytesValue(wireType WireType) ([]byte, error) {
	view, err := d.bytesView(wireType)
	if err != nil {
		return nil, err
	}

	if config.CopyBytes {
		data := make([]byte, len(view))
		copy(data, view)
		return data, nil
	}
	return view, nil
}

// bytesView reads a length prefix and returns the payload as a sub-slice of
// the window, advancing the cursor past it.
func (d *Decoder) bytesView(wireType WireType) ([]byte, error) {
	if wireType != WireBytes {
		return nil, &TypeMismatchError{Domain: "bytearray", WireType: wireType}
	}

	length, err := d.DecodeVarint()
	if err != nil {
		return nil, err
	}
	if length > uint64(d.Remaining()) {
		return nil, ErrUnexpectedEOF
	}

	view := d.buf[d.pos : d.pos+int(length)]
	d.pos += int(length)
	return view, nil
}
