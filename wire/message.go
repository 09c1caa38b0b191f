package wire

// ParseMessageValue reads the length prefix of an embedded message and
// returns a fresh decoder scoped to the inner byte range. The parent cursor
// is already past the submessage when this returns, so sibling fields remain
// parseable whether or not the sub-decoder is consumed.
func (d *Decoder) ParseMessageValue(wireType WireType) (*Decoder, error) {
	if wireType != WireBytes {
		return nil, &TypeMismatchError{Domain: "message", WireType: wireType}
	}
	if d.depth+1 > config.MaxDepth {
		return nil, ErrDepthLimit
	}

	view, err := d.bytesView(wireType)
	if err != nil {
		return nil, err
	}

	return &Decoder{buf: view, depth: d.depth + 1}, nil
}
