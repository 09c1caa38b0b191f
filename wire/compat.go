package wire

import (
	"os"
	"strconv"
)

// Config controls optional decoder behaviors. Defaults preserve the baseline
// contract: zero-copy byte views and a nesting limit of 100.
type Config struct {
	// MaxDepth bounds submessage recursion. A sub-decoder whose depth would
	// exceed this limit fails with ErrDepthLimit. Values <= 0 restore the
	// default of 100.
	MaxDepth int

	// CopyBytes: when true, ParseBytesValue returns owned copies instead of
	// views into the input window. Useful when decoded values must outlive
	// the buffer they came from.
	CopyBytes bool
}

const defaultMaxDepth = 100

var config = Config{MaxDepth: defaultMaxDepth}

// SetConfig sets the global wire configuration.
func SetConfig(c Config) {
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaultMaxDepth
	}
	config = c
}

func init() {
	// Optional env toggles for test harnesses; defaults remain unchanged if unset.
	if v := os.Getenv("PROTOGEN_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.MaxDepth = n
		}
	}
	if v := os.Getenv("PROTOGEN_COPY_BYTES"); v == "1" || v == "true" {
		config.CopyBytes = true
	}
}
