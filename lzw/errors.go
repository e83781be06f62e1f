package lzw

import (
	"errors"
)

// ErrCorrupt is returned when a compressed stream cannot be decoded.
var ErrCorrupt = errors.New("lzw: corrupt stream")
