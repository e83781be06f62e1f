package lzw

import (
	"bytes"
)

// EncodeBytes compresses data with the encoder for m.
func EncodeBytes(data []byte, m Method) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeWith(&buf, bytes.NewReader(data), m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBytes decompresses data with the decoder for m.
func DecodeBytes(data []byte, m Method) ([]byte, error) {
	var buf bytes.Buffer
	if err := DecodeWith(&buf, bytes.NewReader(data), m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
