// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package charset detects the Unicode encoding of raw JSON text and
// transcodes it to UTF-8 scalars.
//
// Detection checks the five byte-order mark signatures first. Without a BOM
// it applies the RFC 4627 heuristic: the first two characters of a JSON text
// are ASCII, so the pattern of zero bytes among the first four input bytes
// discloses the encoding width and endianness. Undetermined input defaults to
// UTF-8. Malformed byte sequences inside an otherwise decodable buffer are
// substituted with U+FFFD rather than aborting.
package charset

import (
	"bytes"
	"errors"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// An Encoding identifies one of the Unicode encoding forms permitted for JSON
// text by RFC 8259.
type Encoding byte

// Constants defining the valid Encoding values.
const (
	UTF8    Encoding = iota // UTF-8 (the default)
	UTF16BE                 // UTF-16, big endian
	UTF16LE                 // UTF-16, little endian
	UTF32BE                 // UTF-32, big endian
	UTF32LE                 // UTF-32, little endian
)

var encodingStr = [...]string{
	UTF8:    "UTF-8",
	UTF16BE: "UTF-16BE",
	UTF16LE: "UTF-16LE",
	UTF32BE: "UTF-32BE",
	UTF32LE: "UTF-32LE",
}

func (e Encoding) String() string {
	if int(e) >= len(encodingStr) {
		return "unknown"
	}
	return encodingStr[e]
}

// ErrEmptyInput is reported by Decode when the input buffer is empty, the
// only condition under which detection cannot recover.
var ErrEmptyInput = errors.New("empty input")

// Byte-order mark signatures, longest first so that UTF-32 prefixes are not
// mistaken for their UTF-16 counterparts.
var boms = []struct {
	sig []byte
	enc Encoding
}{
	{[]byte{0x00, 0x00, 0xFE, 0xFF}, UTF32BE},
	{[]byte{0xFF, 0xFE, 0x00, 0x00}, UTF32LE},
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFE, 0xFF}, UTF16BE},
	{[]byte{0xFF, 0xFE}, UTF16LE},
}

// Detect reports the encoding of the JSON text beginning with prefix, along
// with the length in bytes of its byte-order mark (0 if there is none). Up to
// the first four bytes of input are consulted.
func Detect(prefix []byte) (Encoding, int) {
	for _, b := range boms {
		if bytes.HasPrefix(prefix, b.sig) {
			return b.enc, len(b.sig)
		}
	}
	z := func(i int) bool { return i < len(prefix) && prefix[i] == 0 }
	if len(prefix) >= 4 {
		switch {
		case z(0) && z(1) && z(2) && !z(3):
			return UTF32BE, 0
		case !z(0) && z(1) && z(2) && z(3):
			return UTF32LE, 0
		case z(0) && !z(1) && z(2) && !z(3):
			return UTF16BE, 0
		case !z(0) && z(1) && !z(2) && z(3):
			return UTF16LE, 0
		}
		return UTF8, 0
	}
	// A short buffer can hold at most one scalar in a 16-bit form.
	if len(prefix) >= 2 {
		switch {
		case z(0) && !z(1):
			return UTF16BE, 0
		case !z(0) && z(1):
			return UTF16LE, 0
		}
	}
	return UTF8, 0
}

// decoder returns the transcoding decoder for e, or nil for UTF-8.
func (e Encoding) decoder() *encoding.Decoder {
	switch e {
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	case UTF32BE:
		return utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM).NewDecoder()
	case UTF32LE:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM).NewDecoder()
	}
	return nil
}

// Decode detects the encoding of data and transcodes it to UTF-8 with the
// byte-order mark, if any, removed. Malformed sequences in the 16- and 32-bit
// forms are substituted with U+FFFD. Decode reports ErrEmptyInput if data is
// empty; no other input fails.
func Decode(data []byte) ([]byte, Encoding, error) {
	if len(data) == 0 {
		return nil, UTF8, ErrEmptyInput
	}
	enc, skip := Detect(data)
	data = data[skip:]
	dec := enc.decoder()
	if dec == nil {
		return data, enc, nil // already UTF-8
	}
	out, err := dec.Bytes(data)
	if err != nil {
		// The unicode decoders substitute rather than fail; treat a failure
		// as undecodable input.
		return nil, enc, err
	}
	return out, enc, nil
}
