// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segment holds the seven segment alphabet shared by the display
// drivers: symbol codes, segment patterns and the decoder between them.
//
// Segments are numbered a to g, with the optional decimal point last:
//
//	 aaa
//	f   b
//	 ggg
//	e   c
//	 ddd  dp
package segment

import (
	"errors"
	"fmt"
	"strings"
)

// Symbol is a glyph code accepted by the decoder: 0-9 for decimal digits and
// the Empty and Dash constants.
type Symbol uint8

// Pattern is a segment bitmask. Bit k set means segment k is lit.
type Pattern uint8

const (
	// Empty turns all segments off.
	Empty Symbol = 16
	// Dash only enables the segment in the middle (g).
	Dash Symbol = 17
	// MaxSymbol is the highest code the decoder knows.
	MaxSymbol = Dash
)

const (
	SegA Pattern = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG
	// SegDP is the decimal point. It is only visible on displays wired with
	// an eighth segment line.
	SegDP
)

// NumSegments is the number of segment lines including the decimal point.
const NumSegments = 8

var (
	ErrInvalidSymbol = errors.New("segment: invalid symbol")
	ErrUnsupported   = errors.New("segment: unsupported character")
)

// decoder maps a Symbol to its pattern.
var decoder = [MaxSymbol + 1]Pattern{
	//.gfedcba
	0b00111111, // 0
	0b00000110, // 1
	0b01011011, // 2
	0b01001111, // 3
	0b01100110, // 4
	0b01101101, // 5
	0b01111101, // 6
	0b00000111, // 7
	0b01111111, // 8
	0b01101111, // 9
	0b00000000, // reserved
	0b00000000,
	0b00000000,
	0b00000000,
	0b00000000,
	0b00000000,
	0b00000000, // Empty
	0b01000000, // Dash
}

// Valid reports whether s can be decoded.
func (s Symbol) Valid() bool {
	return s <= MaxSymbol
}

// Decode returns the segment pattern for s.
func Decode(s Symbol) (Pattern, error) {
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSymbol, s)
	}
	return decoder[s], nil
}

// Lit reports whether segment k is on.
func (p Pattern) Lit(k int) bool {
	return k >= 0 && k < NumSegments && p&(1<<uint(k)) != 0
}

// String returns the letters of the lit segments, "-" when none is lit.
func (p Pattern) String() string {
	if p == 0 {
		return "-"
	}
	var b strings.Builder
	for k, name := range [NumSegments]string{"a", "b", "c", "d", "e", "f", "g", "dp"} {
		if p.Lit(k) {
			b.WriteString(name)
		}
	}
	return b.String()
}

// Encode converts text into segment patterns. Digits, ' ' and '-' each take
// one position; a '.' is OR'd onto the previous position as its decimal
// point.
func Encode(text string) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(text))
	for ix := 0; ix < len(text); ix++ {
		c := text[ix]
		switch {
		case c >= '0' && c <= '9':
			patterns = append(patterns, decoder[c-'0'])
		case c == ' ':
			patterns = append(patterns, decoder[Empty])
		case c == '-':
			patterns = append(patterns, decoder[Dash])
		case c == '.':
			if len(patterns) == 0 || patterns[len(patterns)-1]&SegDP != 0 {
				patterns = append(patterns, SegDP)
			} else {
				patterns[len(patterns)-1] |= SegDP
			}
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupported, c)
		}
	}
	return patterns, nil
}
