// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segmux

import (
	"fmt"

	"github.com/GermanBionicSystems/segdisplay/segment"
)

// SetDigit decodes s and shows it at position pos, 0 being the first digit
// pin. On error the display is left unchanged.
func (d *Dev) SetDigit(pos int, s segment.Symbol) error {
	p, err := segment.Decode(s)
	if err != nil {
		return fmt.Errorf("segmux: %w", err)
	}
	return d.SetPattern(pos, p)
}

// SetDigits sets the digits starting at position 0. Fewer symbols than
// digits only update the leading positions. Nothing is changed unless every
// symbol is valid and fits.
func (d *Dev) SetDigits(symbols ...segment.Symbol) error {
	if len(symbols) > len(d.state) {
		return fmt.Errorf("%w: %d symbols for %d digits", ErrOverflow, len(symbols), len(d.state))
	}
	patterns := make([]segment.Pattern, len(symbols))
	for ix, s := range symbols {
		p, err := segment.Decode(s)
		if err != nil {
			return fmt.Errorf("segmux: position %d: %w", ix, err)
		}
		patterns[ix] = p
	}
	d.mu.Lock()
	copy(d.state, patterns)
	d.mu.Unlock()
	return nil
}

// SetPattern shows a raw segment pattern at position pos. Unlike SetDigit it
// can light the decimal point.
func (d *Dev) SetPattern(pos int, p segment.Pattern) error {
	if pos < 0 || pos >= len(d.state) {
		return fmt.Errorf("%w: %d", ErrPosition, pos)
	}
	d.mu.Lock()
	d.state[pos] = p
	d.mu.Unlock()
	return nil
}

// SetDecimalPoint turns the decimal point of position pos on or off, keeping
// the rest of the digit.
func (d *Dev) SetDecimalPoint(pos int, on bool) error {
	if pos < 0 || pos >= len(d.state) {
		return fmt.Errorf("%w: %d", ErrPosition, pos)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if on {
		d.state[pos] |= segment.SegDP
	} else {
		d.state[pos] &^= segment.SegDP
	}
	return nil
}

// Clear blanks every digit.
func (d *Dev) Clear() {
	d.mu.Lock()
	for ix := range d.state {
		d.state[ix] = 0
	}
	d.mu.Unlock()
}

// WriteString shows text right aligned, blanking the unused leading digits.
// See segment.Encode for the accepted characters.
func (d *Dev) WriteString(text string) error {
	patterns, err := segment.Encode(text)
	if err != nil {
		return fmt.Errorf("segmux: %w", err)
	}
	if len(patterns) > len(d.state) {
		return fmt.Errorf("%w: %q", ErrOverflow, text)
	}
	pad := len(d.state) - len(patterns)
	d.mu.Lock()
	for ix := range d.state {
		if ix < pad {
			d.state[ix] = 0
		} else {
			d.state[ix] = patterns[ix-pad]
		}
	}
	d.mu.Unlock()
	return nil
}

// WriteInt shows value right aligned.
func (d *Dev) WriteInt(value int) error {
	return d.WriteString(fmt.Sprintf("%*d", len(d.state), value))
}

// State returns a copy of the patterns currently shown.
func (d *Dev) State() []segment.Pattern {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := make([]segment.Pattern, len(d.state))
	copy(s, d.state)
	return s
}
