// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segmux drives a multiplexed seven segment display directly from
// GPIO lines.
//
// Each digit has a select line sinking the current of its common cathode and
// all digits share 7 or 8 segment lines. Only one segment line is active at a
// time; while it is, the select line of every digit that wants the segment
// lit is pulled low. Refresh must be called in a tight loop (or use Run) so
// that the display appears steadily lit.
//
// Wiring 4 digits on GPIO2-GPIO5 and segments a to g on GPIO6-GPIO12:
//
//	digits := []gpio.PinOut{gpioreg.ByName("GPIO2"), ...}
//	segments := []gpio.PinOut{gpioreg.ByName("GPIO6"), ...}
//	dev, err := segmux.New(4, digits, segments, &segmux.DefaultOpts)
package segmux

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/segdisplay/segment"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3/cpu"
)

var (
	ErrDigitPins   = errors.New("segmux: invalid digit pins")
	ErrSegmentPins = errors.New("segmux: invalid segment pins")
	ErrPosition    = errors.New("segmux: digit position out of range")
	ErrOverflow    = errors.New("segmux: value does not fit the display")
)

// Opts holds the optional settings of a Dev.
type Opts struct {
	// Delay busy-waits for the given duration while a segment is lit. It
	// defaults to cpu.Nanospin.
	Delay func(d time.Duration)
}

// DefaultOpts is the recommended configuration.
var DefaultOpts = Opts{}

// Dev is a multiplexed seven segment display.
type Dev struct {
	delay func(time.Duration)

	// Pin assignment. A nil segment slot is unassigned.
	digits   []gpio.PinOut
	segments [segment.NumSegments]gpio.PinOut

	// mu guards state.
	mu    sync.Mutex
	state []segment.Pattern

	// busMu serializes pin access. frame is the snapshot of state being
	// pulsed.
	busMu sync.Mutex
	frame []segment.Pattern
}

// New returns a display using exactly numDigits digit select lines and 7 or
// 8 segment lines (a to g, then the decimal point).
//
// A nil entry in segments leaves that segment unassigned: it is never pulsed
// and the bit it stands for is not shown. A list shorter than 7 is rejected
// with ErrSegmentPins; pad it with nil to leave trailing segments unwired.
//
// Every other pin is configured as an output once, in the order given,
// digits first. All digits start blank.
func New(numDigits int, digits, segments []gpio.PinOut, opts *Opts) (*Dev, error) {
	if numDigits < 1 || len(digits) != numDigits {
		return nil, fmt.Errorf("%w: got %d pins for %d digits", ErrDigitPins, len(digits), numDigits)
	}
	for ix, p := range digits {
		if p == nil {
			return nil, fmt.Errorf("%w: digit %d has no pin", ErrDigitPins, ix)
		}
	}
	if len(segments) < segment.NumSegments-1 || len(segments) > segment.NumSegments {
		return nil, fmt.Errorf("%w: got %d, expected 7 or 8", ErrSegmentPins, len(segments))
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	d := &Dev{
		delay:  opts.Delay,
		digits: make([]gpio.PinOut, numDigits),
		state:  make([]segment.Pattern, numDigits),
		frame:  make([]segment.Pattern, numDigits),
	}
	if d.delay == nil {
		d.delay = cpu.Nanospin
	}
	copy(d.digits, digits)
	assigned := 0
	for ix, p := range segments {
		if p != nil {
			d.segments[ix] = p
			assigned++
		}
	}
	if assigned == 0 {
		return nil, fmt.Errorf("%w: no segment assigned", ErrSegmentPins)
	}

	// The digits are disabled while high.
	for _, p := range d.digits {
		if err := p.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("segmux: configuring %s: %w", p, err)
		}
	}
	for _, p := range d.segments {
		if p == nil {
			continue
		}
		if err := p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("segmux: configuring %s: %w", p, err)
		}
	}

	blank, _ := segment.Decode(segment.Empty)
	for ix := range d.state {
		d.state[ix] = blank
	}
	return d, nil
}

// NumDigits returns the number of digit positions.
func (d *Dev) NumDigits() int {
	return len(d.digits)
}

// NumSegments returns the number of assigned segment lines.
func (d *Dev) NumSegments() int {
	n := 0
	for _, p := range d.segments {
		if p != nil {
			n++
		}
	}
	return n
}

func (d *Dev) String() string {
	return fmt.Sprintf("SegMux{digits: %d, segments: %d}", d.NumDigits(), d.NumSegments())
}

// Halt turns the whole display off. It implements conn.Resource.
func (d *Dev) Halt() error {
	d.busMu.Lock()
	defer d.busMu.Unlock()
	return d.off()
}

func (d *Dev) off() error {
	var err error
	for _, p := range d.digits {
		if e := p.Out(gpio.High); err == nil {
			err = e
		}
	}
	for _, p := range d.segments {
		if p == nil {
			continue
		}
		if e := p.Out(gpio.Low); err == nil {
			err = e
		}
	}
	return err
}

var _ fmt.Stringer = &Dev{}
