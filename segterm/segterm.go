// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segterm emulates a multiplexed seven segment display on the
// terminal (stdout) using ANSI color codes.
//
// The Dev exposes digit and segment lines implementing gpio.PinOut, so it can
// be driven by segmux like real hardware. Each time a digit line is low while
// a segment line is high, the segment is latched for that digit, the same way
// the eye integrates the pulses of a real display. Flush draws what was lit
// since the previous Flush.
//
// Useful to develop the display logic before the hardware is wired.
package segterm

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/GermanBionicSystems/segdisplay/segment"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/gpio"
)

// Opts represents the options available for this display.
type Opts struct {
	// W defaults to a colorable stdout.
	W       io.Writer
	Palette *ansi256.Palette
	// On and Off are the colors of lit and dark segments, Background of the
	// cells between segments. The zero values select red, dark grey and
	// black.
	On, Off, Background color.NRGBA

	_ struct{}
}

// Dev is a seven segment display emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	on      color.NRGBA
	off     color.NRGBA
	bg      color.NRGBA

	digitPins   []gpio.PinOut
	segmentPins []gpio.PinOut

	mu       sync.Mutex
	selected []bool
	active   [segment.NumSegments]bool
	lit      []segment.Pattern
	drawn    bool
	buf      bytes.Buffer
}

// New returns a Dev with numDigits digits.
//
// A negative numDigits is treated as 0: the Dev then only exposes its segment
// lines and draws nothing.
func New(numDigits int, opts *Opts) *Dev {
	if numDigits < 0 {
		numDigits = 0
	}
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:        opts.W,
		palette:  *p,
		on:       opts.On,
		off:      opts.Off,
		bg:       opts.Background,
		selected: make([]bool, numDigits),
		lit:      make([]segment.Pattern, numDigits),
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	if d.on == (color.NRGBA{}) {
		d.on = color.NRGBA{R: 255, A: 255}
	}
	if d.off == (color.NRGBA{}) {
		d.off = color.NRGBA{R: 48, G: 48, B: 48, A: 255}
	}
	if d.bg == (color.NRGBA{}) {
		d.bg = color.NRGBA{A: 255}
	}
	d.digitPins = make([]gpio.PinOut, numDigits)
	for ix := range numDigits {
		d.digitPins[ix] = &Pin{dev: d, name: fmt.Sprintf("SEGTERM_DIG%d", ix), number: ix, digit: true}
	}
	d.segmentPins = make([]gpio.PinOut, segment.NumSegments)
	for ix := range segment.NumSegments {
		d.segmentPins[ix] = &Pin{dev: d, name: fmt.Sprintf("SEGTERM_SEG%d", ix), number: ix}
	}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("SegTerm{digits: %d}", len(d.lit))
}

// DigitPins returns the digit select lines, active low.
func (d *Dev) DigitPins() []gpio.PinOut {
	return d.digitPins
}

// SegmentPins returns the 8 segment lines, a to g then the decimal point.
func (d *Dev) SegmentPins() []gpio.PinOut {
	return d.segmentPins
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes so the console is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Frame returns the segments lit since the last call to Frame or Flush and
// starts a new frame.
func (d *Dev) Frame() []segment.Pattern {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frameLocked()
}

func (d *Dev) frameLocked() []segment.Pattern {
	f := make([]segment.Pattern, len(d.lit))
	copy(f, d.lit)
	for ix := range d.lit {
		d.lit[ix] = 0
	}
	return f
}

// Flush draws the current frame to the console, overwriting the previous
// one, and starts a new frame.
func (d *Dev) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.render(d.frameLocked())
}

// set records a line level and latches the segments it lights up.
func (d *Dev) set(p *Pin, l gpio.Level) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p.digit {
		d.selected[p.number] = l == gpio.Low
	} else {
		d.active[p.number] = l == gpio.High
	}
	for j, sel := range d.selected {
		if !sel {
			continue
		}
		for k, on := range d.active {
			if on {
				d.lit[j] |= 1 << uint(k)
			}
		}
	}
}

// cells maps the cells of a digit to segments, -1 being background. Each
// digit is 5 cells wide, the last column holding the decimal point.
var cells = [glyphRows][glyphCols]int{
	{-1, 0, 0, -1, -1},
	{5, -1, -1, 1, -1},
	{-1, 6, 6, -1, -1},
	{4, -1, -1, 2, -1},
	{-1, 3, 3, -1, 7},
}

const (
	glyphRows = 5
	glyphCols = 5
)

func (d *Dev) render(frame []segment.Pattern) error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.drawn {
		fmt.Fprintf(&d.buf, "\033[%dA", glyphRows)
	}
	for _, row := range cells {
		_, _ = d.buf.WriteString("\r\033[0m")
		for _, p := range frame {
			for _, k := range row {
				c := d.bg
				if k >= 0 {
					c = d.off
					if p.Lit(k) {
						c = d.on
					}
				}
				_, _ = io.WriteString(&d.buf, d.palette.Block(c))
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(d.bg))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ fmt.Stringer = &Dev{}
