// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf857x drives the outputs of a TI/NXP PCF8574 (8 lines) or PCF8575
// (16 lines) I²C I/O expander, so a display can hang off the I²C bus instead
// of using a dozen GPIOs.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// # Notes
//
// The chip has no registers: each write sets every line at once, P0 to P7
// then P10 to P17 for the PCF8575. A low line is an open drain to ground, a
// high one a weak pull-up, so the display should sink its current through the
// expander. All lines are high at power-up.
package pcf857x

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// Variant represents the actual chip model.
type Variant string

const (
	PCF8574 Variant = "PCF8574"
	PCF8575 Variant = "PCF8575"

	DefaultAddress uint16 = 0x20
)

var (
	ErrNotImplemented = errors.New("pcf857x: not implemented")
	ErrVariant        = errors.New("pcf857x: unknown variant")
	ErrLines          = errors.New("pcf857x: not enough outputs")
	ErrHalted         = errors.New("pcf857x: device is halted")
)

// Dev is a PCF857x used as an output port.
type Dev struct {
	// Pins are the outputs, 8 for a PCF8574 and 16 for a PCF8575.
	Pins []gpio.PinOut

	width   int
	variant Variant
	addr    uint16

	mu    sync.Mutex
	d     *i2c.Dev
	value gpio.GPIOValue
	// valid is false until the port was written once.
	valid bool
}

// New returns the expander at address on bus. Nothing is sent until a line
// is set.
func New(bus i2c.Bus, address uint16, chip Variant) (*Dev, error) {
	dev := &Dev{d: &i2c.Dev{Bus: bus, Addr: address}, variant: chip, addr: address}
	switch chip {
	case PCF8574:
		dev.width = 8
	case PCF8575:
		dev.width = 16
	default:
		return nil, fmt.Errorf("%w: %q", ErrVariant, chip)
	}
	dev.value = gpio.GPIOValue(1)<<dev.width - 1
	dev.Pins = make([]gpio.PinOut, dev.width)
	prefix := dev.String()
	for ix := range dev.width {
		dev.Pins[ix] = &Pin{dev: dev, number: ix, name: fmt.Sprintf("%s_P%d", prefix, ix)}
	}
	return dev, nil
}

// Lines splits the outputs for a multiplexed display: segment lines from P0,
// digit lines right after them.
func (dev *Dev) Lines(segments, digits int) (seg, dig []gpio.PinOut, err error) {
	if segments < 0 || digits < 0 || segments+digits > len(dev.Pins) {
		return nil, nil, fmt.Errorf("%w: %d segments and %d digits on %d outputs", ErrLines, segments, digits, len(dev.Pins))
	}
	return dev.Pins[:segments], dev.Pins[segments : segments+digits], nil
}

// write changes the lines in mask to value. If the port content stays the
// same, the write is skipped.
func (dev *Dev) write(value, mask gpio.GPIOValue) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.d == nil {
		return ErrHalted
	}
	next := dev.value&^mask | value&mask
	if dev.valid && next == dev.value {
		return nil
	}
	w := make([]byte, dev.width/8)
	for ix := range w {
		w[ix] = byte(next >> (ix * 8))
	}
	if err := dev.d.Tx(w, nil); err != nil {
		return fmt.Errorf("pcf857x: %w", err)
	}
	dev.value = next
	dev.valid = true
	return nil
}

// Halt releases the device. The lines keep their last level.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.Pins = make([]gpio.PinOut, 0)
	dev.d = nil
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s_%x", dev.variant, dev.addr)
}
