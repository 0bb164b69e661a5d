// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// The 74HC595 is a serial shift register. It converts a serial stream to a
// parallel output, so a few of them chained on an SPI bus can drive the
// digit and segment lines of a multiplexed display.
//
// # Datasheet
//
// https://www.nexperia.com/product/74HC595D
//
// The SPI clock drives SHCP, MOSI drives DS and the chip select drives STCP,
// so the outputs are latched at the end of each transaction. When chaining,
// Q7S of a unit feeds DS of the next one; the byte sent first ends up in the
// last unit of the chain.
package nxp74hc595

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

const (
	devName = "74HC595"
	numPins = 8
)

var (
	ErrNotImplemented = errors.New("nxp74hc595: not implemented")
	ErrUnits          = errors.New("nxp74hc595: invalid number of units")
	ErrLines          = errors.New("nxp74hc595: not enough outputs")
)

// Dev represents a chain of 74HC595 devices.
type Dev struct {
	// Pins holds the outputs of all units, Q0 of the first unit first.
	Pins []gpio.PinOut

	mu    sync.Mutex
	conn  spi.Conn
	value []byte
	// valid is false until the chain was written once, since the power-up
	// content of the registers is unknown.
	valid bool
}

// New accepts an spi.Conn and returns a chain of units 74HC595 devices.
func New(conn spi.Conn, units int) (*Dev, error) {
	if units < 1 {
		return nil, fmt.Errorf("%w: %d", ErrUnits, units)
	}
	dev := &Dev{
		conn:  conn,
		value: make([]byte, units),
		Pins:  make([]gpio.PinOut, units*numPins),
	}
	for ix := range dev.Pins {
		dev.Pins[ix] = &Pin{number: ix, name: fmt.Sprintf("%s_%d_Q%d", devName, ix/numPins, ix%numPins), dev: dev}
	}
	return dev, nil
}

// Lines splits the outputs for a multiplexed display: segment lines from Q0
// of the first unit, then digit lines starting on the next unit. With 7
// segments Q7 of the first unit stays unused, so each digit select sits on
// the same output whatever the segment count.
func (dev *Dev) Lines(segments, digits int) (seg, dig []gpio.PinOut, err error) {
	start := (segments + numPins - 1) / numPins * numPins
	if segments < 0 || digits < 0 || start+digits > len(dev.Pins) {
		return nil, nil, fmt.Errorf("%w: %d segments and %d digits on %d outputs", ErrLines, segments, digits, len(dev.Pins))
	}
	return dev.Pins[:segments], dev.Pins[start : start+digits], nil
}

// Group returns a subset of the outputs as a gpio.Group. A Group changes all
// its outputs in a single transaction.
func (dev *Dev) Group(pins ...int) (gpio.Group, error) {
	gr := &Group{dev: dev, pins: make([]*Pin, len(pins))}
	for ix, n := range pins {
		if n < 0 || n >= len(dev.Pins) {
			return nil, fmt.Errorf("nxp74hc595: no output %d", n)
		}
		gr.pins[ix] = dev.Pins[n].(*Pin)
	}
	return gr, nil
}

func setBit(v []byte, n int, l gpio.Level) {
	bit := byte(1) << uint(n%numPins)
	if l {
		v[n/numPins] |= bit
	} else {
		v[n/numPins] &^= bit
	}
}

// update applies set to a copy of the chain content and shifts it out when
// it changed.
func (dev *Dev) update(set func(v []byte)) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	if dev.conn == nil {
		return fmt.Errorf("nxp74hc595: %s is halted", devName)
	}
	next := make([]byte, len(dev.value))
	copy(next, dev.value)
	set(next)
	if dev.valid && bytes.Equal(next, dev.value) {
		return nil
	}
	// The last unit is shifted first.
	w := make([]byte, len(next))
	for ix, b := range next {
		w[len(w)-1-ix] = b
	}
	if err := dev.conn.Tx(w, nil); err != nil {
		return err
	}
	dev.value = next
	dev.valid = true
	return nil
}

// Halt disables the device
func (dev *Dev) Halt() (err error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	dev.Pins = make([]gpio.PinOut, 0)
	dev.conn = nil
	return
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s{units: %d}", devName, len(dev.value))
}

var _ gpio.PinOut = &Pin{}
var _ gpio.Group = &Group{}
