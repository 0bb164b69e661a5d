// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nxp74hc595

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
)

// Group implements gpio.Group over outputs of the chain, which may span
// several units.
type Group struct {
	dev  *Dev
	pins []*Pin
}

// Pins returns the outputs of the group.
func (gr *Group) Pins() []pin.Pin {
	result := make([]pin.Pin, len(gr.pins))
	for ix, p := range gr.pins {
		result[ix] = p
	}
	return result
}

// ByOffset returns the output at offset within the group.
func (gr *Group) ByOffset(offset int) pin.Pin {
	return gr.pins[offset]
}

func (gr *Group) ByName(name string) pin.Pin {
	for _, p := range gr.pins {
		if p.name == name {
			return p
		}
	}
	return nil
}

// ByNumber returns the output of the group at that position of the chain.
func (gr *Group) ByNumber(number int) pin.Pin {
	for _, p := range gr.pins {
		if p.number == number {
			return p
		}
	}
	return nil
}

// Out writes value, bit k going to the k-th output of the group. Only the
// outputs selected by mask are modified; a zero mask selects all of them.
func (gr *Group) Out(value, mask gpio.GPIOValue) error {
	if mask == 0 {
		mask = gpio.GPIOValue(1<<len(gr.pins)) - 1
	}
	return gr.dev.update(func(v []byte) {
		for ix, p := range gr.pins {
			bit := gpio.GPIOValue(1) << uint(ix)
			if mask&bit != 0 {
				setBit(v, p.number, value&bit != 0)
			}
		}
	})
}

// Read is not available, the 74HC595 only has outputs.
func (gr *Group) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	return 0, ErrNotImplemented
}

// WaitForEdge is not available for this device.
func (gr *Group) WaitForEdge(timeout time.Duration) (int, gpio.Edge, error) {
	return 0, gpio.NoEdge, ErrNotImplemented
}

// Halt frees the group. It cannot be used afterward.
func (gr *Group) Halt() error {
	gr.pins = nil
	return nil
}

func (gr *Group) String() string {
	s := gr.dev.String() + "["
	for ix, p := range gr.pins {
		if ix > 0 {
			s += " "
		}
		s += fmt.Sprintf("%d", p.number)
	}
	return s + "]"
}
