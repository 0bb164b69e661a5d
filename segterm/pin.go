// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segterm

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// ErrPWM is returned by Pin.PWM; the emulated lines only know two levels.
var ErrPWM = errors.New("segterm: lines cannot be modulated")

// Pin is a virtual line of the emulated display.
//
// Digit lines are active low and segment lines active high, like a common
// cathode module. Driving a line never fails and never blocks on the
// terminal: the level is only recorded, and what it lit shows up on the next
// Flush.
type Pin struct {
	dev    *Dev
	name   string
	number int
	digit  bool
}

// Halt is a no-op; halting the whole Dev restores the terminal.
func (pin *Pin) Halt() error {
	return nil
}

// Name is "SEGTERM_DIG<n>" for digit lines and "SEGTERM_SEG<n>" for segment
// lines.
func (pin *Pin) Name() string {
	return pin.name
}

// Number is the digit position counted from the left, or the segment bit
// (0 is a, 7 the decimal point).
func (pin *Pin) Number() int {
	return pin.number
}

// Deprecated: returns "Out" for the whole life of the Dev.
func (pin *Pin) Function() string {
	return "Out"
}

// Out records l. Any segment high while a digit is low gets latched into the
// current frame for that digit.
func (pin *Pin) Out(l gpio.Level) error {
	pin.dev.set(pin, l)
	return nil
}

// PWM always fails with ErrPWM.
func (pin *Pin) PWM(gpio.Duty, physic.Frequency) error {
	return ErrPWM
}

func (pin *Pin) String() string {
	return pin.name
}

var _ gpio.PinOut = &Pin{}
