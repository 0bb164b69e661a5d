// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Pin is one line of the port, e.g. "PCF8575_20_P9".
type Pin struct {
	dev    *Dev
	number int
	name   string
}

func (pin *Pin) Function() string {
	return "Out"
}

func (pin *Pin) Halt() error {
	return nil
}

func (pin *Pin) Name() string {
	return pin.name
}

// Number is the bit of the line in the port, 8 being P10 on a PCF8575.
func (pin *Pin) Number() int {
	return pin.number
}

// Out writes the whole port with this line changed; it costs one bus
// transaction unless the line is already at l.
func (pin *Pin) Out(l gpio.Level) error {
	value := gpio.GPIOValue(0)
	mask := gpio.GPIOValue(1) << pin.number
	if l {
		value = mask
	}
	return pin.dev.write(value, mask)
}

func (pin *Pin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (pin *Pin) String() string {
	return pin.name
}

var _ gpio.PinOut = &Pin{}
