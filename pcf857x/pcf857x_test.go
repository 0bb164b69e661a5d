// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"errors"
	"testing"
	"time"

	"github.com/GermanBionicSystems/segdisplay/segmux"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func newRecorded(t *testing.T, chip Variant) (*Dev, *i2ctest.Record) {
	bus := &i2ctest.Record{}
	dev, err := New(bus, DefaultAddress, chip)
	if err != nil {
		t.Fatal(err)
	}
	return dev, bus
}

func written(t *testing.T, ops []i2ctest.IO) [][]byte {
	w := make([][]byte, len(ops))
	for ix, op := range ops {
		if op.Addr != DefaultAddress {
			t.Errorf("op %d sent to %#x", ix, op.Addr)
		}
		w[ix] = op.W
	}
	return w
}

func TestNew(t *testing.T) {
	dev, _ := newRecorded(t, PCF8574)
	if len(dev.Pins) != 8 {
		t.Errorf("PCF8574 has %d pins", len(dev.Pins))
	}
	dev, _ = newRecorded(t, PCF8575)
	if len(dev.Pins) != 16 {
		t.Errorf("PCF8575 has %d pins", len(dev.Pins))
	}
	if s := dev.String(); s != "PCF8575_20" {
		t.Errorf("String() = %q", s)
	}
	p := dev.Pins[9]
	if p.Name() != "PCF8575_20_P9" || p.String() != p.Name() || p.Number() != 9 {
		t.Errorf("unexpected pin %s(%d)", p.Name(), p.Number())
	}
	if err := p.PWM(gpio.DutyHalf, 0); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("PWM() = %v", err)
	}
	if _, err := New(&i2ctest.Record{}, DefaultAddress, "PCF8573"); !errors.Is(err, ErrVariant) {
		t.Errorf("New() = %v, want %v", err, ErrVariant)
	}
}

func TestWrite(t *testing.T) {
	dev, bus := newRecorded(t, PCF8574)
	steps := []struct {
		pin int
		l   gpio.Level
	}{
		// The first write always goes out.
		{0, gpio.High},
		{0, gpio.Low},
		// Unchanged, skipped.
		{0, gpio.Low},
		{7, gpio.Low},
		{0, gpio.High},
	}
	for _, s := range steps {
		if err := dev.Pins[s.pin].Out(s.l); err != nil {
			t.Fatal(err)
		}
	}
	expected := [][]byte{{0xff}, {0xfe}, {0x7e}, {0x7f}}
	if diff := cmp.Diff(expected, written(t, bus.Ops)); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteWide(t *testing.T) {
	dev, bus := newRecorded(t, PCF8575)
	if err := dev.Pins[9].Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if err := dev.Pins[2].Out(gpio.Low); err != nil {
		t.Fatal(err)
	}
	expected := [][]byte{{0xff, 0xfd}, {0xfb, 0xfd}}
	if diff := cmp.Diff(expected, written(t, bus.Ops)); diff != "" {
		t.Errorf("writes mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteError(t *testing.T) {
	dev, err := New(&i2ctest.Playback{DontPanic: true}, DefaultAddress, PCF8574)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Pins[0].Out(gpio.Low); err == nil {
		t.Fatal("Out() succeeded on an empty playback")
	}
}

func TestLines(t *testing.T) {
	dev, _ := newRecorded(t, PCF8575)
	seg, dig, err := dev.Lines(7, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(seg) != 7 || len(dig) != 4 {
		t.Fatalf("got %d segments and %d digits", len(seg), len(dig))
	}
	if seg[6].Name() != "PCF8575_20_P6" || dig[0].Name() != "PCF8575_20_P7" {
		t.Errorf("unexpected lines %s %s", seg[6], dig[0])
	}
	if _, _, err := dev.Lines(8, 9); !errors.Is(err, ErrLines) {
		t.Errorf("Lines(8, 9) = %v", err)
	}
	if _, _, err := dev.Lines(-1, 2); !errors.Is(err, ErrLines) {
		t.Errorf("Lines(-1, 2) = %v", err)
	}
}

func TestMultiplexed(t *testing.T) {
	dev, bus := newRecorded(t, PCF8575)
	seg, dig, err := dev.Lines(8, 4)
	if err != nil {
		t.Fatal(err)
	}
	disp, err := segmux.New(4, dig, seg, &segmux.Opts{Delay: func(time.Duration) {}})
	if err != nil {
		t.Fatal(err)
	}
	// Digits high, then each segment pulled low.
	if len(bus.Ops) != 9 {
		t.Fatalf("configuration took %d writes", len(bus.Ops))
	}
	if diff := cmp.Diff([]byte{0x00, 0xff}, bus.Ops[8].W); diff != "" {
		t.Errorf("configuration mismatch (-want +got):\n%s", diff)
	}
	if err := disp.SetDigits(1); err != nil {
		t.Fatal(err)
	}
	bus.Ops = bus.Ops[:0]
	if err := disp.Refresh(0); err != nil {
		t.Fatal(err)
	}
	// Digit 0 is P10, selected while segment b then c is high.
	expected := [][]byte{
		{0x01, 0xff}, {0x00, 0xff},
		{0x02, 0xff}, {0x02, 0xfe}, {0x02, 0xff}, {0x00, 0xff},
		{0x04, 0xff}, {0x04, 0xfe}, {0x04, 0xff}, {0x00, 0xff},
		{0x08, 0xff}, {0x00, 0xff},
		{0x10, 0xff}, {0x00, 0xff},
		{0x20, 0xff}, {0x00, 0xff},
		{0x40, 0xff}, {0x00, 0xff},
		{0x80, 0xff}, {0x00, 0xff},
	}
	if diff := cmp.Diff(expected, written(t, bus.Ops)); diff != "" {
		t.Errorf("refresh mismatch (-want +got):\n%s", diff)
	}
}

func TestHalt(t *testing.T) {
	dev, _ := newRecorded(t, PCF8574)
	p := dev.Pins[0]
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if len(dev.Pins) != 0 {
		t.Error("Halt() kept the pins")
	}
	if err := p.Out(gpio.High); !errors.Is(err, ErrHalted) {
		t.Errorf("Out() after Halt() = %v", err)
	}
	if err := p.Halt(); err != nil {
		t.Error(err)
	}
}
