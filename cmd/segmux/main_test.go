// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/segdisplay/pcf857x"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestLookup(t *testing.T) {
	for ix, name := range []string{"SEGMUX_TEST_D0", "SEGMUX_TEST_S0"} {
		if err := gpioreg.Register(&gpiotest.Pin{N: name, Num: 1000 + ix}); err != nil {
			t.Fatal(err)
		}
	}
	pins, err := lookup(splitNames("SEGMUX_TEST_S0,-,"), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(pins) != 3 || pins[0] == nil || pins[1] != nil || pins[2] != nil {
		t.Errorf("lookup() = %v", pins)
	}
	if _, err := lookup(splitNames("SEGMUX_TEST_D0,-"), false); err == nil {
		t.Error("lookup() accepted an empty digit")
	}
	if _, err := lookup([]string{"SEGMUX_TEST_NONE"}, false); err == nil {
		t.Error("lookup() found a missing pin")
	}
}

func TestSegmentsOnChain(t *testing.T) {
	if n := segmentsOnChain(splitNames("a,b,c,d,e,f,g")); n != 7 {
		t.Errorf("got %d", n)
	}
	if n := segmentsOnChain(nil); n != 8 {
		t.Errorf("got %d", n)
	}
}

func TestSource(t *testing.T) {
	for _, mode := range []string{"clock", "counter", "text"} {
		if _, err := source(&options{mode: mode}); err != nil {
			t.Errorf("source(%s) = %v", mode, err)
		}
	}
	if _, err := source(&options{mode: "weather"}); err == nil {
		t.Error("source() accepted an unknown mode")
	}
}

func TestSnapshot(t *testing.T) {
	o := &options{term: true, digits: "a,b,c,d", mode: "text", text: "-42-", png: filepath.Join(t.TempDir(), "out.png")}
	d, err := open(o)
	if err != nil {
		t.Fatal(err)
	}
	src, err := source(o)
	if err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), o, d, src); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(o.png)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatal(err)
	}
}

func TestOpenTermIgnoresSegments(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	o := &options{term: true, digits: "a,b", segments: "x,y", segmentsSet: true}
	d, err := open(o)
	if err != nil {
		t.Fatal(err)
	}
	if d.dev.NumDigits() != 2 || d.dev.NumSegments() != 8 {
		t.Errorf("got %s", d.dev)
	}
	if !strings.Contains(buf.String(), "ignoring -segments") {
		t.Errorf("missing warning, log: %q", buf.String())
	}
}

func TestOnExpander(t *testing.T) {
	bus := &i2ctest.Record{}
	pcf, err := pcf857x.New(bus, pcf857x.DefaultAddress, pcf857x.PCF8575)
	if err != nil {
		t.Fatal(err)
	}
	dev, err := onExpander(pcf, nil, splitNames("a,b,c,d,e,f,g"))
	if err != nil {
		t.Fatal(err)
	}
	if dev.NumDigits() != 9 || dev.NumSegments() != 7 {
		t.Errorf("got %s", dev)
	}
	if len(bus.Ops) == 0 {
		t.Error("lines were not configured")
	}

	small, err := pcf857x.New(&i2ctest.Record{}, pcf857x.DefaultAddress, pcf857x.PCF8574)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := onExpander(small, splitNames("d0,d1,d2,d3"), nil); err == nil {
		t.Error("onExpander() fit 12 lines on 8 outputs")
	}
}
