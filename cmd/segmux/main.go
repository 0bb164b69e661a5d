// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// segmux shows a clock, a counter or a fixed text on a multiplexed seven
// segment display.
//
// The display can be wired directly on GPIOs, behind 74HC595 shift registers
// on an SPI bus, behind a PCF8574/PCF8575 expander on an I²C bus, or emulated
// on the terminal with -term. The emulated display always has all 8 segment
// lines, so -segments is ignored with -term; only the number of names in
// -digits is used.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/GermanBionicSystems/segdisplay/internal/demo"
	"github.com/GermanBionicSystems/segdisplay/nxp74hc595"
	"github.com/GermanBionicSystems/segdisplay/pcf857x"
	"github.com/GermanBionicSystems/segdisplay/segimage"
	"github.com/GermanBionicSystems/segdisplay/segmux"
	"github.com/GermanBionicSystems/segdisplay/segterm"
	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

type options struct {
	digits   string
	segments string
	spiPort  string
	units    int
	i2cBus   string
	addr     uint
	chip     string
	term     bool
	dwell    time.Duration
	mode     string
	text     string
	every    time.Duration
	png      string

	// segmentsSet is true when -segments was given explicitly.
	segmentsSet bool
}

// display is the wired display and what must be released when done.
type display struct {
	dev   *segmux.Dev
	term  *segterm.Dev
	close func() error
}

func splitNames(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// lookup returns the named pins. "" and "-" leave the slot unassigned when
// optional is set.
func lookup(names []string, optional bool) ([]gpio.PinOut, error) {
	pins := make([]gpio.PinOut, len(names))
	for ix, name := range names {
		name = strings.TrimSpace(name)
		if optional && (name == "" || name == "-") {
			continue
		}
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("no pin named %q", name)
		}
		pins[ix] = p
	}
	return pins, nil
}

func open(o *options) (*display, error) {
	digits := splitNames(o.digits)
	segments := splitNames(o.segments)
	opts := &segmux.DefaultOpts
	switch {
	case o.term:
		n := len(digits)
		if n == 0 {
			n = 4
		}
		if o.segmentsSet {
			log.Printf("-term always emulates 8 segment lines, ignoring -segments")
		}
		t := segterm.New(n, nil)
		dev, err := segmux.New(n, t.DigitPins(), t.SegmentPins(), opts)
		if err != nil {
			return nil, err
		}
		return &display{dev: dev, term: t, close: t.Halt}, nil

	case o.spiPort != "":
		p, err := spireg.Open(o.spiPort)
		if err != nil {
			return nil, err
		}
		c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		sr, err := nxp74hc595.New(c, o.units)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		n := len(digits)
		if n == 0 {
			// Digits start on the unit after the segments.
			n = (o.units - 1) * 8
		}
		seg, dig, err := sr.Lines(segmentsOnChain(segments), n)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		dev, err := segmux.New(n, dig, seg, opts)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		return &display{dev: dev, close: p.Close}, nil

	case o.i2cBus != "":
		b, err := i2creg.Open(o.i2cBus)
		if err != nil {
			return nil, err
		}
		pcf, err := pcf857x.New(b, uint16(o.addr), pcf857x.Variant(strings.ToUpper(o.chip)))
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		dev, err := onExpander(pcf, digits, segments)
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		return &display{dev: dev, close: b.Close}, nil

	default:
		dig, err := lookup(digits, false)
		if err != nil {
			return nil, err
		}
		seg, err := lookup(segments, true)
		if err != nil {
			return nil, err
		}
		dev, err := segmux.New(len(dig), dig, seg, opts)
		if err != nil {
			return nil, err
		}
		return &display{dev: dev, close: func() error { return nil }}, nil
	}
}

// onExpander wires a display on the expander outputs, the digits filling the
// lines left after the segments unless -digits names them.
func onExpander(pcf *pcf857x.Dev, digits, segments []string) (*segmux.Dev, error) {
	ns := segmentsOnChain(segments)
	n := len(digits)
	if n == 0 {
		n = len(pcf.Pins) - ns
	}
	seg, dig, err := pcf.Lines(ns, n)
	if err != nil {
		return nil, err
	}
	return segmux.New(n, dig, seg, &segmux.DefaultOpts)
}

// segmentsOnChain is 8 unless -segments lists exactly 7 lines.
func segmentsOnChain(segments []string) int {
	if len(segments) == 7 {
		return 7
	}
	return 8
}

func source(o *options) (demo.Source, error) {
	switch o.mode {
	case "clock":
		return demo.Clock{Blink: true}, nil
	case "counter":
		return &demo.Counter{Modulo: 10000}, nil
	case "text":
		return demo.Fixed(o.text), nil
	default:
		return nil, fmt.Errorf("unknown -mode %q", o.mode)
	}
}

func run(ctx context.Context, o *options, d *display, src demo.Source) error {
	clock := clockwork.NewRealClock()
	if o.png != "" {
		if err := d.dev.WriteString(src.Text(clock.Now())); err != nil {
			return err
		}
		f, err := os.Create(o.png)
		if err != nil {
			return err
		}
		opts := segimage.DefaultOpts
		opts.Caption = d.dev.String()
		if err := segimage.WritePNG(f, d.dev.State(), &opts); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errs := make(chan error, 3)
	go func() {
		errs <- demo.Feed(ctx, clock, o.every, src, d.dev)
	}()
	if d.term != nil {
		go func() {
			t := time.NewTicker(50 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					errs <- nil
					return
				case <-t.C:
					if err := d.term.Flush(); err != nil {
						errs <- err
						return
					}
				}
			}
		}()
	}
	go func() {
		errs <- d.dev.Run(ctx, o.dwell)
	}()
	err := <-errs
	cancel()
	return err
}

func mainImpl() error {
	o := &options{}
	flag.StringVar(&o.digits, "digits", "GPIO2,GPIO3,GPIO4,GPIO5", "comma separated digit select pins")
	flag.StringVar(&o.segments, "segments", "GPIO6,GPIO7,GPIO8,GPIO9,GPIO10,GPIO11,GPIO12", "comma separated segment pins a to g then dp, - for none; ignored with -term")
	flag.StringVar(&o.spiPort, "spi", "", "drive 74HC595 registers on this SPI port instead of GPIOs")
	flag.IntVar(&o.units, "units", 2, "number of chained 74HC595")
	flag.StringVar(&o.i2cBus, "i2c", "", "drive a PCF857x expander on this I²C bus instead of GPIOs")
	flag.UintVar(&o.addr, "addr", uint(pcf857x.DefaultAddress), "I²C address of the expander")
	flag.StringVar(&o.chip, "chip", string(pcf857x.PCF8575), "expander model, PCF8574 or PCF8575")
	flag.BoolVar(&o.term, "term", false, "emulate the display on the terminal")
	flag.DurationVar(&o.dwell, "dwell", 100*time.Microsecond, "time each segment stays lit per refresh")
	flag.StringVar(&o.mode, "mode", "clock", "clock, counter or text")
	flag.StringVar(&o.text, "text", "----", "text shown in text mode")
	flag.DurationVar(&o.every, "every", time.Second, "update interval")
	flag.StringVar(&o.png, "png", "", "write a snapshot to this PNG file and exit")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "segments" {
			o.segmentsSet = true
		}
	})
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}

	src, err := source(o)
	if err != nil {
		return err
	}
	if _, err := host.Init(); err != nil {
		return err
	}
	d, err := open(o)
	if err != nil {
		return err
	}
	defer d.close()
	log.Printf("using %s", d.dev)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, o, d, src)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "segmux: %s.\n", err)
		os.Exit(1)
	}
}
