// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segmux

import (
	"context"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Refresh lights every assigned segment line once, for dwell each, across all
// digits. It must be called repeatedly, at least 50 times a second, for the
// display to look steady. A dwell of 0 is enough for most displays.
//
// A failing pin does not stop the cycle; the lines are still released and the
// first error is returned.
func (d *Dev) Refresh(dwell time.Duration) error {
	d.mu.Lock()
	copy(d.frame, d.state)
	d.mu.Unlock()

	d.busMu.Lock()
	defer d.busMu.Unlock()
	var err error
	keep := func(e error) {
		if err == nil {
			err = e
		}
	}
	for i, seg := range d.segments {
		if seg == nil {
			continue
		}
		keep(seg.Out(gpio.High))
		bit := byte(1) << uint(i)
		for j, p := range d.digits {
			// Low sinks the current of digit j through segment i.
			keep(p.Out(gpio.Level(byte(d.frame[j])&bit == 0)))
		}
		if dwell > 0 {
			d.delay(dwell)
		}
		for _, p := range d.digits {
			keep(p.Out(gpio.High))
		}
		keep(seg.Out(gpio.Low))
	}
	return err
}

// Run refreshes the display until ctx is done, then turns it off. It returns
// nil when stopped through ctx or the first pin error.
func (d *Dev) Run(ctx context.Context, dwell time.Duration) error {
	for {
		select {
		case <-ctx.Done():
			return d.Halt()
		default:
		}
		if err := d.Refresh(dwell); err != nil {
			_ = d.Halt()
			return err
		}
	}
}
