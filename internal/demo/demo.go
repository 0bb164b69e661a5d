// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package demo produces the text shown by the segmux command.
package demo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
)

// Source returns the text to show at a given time.
type Source interface {
	Text(now time.Time) string
}

// Writer is implemented by segmux.Dev.
type Writer interface {
	WriteString(text string) error
}

// Clock shows the time as HHMM. With Blink, the decimal point after the hours
// is lit on even seconds.
type Clock struct {
	Blink bool
}

func (c Clock) Text(now time.Time) string {
	s := now.Format("1504")
	if c.Blink && now.Second()%2 == 0 {
		s = s[:2] + "." + s[2:]
	}
	return s
}

// Counter counts up by one on every call, wrapping at Modulo when set.
type Counter struct {
	Modulo int
	n      int
}

func (c *Counter) Text(time.Time) string {
	s := strconv.Itoa(c.n)
	c.n++
	if c.Modulo > 0 {
		c.n %= c.Modulo
	}
	return s
}

// Fixed always shows the same text.
type Fixed string

func (f Fixed) Text(time.Time) string {
	return string(f)
}

// Feed writes the text of src to w now and then every interval, until ctx is
// done.
func Feed(ctx context.Context, clock clockwork.Clock, every time.Duration, src Source, w Writer) error {
	if err := w.WriteString(src.Text(clock.Now())); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	ticker := clock.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.Chan():
			if err := w.WriteString(src.Text(now)); err != nil {
				return fmt.Errorf("demo: %w", err)
			}
		}
	}
}
