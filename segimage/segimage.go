// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segimage draws seven segment patterns as an image, for
// documentation, snapshots or any display.Drawer.
package segimage

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/segdisplay/segment"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

// Opts describes the geometry and colors of the rendered digits.
type Opts struct {
	// Size of one digit, without its decimal point.
	DigitWidth, DigitHeight float64
	// Thickness of a segment.
	Thickness float64
	// Margin around the image and between digits.
	Margin float64

	On, Off, Background color.Color

	// Caption is written under the digits when not empty.
	Caption     string
	CaptionSize float64
}

// DefaultOpts draws red digits on black.
var DefaultOpts = Opts{
	DigitWidth:  60,
	DigitHeight: 100,
	Thickness:   10,
	Margin:      10,
	On:          color.NRGBA{R: 255, A: 255},
	Off:         color.NRGBA{R: 40, G: 40, B: 40, A: 255},
	Background:  color.Black,
	CaptionSize: 16,
}

var (
	ErrNoDigits = errors.New("segimage: no digits to draw")
	ErrGeometry = errors.New("segimage: segments do not fit the digit")
)

// Render draws one digit per pattern, left to right.
func Render(patterns []segment.Pattern, opts *Opts) (image.Image, error) {
	dc, err := draw(patterns, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// WritePNG renders patterns and encodes the result as PNG.
func WritePNG(w io.Writer, patterns []segment.Pattern, opts *Opts) error {
	dc, err := draw(patterns, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SegmentCenter returns the point at the center of segment k of a digit.
func SegmentCenter(digit, k int, opts *Opts) (x, y float64) {
	o := withDefaults(opts)
	ox, oy := origin(digit, &o)
	w, h, t := o.DigitWidth, o.DigitHeight, o.Thickness
	upper := (t + h/2) / 2
	lower := (h/2 + h - t) / 2
	switch k {
	case 0:
		x, y = w/2, t/2
	case 1:
		x, y = w-t/2, upper
	case 2:
		x, y = w-t/2, lower
	case 3:
		x, y = w/2, h-t/2
	case 4:
		x, y = t/2, lower
	case 5:
		x, y = t/2, upper
	case 6:
		x, y = w/2, h/2
	default:
		x, y = w+t, h-t/2
	}
	return ox + x, oy + y
}

// Size returns the size of the image Render produces for n digits.
func Size(n int, opts *Opts) (width, height int) {
	o := withDefaults(opts)
	w := o.Margin + float64(n)*pitch(&o)
	h := 2*o.Margin + o.DigitHeight
	if o.Caption != "" {
		h += 2 * o.CaptionSize
	}
	return int(w + 0.5), int(h + 0.5)
}

func withDefaults(opts *Opts) Opts {
	if opts == nil {
		return DefaultOpts
	}
	o := *opts
	if o.DigitWidth == 0 {
		o.DigitWidth = DefaultOpts.DigitWidth
	}
	if o.DigitHeight == 0 {
		o.DigitHeight = DefaultOpts.DigitHeight
	}
	if o.Thickness == 0 {
		o.Thickness = DefaultOpts.Thickness
	}
	if o.On == nil {
		o.On = DefaultOpts.On
	}
	if o.Off == nil {
		o.Off = DefaultOpts.Off
	}
	if o.Background == nil {
		o.Background = DefaultOpts.Background
	}
	if o.CaptionSize == 0 {
		o.CaptionSize = DefaultOpts.CaptionSize
	}
	return o
}

// pitch is the horizontal distance between two digits, decimal point
// included.
func pitch(o *Opts) float64 {
	return o.DigitWidth + 2*o.Thickness + o.Margin
}

func origin(digit int, o *Opts) (float64, float64) {
	return o.Margin + float64(digit)*pitch(o), o.Margin
}

func draw(patterns []segment.Pattern, opts *Opts) (*gg.Context, error) {
	if len(patterns) == 0 {
		return nil, ErrNoDigits
	}
	o := withDefaults(opts)
	if 3*o.Thickness > o.DigitWidth || 4*o.Thickness > o.DigitHeight {
		return nil, fmt.Errorf("%w: thickness %g for %gx%g", ErrGeometry, o.Thickness, o.DigitWidth, o.DigitHeight)
	}
	width, height := Size(len(patterns), &o)
	dc := gg.NewContext(width, height)
	dc.SetColor(o.Background)
	dc.Clear()

	for digit, p := range patterns {
		ox, oy := origin(digit, &o)
		for k := range segment.NumSegments {
			if p.Lit(k) {
				dc.SetColor(o.On)
			} else {
				dc.SetColor(o.Off)
			}
			if k == segment.NumSegments-1 {
				x, y := SegmentCenter(digit, k, &o)
				dc.DrawCircle(x, y, o.Thickness/2)
			} else {
				segmentPath(dc, k, ox, oy, &o)
			}
			dc.Fill()
		}
	}

	if o.Caption != "" {
		f, err := truetype.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("segimage: %w", err)
		}
		dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: o.CaptionSize}))
		dc.SetColor(o.On)
		y := 2*o.Margin + o.DigitHeight + o.CaptionSize/2
		dc.DrawStringAnchored(o.Caption, float64(width)/2, y, 0.5, 0.5)
	}
	return dc, nil
}

// segmentPath adds the hexagon of segment k to the current path.
func segmentPath(dc *gg.Context, k int, ox, oy float64, o *Opts) {
	w, h, t := o.DigitWidth, o.DigitHeight, o.Thickness
	hw := t / 2
	horizontal := func(y float64) {
		x0, x1 := ox+t, ox+w-t
		dc.MoveTo(x0-hw, oy+y)
		dc.LineTo(x0, oy+y-hw)
		dc.LineTo(x1, oy+y-hw)
		dc.LineTo(x1+hw, oy+y)
		dc.LineTo(x1, oy+y+hw)
		dc.LineTo(x0, oy+y+hw)
		dc.ClosePath()
	}
	vertical := func(x, y0, y1 float64) {
		dc.MoveTo(ox+x, oy+y0)
		dc.LineTo(ox+x+hw, oy+y0+hw)
		dc.LineTo(ox+x+hw, oy+y1-hw)
		dc.LineTo(ox+x, oy+y1)
		dc.LineTo(ox+x-hw, oy+y1-hw)
		dc.LineTo(ox+x-hw, oy+y0+hw)
		dc.ClosePath()
	}
	switch k {
	case 0:
		horizontal(hw)
	case 1:
		vertical(w-hw, t, h/2)
	case 2:
		vertical(w-hw, h/2, h-t)
	case 3:
		horizontal(h - hw)
	case 4:
		vertical(hw, h/2, h-t)
	case 5:
		vertical(hw, t, h/2)
	case 6:
		horizontal(h / 2)
	}
}
