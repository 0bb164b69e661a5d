// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package segment

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeDigits(t *testing.T) {
	expected := []Pattern{0x3f, 0x06, 0x5b, 0x4f, 0x66, 0x6d, 0x7d, 0x07, 0x7f, 0x6f}
	for ix, want := range expected {
		got, err := Decode(Symbol(ix))
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("Decode(%d) = %#08b, expected %#08b", ix, got, want)
		}
	}
}

func TestDecodeSpecial(t *testing.T) {
	for s := Symbol(10); s <= Empty; s++ {
		if p, _ := Decode(s); p != 0 {
			t.Errorf("Decode(%d) = %#08b, expected all segments off", s, p)
		}
	}
	if p, _ := Decode(Dash); p != 0b0100_0000 {
		t.Errorf("Decode(Dash) = %#08b", p)
	}
	if SegG != 0b0100_0000 {
		t.Errorf("SegG = %#08b", SegG)
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, s := range []Symbol{18, 0x7f, 0xff} {
		if s.Valid() {
			t.Errorf("Symbol(%d).Valid() = true", s)
		}
		if _, err := Decode(s); !errors.Is(err, ErrInvalidSymbol) {
			t.Errorf("Decode(%d) error = %v", s, err)
		}
	}
}

func TestPatternString(t *testing.T) {
	data := []struct {
		p    Pattern
		want string
	}{
		{0, "-"},
		{0x06, "bc"},
		{0x40, "g"},
		{0x7f | SegDP, "abcdefgdp"},
	}
	for _, line := range data {
		if got := line.p.String(); got != line.want {
			t.Errorf("%#08b.String() = %q, expected %q", line.p, got, line.want)
		}
	}
	if Pattern(0xff).Lit(8) || Pattern(0xff).Lit(-1) {
		t.Error("Lit() out of range returned true")
	}
}

func TestEncode(t *testing.T) {
	got, err := Encode("-0.12 9.")
	if err != nil {
		t.Fatal(err)
	}
	want := []Pattern{0x40, 0x3f | SegDP, 0x06, 0x5b, 0, 0x6f | SegDP}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDots(t *testing.T) {
	got, err := Encode(".1..")
	if err != nil {
		t.Fatal(err)
	}
	want := []Pattern{SegDP, 0x06 | SegDP, SegDP}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Encode() mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	if _, err := Encode("12:34"); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Encode() error = %v", err)
	}
}
