// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package nxp74hc595_test

import (
	"log"
	"time"

	"github.com/GermanBionicSystems/segdisplay/nxp74hc595"
	"github.com/GermanBionicSystems/segdisplay/segmux"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	// Open the SPI Bus
	pc, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer pc.Close()
	conn, err := pc.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		log.Fatal(err)
	}
	// Two chained registers: segments a-g and dp on the first one, the 4
	// digit cathodes on the second one.
	dev, err := nxp74hc595.New(conn, 2)
	if err != nil {
		log.Fatal(err)
	}
	seg, dig, err := dev.Lines(8, 4)
	if err != nil {
		log.Fatal(err)
	}
	disp, err := segmux.New(4, dig, seg, &segmux.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	for i := range 10000 {
		if i%100 == 0 {
			_ = disp.WriteInt(i / 100)
		}
		if err := disp.Refresh(50 * time.Microsecond); err != nil {
			log.Fatal(err)
		}
	}
	_ = disp.Halt()
}
