// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf8574_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/expander/pcf8574"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	// Open default I²C bus.
	bus, err := i2creg.Open("")
	if err != nil {
		log.Fatalf("failed to open I²C: %v", err)
	}
	defer bus.Close()

	dev, err := pcf8574.New(bus, &pcf8574.DefaultOpts)
	if err != nil {
		log.Fatalln(err)
	}
	defer dev.Halt()

	// A LED on P0 and a push button to ground on P1.
	if err := dev.Configure(pcf8574.P0, pcf8574.Output, gpio.Low); err != nil {
		log.Fatalln(err)
	}
	if err := dev.Configure(pcf8574.P1, pcf8574.InputPullUp, gpio.Low); err != nil {
		log.Fatalln(err)
	}
	if err := dev.Begin(); err != nil {
		log.Fatalln(err)
	}

	pressed, err := dev.DigitalRead(pcf8574.P1, true)
	if err != nil {
		log.Fatalln(err)
	}
	if err := dev.DigitalWrite(pcf8574.P0, !pressed); err != nil {
		log.Fatalln(err)
	}
	fmt.Println(dev.DigitalReadAll())
}

func ExampleDev_Attach() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	dev, err := pcf8574.New(nil, &pcf8574.Opts{BusName: "1", Logger: pcf8574.GlogLogger{}})
	if err != nil {
		log.Fatalln(err)
	}
	defer dev.Halt()

	enc, err := dev.Encoder(pcf8574.P4, pcf8574.P5, false)
	if err != nil {
		log.Fatalln(err)
	}
	if err := dev.Begin(); err != nil {
		log.Fatalln(err)
	}

	// INT is wired to GPIO17 of the host.
	line := gpioreg.ByName("GPIO17")
	if line == nil {
		log.Fatal("GPIO17 not found")
	}
	err = dev.Attach(pcf8574.Interrupt{
		Line: line,
		Handler: func(gpio.PinIn) {
			fmt.Println(dev.DigitalReadAll())
		},
	})
	if err != nil {
		log.Fatalln(err)
	}

	for {
		if changed, pos := enc.Poll(); changed {
			fmt.Println("position", pos)
		}
	}
}
