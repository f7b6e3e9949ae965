//go:build rp2040

package dev

import (
	"machine"
	"time"
)

// chargeInterval mirrors the PIO program's charge loop in the time
// domain, for counters that charge the pad from the CPU.
const chargeInterval = time.Duration(chargeCycles) * time.Second / capsenseClockHz

// BitBangCounter performs the charge/discharge measurement from the
// CPU, for boards where every PIO state machine is already claimed.
// Same handshake as the PIO program: one countdown ceiling in, one
// remainder out, zero remainder on timeout.
//
// A poll iteration costs several CPU cycles instead of two PIO cycles,
// so raw values are not comparable between the two counters, and the
// measurement is at the mercy of interrupts. Calibrate the waits with
// CalibrateWait before constructing the sensor for best results.
type BitBangCounter struct {
	pin machine.Pin
	req chan uint32
	res chan uint32
}

// NewBitBangCounter starts the measurement goroutine for pin. The pin
// is reconfigured between output and input on every measurement.
func NewBitBangCounter(pin machine.Pin) *BitBangCounter {
	c := &BitBangCounter{
		pin: pin,
		req: make(chan uint32),
		res: make(chan uint32),
	}
	go c.run()
	return c
}

func (c *BitBangCounter) run() {
	for ceiling := range c.req {
		c.res <- c.measure(ceiling)
	}
}

func (c *BitBangCounter) measure(ceiling uint32) uint32 {
	c.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	c.pin.High()
	WaitCalibrated(chargeInterval)
	c.pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	for x := ceiling; x > 0; x-- {
		if !c.pin.Get() {
			return x
		}
	}
	return 0
}

// Put submits the countdown ceiling for the next measurement.
func (c *BitBangCounter) Put(v uint32) {
	c.req <- v
}

// Get blocks until the measurement completes and returns the remainder.
func (c *BitBangCounter) Get() uint32 {
	return <-c.res
}
