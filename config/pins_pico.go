//go:build rp2040

package config

import "machine"

var (
	// Touch is the capacitive pad. Wire a 1Mohm pulldown from the pad
	// to ground.
	Touch = machine.GP2

	Button  = machine.GP28
	ButtonA = machine.GP7
	ButtonB = machine.GP6

	LED = machine.LED
)
