//go:build rp2040

package dev

import (
	pio "github.com/tinygo-org/pio/rp2040-pio"
)

// Capacitive-sense measurement program. One cycle per value pulled
// from the TX FIFO: drive the pad high for a fixed charge interval,
// release it to input, then count the ceiling down two cycles at a
// time while the pad still reads high. Pushes the remainder; zero if
// the countdown ran out before the pad went low.
//
//	.program capsense
//	    pull block          ; countdown ceiling -> OSR, triggers a reading
//	    set pindirs, 1      ; pad as output
//	    set pins, 1         ; drive high, start charging
//	    set x, 30
//	charge:
//	    jmp x--, charge [31]
//	    mov x, osr          ; load the ceiling
//	    set pindirs, 0      ; release pad, charge decays through pulldown
//	timing:
//	    jmp x--, test       ; count down until timeout
//	    set x, 0            ; timed out: report zero remainder
//	    jmp done
//	test:
//	    jmp pin, timing     ; loop while the pad is still high
//	done:
//	    mov isr, x
//	    push
const (
	capsenseWrapTarget = 0
	capsenseWrap       = 12
)

const capsenseOrigin = -1

var capsenseInstructions = []uint16{
	0x80a0, //  0: pull   block
	0xe081, //  1: set    pindirs, 1
	0xe001, //  2: set    pins, 1
	0xe03e, //  3: set    x, 30
	0x1f44, //  4: jmp    x--, 4    [31]
	0xa027, //  5: mov    x, osr
	0xe080, //  6: set    pindirs, 0
	0x004a, //  7: jmp    x--, 10
	0xe020, //  8: set    x, 0
	0x000b, //  9: jmp    11
	0x00c7, // 10: jmp    pin, 7
	0xa0c1, // 11: mov    isr, x
	0x8020, // 12: push
}

// The charge interval and the two-cycle poll loop are calibrated
// against the state machine clock. The program runs at clkdiv 1.0 so
// these hold on a stock 125MHz system clock; a different sysclk
// rescales both the charge time and the raw-value units.
const (
	capsenseClockHz  = 125_000_000
	chargeIterations = 30 // set x, 30
	chargeDelay      = 31 // [31] on the charge jmp
	// chargeCycles is the length of the charge loop, about 8us at the
	// reference clock.
	chargeCycles = (chargeIterations + 1) * (chargeDelay + 1)
)

func capsenseProgramDefaultConfig(offset uint8) pio.StateMachineConfig {
	cfg := pio.DefaultStateMachineConfig()
	cfg.SetWrap(offset+capsenseWrapTarget, offset+capsenseWrap)
	return cfg
}
