//go:build rp2040

package dev

import (
	"machine"
	"runtime"

	pio "github.com/tinygo-org/pio/rp2040-pio"
)

// pioCounter runs the capsense program on one PIO state machine, with
// the pad as both the set pin and the jmp condition pin. It satisfies
// PulseCounter with one 32-bit word each way through the FIFOs.
type pioCounter struct {
	sm pio.StateMachine
}

// NewPIOTouchIn binds the capacitive-sense program to pin on the given
// state machine and returns a TouchIn measuring through it. The state
// machine and the pin are owned by the sensor from here on; one state
// machine serves exactly one pad.
//
// Errors from loading the program (typically out of instruction space
// on that PIO block) are returned as-is.
func NewPIOTouchIn(sm pio.StateMachine, pin machine.Pin, maxCount uint32) (*TouchIn, error) {
	Pio := sm.PIO()

	offset, err := Pio.AddProgram(capsenseInstructions, capsenseOrigin)
	if err != nil {
		return nil, err
	}
	pin.Configure(machine.PinConfig{Mode: Pio.PinMode()})
	cfg := capsenseProgramDefaultConfig(offset)
	cfg.SetSetPins(pin, 1)
	cfg.SetJmpPin(pin)
	sm.Init(offset, cfg)
	sm.SetEnabled(true)
	return NewTouchIn(&pioCounter{sm: sm}, maxCount)
}

func (c *pioCounter) Put(v uint32) {
	for c.sm.IsTxFIFOFull() {
		runtime.Gosched()
	}
	c.sm.TxPut(v)
}

func (c *pioCounter) Get() uint32 {
	for c.sm.IsRxFIFOEmpty() {
		runtime.Gosched()
	}
	return c.sm.RxGet()
}
