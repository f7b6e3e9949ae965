//go:build rp2040

package main

import (
	"fmt"
	"image/color"
	"machine"
	"time"

	pio "github.com/tinygo-org/pio/rp2040-pio"
	"tinygo.org/x/drivers/encoders"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/todbot/touchpio/config"
	"github.com/todbot/touchpio/dev"
)

//go:generate tinygo flash -target=pico

var (
	white = color.RGBA{255, 255, 255, 255}

	encoder *encoders.QuadratureDevice
)

func main() {
	encoder = encoders.NewQuadratureViaInterrupt(config.ButtonA, config.ButtonB)
	encoder.Configure(encoders.QuadratureConfig{Precision: 1})
	config.Button.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	config.LED.Configure(machine.PinConfig{Mode: machine.PinOutput})

	machine.I2C0.Configure(machine.I2CConfig{Frequency: 400 * machine.KHz})
	// the delay is needed for display start from a cold reboot, not sure why
	time.Sleep(time.Second)
	display := ssd1306.NewI2C(machine.I2C0)
	cfg := ssd1306.Config{Width: 128, Height: 64, Address: 0x3C, VccState: ssd1306.SWITCHCAPVCC}
	display.Configure(cfg)
	display.ClearDisplay()

	touch, err := dev.NewPIOTouchIn(pio.PIO0.StateMachine(0), config.Touch, dev.DefaultMaxCount)
	if err != nil {
		for {
			println("touch init failed: " + err.Error())
			time.Sleep(time.Second)
		}
	}

	transitions := make(chan bool, 1)
	go func() {
		for touched := range transitions {
			if touched {
				println("touched!", touch.LastValue())
			} else {
				println("released")
			}
		}
	}()

	machine.Watchdog.Configure(machine.WatchdogConfig{
		TimeoutMillis: 3000,
	})
	machine.Watchdog.Start()

	font := &proggy.TinySZ8pt7b
	lastEnc := encoder.Position()
	wasTouched := false

	ticker := time.NewTicker(time.Millisecond * 50)
	for range ticker.C {
		if enc := encoder.Position(); enc != lastEnc {
			if d := enc - lastEnc; d > 0 {
				thresholdIncrease(touch, d)
			} else {
				thresholdDecrease(touch, -d)
			}
			lastEnc = enc
		}
		if !config.Button.Get() {
			touch.Threshold = touch.Baseline() + dev.ThresholdOffset
		}

		raw := touch.RawValue()
		touched := raw > touch.Threshold
		config.LED.Set(touched)
		if touched != wasTouched {
			select {
			case transitions <- touched:
			default:
			}
			wasTouched = touched
		}

		display.ClearBuffer()
		tinyfont.WriteLine(&display, font, 0, 10, fmt.Sprintf("raw  %d", raw), white)
		tinyfont.WriteLine(&display, font, 0, 22, fmt.Sprintf("base %d", touch.Baseline()), white)
		tinyfont.WriteLine(&display, font, 0, 34, fmt.Sprintf("thr  %d", touch.Threshold), white)
		if touched {
			tinyfont.WriteLine(&display, font, 0, 50, "TOUCHED", white)
		}
		display.Display()
		machine.Watchdog.Update()
	}
}
