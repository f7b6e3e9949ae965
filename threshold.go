//go:build rp2040

package main

import "github.com/todbot/touchpio/dev"

// pow10 computes 10^exp for small integer exponents.
func pow10(exp uint32) uint32 {
	result := uint32(1)
	for i := uint32(0); i < exp; i++ {
		result *= 10
	}
	return result
}

// log10 returns the largest x such that 10^x <= n, and 0 for n == 0.
func log10(n uint32) uint32 {
	log := uint32(0)
	for n >= 10 {
		n /= 10
		log++
	}
	return log
}

// thresholdStep scales encoder clicks to the magnitude of the current
// threshold, one decade below it.
func thresholdStep(threshold uint32) uint32 {
	l := log10(threshold)
	if l == 0 {
		return 1
	}
	return pow10(l - 1)
}

func thresholdIncrease(t *dev.TouchIn, d int) {
	t.Threshold += uint32(d) * thresholdStep(t.Threshold)
}

func thresholdDecrease(t *dev.TouchIn, d int) {
	step := uint32(d) * thresholdStep(t.Threshold)
	if step >= t.Threshold {
		t.Threshold = 1
		return
	}
	t.Threshold -= step
}
