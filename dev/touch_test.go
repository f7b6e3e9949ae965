package dev

import (
	"testing"
)

// scriptCounter replays a fixed sequence of remainders, repeating the
// last one, and records every ceiling written to it.
type scriptCounter struct {
	remainders []uint32
	reads      int
	sent       []uint32
}

func (c *scriptCounter) Put(v uint32) {
	c.sent = append(c.sent, v)
}

func (c *scriptCounter) Get() uint32 {
	r := c.remainders[c.reads]
	if c.reads < len(c.remainders)-1 {
		c.reads++
	}
	return r
}

func TestBaseline(t *testing.T) {
	c := &scriptCounter{remainders: []uint32{9000}}
	touch, err := NewTouchIn(c, 10000)
	if err != nil {
		t.Fatal(err)
	}
	if touch.Baseline() != 1000 {
		t.Error("Expected baseline 1000, got", touch.Baseline())
	}
	if touch.Threshold != 1200 {
		t.Error("Expected threshold 1200, got", touch.Threshold)
	}
	if touch.LastValue() != 1000 {
		t.Error("Expected last value 1000, got", touch.LastValue())
	}
}

func TestBaselineTimeout(t *testing.T) {
	// a pad that never discharges reports a zero remainder; that is a
	// valid, if useless, baseline
	c := &scriptCounter{remainders: []uint32{0}}
	touch, err := NewTouchIn(c, 10000)
	if err != nil {
		t.Fatal(err)
	}
	if touch.Baseline() != 10000 {
		t.Error("Expected baseline 10000, got", touch.Baseline())
	}
	if touch.Threshold != 10200 {
		t.Error("Expected threshold 10200, got", touch.Threshold)
	}
}

func TestNoPulldown(t *testing.T) {
	// remainder one past the ceiling wraps the baseline to 0xFFFFFFFF
	c := &scriptCounter{remainders: []uint32{10001}}
	touch, err := NewTouchIn(c, 10000)
	if err != ErrNoPulldown {
		t.Error("Expected ErrNoPulldown, got", err)
	}
	if touch != nil {
		t.Error("Expected no sensor on baseline failure")
	}
}

func TestDefaultMaxCount(t *testing.T) {
	c := &scriptCounter{remainders: []uint32{9000}}
	if _, err := NewTouchIn(c, 0); err != nil {
		t.Fatal(err)
	}
	if c.sent[0] != DefaultMaxCount {
		t.Error("Expected default ceiling", DefaultMaxCount, "got", c.sent[0])
	}
}

func TestMaxCountHonored(t *testing.T) {
	// the configured ceiling is the word sent on every handshake
	c := &scriptCounter{remainders: []uint32{4000}}
	touch, err := NewTouchIn(c, 5000)
	if err != nil {
		t.Fatal(err)
	}
	touch.Read()
	touch.Read()
	for i, v := range c.sent {
		if v != 5000 {
			t.Error("Expected ceiling 5000 on request", i, "got", v)
		}
	}
	if touch.MaxCount() != 5000 {
		t.Error("Expected max count 5000, got", touch.MaxCount())
	}
}

func TestReadRange(t *testing.T) {
	c := &scriptCounter{remainders: []uint32{9000, 9500, 10000, 0}}
	touch, err := NewTouchIn(c, 10000)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []uint32{500, 0, 10000} {
		raw, err := touch.Read()
		if err != nil {
			t.Fatal(err)
		}
		if raw != want {
			t.Error("Expected raw", want, "got", raw)
		}
		if raw > touch.MaxCount() {
			t.Error("Raw value above ceiling:", raw)
		}
	}
}

func TestCorruptSampleFallback(t *testing.T) {
	c := &scriptCounter{remainders: []uint32{9000, 9500, 20000, 9600}}
	touch, err := NewTouchIn(c, 10000)
	if err != nil {
		t.Fatal(err)
	}

	raw, _ := touch.Read()
	if raw != 500 {
		t.Error("Expected raw 500, got", raw)
	}

	// corrupt remainder: previous value returned, fallback untouched
	raw, err = touch.Read()
	if err != nil {
		t.Fatal(err)
	}
	if raw != 500 {
		t.Error("Expected fallback 500, got", raw)
	}
	if touch.LastValue() != 500 {
		t.Error("Expected last value 500, got", touch.LastValue())
	}

	raw, _ = touch.Read()
	if raw != 400 {
		t.Error("Expected raw 400, got", raw)
	}
}

func TestValueThreshold(t *testing.T) {
	c := &scriptCounter{remainders: []uint32{9000, 8000}}
	touch, err := NewTouchIn(c, 10000)
	if err != nil {
		t.Fatal(err)
	}

	// every sample from here on reads raw 2000
	if !touch.Value() {
		t.Error("Expected touch above threshold 1200")
	}
	touch.Threshold = 2500
	if touch.Value() {
		t.Error("Expected no touch below threshold 2500")
	}
	touch.Threshold = 2000
	if touch.Value() {
		t.Error("Expected no touch at exact threshold")
	}
	touch.Threshold = 1999
	if !touch.Value() {
		t.Error("Expected touch above threshold 1999")
	}
}

// blockCounter parks the second measurement until released.
type blockCounter struct {
	first   bool
	entered chan struct{}
	gate    chan uint32
}

func (c *blockCounter) Put(v uint32) {}

func (c *blockCounter) Get() uint32 {
	if !c.first {
		c.first = true
		return 9000
	}
	c.entered <- struct{}{}
	return <-c.gate
}

func TestReadBusy(t *testing.T) {
	c := &blockCounter{entered: make(chan struct{}), gate: make(chan uint32)}
	touch, err := NewTouchIn(c, 10000)
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan uint32)
	go func() {
		v, _ := touch.Read()
		done <- v
	}()
	<-c.entered

	if _, err := touch.Read(); err != ErrDriverBusy {
		t.Error("Expected ErrDriverBusy, got", err)
	}
	if v := touch.RawValue(); v != 1000 {
		t.Error("Expected last value 1000 while busy, got", v)
	}

	c.gate <- 9500
	if v := <-done; v != 500 {
		t.Error("Expected raw 500, got", v)
	}
}
