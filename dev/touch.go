package dev

import "sync/atomic"

const (
	// DefaultMaxCount bounds the discharge countdown of a single
	// measurement. Larger values allow slower pads at the cost of a
	// longer worst-case measurement.
	DefaultMaxCount = 10_000
	// ThresholdOffset is added to the baseline reading to form the
	// initial touch threshold.
	ThresholdOffset = 200
)

// PulseCounter is the handshake with whatever executes the
// charge/discharge measurement: write one 32-bit countdown ceiling,
// read back the 32-bit remainder. Both calls block. Exactly one
// request may be in flight at a time.
type PulseCounter interface {
	Put(uint32)
	Get() uint32
}

// TouchIn reads the state of a capacitive touch pad through a
// PulseCounter. The raw value grows with the time the pad takes to
// discharge, so a touched pad reads higher than an untouched one.
type TouchIn struct {
	// Threshold is the raw value a measurement must strictly exceed
	// for Value to report a touch. Set at construction to the baseline
	// reading plus ThresholdOffset; adjust to tune sensitivity.
	Threshold uint32

	counter  PulseCounter
	maxCount uint32
	baseline uint32
	lastVal  uint32
	busy     uint32
}

// NewTouchIn takes one reference measurement on the untouched pad and
// derives the touch threshold from it. A maxCount of zero selects
// DefaultMaxCount.
//
// A baseline of 0xFFFFFFFF means the first remainder exceeded the
// ceiling: the input never went low within the measurement, so the pin
// has no discharge path to ground. That is a wiring problem, not a
// transient, and construction fails with ErrNoPulldown.
func NewTouchIn(c PulseCounter, maxCount uint32) (*TouchIn, error) {
	if maxCount == 0 {
		maxCount = DefaultMaxCount
	}
	t := &TouchIn{counter: c, maxCount: maxCount}

	// No accepted value exists yet, so the reference measurement is
	// taken as-is, without the corrupt-sample fallback of Read.
	c.Put(maxCount)
	t.baseline = maxCount - c.Get()
	if t.baseline == 0xFFFFFFFF {
		return nil, ErrNoPulldown
	}
	t.lastVal = t.baseline
	t.Threshold = t.baseline + ThresholdOffset
	return t, nil
}

// Read triggers one measurement cycle and returns the raw touch value,
// in [0, MaxCount]. A remainder above the ceiling is a corrupt reading
// and is replaced by the previous accepted value, which also stays the
// fallback for the next sample.
//
// A second Read while one is pending on the same sensor would
// permanently desynchronize the request/response pairing, so it fails
// with ErrDriverBusy (and the last accepted value) without touching
// the counter.
func (t *TouchIn) Read() (uint32, error) {
	if !atomic.CompareAndSwapUint32(&t.busy, 0, 1) {
		return t.lastVal, ErrDriverBusy
	}
	defer atomic.StoreUint32(&t.busy, 0)

	t.counter.Put(t.maxCount)
	remaining := t.counter.Get()
	if remaining > t.maxCount {
		return t.lastVal, nil
	}
	raw := t.maxCount - remaining
	t.lastVal = raw
	return raw, nil
}

// RawValue is Read with the busy error swallowed: a concurrent caller
// gets the last accepted value.
func (t *TouchIn) RawValue() uint32 {
	v, _ := t.Read()
	return v
}

// Value triggers a measurement and reports whether the pad is touched,
// i.e. whether the raw value strictly exceeds the current Threshold.
func (t *TouchIn) Value() bool {
	return t.RawValue() > t.Threshold
}

// Baseline returns the untouched reference reading taken at
// construction.
func (t *TouchIn) Baseline() uint32 {
	return t.baseline
}

// MaxCount returns the countdown ceiling of every measurement.
func (t *TouchIn) MaxCount() uint32 {
	return t.maxCount
}

// LastValue returns the most recently accepted raw value.
func (t *TouchIn) LastValue() uint32 {
	return t.lastVal
}
