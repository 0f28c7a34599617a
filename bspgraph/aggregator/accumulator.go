package aggregator

import (
	"math"
	"sync/atomic"
)

// Float64Accumulator implements a concurrent-safe accumulator for float64
// values. The zero value is an accumulator holding 0.
type Float64Accumulator struct {
	// IEEE-754 bit patterns of the running and the last observed sums.
	prevBits uint64
	curBits  uint64
}

// Type implements bspgraph.Aggregator.
func (a *Float64Accumulator) Type() string {
	return "Float64Accumulator"
}

// Get returns the current value of the accumulator.
func (a *Float64Accumulator) Get() interface{} {
	return math.Float64frombits(atomic.LoadUint64(&a.curBits))
}

// Set the current value of the accumulator and reset its delta.
func (a *Float64Accumulator) Set(v interface{}) {
	bits := math.Float64bits(v.(float64))
	atomic.StoreUint64(&a.curBits, bits)
	atomic.StoreUint64(&a.prevBits, bits)
}

// Aggregate adds a float64 value to the accumulator.
func (a *Float64Accumulator) Aggregate(v interface{}) {
	delta := v.(float64)
	for {
		oldBits := atomic.LoadUint64(&a.curBits)
		newBits := math.Float64bits(math.Float64frombits(oldBits) + delta)
		if atomic.CompareAndSwapUint64(&a.curBits, oldBits, newBits) {
			return
		}
	}
}

// Delta returns the change in the accumulator value since the last time it
// was invoked or the last time that Set was invoked.
func (a *Float64Accumulator) Delta() interface{} {
	for {
		curBits := atomic.LoadUint64(&a.curBits)
		prevBits := atomic.LoadUint64(&a.prevBits)
		if atomic.CompareAndSwapUint64(&a.prevBits, prevBits, curBits) {
			return math.Float64frombits(curBits) - math.Float64frombits(prevBits)
		}
	}
}
