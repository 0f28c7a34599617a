package aggregator

import (
	"math"
	"sync"
	"testing"

	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(AccumulatorTestSuite))

type AccumulatorTestSuite struct{}

func (s *AccumulatorTestSuite) TestFloat64Accumulator(c *gc.C) {
	numValues := 100
	values := make([]interface{}, numValues)
	var exp float64
	for i := 0; i < numValues; i++ {
		next := float64(i) * 0.5
		values[i] = next
		exp += next
	}

	got := s.testConcurrentAccess(new(Float64Accumulator), values).(float64)
	absDelta := math.Abs(exp - got)
	c.Assert(absDelta < 1e-9, gc.Equals, true, gc.Commentf("expected to get %f; got %f; |delta| %f", exp, got, absDelta))
}

func (s *AccumulatorTestSuite) TestFloat64AccumulatorDelta(c *gc.C) {
	acc := new(Float64Accumulator)
	acc.Set(2.0)
	c.Assert(acc.Delta(), gc.Equals, 0.0)

	acc.Aggregate(0.5)
	acc.Aggregate(0.25)
	c.Assert(acc.Get(), gc.Equals, 2.75)
	c.Assert(acc.Delta(), gc.Equals, 0.75)
	c.Assert(acc.Delta(), gc.Equals, 0.0)

	acc.Set(0.0)
	c.Assert(acc.Get(), gc.Equals, 0.0)
	c.Assert(acc.Delta(), gc.Equals, 0.0)
}

func (s *AccumulatorTestSuite) testConcurrentAccess(a *Float64Accumulator, values []interface{}) interface{} {
	startedCh := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(len(values))
	for i := 0; i < len(values); i++ {
		go func(i int) {
			defer wg.Done()
			<-startedCh
			a.Aggregate(values[i])
		}(i)
	}

	close(startedCh)
	wg.Wait()
	return a.Get()
}

func Test(t *testing.T) {
	// Run all gocheck test-suites
	gc.TestingT(t)
}
