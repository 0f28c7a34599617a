package bspgraph

// Aggregator is implemented by types that provide concurrent-safe aggregation
// primitives (e.g. counters, sums, min/max).
type Aggregator interface {
	// Type returns the type of this aggregator.
	Type() string

	// Set the aggregator to the specified value.
	Set(val interface{})

	// Get the current aggregator value.
	Get() interface{}

	// Aggregate updates the aggregator's value based on the provided value.
	Aggregate(val interface{})

	// Delta returns the change in the aggregator's value since the last
	// call to Delta or Set.
	Delta() interface{}
}

// ComputeFunc is a function that a graph instance invokes on each vertex when
// executing a superstep. Implementations read values through Graph.Value,
// which always returns the snapshot produced by the previous superstep, and
// publish new values through Graph.SetValue.
type ComputeFunc func(g *Graph, v *Vertex) error
