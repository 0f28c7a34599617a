package bspgraph_test

import (
	"context"

	"github.com/citerank/citerank/bspgraph"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ExecutorTestSuite))

type ExecutorTestSuite struct{}

func (s *ExecutorTestSuite) TestCallbacksObservePublishedValues(c *gc.C) {
	g, err := bspgraph.NewGraph(bspgraph.GraphConfig{
		ComputeFn: func(g *bspgraph.Graph, v *bspgraph.Vertex) error {
			g.SetValue(v, g.Value(v)+1)
			return nil
		},
	})
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(g.Close(), gc.IsNil) }()

	v := g.AddVertex(1)

	var preValues, postValues []float64
	ex := bspgraph.NewExecutor(g, bspgraph.ExecutorCallbacks{
		PreStep: func(_ context.Context, g *bspgraph.Graph) error {
			preValues = append(preValues, g.Value(v))
			return nil
		},
		PostStep: func(_ context.Context, g *bspgraph.Graph, activeInStep int) error {
			c.Assert(activeInStep, gc.Equals, 1)
			postValues = append(postValues, g.Value(v))
			return nil
		},
		PostStepKeepRunning: func(_ context.Context, g *bspgraph.Graph, _ int) (bool, error) {
			return g.Value(v) < 3, nil
		},
	})

	c.Assert(ex.RunToCompletion(context.TODO()), gc.IsNil)
	c.Assert(preValues, gc.DeepEquals, []float64{0, 1, 2})
	c.Assert(postValues, gc.DeepEquals, []float64{1, 2, 3})
	c.Assert(ex.Superstep(), gc.Equals, 3)
	c.Assert(ex.Graph(), gc.Equals, g)
}

func (s *ExecutorTestSuite) TestExecutorResumesFromCurrentSuperstep(c *gc.C) {
	g, err := bspgraph.NewGraph(bspgraph.GraphConfig{
		ComputeFn: func(g *bspgraph.Graph, v *bspgraph.Vertex) error {
			g.SetValue(v, g.Value(v)+1)
			return nil
		},
	})
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(g.Close(), gc.IsNil) }()

	v := g.AddVertex(1)
	c.Assert(bspgraph.NewExecutor(g, bspgraph.ExecutorCallbacks{}).RunSteps(context.TODO(), 3), gc.IsNil)
	c.Assert(bspgraph.NewExecutor(g, bspgraph.ExecutorCallbacks{}).RunSteps(context.TODO(), 2), gc.IsNil)

	c.Assert(g.Superstep(), gc.Equals, 5)
	c.Assert(g.Value(v), gc.Equals, 5.0)
}

func (s *ExecutorTestSuite) TestContextCancellation(c *gc.C) {
	g, err := bspgraph.NewGraph(bspgraph.GraphConfig{
		ComputeFn: func(*bspgraph.Graph, *bspgraph.Vertex) error { return nil },
	})
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(g.Close(), gc.IsNil) }()
	g.AddVertex(1)

	ctx, cancelFn := context.WithCancel(context.TODO())
	ex := bspgraph.NewExecutor(g, bspgraph.ExecutorCallbacks{
		PostStep: func(context.Context, *bspgraph.Graph, int) error {
			if g.Superstep() == 2 {
				cancelFn()
			}
			return nil
		},
	})

	err = ex.RunToCompletion(ctx)
	c.Assert(err, gc.Equals, context.Canceled)
	c.Assert(ex.Superstep(), gc.Equals, 2)
}
