package bspgraph

import (
	"sync"
	"sync/atomic"

	"golang.org/x/xerrors"
)

// ErrUnknownVertex is returned by SetBacklinks when the destination vertex is
// not present in the graph.
var ErrUnknownVertex = xerrors.New("vertex is not part of the graph")

// Vertex represents a page in the Graph.
type Vertex struct {
	id        int64
	index     int
	outLinks  int
	backlinks []*Vertex
}

// ID returns the vertex ID.
func (v *Vertex) ID() int64 { return v.id }

// OutLinkCount returns the number of out-links registered for this vertex.
func (v *Vertex) OutLinkCount() int { return v.outLinks }

// IsSink returns true if the vertex does not link to any other vertex.
func (v *Vertex) IsSink() bool { return v.outLinks == 0 }

// Backlinks returns the distinct set of vertices linking to this vertex.
func (v *Vertex) Backlinks() []*Vertex { return v.backlinks }

// Graph implements a bulk-synchronous graph processor. Vertex values are kept
// in two snapshots: compute functions read from the snapshot produced by the
// previous superstep and write to the other one; the snapshots swap roles once
// every vertex has been processed.
type Graph struct {
	superstep int

	aggregators map[string]Aggregator
	vertexByID  map[int64]*Vertex
	vertices    []*Vertex
	values      [2][]float64
	computeFn   ComputeFunc

	wg              sync.WaitGroup
	vertexCh        chan *Vertex
	errCh           chan error
	stepCompletedCh chan struct{}
	activeInStep    int64
	pendingInStep   int64
}

// NewGraph creates a new Graph instance using the specified configuration. It
// is important for callers to invoke Close() on the returned graph instance
// when they are done using it.
func NewGraph(cfg GraphConfig) (*Graph, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("graph config validation failed: %w", err)
	}

	g := &Graph{
		computeFn:   cfg.ComputeFn,
		aggregators: make(map[string]Aggregator),
		vertexByID:  make(map[int64]*Vertex),
	}
	g.startWorkers(cfg.ComputeWorkers)

	return g, nil
}

// Close releases any resources associated with the graph.
func (g *Graph) Close() error {
	close(g.vertexCh)
	g.wg.Wait()

	return g.Reset()
}

// Reset the state of the graph by removing any existing vertices or
// aggregators and resetting the superstep counter.
func (g *Graph) Reset() error {
	g.superstep = 0
	g.vertexByID = make(map[int64]*Vertex)
	g.vertices = nil
	g.values = [2][]float64{}
	g.aggregators = make(map[string]Aggregator)
	return nil
}

// Vertices returns the graph vertices in the order they were first added.
func (g *Graph) Vertices() []*Vertex { return g.vertices }

// Vertex returns the vertex with the specified id or nil if the vertex does
// not exist.
func (g *Graph) Vertex(id int64) *Vertex { return g.vertexByID[id] }

// AddVertex returns the vertex with the specified id, inserting it with a zero
// value if it does not exist yet.
func (g *Graph) AddVertex(id int64) *Vertex {
	if v := g.vertexByID[id]; v != nil {
		return v
	}

	v := &Vertex{id: id, index: len(g.vertices)}
	g.vertexByID[id] = v
	g.vertices = append(g.vertices, v)
	g.values[0] = append(g.values[0], 0)
	g.values[1] = append(g.values[1], 0)
	return v
}

// SetBacklinks replaces the set of vertices linking to dstID. Any source that
// is not yet known is added to the graph. The out-link count of each source is
// incremented once per occurrence in srcIDs, while the back-link set of dstID
// only keeps distinct sources. The destination vertex must already exist.
func (g *Graph) SetBacklinks(dstID int64, srcIDs []int64) error {
	dst := g.vertexByID[dstID]
	if dst == nil {
		return xerrors.Errorf("set back-links of %d: %w", dstID, ErrUnknownVertex)
	}

	seen := make(map[int64]struct{}, len(srcIDs))
	backlinks := make([]*Vertex, 0, len(srcIDs))
	for _, srcID := range srcIDs {
		src := g.AddVertex(srcID)
		src.outLinks++

		if _, dup := seen[srcID]; dup {
			continue
		}
		seen[srcID] = struct{}{}
		backlinks = append(backlinks, src)
	}

	dst.backlinks = backlinks
	return nil
}

// Value returns the value of v as of the last completed superstep.
func (g *Graph) Value(v *Vertex) float64 {
	return g.values[g.superstep%2][v.index]
}

// SetValue sets the value that v will hold once the current superstep
// completes. It does not affect the values returned by Value until then.
func (g *Graph) SetValue(v *Vertex, val float64) {
	g.values[(g.superstep+1)%2][v.index] = val
}

// SetAllValues assigns val to every vertex in both value snapshots.
func (g *Graph) SetAllValues(val float64) {
	for i := 0; i < 2; i++ {
		for j := range g.values[i] {
			g.values[i][j] = val
		}
	}
}

// RegisterAggregator adds an aggregator with the specified name into the graph.
func (g *Graph) RegisterAggregator(name string, aggr Aggregator) { g.aggregators[name] = aggr }

// Aggregator returns the aggregator with the specified name or nil if the
// aggregator does not exist
func (g *Graph) Aggregator(name string) Aggregator { return g.aggregators[name] }

// Aggregators returns a map of all currently registered aggregators where the
// key is the aggregator's name.
func (g *Graph) Aggregators() map[string]Aggregator { return g.aggregators }

// Superstep returns the number of completed supersteps.
func (g *Graph) Superstep() int { return g.superstep }

// step executes the compute function for every vertex and returns back the
// number of processed vertices. The caller is responsible for advancing the
// superstep counter so the freshly computed values become visible.
func (g *Graph) step() (int, error) {
	g.activeInStep = 0
	g.pendingInStep = int64(len(g.vertices))

	// No work required.
	if g.pendingInStep == 0 {
		return 0, nil
	}

	for _, v := range g.vertices {
		g.vertexCh <- v
	}

	// Block until worker pool has finished processing all vertices.
	<-g.stepCompletedCh

	// Dequeue any errors
	var err error
	select {
	case err = <-g.errCh: // dequeued
	default: // no error available
	}

	return int(g.activeInStep), err
}

// startWorkers allocates the required channels and spins up numWorkers to
// execute each superstep.
func (g *Graph) startWorkers(numWorkers int) {
	g.vertexCh = make(chan *Vertex)
	g.errCh = make(chan error, 1)
	g.stepCompletedCh = make(chan struct{})

	g.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go g.stepWorker()
	}
}

// stepWorker polls vertexCh for incoming vertices and executes the configured
// ComputeFunc for each one. The worker automatically exits when vertexCh gets
// closed.
func (g *Graph) stepWorker() {
	for v := range g.vertexCh {
		if err := g.computeFn(g, v); err != nil {
			tryEmitError(g.errCh, xerrors.Errorf("running compute function for vertex %d failed: %w", v.ID(), err))
		} else {
			_ = atomic.AddInt64(&g.activeInStep, 1)
		}
		if atomic.AddInt64(&g.pendingInStep, -1) == 0 {
			g.stepCompletedCh <- struct{}{}
		}
	}
	g.wg.Done()
}

func tryEmitError(errCh chan<- error, err error) {
	select {
	case errCh <- err: // queued error
	default: // channel already contains another error
	}
}
