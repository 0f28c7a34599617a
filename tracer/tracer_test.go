package tracer

import (
	"io"
	"os"
	"testing"

	"github.com/opentracing/opentracing-go"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(TracerTestSuite))

func Test(t *testing.T) {
	// Run all gocheck test-suites
	gc.TestingT(t)
}

type TracerTestSuite struct {
}

func (s *TracerTestSuite) SetUpTest(c *gc.C) {
	// Keep the reporter from trying to reach an agent.
	c.Assert(os.Setenv("JAEGER_DISABLED", "true"), gc.IsNil)
}

func (s *TracerTestSuite) TearDownTest(c *gc.C) {
	_ = os.Unsetenv("JAEGER_DISABLED")
	opentracing.SetGlobalTracer(opentracing.NoopTracer{})
}

func (s *TracerTestSuite) TestInstallAndClose(c *gc.C) {
	c.Assert(Install("pagerank-test"), gc.IsNil)

	span := opentracing.StartSpan("test-span")
	span.Finish()

	c.Assert(Pool.Close(), gc.IsNil)
	c.Assert(Pool.tracerClosers, gc.HasLen, 0)
}

func (s *TracerTestSuite) TestPoolCollectsCloseErrors(c *gc.C) {
	Pool.track(closerFunc(func() error { return xerrors.New("flush failed") }))
	Pool.track(closerFunc(func() error { return nil }))

	err := Pool.Close()
	c.Assert(err, gc.ErrorMatches, "(?ms).*flush failed.*")
	c.Assert(Pool.tracerClosers, gc.HasLen, 0)
}

type closerFunc func() error

var _ io.Closer = closerFunc(nil)

func (f closerFunc) Close() error { return f() }
