package metrics

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/citerank/citerank/pagerank"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(MetricsTestSuite))

func Test(t *testing.T) {
	// Run all gocheck test-suites
	gc.TestingT(t)
}

type MetricsTestSuite struct {
}

func (s *MetricsTestSuite) TestObserver(c *gc.C) {
	reg := prometheus.NewPedanticRegistry()
	obs := NewObserver(reg)

	obs.Initialized(3, 0.5)
	c.Assert(testutil.ToFloat64(obs.pages), gc.Equals, 3.0)
	c.Assert(testutil.ToFloat64(obs.sinkMass), gc.Equals, 0.5)

	for i := 1; i <= 2; i++ {
		obs.IterationCompleted(pagerank.IterationStats{
			Iteration:  i,
			Perplexity: 2.5,
			Streak:     i,
			SinkMass:   0.25,
			Duration:   10 * time.Millisecond,
		})
	}
	obs.RunCompleted(pagerank.Result{Iterations: 2, Converged: true})

	c.Assert(testutil.ToFloat64(obs.iterations), gc.Equals, 2.0)
	c.Assert(testutil.ToFloat64(obs.perplexity), gc.Equals, 2.5)
	c.Assert(testutil.ToFloat64(obs.streak), gc.Equals, 2.0)
	c.Assert(testutil.ToFloat64(obs.sinkMass), gc.Equals, 0.25)
	c.Assert(testutil.ToFloat64(obs.runs.WithLabelValues("true")), gc.Equals, 1.0)
	c.Assert(testutil.ToFloat64(obs.runs.WithLabelValues("false")), gc.Equals, 0.0)

	families, err := reg.Gather()
	c.Assert(err, gc.IsNil)
	for _, mf := range families {
		if mf.GetName() == "citerank_iteration_duration_seconds" {
			c.Assert(mf.GetMetric()[0].GetHistogram().GetSampleCount(), gc.Equals, uint64(2))
			return
		}
	}
	c.Fatal("iteration duration histogram was not exported")
}

func (s *MetricsTestSuite) TestConfigValidation(c *gc.C) {
	cfg := Config{ListenAddr: ":0"}
	c.Assert(cfg.validate(), gc.IsNil)
	c.Assert(cfg.Gatherer, gc.Not(gc.IsNil), gc.Commentf("default gatherer was not assigned"))
	c.Assert(cfg.Logger, gc.Not(gc.IsNil), gc.Commentf("default logger was not assigned"))

	cfg = Config{}
	c.Assert(cfg.validate(), gc.ErrorMatches, "(?ms).*listen address has not been specified.*")
}

func (s *MetricsTestSuite) TestMetricsEndpoint(c *gc.C) {
	reg := prometheus.NewRegistry()
	obs := NewObserver(reg)
	obs.Initialized(42, 0)

	svc, err := NewService(Config{ListenAddr: ":0", Gatherer: reg})
	c.Assert(err, gc.IsNil)

	req := httptest.NewRequest("GET", metricsEndpoint, nil)
	res := httptest.NewRecorder()
	svc.router.ServeHTTP(res, req)

	c.Assert(res.Code, gc.Equals, http.StatusOK)
	body, err := ioutil.ReadAll(res.Result().Body)
	c.Assert(err, gc.IsNil)
	c.Assert(string(body), gc.Matches, "(?ms).*citerank_pages 42.*")
}
