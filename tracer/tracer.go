// Package tracer configures jaeger-backed opentracing tracers.
package tracer

import (
	"io"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	"golang.org/x/xerrors"
)

// Pool keeps track of instantiated tracers and provides a helper method for
// closing all of them at once.
var Pool = new(pool)

type pool struct {
	mu            sync.Mutex
	tracerClosers []io.Closer
}

// Close all tracer instances currently tracked by the pool.
func (p *pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	for _, closer := range p.tracerClosers {
		if cErr := closer.Close(); cErr != nil {
			err = multierror.Append(err, cErr)
		}
	}

	p.tracerClosers = nil
	return err
}

func (p *pool) track(closer io.Closer) {
	p.mu.Lock()
	p.tracerClosers = append(p.tracerClosers, closer)
	p.mu.Unlock()
}

// GetTracer returns a new Jaeger tracer configured from the JAEGER_* environment
// variables. Unless JAEGER_SAMPLER_TYPE is set, every span is sampled; batch
// runs emit only a handful of spans. Callers must call Close on the exported
// Pool object before their application exits so that no spans are lost.
func GetTracer(serviceName string) (opentracing.Tracer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, xerrors.Errorf("jaeger config: %w", err)
	}

	if cfg.Sampler == nil || cfg.Sampler.Type == "" {
		cfg.Sampler = &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		}
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = serviceName
	}

	tracer, closer, err := cfg.NewTracer()
	if err != nil {
		return nil, xerrors.Errorf("jaeger tracer: %w", err)
	}

	Pool.track(closer)
	return tracer, nil
}

// Install creates a tracer via GetTracer and registers it as the
// opentracing global tracer.
func Install(serviceName string) error {
	tracer, err := GetTracer(serviceName)
	if err != nil {
		return err
	}
	opentracing.SetGlobalTracer(tracer)
	return nil
}
