package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/citerank/citerank/linkgraph"
	"github.com/citerank/citerank/linkgraph/store/cdb"
	"github.com/citerank/citerank/linkgraph/store/textfile"
	"github.com/citerank/citerank/metrics"
	"github.com/citerank/citerank/pagerank"
	"github.com/citerank/citerank/report"
	"github.com/citerank/citerank/service"
	"github.com/citerank/citerank/service/api"
	"github.com/citerank/citerank/service/ranking"
	"github.com/citerank/citerank/tracer"
	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"
)

var (
	appName = "pagerank"
	appSha  = "populated-at-link-time"
	logger  *logrus.Entry

	// Compile-time check for ensuring that run summaries can be served.
	_ api.Results = (*ranking.Summary)(nil)
)

var (
	linksFlag = cli.StringFlag{
		Name:   "links",
		Value:  "citeseer.dat",
		EnvVar: "LINKS_FILE",
		Usage:  "The text file with the link records to rank",
	}
	linksDSNFlag = cli.StringFlag{
		Name:   "links-dsn",
		EnvVar: "LINKS_DSN",
		Usage:  "The URI for connecting to a CockroachDB link record store; overrides --links. Records are read in the order they were imported",
	}
)

func main() {
	host, _ := os.Hostname()
	rootLogger := logrus.New()
	rootLogger.SetFormatter(new(logrus.JSONFormatter))
	logger = rootLogger.WithFields(logrus.Fields{
		"app":  appName,
		"sha":  appSha,
		"host": host,
	})

	if err := makeApp().Run(os.Args); err != nil {
		logger.WithField("err", err).Error("shutting down due to error")
		_ = os.Stderr.Sync()
		os.Exit(1)
	}
}

func makeApp() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Version = appSha
	app.Usage = "rank pages of a citation graph with PageRank"
	app.Flags = []cli.Flag{
		linksFlag,
		linksDSNFlag,
		cli.StringFlag{
			Name:   "perplexity-out",
			Value:  "perplexity.out",
			EnvVar: "PERPLEXITY_OUT",
			Usage:  "The file where the perplexity of each pass is written to",
		},
		cli.StringFlag{
			Name:   "scores-out",
			Value:  "pr_scores.out",
			EnvVar: "SCORES_OUT",
			Usage:  "The file where the final score of each page is written to",
		},
		cli.IntFlag{
			Name:   "top-k",
			Value:  100,
			EnvVar: "TOP_K",
			Usage:  "The number of top ranked pages to print",
		},
		cli.Float64Flag{
			Name:   "damping-factor",
			Value:  0.85,
			EnvVar: "DAMPING_FACTOR",
			Usage:  "The probability of following an out-link instead of jumping to a random page",
		},
		cli.IntFlag{
			Name:   "num-workers",
			Value:  1,
			EnvVar: "NUM_WORKERS",
			Usage:  "The number of workers for computing the scores of a pass",
		},
		cli.IntFlag{
			Name:   "max-iterations",
			EnvVar: "MAX_ITERATIONS",
			Usage:  "Stop after this many passes even if the scores have not converged; 0 disables the limit",
		},
		cli.StringFlag{
			Name:   "metrics-addr",
			EnvVar: "METRICS_ADDR",
			Usage:  "The address for exposing prometheus metrics; metrics are disabled if empty",
		},
		cli.StringFlag{
			Name:   "serve-addr",
			EnvVar: "SERVE_ADDR",
			Usage:  "The address for serving the results over HTTP after the run; the tool exits after the run if empty",
		},
		cli.BoolFlag{
			Name:   "tracing",
			EnvVar: "TRACING",
			Usage:  "Emit jaeger spans configured via the JAEGER_* envvars",
		},
		cli.StringFlag{
			Name:   "log-level",
			Value:  "info",
			EnvVar: "LOG_LEVEL",
			Usage:  "The minimum level of emitted log entries",
		},
	}
	app.Action = runMain
	app.Commands = []cli.Command{
		{
			Name:   "import",
			Usage:  "copy the link records of a text file into a CockroachDB link record store",
			Flags:  []cli.Flag{linksFlag, linksDSNFlag},
			Action: runImport,
		},
	}
	return app
}

func runMain(appCtx *cli.Context) error {
	level, err := logrus.ParseLevel(appCtx.String("log-level"))
	if err != nil {
		return err
	}
	logger.Logger.SetLevel(level)

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()
	go watchSignals(ctx, cancelFn)

	if appCtx.Bool("tracing") {
		if err := tracer.Install(appName); err != nil {
			return err
		}
		defer func() { _ = tracer.Pool.Close() }()
	}

	src, closer, err := linkSource(appCtx.String("links"), appCtx.String("links-dsn"))
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	var observer pagerank.Observer
	var bgServices service.Group
	if addr := appCtx.String("metrics-addr"); addr != "" {
		observer = metrics.NewObserver(prometheus.DefaultRegisterer)
		metricsSvc, err := metrics.NewService(metrics.Config{
			ListenAddr: addr,
			Gatherer:   prometheus.DefaultGatherer,
			Logger:     logger,
		})
		if err != nil {
			return err
		}
		bgServices = append(bgServices, metricsSvc)
	}

	var wg sync.WaitGroup
	bgCtx, bgCancelFn := context.WithCancel(ctx)
	defer func() {
		bgCancelFn()
		wg.Wait()
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := bgServices.Run(bgCtx); err != nil {
			logger.WithField("err", err).Error("background service exited with error")
			cancelFn()
		}
	}()

	runner, err := ranking.NewRunner(ranking.Config{
		Source: src,
		Calculator: pagerank.Config{
			DampingFactor:  appCtx.Float64("damping-factor"),
			MaxIterations:  appCtx.Int("max-iterations"),
			ComputeWorkers: appCtx.Int("num-workers"),
			Observer:       observer,
		},
		PerplexityPath: appCtx.String("perplexity-out"),
		ScoresPath:     appCtx.String("scores-out"),
		TopK:           appCtx.Int("top-k"),
		Clock:          clock.WallClock,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	sum, runErr := runner.Execute(ctx)
	if sum == nil {
		return runErr
	}
	if err := report.WriteSummary(os.Stdout, runner.TopK(), sum.TopK, sum.Elapsed); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	addr := appCtx.String("serve-addr")
	if addr == "" {
		return nil
	}
	apiSvc, err := api.NewService(api.Config{
		Results:    sum,
		ListenAddr: addr,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	return apiSvc.Run(ctx)
}

func runImport(appCtx *cli.Context) error {
	dsn := appCtx.String("links-dsn")
	if dsn == "" {
		return xerrors.Errorf("link record store must be specified with --links-dsn")
	}

	store, err := cdb.NewCockroachDBStore(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	if err = store.EnsureSchema(); err != nil {
		return err
	}

	it, err := textfile.NewFileSource(appCtx.String("links")).Records()
	if err != nil {
		return err
	}
	n, err := linkgraph.Copy(store, it)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"links":   appCtx.String("links"),
		"records": n,
	}).Info("imported link records")
	return nil
}

// linkSource returns the link record source selected by the command line
// flags together with a closer for releasing its resources.
func linkSource(path, dsn string) (linkgraph.Source, io.Closer, error) {
	if dsn == "" {
		return textfile.NewFileSource(path), nopCloser{}, nil
	}

	store, err := cdb.NewCockroachDBStore(dsn)
	if err != nil {
		return nil, nil, xerrors.Errorf("link record store: %w", err)
	}
	return store, store, nil
}

func watchSignals(ctx context.Context, cancelFn func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP, syscall.SIGTERM)
	select {
	case s := <-sigCh:
		logger.WithField("signal", s.String()).Infof("shutting down due to signal")
		cancelFn()
	case <-ctx.Done():
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
