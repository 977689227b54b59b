package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"congest/internal/buildinfo"
	"congest/internal/config"
	"congest/internal/logging"
	"congest/internal/metrics"
	"congest/internal/modelinfo"
	"congest/internal/predict"
	"congest/internal/server"
	"congest/internal/setup"
	"congest/internal/shutdown"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	if err := run(ctx, done); err != nil {
		logger.Fatal(err)
	}

	defer done()
}

func run(ctx context.Context, cancel func()) error {
	cfg := config.Config{}
	env, err := setup.Setup(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}

	srv, err := server.New(cfg.SrvAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	mux := http.NewServeMux()

	predictHandler, err := predict.NewHandler(&cfg.Predict, env)
	if err != nil {
		return fmt.Errorf("predict.NewHandler: %w", err)
	}
	modelInfoHandler, err := modelinfo.NewHandler(env)
	if err != nil {
		return fmt.Errorf("modelinfo.NewHandler: %w", err)
	}

	mux.Handle("/predict", predictHandler)
	mux.Handle("/model-info", modelInfoHandler)
	mux.Handle("/health", server.HandleHealth(env))
	mux.Handle("/api-docs", modelinfo.HandleAPIDocs())
	mux.Handle("/", http.FileServer(http.Dir(cfg.StaticDir)))

	exporter, err := metrics.NewExporter()
	if err != nil {
		return fmt.Errorf("metrics.NewExporter: %w", err)
	}
	// pprof registers on the default mux, metrics joins it on the debug listener
	http.Handle("/metrics", exporter)

	go func() {
		if err := http.ListenAndServe(cfg.DebugAddr, nil); err != nil {
			cancel()
		}
	}()

	logging.FromContext(ctx).Infof("serving on %s", cfg.SrvAddr)
	return srv.ServeHTTPHandler(ctx, mux)
}
