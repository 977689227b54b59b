// Package metrics registers the opencensus views for the prediction
// pipeline and exposes them through a Prometheus exporter.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	mPredictions = stats.Int64("predict/count", "Number of predictions served", stats.UnitDimensionless)
	mLatency     = stats.Float64("predict/latency", "Prediction handler latency", stats.UnitMilliseconds)

	// KeyLevel tags prediction counts with the predicted congestion level.
	KeyLevel = tag.MustNewKey("level")

	views = []*view.View{
		{
			Name:        "congest/predictions_total",
			Description: "Predictions served, by congestion level",
			Measure:     mPredictions,
			TagKeys:     []tag.Key{KeyLevel},
			Aggregation: view.Count(),
		},
		{
			Name:        "congest/predict_latency_ms",
			Description: "Prediction handler latency distribution",
			Measure:     mLatency,
			Aggregation: view.Distribution(1, 2, 5, 10, 25, 50, 100, 250, 500, 1000),
		},
	}
)

// NewExporter registers the prediction views and returns the Prometheus
// scrape handler.
func NewExporter() (http.Handler, error) {
	if err := view.Register(views...); err != nil {
		return nil, fmt.Errorf("register views: %w", err)
	}
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: "congest"})
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}
	view.RegisterExporter(exporter)
	return exporter, nil
}

// RecordPrediction records one served prediction.
func RecordPrediction(ctx context.Context, level string, elapsed time.Duration) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyLevel, level)},
		mPredictions.M(1),
		mLatency.M(float64(elapsed.Milliseconds())),
	)
}
