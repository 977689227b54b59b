// Package setup assembles the immutable server environment from the
// process configuration: it loads the model artifacts and resolves the
// feature column order before any traffic is accepted.
package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"congest/internal/artifact"
	"congest/internal/feature"
	"congest/internal/logging"
	"congest/internal/predict"
	"congest/internal/srvenv"
)

type ArtifactConfigProvider interface {
	ArtifactConfig() *artifact.Config
}

type PredictConfigProvider interface {
	PredictConfig() *predict.Config
}

// Setup processes the environment configuration and loads the classifier
// and encoders. Any artifact failure aborts startup.
func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	artifactConfigProvider, ok := config.(ArtifactConfigProvider)
	if !ok {
		return nil, fmt.Errorf("config does not provide artifact locations")
	}

	logger.Info("Loading model artifacts")
	clf, encoders, err := artifact.Load(ctx, artifactConfigProvider.ArtifactConfig())
	if err != nil {
		return nil, fmt.Errorf("artifact.Load: %w", err)
	}

	assembler, err := feature.New(clf, encoders)
	if err != nil {
		return nil, fmt.Errorf("feature.New: %w", err)
	}
	logger.Infof("Feature column order resolved: %v", assembler.Order())

	return srvenv.New(
		srvenv.WithClassifier(clf),
		srvenv.WithEncoders(encoders),
		srvenv.WithAssembler(assembler),
	), nil
}
