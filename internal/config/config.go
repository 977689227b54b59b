// Package config holds the top-level service configuration, populated from
// environment variables.
package config

import (
	"congest/internal/artifact"
	"congest/internal/predict"
	"congest/internal/setup"
)

var (
	_ setup.ArtifactConfigProvider = (*Config)(nil)
	_ setup.PredictConfigProvider  = (*Config)(nil)
)

type Config struct {
	SrvAddr   string `envconfig:"CONGEST_ADDR" default:":8000"`
	DebugAddr string `envconfig:"CONGEST_DEBUG_ADDR" default:":8080"`
	StaticDir string `envconfig:"CONGEST_STATIC_DIR" default:"web"`
	Artifact  artifact.Config
	Predict   predict.Config
}

func (c Config) ArtifactConfig() *artifact.Config {
	return &c.Artifact
}

func (c Config) PredictConfig() *predict.Config {
	return &c.Predict
}
