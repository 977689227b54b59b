// Package artifact loads the serialized classifier and label encoders
// exported by the training pipeline. Loading happens once at startup; any
// failure is fatal, there is no degraded mode.
package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"congest/internal/classifier"
	"congest/internal/classifier/baseline"
	"congest/internal/classifier/forest"
	"congest/internal/classifier/tree"
	"congest/internal/encoder"
	"congest/internal/logging"
)

// Model type names match the training-side classifier classes.
const (
	ModelTypeTree   = "DecisionTreeClassifier"
	ModelTypeForest = "RandomForestClassifier"
	ModelTypeDummy  = "DummyClassifier"
)

type modelFile struct {
	ModelType     string      `json:"model_type"`
	FeatureNames  []string    `json:"feature_names_in,omitempty"`
	Tree          *tree.Spec  `json:"tree,omitempty"`
	Trees         []tree.Spec `json:"trees,omitempty"`
	NumFeatures   int         `json:"n_features,omitempty"`
	ConstantClass int         `json:"constant_class,omitempty"`
}

// Load reads both artifact files concurrently and builds the classifier and
// the encoder set.
func Load(ctx context.Context, cfg *Config) (classifier.Classifier, *encoder.Set, error) {
	logger := logging.FromContext(ctx)

	var (
		clf      classifier.Classifier
		encoders *encoder.Set
	)
	grp, _ := errgroup.WithContext(ctx)
	grp.Go(func() error {
		c, err := loadModel(cfg.ModelFile)
		if err != nil {
			return fmt.Errorf("load model %s: %w", cfg.ModelFile, err)
		}
		clf = c
		return nil
	})
	grp.Go(func() error {
		s, err := loadEncoders(cfg.EncodersFile)
		if err != nil {
			return fmt.Errorf("load encoders %s: %w", cfg.EncodersFile, err)
		}
		encoders = s
		return nil
	})
	if err := grp.Wait(); err != nil {
		return nil, nil, err
	}

	logger.Infof("loaded %s from %s, %d encoder columns",
		clf.Name(), cfg.ModelFile, len(encoders.Columns()))
	return clf, encoders, nil
}

func loadModel(path string) (classifier.Classifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var mf modelFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("decode model file: %w", err)
	}

	switch mf.ModelType {
	case ModelTypeTree:
		if mf.Tree == nil {
			return nil, fmt.Errorf("model type %s requires a tree", mf.ModelType)
		}
		opts := []tree.Option{tree.WithName(mf.ModelType)}
		if len(mf.FeatureNames) > 0 {
			opts = append(opts, tree.WithFeatureNames(mf.FeatureNames))
		}
		return tree.New(*mf.Tree, opts...)
	case ModelTypeForest:
		var opts []forest.Option
		if len(mf.FeatureNames) > 0 {
			opts = append(opts, forest.WithFeatureNames(mf.FeatureNames))
		}
		return forest.New(mf.Trees, opts...)
	case ModelTypeDummy:
		return baseline.New(mf.NumFeatures, mf.ConstantClass)
	default:
		return nil, fmt.Errorf("unknown model type %q", mf.ModelType)
	}
}

func loadEncoders(path string) (*encoder.Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var classes map[string][]string
	if err := json.Unmarshal(raw, &classes); err != nil {
		return nil, fmt.Errorf("decode encoders file: %w", err)
	}
	return encoder.NewSet(classes)
}
