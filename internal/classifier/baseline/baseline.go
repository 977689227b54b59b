// Package baseline implements a constant-class classifier, the shape a
// DummyClassifier artifact takes. It deliberately exposes neither the
// feature-order nor the probability capability.
package baseline

import "fmt"

type Baseline struct {
	numFeatures int
	class       int
}

func New(numFeatures, class int) (*Baseline, error) {
	if numFeatures <= 0 {
		return nil, fmt.Errorf("n_features must be positive, got %d", numFeatures)
	}
	if class < 0 {
		return nil, fmt.Errorf("constant class must not be negative, got %d", class)
	}
	return &Baseline{numFeatures: numFeatures, class: class}, nil
}

func (b *Baseline) Name() string {
	return "DummyClassifier"
}

func (b *Baseline) NumFeatures() int {
	return b.numFeatures
}

func (b *Baseline) Predict(row []float64) (int, error) {
	if len(row) != b.numFeatures {
		return 0, fmt.Errorf("row has %d features, want %d", len(row), b.numFeatures)
	}
	return b.class, nil
}
