// Package forest implements a random forest classifier as an ensemble of
// decision trees with averaged class distributions.
package forest

import (
	"fmt"

	"congest/internal/classifier/tree"
)

type Option func(*Forest)

// WithFeatureNames declares the column order the forest was trained on.
func WithFeatureNames(names []string) Option {
	return func(f *Forest) {
		f.featureNames = names
	}
}

type Forest struct {
	featureNames []string
	trees        []*tree.Tree
	numFeatures  int
	numClasses   int
}

func New(specs []tree.Spec, opts ...Option) (*Forest, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("forest has no trees")
	}
	trees := make([]*tree.Tree, 0, len(specs))
	for i, spec := range specs {
		t, err := tree.New(spec)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees = append(trees, t)
	}
	for i, t := range trees[1:] {
		if t.NumFeatures() != trees[0].NumFeatures() || t.NumClasses() != trees[0].NumClasses() {
			return nil, fmt.Errorf(
				"tree %d shape %dx%d differs from tree 0 shape %dx%d",
				i+1, t.NumFeatures(), t.NumClasses(), trees[0].NumFeatures(), trees[0].NumClasses(),
			)
		}
	}

	f := &Forest{
		trees:       trees,
		numFeatures: trees[0].NumFeatures(),
		numClasses:  trees[0].NumClasses(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.featureNames != nil && len(f.featureNames) != f.numFeatures {
		return nil, fmt.Errorf(
			"declared %d feature names for %d features", len(f.featureNames), f.numFeatures,
		)
	}
	return f, nil
}

func (f *Forest) Name() string {
	return "RandomForestClassifier"
}

func (f *Forest) NumFeatures() int {
	return f.numFeatures
}

// FeatureNames reports the declared training column order, nil when the
// artifact did not carry one.
func (f *Forest) FeatureNames() []string {
	if f.featureNames == nil {
		return nil
	}
	out := make([]string, len(f.featureNames))
	copy(out, f.featureNames)
	return out
}

// Predict returns the class with the highest averaged probability.
func (f *Forest) Predict(row []float64) (int, error) {
	probs, err := f.Proba(row)
	if err != nil {
		return 0, err
	}
	best := 0
	for class, p := range probs {
		if p > probs[best] {
			best = class
		}
	}
	return best, nil
}

// Proba averages the member tree distributions.
func (f *Forest) Proba(row []float64) ([]float64, error) {
	probs := make([]float64, f.numClasses)
	for i, t := range f.trees {
		p, err := t.Proba(row)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		for class, v := range p {
			probs[class] += v
		}
	}
	for class := range probs {
		probs[class] /= float64(len(f.trees))
	}
	return probs, nil
}
