// Package tree implements a decision tree classifier deserialized from the
// array encoding the training pipeline exports: parallel per-node arrays of
// child indexes, split feature, split threshold and class counts.
package tree

import (
	"fmt"
)

// Leaf marks the child index of a terminal node.
const Leaf = -1

// Spec is the serialized form of a single decision tree.
type Spec struct {
	NumFeatures   int         `json:"n_features"`
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

type Option func(*Tree)

// WithName overrides the reported model type.
func WithName(name string) Option {
	return func(t *Tree) {
		t.name = name
	}
}

// WithFeatureNames declares the column order the tree was trained on.
func WithFeatureNames(names []string) Option {
	return func(t *Tree) {
		t.featureNames = names
	}
}

type Tree struct {
	name         string
	featureNames []string
	numFeatures  int
	left         []int
	right        []int
	feature      []int
	threshold    []float64
	value        [][]float64
	numClasses   int
}

func New(spec Spec, opts ...Option) (*Tree, error) {
	n := len(spec.ChildrenLeft)
	if n == 0 {
		return nil, fmt.Errorf("tree has no nodes")
	}
	if len(spec.ChildrenRight) != n || len(spec.Feature) != n ||
		len(spec.Threshold) != n || len(spec.Value) != n {
		return nil, fmt.Errorf(
			"inconsistent node arrays: left=%d right=%d feature=%d threshold=%d value=%d",
			n, len(spec.ChildrenRight), len(spec.Feature), len(spec.Threshold), len(spec.Value),
		)
	}
	if spec.NumFeatures <= 0 {
		return nil, fmt.Errorf("n_features must be positive, got %d", spec.NumFeatures)
	}

	numClasses := len(spec.Value[0])
	if numClasses == 0 {
		return nil, fmt.Errorf("node 0 has no class counts")
	}
	for i := 0; i < n; i++ {
		if len(spec.Value[i]) != numClasses {
			return nil, fmt.Errorf("node %d has %d class counts, want %d", i, len(spec.Value[i]), numClasses)
		}
		left, right := spec.ChildrenLeft[i], spec.ChildrenRight[i]
		if (left == Leaf) != (right == Leaf) {
			return nil, fmt.Errorf("node %d has exactly one child", i)
		}
		if left != Leaf {
			if left <= i || left >= n || right <= i || right >= n {
				return nil, fmt.Errorf("node %d has out-of-order children %d, %d", i, left, right)
			}
			if f := spec.Feature[i]; f < 0 || f >= spec.NumFeatures {
				return nil, fmt.Errorf("node %d splits on feature %d, want [0,%d)", i, f, spec.NumFeatures)
			}
		}
	}

	t := &Tree{
		name:        "DecisionTreeClassifier",
		numFeatures: spec.NumFeatures,
		left:        spec.ChildrenLeft,
		right:       spec.ChildrenRight,
		feature:     spec.Feature,
		threshold:   spec.Threshold,
		value:       spec.Value,
		numClasses:  numClasses,
	}
	for _, f := range opts {
		f(t)
	}
	if t.featureNames != nil && len(t.featureNames) != t.numFeatures {
		return nil, fmt.Errorf(
			"declared %d feature names for %d features", len(t.featureNames), t.numFeatures,
		)
	}
	return t, nil
}

func (t *Tree) Name() string {
	return t.name
}

func (t *Tree) NumFeatures() int {
	return t.numFeatures
}

func (t *Tree) NumClasses() int {
	return t.numClasses
}

// FeatureNames reports the declared training column order, nil when the
// artifact did not carry one.
func (t *Tree) FeatureNames() []string {
	if t.featureNames == nil {
		return nil
	}
	out := make([]string, len(t.featureNames))
	copy(out, t.featureNames)
	return out
}

// Predict walks the row down to a leaf and returns the majority class code.
func (t *Tree) Predict(row []float64) (int, error) {
	leaf, err := t.leaf(row)
	if err != nil {
		return 0, err
	}
	best, bestCount := 0, t.value[leaf][0]
	for class, count := range t.value[leaf] {
		if count > bestCount {
			best, bestCount = class, count
		}
	}
	return best, nil
}

// Proba returns the class distribution of the reached leaf, normalized by
// the leaf sample count.
func (t *Tree) Proba(row []float64) ([]float64, error) {
	leaf, err := t.leaf(row)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, count := range t.value[leaf] {
		total += count
	}
	if total <= 0 {
		return nil, fmt.Errorf("leaf %d has no samples", leaf)
	}
	probs := make([]float64, t.numClasses)
	for class, count := range t.value[leaf] {
		probs[class] = count / total
	}
	return probs, nil
}

func (t *Tree) leaf(row []float64) (int, error) {
	if len(row) != t.numFeatures {
		return 0, fmt.Errorf("row has %d features, want %d", len(row), t.numFeatures)
	}
	node := 0
	for t.left[node] != Leaf {
		if row[t.feature[node]] <= t.threshold[node] {
			node = t.left[node]
		} else {
			node = t.right[node]
		}
	}
	return node, nil
}
