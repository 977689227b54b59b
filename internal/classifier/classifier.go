// Package classifier defines the predictor contract implemented by the
// loaded model artifacts.
package classifier

// Classifier is an opaque trained model mapping a fixed-width numeric
// feature row to a class code.
type Classifier interface {
	// Name reports the training-side model type, e.g. "RandomForestClassifier".
	Name() string
	// NumFeatures is the expected row width.
	NumFeatures() int
	// Predict returns the predicted class code for the row.
	Predict(row []float64) (int, error)
}

// FeatureOrderer is an optional capability: classifiers that know the column
// order they were trained on expose it here. Callers must check for the
// capability explicitly before relying on it.
type FeatureOrderer interface {
	FeatureNames() []string
}

// ProbabilityEstimator is an optional capability: classifiers that can score
// a class distribution expose it here.
type ProbabilityEstimator interface {
	Proba(row []float64) ([]float64, error)
}

// FeatureNames returns the declared training column order of c, or nil when
// the capability is absent.
func FeatureNames(c Classifier) []string {
	if fo, ok := c.(FeatureOrderer); ok {
		return fo.FeatureNames()
	}
	return nil
}
