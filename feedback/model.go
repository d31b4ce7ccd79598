package feedback

import "math"

// Model is an immutable trained snapshot: the fitted vectorizer, the
// logistic-regression weights (label 1 = "up"), and the features most
// indicative of negative feedback, kept for observability. Snapshots
// are replaced wholesale, never mutated, so concurrent predictions
// always see a consistent model.
type Model struct {
	vectorizer    *Vectorizer
	weights       []float64
	bias          float64
	negativeTerms []string
	samples       int
}

// PredictNegative returns the probability that text belongs to the
// negative ("down") class.
func (m *Model) PredictNegative(text string) float64 {
	x := m.vectorizer.Transform(text)

	z := m.bias
	for i, xi := range x {
		if xi != 0 {
			z += m.weights[i] * xi
		}
	}
	return 1 - sigmoid(z)
}

// NegativeTerms returns the features most indicative of negative
// feedback, strongest first.
func (m *Model) NegativeTerms() []string {
	return m.negativeTerms
}

// Samples returns the number of samples the model was trained on.
func (m *Model) Samples() int {
	return m.samples
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
