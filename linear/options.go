package linear

// GradientDescentOption configures the optimizer. All settings travel with
// the instance; there is no process-wide default to mutate.
type GradientDescentOption func(*GradientDescent)

// WithLearnRate sets the fixed step size ε. Choosing it is the caller's
// responsibility: too large a value diverges on steep data.
func WithLearnRate(rate float64) GradientDescentOption {
	return func(gd *GradientDescent) {
		gd.learnRate = rate
	}
}

// WithEpochs sets the iteration budget.
func WithEpochs(epochs int) GradientDescentOption {
	return func(gd *GradientDescent) {
		gd.epochs = epochs
	}
}

// WithSnapshotStride sets how often a state is appended to the history.
func WithSnapshotStride(stride int) GradientDescentOption {
	return func(gd *GradientDescent) {
		gd.stride = stride
	}
}

// WithInit sets the starting coefficients.
func WithInit(slope, intercept float64) GradientDescentOption {
	return func(gd *GradientDescent) {
		gd.init = Coefficients{Slope: slope, Intercept: intercept}
	}
}

// WithStopPolicy selects the stop condition. The default is the plain
// epoch budget (StopAfterEpochs); StopOnCostDelta adds early stopping.
func WithStopPolicy(policy StopPolicy) GradientDescentOption {
	return func(gd *GradientDescent) {
		gd.stop = policy
	}
}
