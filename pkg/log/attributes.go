// Package log defines standard attribute keys for solver operations.
//
// Using these keys consistently across the solvers makes structured logs
// filterable: every fit, prediction and optimizer iteration reports the
// same field names.

package log

// Solver and operation context.
const (
	// SolverKey identifies which solver produced the record.
	// Examples: "Regression", "Univariate", "GradientDescent", "Network"
	SolverKey = "solver.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "score", "generate"
	OperationKey = "solver.operation"
)

// Data shape.
const (
	// SamplesKey is the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// NoiseScaleKey is the upper bound of the uniform noise interval.
	NoiseScaleKey = "data.noise_scale"

	// SeedKey is the seed of the dataset's random source.
	SeedKey = "data.seed"
)

// Optimizer state. These keys appear on per-snapshot records emitted
// during gradient descent and neural-network training.
const (
	// IterationKey is the optimizer iteration counter.
	IterationKey = "opt.iteration"

	// CostKey is the mean-squared-error cost at the current iteration.
	CostKey = "opt.cost"

	// SlopeKey is the current slope estimate.
	SlopeKey = "opt.slope"

	// InterceptKey is the current intercept estimate.
	InterceptKey = "opt.intercept"

	// LearnRateKey is the fixed step size supplied by the caller.
	LearnRateKey = "opt.learn_rate"

	// EpochsKey is the iteration budget.
	EpochsKey = "opt.epochs"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)
