package linear

// Coefficients is the fitted line for the univariate case. It is a plain
// value: producing one is the job of a solver, applying one has no hidden
// state, so evaluation is idempotent.
type Coefficients struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at a single input.
func (c Coefficients) At(x float64) float64 {
	return c.Slope*x + c.Intercept
}

// Evaluate applies the line pointwise to a sequence of inputs.
func (c Coefficients) Evaluate(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = c.Slope*x + c.Intercept
	}
	return out
}
