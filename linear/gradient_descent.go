package linear

import (
	"iter"

	"github.com/ndrean/linreg/core/model"
	"github.com/ndrean/linreg/pkg/errors"
)

// State is one snapshot of the optimizer: the coefficient estimate, its
// cost and the iteration that produced it.
type State struct {
	Iteration int
	Slope     float64
	Intercept float64
	Cost      float64
}

// Coefficients returns the snapshot's coefficient estimate.
func (s State) Coefficients() Coefficients {
	return Coefficients{Slope: s.Slope, Intercept: s.Intercept}
}

// History is the append-only observation log of a gradient-descent run,
// sampled every snapshot-stride iterations. Convergence curves (cost,
// slope, intercept against iteration) are plotted from it.
type History []State

// Costs returns the cost column of the log.
func (h History) Costs() []float64 {
	out := make([]float64, len(h))
	for i, s := range h {
		out[i] = s.Cost
	}
	return out
}

// Iterations returns the iteration column of the log.
func (h History) Iterations() []float64 {
	out := make([]float64, len(h))
	for i, s := range h {
		out[i] = float64(s.Iteration)
	}
	return out
}

// StopPolicy decides after each transition whether Fit stops early.
type StopPolicy func(prev, cur State) bool

// StopAfterEpochs never stops early: the epoch budget alone ends the run.
// This is the default.
func StopAfterEpochs() StopPolicy {
	return nil
}

// StopOnCostDelta stops once the cost improves by less than tol between
// consecutive iterations.
func StopOnCostDelta(tol float64) StopPolicy {
	return func(prev, cur State) bool {
		delta := prev.Cost - cur.Cost
		if delta < 0 {
			delta = -delta
		}
		return delta < tol
	}
}

// GradientDescent fits a univariate line by batch gradient descent on the
// mean-squared-error cost C(m,b) = mean((y - (m*x+b))²).
//
// Each step moves the coefficients against the analytic gradient
//
//	dC/dm = 2/n * Σ -x*(y - ŷ)
//	dC/db = 2/n * Σ -(y - ŷ)
//
// scaled by a fixed learning rate. The run is fully deterministic: same
// start, data, rate and budget give the same state sequence.
//
// A learning rate too large for the data's curvature makes the cost grow
// without bound. That is the caller's choice to fix; the optimizer raises
// a DivergenceWarning and keeps going.
type GradientDescent struct {
	state *model.StateManager

	learnRate float64
	epochs    int
	stride    int
	init      Coefficients
	stop      StopPolicy

	coef       Coefficients
	finalCost  float64
	iterations int
	history    History
}

// NewGradientDescent creates an optimizer with the given options. The
// defaults are a 0.01 learning rate, 1000 epochs, snapshots every 100th
// iteration and a (slope=1, intercept=0) start.
func NewGradientDescent(options ...GradientDescentOption) *GradientDescent {
	gd := &GradientDescent{
		state:     model.NewStateManager(),
		learnRate: 0.01,
		epochs:    1000,
		stride:    100,
		init:      Coefficients{Slope: 1, Intercept: 0},
	}

	for _, opt := range options {
		opt(gd)
	}

	return gd
}

func (gd *GradientDescent) validate(x, y []float64) error {
	if len(x) == 0 {
		return errors.NewModelError("GradientDescent.Fit", "empty data", errors.ErrEmptyData)
	}
	if len(x) != len(y) {
		return errors.NewDimensionError("GradientDescent.Fit", len(x), len(y), 0)
	}
	if gd.learnRate <= 0 {
		return errors.NewValueError("GradientDescent.Fit", "learning rate must be positive")
	}
	if gd.epochs <= 0 {
		return errors.NewValueError("GradientDescent.Fit", "epoch budget must be positive")
	}
	if gd.stride <= 0 {
		return errors.NewValueError("GradientDescent.Fit", "snapshot stride must be positive")
	}
	return nil
}

// Steps returns the optimizer's state sequence as a lazy, finite,
// restartable iterator. The first state is the starting point at iteration
// 0; every following state is one gradient step. Callers may consume all
// states, break early, or sample every k-th one. Steps itself never stops
// early: ranging over the full sequence yields epochs+1 states.
//
// The sequence assumes valid input; Fit validates before iterating.
func (gd *GradientDescent) Steps(x, y []float64) iter.Seq[State] {
	return func(yield func(State) bool) {
		m, b := gd.init.Slope, gd.init.Intercept

		cur := State{Iteration: 0, Slope: m, Intercept: b, Cost: mseCost(x, y, m, b)}
		if !yield(cur) {
			return
		}

		for i := 1; i <= gd.epochs; i++ {
			dm, db := mseGradient(x, y, m, b)
			m -= gd.learnRate * dm
			b -= gd.learnRate * db

			cur = State{Iteration: i, Slope: m, Intercept: b, Cost: mseCost(x, y, m, b)}
			if !yield(cur) {
				return
			}
		}
	}
}

// Fit runs the optimizer to its terminal state, recording every k-th
// snapshot in the history.
func (gd *GradientDescent) Fit(x, y []float64) error {
	if err := gd.validate(x, y); err != nil {
		return err
	}

	gd.history = gd.history[:0]
	warned := false
	stopped := false

	var prev State
	var last State
	for st := range gd.Steps(x, y) {
		if err := errors.CheckScalar("cost", st.Cost, st.Iteration); err != nil {
			return err
		}

		if st.Iteration%gd.stride == 0 {
			gd.history = append(gd.history, st)
		}

		if st.Iteration > 0 {
			// Relative guard so rounding jitter at the cost floor does
			// not count as divergence.
			if !warned && st.Cost > prev.Cost*(1+1e-9) {
				errors.Warn(errors.NewDivergenceWarning("GradientDescent", st.Iteration, prev.Cost, st.Cost))
				warned = true
			}
			if gd.stop != nil && gd.stop(prev, st) {
				last = st
				stopped = true
				break
			}
		}
		prev = st
		last = st
	}

	if gd.stop != nil && !stopped {
		errors.Warn(errors.NewConvergenceWarning("GradientDescent", gd.epochs, "cost delta tolerance not reached"))
	}

	// The terminal state always closes the log.
	if len(gd.history) == 0 || gd.history[len(gd.history)-1].Iteration != last.Iteration {
		gd.history = append(gd.history, last)
	}

	gd.coef = last.Coefficients()
	gd.finalCost = last.Cost
	gd.iterations = last.Iteration

	gd.state.SetFitted()
	gd.state.SetDimensions(1, len(x))

	return nil
}

// Coefficients returns the terminal coefficient estimate.
func (gd *GradientDescent) Coefficients() (Coefficients, error) {
	if !gd.state.IsFitted() {
		return Coefficients{}, errors.NewNotFittedError("GradientDescent", "Coefficients")
	}
	return gd.coef, nil
}

// Coef returns the coefficient vector, for parity with the other solvers.
func (gd *GradientDescent) Coef() []float64 {
	if !gd.state.IsFitted() {
		return nil
	}
	return []float64{gd.coef.Slope}
}

// Intercept returns the terminal intercept.
func (gd *GradientDescent) Intercept() float64 {
	return gd.coef.Intercept
}

// FinalCost returns the cost at the terminal state.
func (gd *GradientDescent) FinalCost() (float64, error) {
	if !gd.state.IsFitted() {
		return 0, errors.NewNotFittedError("GradientDescent", "FinalCost")
	}
	return gd.finalCost, nil
}

// Iterations returns the number of gradient steps actually taken.
func (gd *GradientDescent) Iterations() int {
	return gd.iterations
}

// History returns the observation log of the last Fit.
func (gd *GradientDescent) History() History {
	return gd.history
}

// Predict evaluates the fitted line at the given inputs.
func (gd *GradientDescent) Predict(xs []float64) ([]float64, error) {
	if !gd.state.IsFitted() {
		return nil, errors.NewNotFittedError("GradientDescent", "Predict")
	}
	return gd.coef.Evaluate(xs), nil
}

// mseCost is the mean-squared-error cost 1/n * Σ(y - (m*x+b))².
func mseCost(x, y []float64, m, b float64) float64 {
	s := 0.0
	for i := range x {
		d := y[i] - (x[i]*m + b)
		s += d * d
	}
	return s / float64(len(x))
}

// mseGradient is the analytic gradient of mseCost:
//
//	dC/dm = 2/n * Σ -x*(y - (m*x+b))
//	dC/db = 2/n * Σ -(y - (m*x+b))
func mseGradient(x, y []float64, m, b float64) (dm, db float64) {
	for i := range x {
		d := y[i] - (x[i]*m + b)
		dm -= x[i] * d
		db -= d
	}
	n := float64(len(x))
	return 2 / n * dm, 2 / n * db
}
