package linear

import (
	"math"
	"testing"

	"github.com/ndrean/linreg/pkg/errors"
)

// exactLine is the y = 2x + 1 fixture shared by the solver tests.
func exactLine() (x, y []float64) {
	return []float64{0, 1, 2, 3, 4}, []float64{1, 3, 5, 7, 9}
}

func TestGradientDescentConvergesOnExactLine(t *testing.T) {
	x, y := exactLine()

	gd := NewGradientDescent(
		WithInit(0, 0),
		WithLearnRate(0.01),
		WithEpochs(2000),
	)
	if err := gd.Fit(x, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	coef, err := gd.Coefficients()
	if err != nil {
		t.Fatalf("Coefficients failed: %v", err)
	}
	if math.Abs(coef.Slope-2.0) > 1e-2 {
		t.Errorf("slope = %v, want 2.0 within 1e-2", coef.Slope)
	}
	if math.Abs(coef.Intercept-1.0) > 1e-2 {
		t.Errorf("intercept = %v, want 1.0 within 1e-2", coef.Intercept)
	}

	cost, err := gd.FinalCost()
	if err != nil {
		t.Fatalf("FinalCost failed: %v", err)
	}
	if cost > 1e-3 {
		t.Errorf("final cost = %v, want near zero", cost)
	}
}

func TestGradientDescentCostNonIncreasing(t *testing.T) {
	x, y := exactLine()

	gd := NewGradientDescent(WithInit(0, 0), WithLearnRate(0.01), WithEpochs(500))

	var prev State
	first := true
	for st := range gd.Steps(x, y) {
		if !first && st.Cost > prev.Cost+1e-12 {
			t.Fatalf("cost increased at iteration %d: %v -> %v", st.Iteration, prev.Cost, st.Cost)
		}
		prev = st
		first = false
	}
}

func TestGradientDescentDeterministic(t *testing.T) {
	x, y := exactLine()

	run := func() Coefficients {
		gd := NewGradientDescent(WithInit(1, 1), WithLearnRate(0.005), WithEpochs(300))
		if err := gd.Fit(x, y); err != nil {
			t.Fatalf("Fit failed: %v", err)
		}
		coef, err := gd.Coefficients()
		if err != nil {
			t.Fatalf("Coefficients failed: %v", err)
		}
		return coef
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("identical runs produced different coefficients: %+v vs %+v", a, b)
	}
}

func TestGradientDescentStepsLazyAndRestartable(t *testing.T) {
	x, y := exactLine()
	gd := NewGradientDescent(WithInit(0, 0), WithLearnRate(0.01), WithEpochs(1000))

	// Consume only the first three states.
	var firstRun []State
	for st := range gd.Steps(x, y) {
		firstRun = append(firstRun, st)
		if len(firstRun) == 3 {
			break
		}
	}
	if len(firstRun) != 3 {
		t.Fatalf("early break yielded %d states, want 3", len(firstRun))
	}
	if firstRun[0].Iteration != 0 || firstRun[0].Slope != 0 {
		t.Errorf("sequence must start at the initial state, got %+v", firstRun[0])
	}

	// A second range restarts from the initial state.
	for st := range gd.Steps(x, y) {
		if st != firstRun[0] {
			t.Errorf("restarted sequence began at %+v, want %+v", st, firstRun[0])
		}
		break
	}
}

func TestGradientDescentHistoryStride(t *testing.T) {
	x, y := exactLine()

	gd := NewGradientDescent(
		WithInit(0, 0),
		WithLearnRate(0.01),
		WithEpochs(1000),
		WithSnapshotStride(100),
	)
	if err := gd.Fit(x, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	h := gd.History()
	// Snapshots at 0, 100, ..., 1000.
	if len(h) != 11 {
		t.Fatalf("history has %d snapshots, want 11", len(h))
	}
	for i, st := range h {
		if st.Iteration != i*100 {
			t.Errorf("snapshot %d at iteration %d, want %d", i, st.Iteration, i*100)
		}
	}
	if h[len(h)-1].Iteration != gd.Iterations() {
		t.Errorf("history must end at the terminal state")
	}
}

func TestGradientDescentCostDeltaStopsEarly(t *testing.T) {
	x, y := exactLine()

	gd := NewGradientDescent(
		WithInit(0, 0),
		WithLearnRate(0.01),
		WithEpochs(100000),
		WithStopPolicy(StopOnCostDelta(1e-9)),
	)
	if err := gd.Fit(x, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	if gd.Iterations() >= 100000 {
		t.Errorf("expected early stop, ran all %d iterations", gd.Iterations())
	}

	coef, err := gd.Coefficients()
	if err != nil {
		t.Fatalf("Coefficients failed: %v", err)
	}
	if math.Abs(coef.Slope-2.0) > 0.1 || math.Abs(coef.Intercept-1.0) > 0.2 {
		t.Errorf("stopped too far from the optimum: %+v", coef)
	}
}

func TestGradientDescentDivergenceWarning(t *testing.T) {
	x, y := exactLine()

	var captured error
	errors.SetWarningHandler(func(w error) { captured = w })
	defer errors.SetWarningHandler(func(w error) {})

	// Far above the stable step size for this dataset's curvature.
	gd := NewGradientDescent(WithInit(0, 0), WithLearnRate(0.5), WithEpochs(20))
	err := gd.Fit(x, y)

	// The cost blows up: either the divergence warning fired, or the cost
	// overflowed into a numerical-instability error. Both surface the
	// problem instead of hiding it.
	var divWarn *errors.DivergenceWarning
	if captured == nil || !errors.As(captured, &divWarn) {
		if err == nil {
			t.Error("expected a divergence warning or an instability error")
		}
	}
}

func TestGradientDescentValidation(t *testing.T) {
	x, y := exactLine()

	tests := []struct {
		name string
		gd   *GradientDescent
		x, y []float64
	}{
		{"empty data", NewGradientDescent(), nil, nil},
		{"length mismatch", NewGradientDescent(), x, y[:3]},
		{"zero learn rate", NewGradientDescent(WithLearnRate(0)), x, y},
		{"negative epochs", NewGradientDescent(WithEpochs(-1)), x, y},
		{"zero stride", NewGradientDescent(WithSnapshotStride(0)), x, y},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.gd.Fit(tt.x, tt.y); err == nil {
				t.Error("Fit should fail")
			}
		})
	}
}

func TestCoefficientsEvaluateIdempotent(t *testing.T) {
	c := Coefficients{Slope: 2, Intercept: 1}
	xs := []float64{-1, 0, 1, 10}

	first := c.Evaluate(xs)
	second := c.Evaluate(xs)
	for i := range xs {
		if first[i] != second[i] {
			t.Errorf("Evaluate not idempotent at %v: %v vs %v", xs[i], first[i], second[i])
		}
		if want := 2*xs[i] + 1; first[i] != want {
			t.Errorf("Evaluate(%v) = %v, want %v", xs[i], first[i], want)
		}
	}
}
