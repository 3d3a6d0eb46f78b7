package linear

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ndrean/linreg/core/model"
	"github.com/ndrean/linreg/pkg/errors"
)

func TestRegressionExactLine(t *testing.T) {
	// y = 2x + 1 exactly.
	X := mat.NewDense(5, 1, []float64{0, 1, 2, 3, 4})
	y := mat.NewDense(5, 1, []float64{1, 3, 5, 7, 9})

	lr := NewRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	coef := lr.Coef()
	if math.Abs(coef[0]-2.0) > 1e-9 {
		t.Errorf("slope = %v, want 2.0", coef[0])
	}
	if math.Abs(lr.Intercept()-1.0) > 1e-9 {
		t.Errorf("intercept = %v, want 1.0", lr.Intercept())
	}

	// Evaluator at x=10.
	c, err := lr.Coefficients()
	if err != nil {
		t.Fatalf("Coefficients failed: %v", err)
	}
	if got := c.At(10); math.Abs(got-21.0) > 1e-9 {
		t.Errorf("At(10) = %v, want 21.0", got)
	}

	// Perfect fit scores R² = 1.
	score, err := lr.Score(X, y)
	if err != nil {
		t.Fatalf("Score failed: %v", err)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Errorf("Score = %v, want 1.0", score)
	}
}

func TestRegressionMultipleFeatures(t *testing.T) {
	// y = 2*x1 + 3*x2 + 1
	X := mat.NewDense(5, 2, []float64{
		1, 1,
		2, 1,
		3, 2,
		4, 2,
		5, 3,
	})
	y := mat.NewDense(5, 1, []float64{6, 8, 13, 15, 20})

	lr := NewRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	coef := lr.Coef()
	if math.Abs(coef[0]-2.0) > 1e-6 || math.Abs(coef[1]-3.0) > 1e-6 {
		t.Errorf("coef = %v, want [2 3]", coef)
	}
	if math.Abs(lr.Intercept()-1.0) > 1e-6 {
		t.Errorf("intercept = %v, want 1.0", lr.Intercept())
	}
}

func TestRegressionSingularGram(t *testing.T) {
	// Two identical feature columns make the Gram matrix rank deficient.
	X := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	y := mat.NewDense(4, 1, []float64{1, 2, 3, 4})

	lr := NewRegression()
	err := lr.Fit(X, y)
	if err == nil {
		t.Fatal("Fit should fail on rank-deficient input")
	}
	if !errors.Is(err, errors.ErrSingularMatrix) {
		t.Errorf("error = %v, want ErrSingularMatrix", err)
	}
}

func TestRegressionInputValidation(t *testing.T) {
	tests := []struct {
		name string
		X    *mat.Dense
		y    *mat.Dense
	}{
		{"empty X", &mat.Dense{}, mat.NewDense(1, 1, []float64{1})},
		{"row mismatch", mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewDense(2, 1, []float64{1, 2})},
		{"y not a column", mat.NewDense(2, 1, []float64{1, 2}), mat.NewDense(2, 2, []float64{1, 2, 3, 4})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := NewRegression().Fit(tt.X, tt.y); err == nil {
				t.Error("Fit should fail")
			}
		})
	}
}

func TestRegressionNotFitted(t *testing.T) {
	lr := NewRegression()

	_, err := lr.Predict(mat.NewDense(1, 1, []float64{1}))
	if err == nil {
		t.Fatal("Predict on unfitted model should fail")
	}
	var nfErr *errors.NotFittedError
	if !errors.As(err, &nfErr) {
		t.Errorf("error = %v, want *NotFittedError", err)
	}
}

func TestRegressionPredictIdempotent(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})

	lr := NewRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	query := mat.NewDense(3, 1, []float64{10, 20, 30})
	first, err := lr.Predict(query)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	second, err := lr.Predict(query)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if first.At(i, 0) != second.At(i, 0) {
			t.Errorf("row %d: predictions differ between calls: %v vs %v", i, first.At(i, 0), second.At(i, 0))
		}
	}
}

func TestRegressionWeightsRoundTrip(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})

	lr := NewRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}

	weights, err := lr.ExportWeights()
	if err != nil {
		t.Fatalf("ExportWeights failed: %v", err)
	}
	data, err := weights.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var restored model.ModelWeights
	if err := restored.FromJSON(data); err != nil {
		t.Fatalf("FromJSON failed: %v", err)
	}

	clone := NewRegression()
	if err := clone.ImportWeights(&restored); err != nil {
		t.Fatalf("ImportWeights failed: %v", err)
	}

	if clone.Intercept() != lr.Intercept() {
		t.Errorf("intercept lost in round trip: %v vs %v", clone.Intercept(), lr.Intercept())
	}
	if clone.Coef()[0] != lr.Coef()[0] {
		t.Errorf("coefficients lost in round trip: %v vs %v", clone.Coef(), lr.Coef())
	}
}

func TestRegressionImportRejectsCorruptedWeights(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{3, 5, 7, 9})

	lr := NewRegression()
	if err := lr.Fit(X, y); err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	weights, err := lr.ExportWeights()
	if err != nil {
		t.Fatalf("ExportWeights failed: %v", err)
	}

	weights.Coefficients[0] += 1 // corrupt after sealing

	if err := NewRegression().ImportWeights(weights); err == nil {
		t.Error("ImportWeights should reject a checksum mismatch")
	}
}
