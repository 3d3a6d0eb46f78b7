package model

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ModelWeights is a portable snapshot of a fitted model's parameters.
// Every solver exports the same shape, so coefficient bundles from the
// normal equations, gradient descent and the neural network are directly
// comparable and survive a JSON round trip bit-for-bit.
type ModelWeights struct {
	// ModelType names the producer (Regression, Univariate, GradientDescent, Network).
	ModelType string `json:"model_type"`

	// Coefficients holds the weight coefficients, one per feature.
	Coefficients []float64 `json:"coefficients"`

	// Intercept is the constant term.
	Intercept float64 `json:"intercept"`

	// Hyperparameters holds the settings the model was fitted with.
	Hyperparameters map[string]interface{} `json:"hyperparameters,omitempty"`

	// Metadata holds fitting statistics (sample count, final cost, ...).
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// Checksum guards against corrupted coefficient data.
	Checksum string `json:"checksum,omitempty"`
}

// ToJSON serializes the weights with indentation.
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON deserializes the weights.
func (mw *ModelWeights) FromJSON(data []byte) error {
	return json.Unmarshal(data, mw)
}

// Seal computes and stores the coefficient checksum.
func (mw *ModelWeights) Seal() {
	mw.Checksum = mw.computeChecksum()
}

// Validate checks the bundle for structural problems and checksum mismatch.
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return fmt.Errorf("model_type is required")
	}
	if len(mw.Coefficients) == 0 {
		return fmt.Errorf("weights must have coefficients")
	}
	if mw.Checksum != "" && mw.Checksum != mw.computeChecksum() {
		return fmt.Errorf("checksum mismatch: weights may be corrupted")
	}
	return nil
}

func (mw *ModelWeights) computeChecksum() string {
	data := make([]float64, 0, len(mw.Coefficients)+1)
	data = append(data, mw.Coefficients...)
	data = append(data, mw.Intercept)
	jsonData, _ := json.Marshal(data)
	hash := sha256.Sum256(jsonData)
	return hex.EncodeToString(hash[:])
}
