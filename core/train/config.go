package train

import "fmt"

// Config carries the training constants as an explicit record instead of
// package-level globals.
type Config struct {
	// SampleSize is the window length in observations.
	SampleSize int `json:"sample_size"`
	// Epochs is the fixed number of passes; every epoch runs unconditionally.
	Epochs int `json:"epochs"`
	// LearningRate feeds the Adam optimizer.
	LearningRate float64 `json:"learning_rate"`
	// HiddenSize is the width of both recurrent layers.
	HiddenSize int `json:"hidden_size"`
	// DaysToPredict is the autoregressive forecast horizon.
	DaysToPredict int `json:"days_to_predict"`
	// Seed fixes weight initialisation; runs with the same seed and data are
	// reproducible.
	Seed int64 `json:"seed"`
}

// SetDefaults applies the standard training constants.
func (c *Config) SetDefaults() {
	if c.SampleSize == 0 {
		c.SampleSize = 250
	}
	if c.Epochs == 0 {
		c.Epochs = 150
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.5
	}
	if c.HiddenSize == 0 {
		c.HiddenSize = 51
	}
	if c.DaysToPredict == 0 {
		c.DaysToPredict = 30
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.SampleSize < 1 {
		return fmt.Errorf("sample_size must be positive, got %d", c.SampleSize)
	}
	if c.Epochs < 1 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be positive, got %v", c.LearningRate)
	}
	if c.HiddenSize < 1 {
		return fmt.Errorf("hidden_size must be positive, got %d", c.HiddenSize)
	}
	if c.DaysToPredict < 0 {
		return fmt.Errorf("days_to_predict cannot be negative, got %d", c.DaysToPredict)
	}
	return nil
}
