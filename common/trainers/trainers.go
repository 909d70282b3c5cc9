// Package trainers runs the epoch loop of a text classification model: it
// feeds batches to the model, evaluates after every epoch, keeps the best
// checkpoint and stops early once the dev metric stops improving.
//
// The model and the evaluators are supplied by the caller.
package trainers

import (
	"context"
	"iter"

	"DocClassGo/datasets/data"

	"github.com/pkg/errors"
)

// Model is trained one batch at a time.
type Model interface {
	// TrainStep runs forward, backward and an optimizer step on batch and
	// returns the loss.
	TrainStep(ctx context.Context, batch *data.Batch) (float64, error)
}

// Checkpointer is implemented by models that can be saved.
type Checkpointer interface {
	Save(path string) error
}

// Loader yields the batches of one epoch per call to Batches.
// *data.BucketIterator implements it.
type Loader interface {
	Batches() iter.Seq[*data.Batch]
}

// Metrics maps metric names, e.g. "f1" or "average_precision", to values.
type Metrics map[string]float64

// Evaluator scores the model on one split.
type Evaluator interface {
	Evaluate(ctx context.Context) (Metrics, error)
}

// Trainer is implemented by every trainer of this package.
type Trainer interface {
	Train(ctx context.Context) (*Report, error)
}

// Config of a training run.
type Config struct {
	// Epochs is the maximum number of passes over the training data.
	Epochs int `json:"epochs" yaml:"epochs"`

	// Patience is the number of epochs without dev improvement before stopping.
	// 0 disables early stopping.
	Patience int `json:"patience" yaml:"patience"`

	// Metric is the dev metric to maximize. Empty selects the trainer's default.
	Metric string `json:"metric" yaml:"metric"`

	// ModelOutfile is where the best model is saved, if the model is a Checkpointer.
	ModelOutfile string `json:"model_outfile" yaml:"model_outfile"`

	// LogEvery logs the running loss every LogEvery batches. 0 disables it.
	LogEvery int `json:"log_every" yaml:"log_every"`

	// Verbosity: 0 for quiet operation; 1 for progress information; 2 and higher for debugging.
	Verbosity int `json:"verbosity" yaml:"verbosity"`
}

// DefaultConfig returns the configuration used when a field is not set.
func DefaultConfig() Config {
	return Config{
		Epochs:   30,
		Patience: 5,
		LogEvery: 10,
	}
}

// Validate checks c for values Train cannot run with.
func (c *Config) Validate() error {
	if c.Epochs <= 0 {
		return errors.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.Patience < 0 {
		return errors.Errorf("patience must not be negative, got %d", c.Patience)
	}
	if c.LogEvery < 0 {
		return errors.Errorf("log_every must not be negative, got %d", c.LogEvery)
	}
	return nil
}

// EpochReport summarizes one epoch.
type EpochReport struct {
	Epoch   int
	Loss    float64 // mean training loss
	Batches int
	Train   Metrics
	Dev     Metrics
}

// Report summarizes a training run.
type Report struct {
	Metric    string
	Epochs    []EpochReport
	BestEpoch int
	BestDev   float64

	// Test holds the test metrics of the best model.
	Test Metrics

	StoppedEarly bool
}
