package trainers

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// ClassificationTrainer trains single- and multi-label document classifiers.
// It maximizes the dev "f1" unless Config.Metric says otherwise and scores the
// test split once, after the last epoch.
type ClassificationTrainer struct {
	*loop
}

// NewClassificationTrainer creates a ClassificationTrainer. devEvaluator may be
// nil, in which case every epoch counts as an improvement.
func NewClassificationTrainer(model Model, embedding *mat.Dense, trainLoader Loader, config Config,
	trainEvaluator, testEvaluator, devEvaluator Evaluator) *ClassificationTrainer {
	return &ClassificationTrainer{
		loop: newLoop("ClassificationTrainer", "f1", model, embedding, trainLoader, config,
			trainEvaluator, testEvaluator, devEvaluator),
	}
}

// Train runs the training loop.
func (t *ClassificationTrainer) Train(ctx context.Context) (*Report, error) {
	return t.train(ctx)
}
