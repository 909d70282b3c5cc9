package trainers

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// RelevanceTransferTrainer trains document rankers on relevance judgments.
// It maximizes the dev "average_precision" unless Config.Metric says otherwise
// and scores the test split every time the dev metric improves, so the
// reported test metrics are those of the best dev epoch.
type RelevanceTransferTrainer struct {
	*loop
}

// NewRelevanceTransferTrainer creates a RelevanceTransferTrainer.
func NewRelevanceTransferTrainer(model Model, embedding *mat.Dense, trainLoader Loader, config Config,
	trainEvaluator, testEvaluator, devEvaluator Evaluator) *RelevanceTransferTrainer {
	l := newLoop("RelevanceTransferTrainer", "average_precision", model, embedding, trainLoader, config,
		trainEvaluator, testEvaluator, devEvaluator)
	l.testOnImprovement = true
	return &RelevanceTransferTrainer{loop: l}
}

// Train runs the training loop.
func (t *RelevanceTransferTrainer) Train(ctx context.Context) (*Report, error) {
	return t.train(ctx)
}
