package trainers

import (
	"context"
	"log"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// loop is the epoch loop shared by the trainers.
type loop struct {
	name string

	model          Model
	embedding      *mat.Dense
	trainLoader    Loader
	config         Config
	trainEvaluator Evaluator
	testEvaluator  Evaluator
	devEvaluator   Evaluator

	metric string

	// testOnImprovement evaluates test whenever the dev metric improves,
	// instead of once after the last epoch.
	testOnImprovement bool
}

func newLoop(name, defaultMetric string, model Model, embedding *mat.Dense, trainLoader Loader, config Config,
	trainEvaluator, testEvaluator, devEvaluator Evaluator) *loop {
	metric := config.Metric
	if metric == "" {
		metric = defaultMetric
	}
	return &loop{
		name:           name,
		model:          model,
		embedding:      embedding,
		trainLoader:    trainLoader,
		config:         config,
		trainEvaluator: trainEvaluator,
		testEvaluator:  testEvaluator,
		devEvaluator:   devEvaluator,
		metric:         metric,
	}
}

// Model returns the model being trained.
func (l *loop) Model() Model { return l.model }

// Embedding returns the embedding matrix given at construction, possibly nil.
func (l *loop) Embedding() *mat.Dense { return l.embedding }

// Config returns the training configuration.
func (l *loop) Config() Config { return l.config }

// Metric returns the name of the dev metric being maximized.
func (l *loop) Metric() string { return l.metric }

func (l *loop) train(ctx context.Context) (*Report, error) {
	if err := l.config.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "%s", l.name)
	}
	if l.model == nil || l.trainLoader == nil || l.testEvaluator == nil {
		return nil, errors.Errorf("%s needs a model, a train loader and a test evaluator", l.name)
	}

	report := &Report{Metric: l.metric}
	best := math.Inf(-1)
	sinceBest := 0
	for epoch := 1; epoch <= l.config.Epochs; epoch++ {
		er, err := l.runEpoch(ctx, epoch)
		if err != nil {
			return report, err
		}
		if l.trainEvaluator != nil {
			if er.Train, err = l.trainEvaluator.Evaluate(ctx); err != nil {
				return report, errors.WithMessagef(err, "epoch %d: train evaluation", epoch)
			}
		}

		improved := true
		if l.devEvaluator != nil {
			if er.Dev, err = l.devEvaluator.Evaluate(ctx); err != nil {
				return report, errors.WithMessagef(err, "epoch %d: dev evaluation", epoch)
			}
			score, found := er.Dev[l.metric]
			if !found {
				return report, errors.Errorf("epoch %d: dev metrics have no %q", epoch, l.metric)
			}
			improved = score > best
			if improved {
				best = score
				report.BestDev = score
			}
		}
		report.Epochs = append(report.Epochs, er)
		if l.config.Verbosity >= 1 {
			log.Printf("%s epoch %d/%d: loss %.4f, dev %s %.4f", l.name, epoch, l.config.Epochs,
				er.Loss, l.metric, er.Dev[l.metric])
		}

		if !improved {
			sinceBest++
			if l.config.Patience > 0 && sinceBest >= l.config.Patience {
				if l.config.Verbosity >= 1 {
					log.Printf("%s: early stopping after %d epochs without improvement, best %s %.4f at epoch %d",
						l.name, sinceBest, l.metric, best, report.BestEpoch)
				}
				report.StoppedEarly = true
				break
			}
			continue
		}
		sinceBest = 0
		report.BestEpoch = epoch
		if err := l.checkpoint(); err != nil {
			return report, errors.WithMessagef(err, "epoch %d", epoch)
		}
		if l.testOnImprovement {
			if report.Test, err = l.testEvaluator.Evaluate(ctx); err != nil {
				return report, errors.WithMessagef(err, "epoch %d: test evaluation", epoch)
			}
		}
	}

	if !l.testOnImprovement {
		var err error
		if report.Test, err = l.testEvaluator.Evaluate(ctx); err != nil {
			return report, errors.WithMessage(err, "test evaluation")
		}
	}
	return report, nil
}

// runEpoch feeds one pass of the train loader to the model.
func (l *loop) runEpoch(ctx context.Context, epoch int) (EpochReport, error) {
	er := EpochReport{Epoch: epoch}
	total := 0.0
	for batch := range l.trainLoader.Batches() {
		if err := ctx.Err(); err != nil {
			return er, errors.Wrapf(err, "epoch %d interrupted", epoch)
		}
		loss, err := l.model.TrainStep(ctx, batch)
		if err != nil {
			return er, errors.WithMessagef(err, "epoch %d, batch %d", epoch, er.Batches+1)
		}
		total += loss
		er.Batches++
		if l.config.LogEvery > 0 && l.config.Verbosity >= 2 && er.Batches%l.config.LogEvery == 0 {
			log.Printf("%s epoch %d, batch %d: running loss %.4f", l.name, epoch, er.Batches, total/float64(er.Batches))
		}
	}
	if er.Batches > 0 {
		er.Loss = total / float64(er.Batches)
	}
	return er, nil
}

// checkpoint saves the model to ModelOutfile when it can.
func (l *loop) checkpoint() error {
	if l.config.ModelOutfile == "" {
		return nil
	}
	saver, ok := l.model.(Checkpointer)
	if !ok {
		return nil
	}
	if err := saver.Save(l.config.ModelOutfile); err != nil {
		return errors.WithMessagef(err, "saving %s", l.config.ModelOutfile)
	}
	return nil
}
