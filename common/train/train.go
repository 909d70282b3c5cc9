// Package train selects the trainer matching a dataset.
package train

import (
	"sort"

	"DocClassGo/common/trainers"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidArgument is returned for dataset names without a trainer.
var ErrInvalidArgument = errors.New("invalid argument")

type trainerKind int

const (
	classification trainerKind = iota
	relevanceTransfer
)

// trainersDict maps dataset names to the kind of trainer they use.
var trainersDict = map[string]trainerKind{
	"Reuters":  classification,
	"AAPD":     classification,
	"IMDB":     classification,
	"Wired":    classification,
	"Yelp2014": classification,
	"Robust04": relevanceTransfer,
	"Robust05": relevanceTransfer,
	"Robust45": relevanceTransfer,
}

// GetTrainer returns the trainer registered for datasetName, constructed with
// the given arguments. devEvaluator may be nil. Names are case-sensitive.
func GetTrainer(datasetName string, model trainers.Model, embedding *mat.Dense, trainLoader trainers.Loader,
	config trainers.Config, trainEvaluator, testEvaluator, devEvaluator trainers.Evaluator) (trainers.Trainer, error) {
	kind, exists := trainersDict[datasetName]
	if !exists {
		return nil, errors.Wrapf(ErrInvalidArgument, "%s does not have a known Trainer", datasetName)
	}
	switch kind {
	case relevanceTransfer:
		return trainers.NewRelevanceTransferTrainer(model, embedding, trainLoader, config,
			trainEvaluator, testEvaluator, devEvaluator), nil
	default:
		return trainers.NewClassificationTrainer(model, embedding, trainLoader, config,
			trainEvaluator, testEvaluator, devEvaluator), nil
	}
}

// DatasetNames lists the dataset names GetTrainer accepts, sorted.
func DatasetNames() []string {
	names := make([]string, 0, len(trainersDict))
	for name := range trainersDict {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
