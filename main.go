package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"DocClassGo/common/config"
	"DocClassGo/common/train"
	"DocClassGo/datasets"
	"DocClassGo/datasets/data"
	"DocClassGo/datasets/tfidf"
)

func main() {
	configPath := flag.String("config", "", "JSON or YAML configuration file")
	dataset := flag.String("dataset", "", "dataset variant, one of: "+strings.Join(datasets.Variants(), ", "))
	dataDir := flag.String("data", "", "directory holding the dataset folders")
	vectorsName := flag.String("vectors", "", "word vectors file name")
	vectorsCache := flag.String("cache", "", "word vectors directory")
	batchSize := flag.Int("batch-size", 0, "batch size")
	makeTFIDF := flag.Bool("make-tfidf", false, "write the Reuters TF-IDF splits from the Reuters text splits and exit")
	flag.Parse()

	c := config.Default()
	if *configPath != "" {
		var err error
		if c, err = config.FromFile(*configPath); err != nil {
			log.Fatalf("%+v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dataset":
			c.Dataset = *dataset
		case "data":
			c.DataDir = *dataDir
		case "vectors":
			c.VectorsName = *vectorsName
		case "cache":
			c.VectorsCache = *vectorsCache
		case "batch-size":
			c.BatchSize = *batchSize
		}
	})

	if *makeTFIDF {
		v, err := tfidf.ConvertSplits(c.DataDir, datasets.Reuters.Paths, datasets.ReutersTFIDF.Paths,
			tfidf.Options{MaxFeatures: datasets.ReutersVocabSize, Verbosity: c.Verbosity})
		if err != nil {
			log.Fatalf("%+v", err)
		}
		fmt.Printf("wrote TF-IDF splits with %d features\n", len(v.Features))
		return
	}

	if err := c.Validate(); err != nil {
		log.Fatalf("invalid configuration: %+v", err)
	}
	if err := inspect(c); err != nil {
		log.Fatalf("%+v", err)
	}
}

// inspect loads the configured dataset and prints the shape of its splits.
func inspect(c *config.Config) error {
	def, err := c.Definition()
	if err != nil {
		return err
	}
	opts, err := c.IterOptions()
	if err != nil {
		return err
	}
	loaders, err := def.Iters(c.DataDir, opts)
	if err != nil {
		return err
	}

	fmt.Printf("dataset %s (%s text, %d classes, multi-label %t)\n",
		def.Variant, def.Text.Kind, def.NumClasses, def.IsMultilabel)
	if loaders.Vocab != nil {
		fmt.Printf("vocabulary: %d tokens\n", loaders.Vocab.Len())
	}
	if _, err := train.GetTrainer(def.Name, nil, nil, nil, c.Trainer, nil, nil, nil); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	} else {
		fmt.Printf("trainer: registered for %s\n", def.Name)
	}

	for _, it := range []*data.BucketIterator{loaders.Train, loaders.Dev, loaders.Test} {
		fmt.Printf("%-5s %6d examples, %4d batches", it.Split().Name, it.Split().Len(), it.Len())
		for b := range it.Batches() {
			fmt.Printf(", first batch %s", batchShape(b))
			break
		}
		fmt.Println()
	}
	return nil
}

func batchShape(b *data.Batch) string {
	labels, classes := b.Labels.Dims()
	switch {
	case b.Text != nil:
		return fmt.Sprintf("text %dx%d, labels %dx%d", len(b.Text), len(b.Text[0]), labels, classes)
	case b.Nested != nil:
		return fmt.Sprintf("text %dx%dx%d, labels %dx%d", len(b.Nested), len(b.Nested[0]), len(b.Nested[0][0]), labels, classes)
	case b.Grids != nil:
		rows, cols := b.Grids[0].Dims()
		return fmt.Sprintf("chars %dx%dx%d, labels %dx%d", len(b.Grids), rows, cols, labels, classes)
	case b.Features != nil:
		rows, cols := b.Features.Dims()
		return fmt.Sprintf("features %dx%d, labels %dx%d", rows, cols, labels, classes)
	}
	return fmt.Sprintf("labels %dx%d", labels, classes)
}
