package main

import (
	"flag"

	"github.com/lintang-b-s/campusnav/pkg/dataset"
	"github.com/lintang-b-s/campusnav/pkg/datastructure"
	"github.com/lintang-b-s/campusnav/pkg/engine"
	"github.com/lintang-b-s/campusnav/pkg/logger"
	"go.uber.org/zap"
)

var (
	datasetPath = flag.String("dataset", "./data/campus.yaml", "location dataset (yaml)")
	graphPath   = flag.String("out", "./data/campus.graph", "output graph snapshot (bzip2)")
	mode        = flag.String("mode", "mesh", "graph mode: mesh or curated")
	workers     = flag.Int("workers", 4, "number of workers for mesh construction")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	ds, err := dataset.Load(*datasetPath)
	if err != nil {
		logger.Fatal("load dataset", zap.Error(err))
	}
	registry, err := ds.Registry()
	if err != nil {
		logger.Fatal("build location registry", zap.Error(err))
	}

	opts := engine.DefaultOptions()
	opts.Mode = engine.GraphMode(*mode)
	opts.MeshWorkers = *workers

	graph, err := engine.BuildGraph(registry, ds, opts, logger)
	if err != nil {
		logger.Fatal("build graph", zap.Error(err))
	}

	if err := graph.WriteGraph(*graphPath); err != nil {
		logger.Fatal("write graph", zap.Error(err))
	}

	// sanity check, the snapshot must read back
	if _, err := datastructure.ReadGraph(*graphPath); err != nil {
		logger.Fatal("read back graph", zap.Error(err))
	}

	logger.Sugar().Infof("Preprocessing completed successfully. graph written to %s", *graphPath)
}
