package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/campusnav/pkg/dataset"
	"github.com/lintang-b-s/campusnav/pkg/logger"
	"github.com/lintang-b-s/campusnav/pkg/osmparser"
	"go.uber.org/zap"
)

var (
	mapFile = flag.String("map", "./data/campus.osm.pbf", "openstreetmap pbf extract of the campus")
	out     = flag.String("out", "./data/campus.yaml", "output dataset (yaml)")
	name    = flag.String("name", "campus", "dataset name")
	procs   = flag.Int("procs", 1, "pbf decoder goroutines")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	extractor := osmparser.NewPOIExtractor(osmparser.DefaultTagFilter(), *procs, logger)
	ds, err := extractor.ExtractFile(context.Background(), *mapFile, *name)
	if err != nil {
		logger.Fatal("extract points of interest", zap.Error(err))
	}
	if err := ds.Validate(); err != nil {
		logger.Fatal("extracted dataset is not valid", zap.Error(err))
	}

	if err := dataset.Write(*out, ds); err != nil {
		logger.Fatal("write dataset", zap.Error(err))
	}
	logger.Info("dataset written", zap.String("path", *out), zap.Int("locations", len(ds.Locations)))
}
