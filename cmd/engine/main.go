package main

import (
	"context"
	"flag"

	"github.com/lintang-b-s/campusnav/pkg/dataset"
	"github.com/lintang-b-s/campusnav/pkg/engine"
	"github.com/lintang-b-s/campusnav/pkg/http"
	"github.com/lintang-b-s/campusnav/pkg/http/usecases"
	"github.com/lintang-b-s/campusnav/pkg/logger"
	"github.com/lintang-b-s/campusnav/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configDir = flag.String("config_dir", "./data/", "directory containing config.yaml")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := util.ReadConfig(*configDir); err != nil {
		logger.Fatal("read config", zap.Error(err))
	}
	setDefaults()

	ds, err := loadDataset(logger)
	if err != nil {
		logger.Fatal("load dataset", zap.Error(err))
	}

	opts := engine.Options{
		Mode:           engine.GraphMode(viper.GetString("GRAPH_MODE")),
		EarthRadius:    viper.GetFloat64("EARTH_RADIUS_M"),
		MeshWorkers:    viper.GetInt("MESH_WORKERS"),
		ArrivalRadius:  viper.GetFloat64("ARRIVAL_RADIUS_M"),
		RouteCacheSize: viper.GetInt("ROUTE_CACHE_SIZE"),
	}

	var routingEngine *engine.Engine
	if graphPath := viper.GetString("GRAPH_PATH"); graphPath != "" {
		routingEngine, err = engine.NewEngineFromSnapshot(graphPath, ds, opts, logger)
	} else {
		routingEngine, err = engine.NewEngine(ds, opts, logger)
	}
	if err != nil {
		logger.Fatal("initialize routing engine", zap.Error(err))
	}

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, routingEngine, routingEngine.GetSpatialIndex(),
		viper.GetFloat64("SNAP_RADIUS_M"))
	trackingService := usecases.NewTrackingService(logger, routingEngine.GetTracker())

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}
	if _, err := api.Use(ctx, logger, viper.GetBool("USE_RATE_LIMIT"), routingService, trackingService); err != nil {
		logger.Fatal("start api", zap.Error(err))
	}

	done := make(chan error, 1)
	go func() {
		done <- api.Wait()
	}()

	go func() {
		signal := http.GracefulShutdown()
		logger.Info("shutdown signal received", zap.String("signal", signal.String()))
		cleanup()
	}()

	if err := <-done; err != nil {
		logger.Error("campus routing server stopped with error", zap.Error(err))
	}
	logger.Info("campus routing server stopped")
}

func setDefaults() {
	viper.SetDefault("DATASET_PATH", "./data/campus.yaml")
	viper.SetDefault("GRAPH_PATH", "")
	viper.SetDefault("GRAPH_MODE", string(engine.ModeMesh))
	viper.SetDefault("EARTH_RADIUS_M", 6371000.0)
	viper.SetDefault("ARRIVAL_RADIUS_M", 3.0)
	viper.SetDefault("SNAP_RADIUS_M", 50.0)
	viper.SetDefault("MESH_WORKERS", 4)
	viper.SetDefault("ROUTE_CACHE_SIZE", 1024)
	viper.SetDefault("USE_RATE_LIMIT", false)
}

// loadDataset. DATASET_PATH, or the built in campus when the path is "builtin".
func loadDataset(logger *zap.Logger) (*dataset.Dataset, error) {
	path := viper.GetString("DATASET_PATH")
	if path == "builtin" {
		logger.Info("using built in campus dataset")
		return dataset.DefaultCampus(), nil
	}
	logger.Info("loading dataset", zap.String("path", path))
	return dataset.Load(path)
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
