// This file is part of go-mc/server project.
// Copyright (C) 2023.  Tnze
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"PokeCore/game"
)

var (
	isDebug    = flag.Bool("debug", false, "Enable debug log output")
	configPath = flag.String("config", "config.toml", "Path to the TOML config")
)

func main() {
	flag.Parse()

	var logger *zap.Logger
	if *isDebug {
		logger = unwrap(zap.NewDevelopment())
	} else {
		logger = unwrap(zap.NewProduction())
	}
	defer func(logger *zap.Logger) {
		if err := logger.Sync(); err != nil {
			panic(err)
		}
	}(logger)

	logger.Info("Server start")
	printBuildInfo(logger)
	defer logger.Info("Server exit")

	config, err := game.ReadConfig(*configPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("Config not found, using defaults", zap.String("path", *configPath))
		config = game.DefaultConfig()
	} else if err != nil {
		logger.Error("Read config fail", zap.Error(err))
		return
	}

	g, err := game.NewGame(logger, config, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Error("Init game fail", zap.Error(err))
		return
	}

	if config.MetricsAddress != "" {
		go serveMetrics(logger, config.MetricsAddress)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info("World running", zap.String("level", config.LevelName))
	g.World().Run(ctx)
}

func serveMetrics(logger *zap.Logger, addr string) {
	logger.Info("Serving metrics", zap.String("address", addr))
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server error", zap.Error(err))
	}
}

func printBuildInfo(logger *zap.Logger) {
	binaryInfo, _ := debug.ReadBuildInfo()
	settings := make(map[string]string)
	for _, v := range binaryInfo.Settings {
		settings[v.Key] = v.Value
	}
	logger.Debug("Build info", zap.Any("settings", settings))
}

func unwrap[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
