// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/arrowhead"
	"github.com/gogpu/arrowhead/internal/cache"
	"github.com/gogpu/arrowhead/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		curve     curveFlags
		addr      string
		maxDepth  int
		redisAddr string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve meshes and images over HTTP",
		Long: `Serve starts the mesh service. Meshes are cached in memory and, when
--redis is set, in Redis. The curve flags set the defaults for omitted
query parameters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if flags.Changed("max-depth") {
				a.cfg.Server.MaxDepth = maxDepth
			}
			if flags.Changed("redis") {
				a.cfg.Cache.Addr = redisAddr
			}
			curve.apply(cmd, &a.cfg.Curve)
			return a.serve(cmd.Context())
		},
	}
	curve.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 10, "deepest curve a client may request")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the shared mesh cache")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	defaults, err := cfg.Params()
	if err != nil {
		return err
	}
	rasterOpts, err := cfg.RasterOptions()
	if err != nil {
		return err
	}

	tiers := []cache.Store{cache.NewMemory(cfg.Cache.Entries)}
	if cfg.Cache.Addr != "" {
		red := cache.NewRedis(cfg.Cache.Addr, os.Getenv("ARROWHEAD_REDIS_PASSWORD"), cfg.Cache.DB,
			cache.WithTTL(cfg.Cache.TTL), cache.WithPrefix(cfg.Cache.Prefix))
		defer red.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := red.Ping(pingCtx); err != nil {
			arrowhead.Logger().Warn("redis unreachable, serving from memory until it recovers",
				"addr", cfg.Cache.Addr, "error", err)
		}
		cancel()
		tiers = append(tiers, red)
	}

	srv := server.New(cache.NewMeshes(tiers, cfg.BuildOptions()...),
		server.WithDefaults(defaults),
		server.WithMaxDepth(cfg.Server.MaxDepth),
		server.WithRaster(cfg.Render.Width, cfg.Render.Height, rasterOpts...),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
}
