// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"github.com/spf13/cobra"

	"github.com/gogpu/arrowhead"
	"github.com/gogpu/arrowhead/internal/config"
	"github.com/gogpu/arrowhead/internal/logging"
)

// app holds the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "arrowhead",
		Short: "Sierpinski arrowhead curve generator",
		Long: `arrowhead generates Sierpinski arrowhead curves in 2D and 3D and turns
them into line-list vertex and index buffers, PNG images or an HTTP service.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newRenderCmd(a),
		newExportCmd(a),
		newStatsCmd(a),
		newServeCmd(a),
	)
	return root
}

// load reads the configuration and installs the process logger.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	arrowhead.SetLogger(logging.New(cmd.ErrOrStderr(), level))
	a.cfg = cfg
	return nil
}

// curveFlags are the mesh parameters accepted by every mesh command. Only
// flags set on the command line override the configuration.
type curveFlags struct {
	variant  string
	depth    int
	scale    float32
	color    string
	gradient bool
	workers  int
}

func (f *curveFlags) register(cmd *cobra.Command) {
	def := config.Default().Curve
	cmd.Flags().StringVar(&f.variant, "variant", def.Variant, "curve variant: 2d or 3d")
	cmd.Flags().IntVarP(&f.depth, "depth", "d", def.Depth, "recursion depth")
	cmd.Flags().Float32Var(&f.scale, "scale", def.Scale, "segment length")
	cmd.Flags().StringVar(&f.color, "color", def.Color, "vertex color as #rgb or #rrggbb")
	cmd.Flags().BoolVar(&f.gradient, "gradient", false, "color vertices along a hue gradient")
	cmd.Flags().IntVar(&f.workers, "workers", def.Workers, "parallel vertex builders")
}

func (f *curveFlags) apply(cmd *cobra.Command, c *config.Curve) {
	flags := cmd.Flags()
	if flags.Changed("variant") {
		c.Variant = f.variant
	}
	if flags.Changed("depth") {
		c.Depth = f.depth
	}
	if flags.Changed("scale") {
		c.Scale = f.scale
	}
	if flags.Changed("color") {
		c.Color = f.color
	}
	if flags.Changed("gradient") {
		c.Gradient = f.gradient
	}
	if flags.Changed("workers") {
		c.Workers = f.workers
	}
}

// mesh builds the mesh selected by the configuration and flags.
func (a *app) mesh(cmd *cobra.Command, f *curveFlags) (*arrowhead.Mesh, error) {
	f.apply(cmd, &a.cfg.Curve)
	p, err := a.cfg.Params()
	if err != nil {
		return nil, err
	}
	return arrowhead.NewMeshContext(cmd.Context(), p, a.cfg.BuildOptions()...)
}
