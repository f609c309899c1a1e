// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package arrowhead

import (
	"log/slog"
	"sync/atomic"
)

var silent = slog.New(slog.DiscardHandler)

// logger is shared by arrowhead and its sub-packages. It never holds nil.
var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(silent)
}

// SetLogger routes the logs of arrowhead, render and the internal service
// packages to l. Nothing is logged until SetLogger is called; nil restores
// that state. It is safe to call while meshes are being built.
//
// Records by level:
//   - [slog.LevelDebug]: mesh built (params, vertex and index counts,
//     elapsed time), render session started, raster drawn
//   - [slog.LevelInfo]: server listening, files written by the CLI
//   - [slog.LevelWarn]: cache tier failures, PNG write errors
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
}

// Logger returns the logger installed by SetLogger.
func Logger() *slog.Logger {
	return logger.Load()
}

// LogValue groups the mesh parameters under one key, so records carry
// params.variant, params.depth, params.scale and either params.gradient or
// params.color.
func (p Params) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("variant", p.Variant.String()),
		slog.Int("depth", p.Depth),
		slog.Float64("scale", float64(p.Scale)),
	}
	if p.Gradient {
		attrs = append(attrs, slog.Bool("gradient", true))
	} else {
		attrs = append(attrs, slog.Any("color", []float32{p.Color.R, p.Color.G, p.Color.B}))
	}
	return slog.GroupValue(attrs...)
}
