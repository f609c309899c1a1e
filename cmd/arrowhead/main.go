// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command arrowhead builds, renders and serves Sierpinski arrowhead meshes.
//
// Usage:
//
//	arrowhead render --depth 8 --projection iso --out curve.png
//	arrowhead export --variant 2d --depth 6 --out curve.ahm
//	arrowhead stats --depth 12
//	arrowhead serve --config arrowhead.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "arrowhead:", err)
		os.Exit(1)
	}
}
