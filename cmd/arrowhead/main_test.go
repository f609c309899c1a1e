// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/arrowhead"
	"github.com/gogpu/arrowhead/internal/config"
	"github.com/gogpu/arrowhead/render"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { arrowhead.SetLogger(nil) })
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestStats(t *testing.T) {
	out, err := run(t, "stats", "--variant", "2d", "--depth", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "variant:  2d")
	assert.Contains(t, out, "vertices: 2,188")
	assert.Contains(t, out, "indices:  4,374")
	assert.Contains(t, out, "segments: 2,187")
}

func TestStats_InvalidDepth(t *testing.T) {
	_, err := run(t, "stats", "--depth", "-2")
	assert.ErrorIs(t, err, arrowhead.ErrInvalidDepth)
}

func TestStats_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrowhead.yaml")
	require.NoError(t, os.WriteFile(path, []byte("curve:\n  variant: 2d\n  depth: 2\n"), 0o600))

	out, err := run(t, "--config", path, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "vertices: 10\n")

	// Flags win over the file.
	out, err = run(t, "--config", path, "stats", "--depth", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "vertices: 28\n")
}

func TestStats_DebugLogsOneBuild(t *testing.T) {
	t.Cleanup(func() { arrowhead.SetLogger(nil) })
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--log-level", "debug", "stats", "--variant", "2d", "--depth", "2"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 1, strings.Count(errOut.String(), "mesh built"), errOut.String())
	assert.Contains(t, errOut.String(), "vertices=10")
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "chatty", "stats")
	assert.ErrorIs(t, err, config.ErrInvalidLogLevel)
}

func TestExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.ahm")
	_, err := run(t, "export", "--variant", "3d", "--depth", "3", "--gradient", "--out", path)
	require.NoError(t, err)

	blob, err := os.ReadFile(path)
	require.NoError(t, err)
	p := arrowhead.Params{Variant: arrowhead.Variant3D, Depth: 3, Scale: 0.05, Gradient: true}
	mesh, err := render.DecodeMesh(blob, p)
	require.NoError(t, err)
	want := arrowhead.NewMesh(p)
	assert.Equal(t, want.Vertices, mesh.Vertices)
	assert.Equal(t, want.Indices, mesh.Indices)
}

func TestExport_Stdout(t *testing.T) {
	out, err := run(t, "export", "--depth", "1")
	require.NoError(t, err)
	assert.Len(t, out, 12+4*render.VertexStride+6*render.IndexStride)
	assert.Equal(t, "AHM1", out[:4])
}

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	_, err := run(t, "render", "--depth", "4", "--width", "96", "--height", "64",
		"--projection", "iso", "--caption", "--out", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 96, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
}

func TestRender_Errors(t *testing.T) {
	_, err := run(t, "render", "--projection", "fisheye", "--out", "-")
	assert.ErrorIs(t, err, render.ErrUnknownProjection)

	_, err = run(t, "render", "--width", "0", "--out", "-")
	assert.ErrorIs(t, err, config.ErrInvalidRender)

	_, err = run(t, "render", "--depth", "0", "--width", "8", "--height", "8", "--out", "-")
	assert.ErrorIs(t, err, render.ErrEmptyMesh)
}
