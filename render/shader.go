// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

//go:embed shaders/line.wgsl
var lineShaderSource string

// Entry points of the line shader.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

var (
	lineSPIRVOnce sync.Once
	lineSPIRV     []uint32
	lineSPIRVErr  error
)

// LineShaderSource returns the WGSL source of the line pipeline.
func LineShaderSource() string {
	return lineShaderSource
}

// LineShaderSPIRV compiles the line shader to SPIR-V words. The result is
// computed once and shared.
func LineShaderSPIRV() ([]uint32, error) {
	lineSPIRVOnce.Do(func() {
		lineSPIRV, lineSPIRVErr = compileSPIRV(lineShaderSource)
	})
	return lineSPIRV, lineSPIRVErr
}

// compileSPIRV compiles WGSL to little-endian SPIR-V words.
func compileSPIRV(wgsl string) ([]uint32, error) {
	code, err := naga.Compile(wgsl)
	if err != nil {
		return nil, fmt.Errorf("render: compile line shader: %w", err)
	}
	if len(code)%4 != 0 {
		return nil, fmt.Errorf("render: SPIR-V length %d is not word aligned", len(code))
	}
	words := make([]uint32, len(code)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(code[i*4:])
	}
	return words, nil
}
