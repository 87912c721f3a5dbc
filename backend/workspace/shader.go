// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package workspace

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/background.wgsl
var backgroundShaderWGSL string

// compileShaderToSPIRV compiles WGSL source to SPIR-V words.
func compileShaderToSPIRV(wgslSource string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("workspace: compile shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("workspace: SPIR-V size %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words.
	spirvCode := make([]uint32, len(spirvBytes)/4)
	for i := range spirvCode {
		spirvCode[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirvCode, nil
}

// createBackgroundShader creates the background shader module. When the
// WGSL cannot be compiled to SPIR-V the module is created from WGSL and
// the device compiles it.
func (d *Driver) createBackgroundShader() (hal.ShaderModule, error) {
	src := hal.ShaderSource{}
	spirv, err := compileShaderToSPIRV(backgroundShaderWGSL)
	if err != nil {
		d.logger().Warn("workspace: SPIR-V compilation failed, using WGSL", "err", err)
		src.WGSL = backgroundShaderWGSL
	} else {
		src.SPIRV = spirv
	}
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "workspace_background",
		Source: src,
	})
	if err != nil {
		return nil, fmt.Errorf("workspace: create background shader: %w", err)
	}
	return module, nil
}
