// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package classic provides the fixed-function rendering backend.
//
// The classic pipeline renders on the CPU. Anti-aliasing is done by
// supersampling: a level of n renders at floor(sqrt(n)) times the target
// size (at most 4) and downsamples. Frustum visuals are not supported.
//
// Importing the package registers the "classic" backend:
//
//	import _ "github.com/gogpu/rendering/backend/classic"
package classic
