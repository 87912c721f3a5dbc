// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a soft-limited, goroutine-safe cache.
//
// The compositor keeps decoded material textures in a Cache shared by
// every render target of a process, so a texture file is decoded once no
// matter how many cameras draw it.
//
// When the number of entries exceeds the soft limit, the least recently
// used quarter of the entries is evicted in one batch.
package cache
