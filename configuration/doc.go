// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the node configuration
//
// The configuration file is a Lua script, the last expression it
// evaluates is mapped onto the Configuration structure.  Relative
// paths are resolved against the "data_directory" setting.
package configuration
