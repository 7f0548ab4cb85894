// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package eventrecord - the domain events applied to the accounting cache
//
// Events arrive from two feeds: the message engine (merge, prune,
// revoke, username proofs) and the on-chain mirror (storage rentals).
// Rental events are also persisted to the durable rental log, so this
// package owns their binary record format.
package eventrecord
