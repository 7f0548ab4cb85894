// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
//  ***** Data Structure *****
//
//  Pool             Prefix   Key                                  Value
//  |___ Messages       M     account(8) ‖ bucket(1) ‖ tsHash(24)  packed message record
//  |___ RentalEvents   R     logIndex(8)                          packed rental event
//  |___ UsernameProofs U     account(8) ‖ name                    packed proof record
//  |___ TestData       Z     (tests only)
//
//  ***** Purpose *****
//
//  Messages:
//    one key per persisted message; the (account ‖ bucket) key prefix
//    scopes all messages of one type for one account, so an exact
//    message count is a bounded key scan under that prefix
//
//  RentalEvents:
//    append-only storage rental log mirrored from the chain; the
//    big-endian log index makes iteration order equal to log order
//
//  UsernameProofs:
//    current username proofs by account and name
package storage
