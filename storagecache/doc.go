// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storagecache - in-memory accounting over the persistent store
//
//  ***** State *****
//
//  counts:  (account ‖ bucket) → exact persisted message count
//           absent means not yet computed, distinct from a computed zero;
//           backfilled from the store through a single-flight scan
//
//  slots:   account → { units, invalidateAt }
//           units is the believed-active rental capacity; invalidateAt
//           is the earliest ledger time at which any counted rental is
//           known to expire, after which the sum would overcount and
//           must be recomputed from the durable rental log
//
//  ***** Update paths *****
//
//  ProcessEvent     incremental: message events adjust counts, on-chain
//                   rental events fold into slots (coalesce while the
//                   slot is valid, reseed once it is stale)
//  MessageCount     read-through: uncached keys trigger one bounded
//                   store scan shared by all concurrent callers
//  CurrentStorageUnits
//                   lazy: a slot past its watermark is rebuilt from the
//                   rental log before being returned
//  Resync           full rebuild of all slots from the rental log, run
//                   during Initialise and on demand
//
//  The cache is local to one process; a restart rebuilds it, nothing is
//  persisted.
package storagecache
