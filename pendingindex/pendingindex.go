// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pendingindex - boundary to the native-accelerated secondary
// index locating the earliest pending message per account and bucket
//
// The accelerator itself lives outside this process's Go code; callers
// inject an Index implementation. A memoizing wrapper is provided so
// hot lookups do not cross into the accelerator on every query.
package pendingindex

import (
	"fmt"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/meshnet-inc/meshd/eventrecord"
)

// Index - the secondary index capability
type Index interface {
	// EarliestPending - byte sequence identifying the earliest
	// not-yet-processed item for the account and bucket, false if none
	EarliestPending(account eventrecord.AccountID, bucket eventrecord.Bucket) ([]byte, bool)

	// ClearCache - drop any warm state held by the index
	ClearCache()
}

type noneIndex struct{}

func (noneIndex) EarliestPending(eventrecord.AccountID, eventrecord.Bucket) ([]byte, bool) {
	return nil, false
}

func (noneIndex) ClearCache() {}

// None - index that knows nothing, for tooling without an accelerator
func None() Index {
	return noneIndex{}
}

const (
	memoExpiration = 30 * time.Second
	memoCleanup    = 1 * time.Minute
)

// Memo - memoizing wrapper over an Index
//
// results are served from memory for a short period; after expiry the
// inner index is authoritative again
type Memo struct {
	inner Index
	cache *cache.Cache
}

type memoEntry struct {
	tsHash []byte
	found  bool
}

// NewMemo - wrap an index with an expiring memo
func NewMemo(inner Index) *Memo {
	return &Memo{
		inner: inner,
		cache: cache.New(memoExpiration, memoCleanup),
	}
}

func memoKey(account eventrecord.AccountID, bucket eventrecord.Bucket) string {
	return fmt.Sprintf("%d.%d", account, bucket)
}

// EarliestPending - memoized lookup
func (m *Memo) EarliestPending(account eventrecord.AccountID, bucket eventrecord.Bucket) ([]byte, bool) {
	key := memoKey(account, bucket)

	if obj, found := m.cache.Get(key); found {
		entry := obj.(memoEntry)
		return entry.tsHash, entry.found
	}

	tsHash, found := m.inner.EarliestPending(account, bucket)
	m.cache.Set(key, memoEntry{tsHash: tsHash, found: found}, memoExpiration)
	return tsHash, found
}

// ClearCache - flush the memo, then the inner index
func (m *Memo) ClearCache() {
	m.cache.Flush()
	m.inner.ClearCache()
}
