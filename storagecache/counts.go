// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagecache

import (
	"github.com/meshnet-inc/meshd/eventrecord"
	"github.com/meshnet-inc/meshd/fault"
)

// maximum distinct keys with store scans in flight at once; further
// scan starts are rejected rather than queued
const maximumScansInFlight = 100

// MessageCount - number of persisted messages for an account and bucket
//
// a scan already in flight for the key is awaited and shared; an
// uncached key starts a scan only when forceFetch is set, otherwise
// zero is returned without creating a cache entry
func MessageCount(account eventrecord.AccountID, bucket eventrecord.Bucket, forceFetch bool) (uint64, error) {
	if !isInitialised() {
		return 0, fault.CacheIsNotInitialised
	}
	if !bucket.IsValid() {
		return 0, fault.InvalidBucket
	}

	key := string(eventrecord.CountKey(account, bucket))

	counts := &globalData.counts
	counts.Lock()
	_, scanning := counts.inFlight[key]
	n, cached := counts.entries[key]
	counts.Unlock()

	if scanning {
		return scanCount(key, account, bucket)
	}
	if cached {
		return n, nil
	}
	if !forceFetch {
		return 0, nil
	}
	return scanCount(key, account, bucket)
}

// scanCount - resolve the exact persisted count through the single
// flight group: at most one store scan per key, all concurrent callers
// share its result
func scanCount(key string, account eventrecord.AccountID, bucket eventrecord.Bucket) (uint64, error) {
	counts := &globalData.counts

	result, err, _ := counts.scans.Do(key, func() (interface{}, error) {

		counts.Lock()
		// an earlier flight may have resolved the count already
		if n, ok := counts.entries[key]; ok {
			counts.Unlock()
			return n, nil
		}
		if len(counts.inFlight) >= maximumScansInFlight {
			counts.Unlock()
			return uint64(0), fault.TooManyScansInFlight
		}
		counts.inFlight[key] = struct{}{}
		counts.Unlock()

		defer func() {
			counts.Lock()
			delete(counts.inFlight, key)
			counts.Unlock()
		}()

		n, err := globalData.store.MessageKeyCount(account, bucket)
		if nil != err {
			return uint64(0), err
		}

		counts.Lock()
		counts.entries[key] = n
		counts.Unlock()
		return n, nil
	})
	if nil != err {
		return 0, err
	}
	return result.(uint64), nil
}

// ensureCount - the persisted baseline for a key, fetching it if the
// key is uncached, so deltas are never applied to an unknown base
func ensureCount(key string, account eventrecord.AccountID, bucket eventrecord.Bucket) error {
	counts := &globalData.counts

	counts.Lock()
	_, ok := counts.entries[key]
	counts.Unlock()
	if ok {
		return nil
	}
	_, err := scanCount(key, account, bucket)
	return err
}

// incrementCount - a message was persisted
func incrementCount(m eventrecord.Message) error {
	key := string(m.CountKey())
	if err := ensureCount(key, m.Account, m.Bucket); nil != err {
		return err
	}

	counts := &globalData.counts
	counts.Lock()
	counts.entries[key] += 1
	counts.Unlock()
	return nil
}

// decrementCount - a message was removed
//
// the count is exact and unsigned, so a decrement at zero can only
// mean a mis-ordered stream: hold at zero rather than wrap
func decrementCount(m eventrecord.Message) error {
	key := string(m.CountKey())
	if err := ensureCount(key, m.Account, m.Bucket); nil != err {
		return err
	}

	counts := &globalData.counts
	counts.Lock()
	n := counts.entries[key]
	if 0 == n {
		globalData.log.Warnf("count underflow for account: %d bucket: %s", m.Account, m.Bucket)
	} else {
		counts.entries[key] = n - 1
	}
	counts.Unlock()
	return nil
}
