// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagecache

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/bitmark-inc/logger"

	"github.com/meshnet-inc/meshd/background"
	"github.com/meshnet-inc/meshd/chainclock"
	"github.com/meshnet-inc/meshd/eventrecord"
	"github.com/meshnet-inc/meshd/fault"
	"github.com/meshnet-inc/meshd/pendingindex"
)

// message count state
type countsData struct {
	sync.Mutex
	entries  map[string]uint64
	inFlight map[string]struct{}
	scans    singleflight.Group
}

// rental slot state
type rentalData struct {
	sync.RWMutex
	slots map[eventrecord.AccountID]rentSlot
}

// globals
type globalDataType struct {
	sync.RWMutex
	log         *logger.L
	initialised bool

	store Store
	index pendingindex.Index
	clock chainclock.Clock

	counts countsData
	rental rentalData

	background *background.T
}

// global storage
var globalData globalDataType

// Initialise - create the cache and seed rental slots from the
// durable log
//
// a failed initial resync aborts initialisation: callers must treat
// this as fatal at startup
func Initialise(store Store, index pendingindex.Index, clock chainclock.Clock) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.AlreadyInitialised
	}
	if nil == store || nil == index || nil == clock {
		return fault.MissingParameters
	}

	globalData.log = logger.New("storagecache")
	if nil == globalData.log {
		return fault.InvalidLoggerChannel
	}
	globalData.log.Info("starting…")

	globalData.store = store
	globalData.index = index
	globalData.clock = clock

	globalData.counts.entries = make(map[string]uint64)
	globalData.counts.inFlight = make(map[string]struct{})
	globalData.rental.slots = make(map[eventrecord.AccountID]rentSlot)

	globalData.initialised = true

	if err := resync(); nil != err {
		globalData.log.Criticalf("initial resync error: %s", err)
		globalData.log.Flush()
		globalData.initialised = false
		return err
	}

	globalData.log.Info("start background…")

	processes := background.Processes{
		&sweeper{log: logger.New("storagecache-sweep")},
	}
	globalData.background = background.Start(processes, nil)

	return nil
}

// Finalise - stop background processing
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.CacheIsNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.background.Stop()
	globalData.background = nil
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()
	return nil
}

// EarliestPending - identifier of the earliest not-yet-processed item
// for the account and bucket, false if none; delegated to the
// secondary index
func EarliestPending(account eventrecord.AccountID, bucket eventrecord.Bucket) ([]byte, bool) {
	globalData.RLock()
	initialised := globalData.initialised
	index := globalData.index
	globalData.RUnlock()

	if !initialised {
		return nil, false
	}
	return index.EarliestPending(account, bucket)
}

// ReadCounters - cache occupancy, for operational display
//
// returns cached count entries, rental slots, scans in flight
func ReadCounters() (int, int, int) {
	globalData.counts.Lock()
	entries := len(globalData.counts.entries)
	scans := len(globalData.counts.inFlight)
	globalData.counts.Unlock()

	globalData.rental.RLock()
	slots := len(globalData.rental.slots)
	globalData.rental.RUnlock()

	return entries, slots, scans
}

func isInitialised() bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.initialised
}
