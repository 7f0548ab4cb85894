// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagecache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meshnet-inc/meshd/eventrecord"
	"github.com/meshnet-inc/meshd/fault"
)

func TestResyncRebuild(t *testing.T) {
	f := setupCache(t)
	defer teardownCache(t)

	// account 1: two active rentals and one expired
	f.store.addRentEvent(1, 10, t0+1000)
	f.store.addRentEvent(1, 5, t0+500)
	f.store.addRentEvent(1, 7, t0-10)
	// account 2: everything expired
	f.store.addRentEvent(2, 9, t0-1)
	f.store.addRentEvent(2, 4, t0)
	// account 3: one active rental
	f.store.addRentEvent(3, 3, t0+50)

	cleared := f.index.clearedCount()

	assert.Nil(t, Resync(), "resync error")

	assert.Equal(t, cleared+1, f.index.clearedCount(), "index warm state not cleared")

	n, err := CurrentStorageUnits(1)
	assert.Nil(t, err, "units error")
	assert.Equal(t, uint64(15), n, "wrong units for account 1")

	slot, ok := slotOf(1)
	assert.True(t, ok, "missing slot for account 1")
	assert.Equal(t, rentSlot{units: 15, invalidateAt: t0 + 500}, slot, "wrong slot for account 1")

	// fully expired accounts get no slot at all
	_, ok = slotOf(2)
	assert.False(t, ok, "slot for fully expired account")
	n, err = CurrentStorageUnits(2)
	assert.Nil(t, err, "units error")
	assert.Equal(t, uint64(0), n, "units for fully expired account")

	n, err = CurrentStorageUnits(3)
	assert.Nil(t, err, "units error")
	assert.Equal(t, uint64(3), n, "wrong units for account 3")
}

func TestResyncEmptyLogIsValid(t *testing.T) {
	_ = setupCache(t)
	defer teardownCache(t)

	assert.Nil(t, Resync(), "resync of empty ledger failed")

	_, slots, _ := ReadCounters()
	assert.Equal(t, 0, slots, "slots from an empty log")
}

func TestResyncIsIdempotent(t *testing.T) {
	f := setupCache(t)
	defer teardownCache(t)

	f.store.addRentEvent(4, 12, t0+300)

	assert.Nil(t, Resync(), "first resync error")
	first, _ := slotOf(4)

	assert.Nil(t, Resync(), "second resync error")
	second, _ := slotOf(4)

	assert.Equal(t, first, second, "resync not idempotent")
}

// resync replaces slots wholesale: an aggregate poisoned by events the
// log never recorded is corrected
func TestResyncReplacesSlots(t *testing.T) {
	f := setupCache(t)
	defer teardownCache(t)

	assert.Nil(t, ProcessEvent(&eventrecord.MergeOnChain{
		Rent: &eventrecord.RentEvent{Account: 5, Units: 99, Expiry: t0 + 900},
	}), "event error")

	f.store.addRentEvent(5, 6, t0+900)

	assert.Nil(t, Resync(), "resync error")

	n, err := CurrentStorageUnits(5)
	assert.Nil(t, err, "units error")
	assert.Equal(t, uint64(6), n, "stale aggregate survived resync")
}

func TestResyncRequiresOpenStore(t *testing.T) {
	f := setupCache(t)
	defer teardownCache(t)

	f.store.Lock()
	f.store.closed = true
	f.store.Unlock()

	assert.Equal(t, error(fault.StorageIsNotOpen), Resync(), "closed store accepted")
}

func TestResyncClockErrorRetainsState(t *testing.T) {
	f := setupCache(t)
	defer teardownCache(t)

	f.store.addRentEvent(6, 8, t0+100)
	assert.Nil(t, Resync(), "seed resync error")

	f.clock.fail(fault.ClockIsNotAvailable)
	assert.Equal(t, error(fault.ClockIsNotAvailable), Resync(), "clock error swallowed")

	// prior slots are untouched
	slot, ok := slotOf(6)
	assert.True(t, ok, "slot lost on failed resync")
	assert.Equal(t, rentSlot{units: 8, invalidateAt: t0 + 100}, slot, "slot changed on failed resync")
}

// initialisation seeds the slots without waiting for a query
func TestInitialiseSeedsSlots(t *testing.T) {
	store := newStubStore()
	store.addRentEvent(7, 20, t0+100)
	clock := newStubClock(t0)
	index := newStubIndex()

	assert.Nil(t, Initialise(store, index, clock), "initialise error")
	defer teardownCache(t)

	slot, ok := slotOf(7)
	assert.True(t, ok, "slot not seeded at startup")
	assert.Equal(t, rentSlot{units: 20, invalidateAt: t0 + 100}, slot, "wrong seeded slot")
}

func TestInitialiseFailsWithClosedStore(t *testing.T) {
	store := newStubStore()
	store.closed = true

	err := Initialise(store, newStubIndex(), newStubClock(t0))
	assert.Equal(t, error(fault.StorageIsNotOpen), err, "closed store accepted at startup")

	// the failed startup leaves the cache unusable
	_, err = CurrentStorageUnits(1)
	assert.Equal(t, error(fault.CacheIsNotInitialised), err, "cache usable after failed startup")
}
