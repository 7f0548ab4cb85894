// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagecache

import (
	"github.com/meshnet-inc/meshd/eventrecord"
	"github.com/meshnet-inc/meshd/fault"
)

// progress report spacing while streaming the rental log
const resyncProgressInterval = 10000

// Resync - rebuild all rental slots from the durable log
//
// idempotent and safe to rerun; the new slot map replaces the old one
// atomically, readers see either the old or the new state
func Resync() error {
	if !isInitialised() {
		return fault.CacheIsNotInitialised
	}
	return resync()
}

func resync() error {
	log := globalData.log

	if !globalData.store.IsOpen() {
		return fault.StorageIsNotOpen
	}

	now, err := globalData.clock.Now()
	if nil != err {
		log.Errorf("resync: clock error: %s", err)
		return err
	}

	log.Infof("resync: begin at ledger time: %d", now)

	// warm index state refers to the pre-rebuild world
	globalData.index.ClearCache()

	working := make(map[eventrecord.AccountID]rentSlot)
	eventCount := 0

	err = globalData.store.MapRentEvents(func(r *eventrecord.RentEvent) error {
		eventCount += 1
		if 0 == eventCount%resyncProgressInterval {
			log.Infof("resync: %d rental events processed", eventCount)
		}
		if r.Expiry <= now {
			return nil // already expired, contributes nothing
		}

		var slot *rentSlot
		if s, ok := working[r.Account]; ok {
			slot = &s
		}
		working[r.Account] = foldRentEvent(slot, now, r.Units, r.Expiry)
		return nil
	})
	if nil != err {
		log.Errorf("resync: rental log error: %s", err)
		return err
	}

	// publish; an empty log is a valid ledger
	globalData.rental.Lock()
	globalData.rental.slots = working
	globalData.rental.Unlock()

	log.Infof("resync: complete: %d rental events, %d accounts with active rentals", eventCount, len(working))
	return nil
}
