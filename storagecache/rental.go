// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagecache

import (
	"github.com/meshnet-inc/meshd/eventrecord"
	"github.com/meshnet-inc/meshd/fault"
)

// rentSlot - per-account rental aggregate
//
// units never includes a rental whose expiry was at or before the time
// the slot was last computed; invalidateAt is at most the minimum
// expiry among the rentals counted in units, so once it passes, the
// sum may overcount and must be rebuilt from the log before use
type rentSlot struct {
	units        uint64
	invalidateAt uint64
}

// one year of ledger seconds; the re-check horizon for a slot left
// with no active rentals, so it never ends up without a watermark
const farFutureOffset uint64 = 365 * 24 * 60 * 60

// foldRentEvent - the discard-vs-coalesce rule, applied everywhere a
// rental event meets a slot
//
// with no slot, or a slot already past its watermark, the aggregate is
// reseeded from this one event alone: compounding onto a stale base
// would preserve an already-wrong sum, and the next read reconciles
// fully from the log anyway. A still-valid slot coalesces: units add
// up and the watermark tightens to the soonest expiry seen
func foldRentEvent(slot *rentSlot, now uint64, units uint64, expiry uint64) rentSlot {
	if nil == slot || now >= slot.invalidateAt {
		return rentSlot{units: units, invalidateAt: expiry}
	}
	folded := rentSlot{
		units:        slot.units + units,
		invalidateAt: slot.invalidateAt,
	}
	if expiry < folded.invalidateAt {
		folded.invalidateAt = expiry
	}
	return folded
}

// applyRentEvent - fold a newly observed rental purchase into the
// account's slot
func applyRentEvent(r *eventrecord.RentEvent) {
	now, err := globalData.clock.Now()
	if nil != err {
		// without a trustworthy time keep the existing slot rather
		// than guess; the event is recovered at the next resync
		globalData.log.Errorf("rent event for account: %d skipped: %s", r.Account, err)
		return
	}

	rental := &globalData.rental
	rental.Lock()
	var slot *rentSlot
	if s, ok := rental.slots[r.Account]; ok {
		slot = &s
	}
	rental.slots[r.Account] = foldRentEvent(slot, now, r.Units, r.Expiry)
	rental.Unlock()
}

// CurrentStorageUnits - active storage capacity of an account
//
// a slot inside its watermark answers without touching the store; a
// stale slot is rebuilt from the durable rental log first, so the
// result never overcounts expired rentals
func CurrentStorageUnits(account eventrecord.AccountID) (uint64, error) {
	if !isInitialised() {
		return 0, fault.CacheIsNotInitialised
	}

	now, err := globalData.clock.Now()
	if nil != err {
		return 0, err
	}

	rental := &globalData.rental
	rental.RLock()
	slot, ok := rental.slots[account]
	rental.RUnlock()

	if !ok {
		return 0, nil // no rental ever recorded
	}
	if now < slot.invalidateAt {
		return slot.units, nil
	}

	// stale: rebuild under the write lock, re-checking the slot since
	// an apply or another reader may have replaced it meanwhile
	rental.Lock()
	defer rental.Unlock()

	slot, ok = rental.slots[account]
	if !ok {
		return 0, nil
	}
	if now < slot.invalidateAt {
		return slot.units, nil
	}

	fresh, err := recomputeSlot(account, now)
	if nil != err {
		return 0, err
	}
	rental.slots[account] = fresh
	return fresh.units, nil
}

// recomputeSlot - sum the account's still-active rentals from the
// durable log
//
// caller must hold the rental write lock
func recomputeSlot(account eventrecord.AccountID, now uint64) (rentSlot, error) {
	units := uint64(0)
	minExpiry := uint64(0)

	err := globalData.store.MapAccountRentEvents(account, func(r *eventrecord.RentEvent) error {
		if r.Expiry <= now {
			return nil // expired, contributes nothing
		}
		units += r.Units
		if 0 == minExpiry || r.Expiry < minExpiry {
			minExpiry = r.Expiry
		}
		return nil
	})
	if nil != err {
		return rentSlot{}, err
	}

	if 0 == minExpiry {
		minExpiry = now + farFutureOffset
	}
	return rentSlot{units: units, invalidateAt: minExpiry}, nil
}
