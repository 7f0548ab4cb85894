// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagecache

import (
	"time"

	"github.com/bitmark-inc/logger"
)

// sweep cycle time
const sweepInterval = 10 * time.Minute

// sweeper background
//
// rebuilds slots whose watermark has passed and evicts the ones left
// with no active rentals, so dead accounts do not pin memory; an
// absent slot correctly reads as zero units
type sweeper struct {
	log *logger.L
}

func (s *sweeper) Run(args interface{}, shutdown <-chan struct{}) {

	log := s.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-time.After(sweepInterval):
			s.sweepStaleSlots()
		}
	}

	log.Info("finished")
	log.Flush()
}

func (s *sweeper) sweepStaleSlots() {
	now, err := globalData.clock.Now()
	if nil != err {
		s.log.Warnf("sweep: clock error: %s", err)
		return
	}

	rental := &globalData.rental
	rental.Lock()
	defer rental.Unlock()

	swept := 0
	evicted := 0
	for account, slot := range rental.slots {
		if now < slot.invalidateAt {
			continue
		}

		fresh, err := recomputeSlot(account, now)
		if nil != err {
			s.log.Warnf("sweep: account: %d recompute error: %s", account, err)
			continue
		}

		swept += 1
		if 0 == fresh.units {
			delete(rental.slots, account)
			evicted += 1
			continue
		}
		rental.slots[account] = fresh
	}

	if swept > 0 {
		s.log.Infof("sweep: %d stale slots rebuilt, %d evicted", swept, evicted)
	}
}
