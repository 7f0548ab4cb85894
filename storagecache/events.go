// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagecache

import (
	"github.com/meshnet-inc/meshd/eventrecord"
	"github.com/meshnet-inc/meshd/fault"
)

// ProcessEvent - apply one domain event to the cache
//
// counting errors (e.g. the store being unavailable during a lazy
// backfill) are logged and swallowed: the affected counter stays at
// its last known value and heals on the next explicit query, which
// beats stalling the event stream. Unrecognised event kinds are
// ignored.
func ProcessEvent(event eventrecord.Event) error {
	if !isInitialised() {
		return fault.CacheIsNotInitialised
	}
	if nil == event {
		return nil
	}

	log := globalData.log

	switch ev := event.(type) {

	case *eventrecord.MergeMessage:
		if err := incrementCount(ev.Added); nil != err {
			log.Errorf("merge count for account: %d bucket: %s error: %s", ev.Added.Account, ev.Added.Bucket, err)
		}
		for _, deleted := range ev.Deleted {
			if err := decrementCount(deleted); nil != err {
				log.Errorf("merge delete count for account: %d bucket: %s error: %s", deleted.Account, deleted.Bucket, err)
			}
		}

	case *eventrecord.PruneMessage:
		if err := decrementCount(ev.Pruned); nil != err {
			log.Errorf("prune count for account: %d bucket: %s error: %s", ev.Pruned.Account, ev.Pruned.Bucket, err)
		}

	case *eventrecord.RevokeMessage:
		if err := decrementCount(ev.Revoked); nil != err {
			log.Errorf("revoke count for account: %d bucket: %s error: %s", ev.Revoked.Account, ev.Revoked.Bucket, err)
		}

	case *eventrecord.MergeUsernameProof:
		if nil != ev.Added {
			if err := incrementCount(*ev.Added); nil != err {
				log.Errorf("proof count for account: %d error: %s", ev.Added.Account, err)
			}
		}
		if nil != ev.Deleted {
			if err := decrementCount(*ev.Deleted); nil != err {
				log.Errorf("proof delete count for account: %d error: %s", ev.Deleted.Account, err)
			}
		}

	case *eventrecord.MergeOnChain:
		if nil != ev.Rent {
			applyRentEvent(ev.Rent)
		}

	default:
		log.Debugf("ignored event: %s", event.EventName())
	}

	return nil
}
