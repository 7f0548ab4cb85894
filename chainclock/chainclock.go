// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainclock - source of the current logical ledger time
//
// All timestamps carried by ledger records (rental expiries, message
// timestamp hashes) are expressed in seconds since the ledger genesis
// instant, not in Unix time.
package chainclock

import (
	"time"

	"github.com/meshnet-inc/meshd/fault"
)

// GenesisUnix - ledger genesis: 2021-01-01 00:00:00 UTC
const GenesisUnix int64 = 1609459200

// Clock - the logical time source
//
// Now returns the current ledger time in seconds since genesis, or
// fault.ClockIsNotAvailable if no trustworthy time can be produced.
type Clock interface {
	Now() (uint64, error)
}

type ledgerClock struct{}

// New - clock backed by the local wall clock
func New() Clock {
	return ledgerClock{}
}

func (ledgerClock) Now() (uint64, error) {
	unix := time.Now().Unix()
	if unix < GenesisUnix {
		return 0, fault.ClockIsNotAvailable
	}
	return uint64(unix - GenesisUnix), nil
}
