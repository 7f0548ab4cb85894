// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainclock_test

import (
	"testing"
	"time"

	"github.com/meshnet-inc/meshd/chainclock"
)

func TestNow(t *testing.T) {

	clk := chainclock.New()

	before := time.Now().Unix() - chainclock.GenesisUnix
	now, err := clk.Now()
	if nil != err {
		t.Fatalf("clock error: %s", err)
	}
	after := time.Now().Unix() - chainclock.GenesisUnix

	if now < uint64(before) || now > uint64(after) {
		t.Errorf("ledger time out of range: %d  expected: %d..%d", now, before, after)
	}
}
