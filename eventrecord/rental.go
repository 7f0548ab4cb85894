// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package eventrecord

import (
	"encoding/binary"

	"github.com/meshnet-inc/meshd/fault"
)

// RentEvent - a time-bounded grant of storage capacity recorded on
// chain; rentals accumulate per account and are never retracted, only
// expire
type RentEvent struct {
	Account AccountID
	Units   uint64
	Expiry  uint64 // ledger seconds, exclusive: the rental is active while now < Expiry
}

// PackedRentEventLength - bytes in a packed rental event
const PackedRentEventLength = 24

// Pack - binary record for the durable rental log
//
// layout: account(8) ‖ units(8) ‖ expiry(8), all big endian
func (r RentEvent) Pack() []byte {
	buffer := make([]byte, PackedRentEventLength)
	binary.BigEndian.PutUint64(buffer[0:8], uint64(r.Account))
	binary.BigEndian.PutUint64(buffer[8:16], r.Units)
	binary.BigEndian.PutUint64(buffer[16:24], r.Expiry)
	return buffer
}

// UnpackRentEvent - decode a packed rental event record
func UnpackRentEvent(buffer []byte) (*RentEvent, error) {
	if PackedRentEventLength != len(buffer) {
		return nil, fault.CannotDecodeRentalEvent
	}
	return &RentEvent{
		Account: AccountID(binary.BigEndian.Uint64(buffer[0:8])),
		Units:   binary.BigEndian.Uint64(buffer[8:16]),
		Expiry:  binary.BigEndian.Uint64(buffer[16:24]),
	}, nil
}
