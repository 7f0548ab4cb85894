// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/meshnet-inc/meshd/fault"
)

// test that each error class is detected correctly
func TestClassification(t *testing.T) {

	if !fault.IsErrExists(fault.AlreadyInitialised) {
		t.Errorf("AlreadyInitialised is not an exists error")
	}
	if !fault.IsErrProcess(fault.TooManyScansInFlight) {
		t.Errorf("TooManyScansInFlight is not a process error")
	}
	if !fault.IsErrUnavailable(fault.StorageIsNotOpen) {
		t.Errorf("StorageIsNotOpen is not an unavailable error")
	}
	if !fault.IsErrUnavailable(fault.ClockIsNotAvailable) {
		t.Errorf("ClockIsNotAvailable is not an unavailable error")
	}
	if !fault.IsErrRecord(fault.CannotDecodeRentalEvent) {
		t.Errorf("CannotDecodeRentalEvent is not a record error")
	}
	if fault.IsErrInvalid(fault.TooManyScansInFlight) {
		t.Errorf("TooManyScansInFlight misclassified as invalid")
	}
}

// errors must compare equal to themselves so callers can use ==
func TestComparison(t *testing.T) {

	var err error = fault.TooManyScansInFlight
	if err != fault.TooManyScansInFlight {
		t.Errorf("error instance does not compare equal")
	}
	if err == error(fault.StorageIsNotOpen) {
		t.Errorf("distinct errors compare equal")
	}
}
