// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError
type UnavailableError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised      = ExistsError("already initialised")
	CacheIsNotInitialised   = UnavailableError("cache is not initialised")
	CannotDecodeRentalEvent = RecordError("cannot decode rental event")
	ClockIsNotAvailable     = UnavailableError("clock is not available")
	DatabaseIsNotSet        = UnavailableError("database is not set")
	InvalidBucket           = InvalidError("invalid bucket")
	InvalidCount            = InvalidError("invalid count")
	InvalidCursor           = InvalidError("invalid cursor")
	InvalidLoggerChannel    = InvalidError("invalid logger channel")
	InvalidPoolPrefix       = InvalidError("invalid pool prefix")
	MissingParameters       = InvalidError("missing parameters")
	StorageIsNotOpen        = UnavailableError("storage is not open")
	TooManyScansInFlight    = ProcessError("too many scans in flight")
	WrongDatabaseVersion    = InvalidError("wrong database version")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string      { return string(e) }
func (e InvalidError) Error() string     { return string(e) }
func (e NotFoundError) Error() string    { return string(e) }
func (e ProcessError) Error() string     { return string(e) }
func (e RecordError) Error() string      { return string(e) }
func (e UnavailableError) Error() string { return string(e) }

// IsErrExists - determine the class of an error
func IsErrExists(e error) bool { _, ok := e.(ExistsError); return ok }

// IsErrInvalid - check for invalid class
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - check for not found class
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrProcess - check for process class
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }

// IsErrRecord - check for record class
func IsErrRecord(e error) bool { _, ok := e.(RecordError); return ok }

// IsErrUnavailable - check for unavailable class
func IsErrUnavailable(e error) bool { _, ok := e.(UnavailableError); return ok }
