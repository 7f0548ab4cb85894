// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagecache

import (
	"github.com/meshnet-inc/meshd/eventrecord"
	"github.com/meshnet-inc/meshd/storage"
)

// Store - the persistent store operations the cache depends on
type Store interface {

	// MessageKeyCount - exact number of persisted messages for the
	// account and bucket; a bounded key scan
	MessageKeyCount(account eventrecord.AccountID, bucket eventrecord.Bucket) (uint64, error)

	// MapRentEvents - ordered iteration over the whole rental log
	MapRentEvents(f func(r *eventrecord.RentEvent) error) error

	// MapAccountRentEvents - ordered iteration scoped to one account
	MapAccountRentEvents(account eventrecord.AccountID, f func(r *eventrecord.RentEvent) error) error

	// IsOpen - store health flag
	IsOpen() bool
}

// PoolStore - Store over the leveldb storage pools
type PoolStore struct {
	messages storage.Handle
	rentals  storage.Handle
}

// NewPoolStore - bind the cache to the Messages and RentalEvents pools
func NewPoolStore(messages storage.Handle, rentals storage.Handle) *PoolStore {
	return &PoolStore{
		messages: messages,
		rentals:  rentals,
	}
}

// MessageKeyCount - count keys under the (account ‖ bucket) prefix
func (s *PoolStore) MessageKeyCount(account eventrecord.AccountID, bucket eventrecord.Bucket) (uint64, error) {
	return s.messages.KeysWithPrefixCount(eventrecord.CountKey(account, bucket))
}

// MapRentEvents - stream the rental log in log order
//
// the pool key is the big-endian log index, so leveldb key order is
// log order
func (s *PoolStore) MapRentEvents(f func(r *eventrecord.RentEvent) error) error {
	return s.rentals.NewFetchCursor().Map(func(key []byte, value []byte) error {
		r, err := eventrecord.UnpackRentEvent(value)
		if nil != err {
			return err
		}
		return f(r)
	})
}

// MapAccountRentEvents - stream the rental log filtered to one account
func (s *PoolStore) MapAccountRentEvents(account eventrecord.AccountID, f func(r *eventrecord.RentEvent) error) error {
	return s.MapRentEvents(func(r *eventrecord.RentEvent) error {
		if account != r.Account {
			return nil
		}
		return f(r)
	})
}

// IsOpen - delegate to the database state
func (s *PoolStore) IsOpen() bool {
	return storage.IsOpen()
}
