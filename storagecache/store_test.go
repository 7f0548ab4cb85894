// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storagecache

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meshnet-inc/meshd/eventrecord"
	"github.com/meshnet-inc/meshd/storage"
)

const testDatabase = testingDirName + "/poolstore.leveldb"

// the PoolStore adapter against a real database
func TestPoolStore(t *testing.T) {
	_ = os.RemoveAll(testDatabase)
	err := storage.Initialise(testDatabase, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	defer func() {
		storage.Finalise()
		_ = os.RemoveAll(testDatabase)
	}()

	store := NewPoolStore(storage.Pool.Messages, storage.Pool.RentalEvents)
	assert.True(t, store.IsOpen(), "store not open")

	// three casts and one link for account 1
	for i := byte(0); i < 3; i += 1 {
		m := eventrecord.Message{Account: 1, Bucket: eventrecord.BucketCasts}
		m.TsHash[0] = i
		storage.Pool.Messages.Put(m.StorageKey(), []byte{1})
	}
	link := eventrecord.Message{Account: 1, Bucket: eventrecord.BucketLinks}
	storage.Pool.Messages.Put(link.StorageKey(), []byte{1})

	n, err := store.MessageKeyCount(1, eventrecord.BucketCasts)
	assert.Nil(t, err, "count error")
	assert.Equal(t, uint64(3), n, "wrong cast count")

	n, err = store.MessageKeyCount(1, eventrecord.BucketLinks)
	assert.Nil(t, err, "count error")
	assert.Equal(t, uint64(1), n, "wrong link count")

	n, err = store.MessageKeyCount(2, eventrecord.BucketCasts)
	assert.Nil(t, err, "count error")
	assert.Equal(t, uint64(0), n, "count for empty account")

	// rental log, written out of order, read back in log order
	putRent := func(logIndex uint64, r eventrecord.RentEvent) {
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, logIndex)
		storage.Pool.RentalEvents.Put(key, r.Pack())
	}
	putRent(2, eventrecord.RentEvent{Account: 1, Units: 5, Expiry: 200})
	putRent(1, eventrecord.RentEvent{Account: 1, Units: 10, Expiry: 100})
	putRent(3, eventrecord.RentEvent{Account: 2, Units: 7, Expiry: 300})

	collected := make([]eventrecord.RentEvent, 0, 3)
	err = store.MapRentEvents(func(r *eventrecord.RentEvent) error {
		collected = append(collected, *r)
		return nil
	})
	assert.Nil(t, err, "map error")
	assert.Equal(t, []eventrecord.RentEvent{
		{Account: 1, Units: 10, Expiry: 100},
		{Account: 1, Units: 5, Expiry: 200},
		{Account: 2, Units: 7, Expiry: 300},
	}, collected, "wrong log order")

	// filtered iteration
	total := uint64(0)
	err = store.MapAccountRentEvents(1, func(r *eventrecord.RentEvent) error {
		total += r.Units
		return nil
	})
	assert.Nil(t, err, "filtered map error")
	assert.Equal(t, uint64(15), total, "wrong filtered total")

	// a corrupted record stops iteration with a decode error
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, 4)
	storage.Pool.RentalEvents.Put(key, []byte("garbage"))

	err = store.MapRentEvents(func(r *eventrecord.RentEvent) error { return nil })
	assert.NotNil(t, err, "corrupted record accepted")
}
