// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"

	"github.com/meshnet-inc/meshd/fault"
)

// Handle - the record level operations of a pool
type Handle interface {
	Put(key []byte, value []byte)
	PutN(key []byte, value uint64)
	Get(key []byte) []byte
	GetN(key []byte) (uint64, bool)
	Has(key []byte) bool
	Delete(key []byte)
	KeysWithPrefixCount(keyPrefix []byte) (uint64, error)
	NewFetchCursor() *FetchCursor
}

// PoolHandle - concrete pool over one key prefix of the database
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary key/value pair
type Element struct {
	Key   []byte
	Value []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - store a key/value bytes pair to the database
func (p *PoolHandle) Put(key []byte, value []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		logger.Panic("pool.Put nil database")
		return
	}
	prefixed := p.prefixKey(key)
	poolData.cache.Set(dbPut, string(prefixed), value)
	err := poolData.db.Put(prefixed, value, nil)
	logger.PanicIfError("pool.Put", err)
}

// Delete - remove a key from the database
func (p *PoolHandle) Delete(key []byte) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		logger.Panic("pool.Delete nil database")
		return
	}
	prefixed := p.prefixKey(key)
	poolData.cache.Set(dbDelete, string(prefixed), []byte{})
	err := poolData.db.Delete(prefixed, nil)
	logger.PanicIfError("pool.Delete", err)
}

// Get - read a value for a given key
//
// this returns the actual element - copy the result if it must be preserved
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return nil
	}
	prefixed := p.prefixKey(key)
	if value, found := poolData.cache.Get(string(prefixed)); found {
		return value
	}
	value, err := poolData.db.Get(prefixed, nil)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	poolData.cache.Set(dbPut, string(prefixed), value)
	return value
}

// PutN - store a uint64 as an 8 byte big endian record
func (p *PoolHandle) PutN(key []byte, value uint64) {
	p.Put(key, be8buffer(value))
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second return is false if record was not found
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	buffer := p.Get(key)
	if nil == buffer || len(buffer) < 8 {
		return 0, false
	}
	return be8(buffer), true
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	return nil != p.Get(key)
}

// KeysWithPrefixCount - exact count of the keys sharing a prefix
//
// the prefix is relative to the pool, i.e. the pool prefix byte is
// prepended before scanning
func (p *PoolHandle) KeysWithPrefixCount(keyPrefix []byte) (uint64, error) {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		return 0, fault.DatabaseIsNotSet
	}

	searchRange := ldb_util.BytesPrefix(p.prefixKey(keyPrefix))
	iter := poolData.db.NewIterator(searchRange, nil)

	count := uint64(0)
	for iter.Next() {
		count += 1
	}
	iter.Release()
	err := iter.Error()
	if nil != err {
		return 0, err
	}
	return count, nil
}

// decode first 8 bytes as big endian uint64
func be8(buffer []byte) uint64 {
	return binary.BigEndian.Uint64(buffer[:8])
}

// encode a uint64 as 8 bytes big endian
func be8buffer(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}
