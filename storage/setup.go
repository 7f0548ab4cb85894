// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"

	"github.com/meshnet-inc/meshd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Messages       *PoolHandle `prefix:"M"`
	RentalEvents   *PoolHandle `prefix:"R"`
	UsernameProofs *PoolHandle `prefix:"U"`
	TestData       *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// holds the database handle
var poolData struct {
	sync.RWMutex
	db    *leveldb.DB
	cache Cache
	log   *logger.L
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
func Initialise(database string, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.db {
		return fault.AlreadyInitialised
	}

	poolData.log = logger.New("storage")
	if nil == poolData.log {
		return fault.InvalidLoggerChannel
	}

	ok := false
	defer func() {
		if !ok {
			dbClose()
		}
	}()

	db, err := leveldb.OpenFile(database, &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	})
	if nil != err {
		return err
	}
	poolData.db = db
	poolData.cache = newCache()

	// ensure no database downgrade
	version, err := dbVersion(db)
	if nil != err {
		return err
	}
	if version > currentDBVersion {
		poolData.log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return fault.WrongDatabaseVersion
	}
	if 0 == version && !readOnly {
		err = putDBVersion(db, currentDBVersion)
		if nil != err {
			return err
		}
	}

	// assign a handle to each pool from its prefix tag
	poolType := reflect.TypeOf(Pool)
	poolValue := reflect.ValueOf(&Pool).Elem()

	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)
		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			poolData.log.Criticalf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
			return fault.InvalidPoolPrefix
		}

		prefix := prefixTag[0]
		p := &PoolHandle{
			prefix: prefix,
			limit:  []byte{prefix + 1},
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	ok = true
	poolData.log.Info("initialised")
	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()
	dbClose()
}

// IsOpen - check the database is open and usable
func IsOpen() bool {
	poolData.RLock()
	defer poolData.RUnlock()
	return nil != poolData.db
}

// must hold poolData lock before calling
func dbClose() {
	if nil != poolData.db {
		if nil != poolData.cache {
			poolData.cache.Clear()
		}
		err := poolData.db.Close()
		if nil != err && nil != poolData.log {
			poolData.log.Errorf("database close error: %s", err)
		}
		poolData.db = nil
		poolData.cache = nil
	}
	if nil != poolData.log {
		poolData.log.Flush()
	}
}

// read the stored database version, zero if not yet written
func dbVersion(db *leveldb.DB) (uint64, error) {
	buffer, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	}
	if nil != err {
		return 0, err
	}
	if 8 != len(buffer) {
		return 0, fault.WrongDatabaseVersion
	}
	return be8(buffer), nil
}

func putDBVersion(db *leveldb.DB, version uint64) error {
	return db.Put(versionKey, be8buffer(version), nil)
}
