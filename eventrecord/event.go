// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package eventrecord

import (
	"encoding/binary"
)

// AccountID - the entity owning messages and storage rentals
type AccountID uint64

// TsHashLength - bytes in a message timestamp hash
const TsHashLength = 24

// TsHash - timestamp-prefixed message digest, orders messages in time
type TsHash [TsHashLength]byte

// CountKeyLength - bytes in a composite count key
const CountKeyLength = 9

// Message - the accounting view of one persisted message
type Message struct {
	Account AccountID
	Bucket  Bucket
	TsHash  TsHash
}

// CountKey - composite key scoping all messages of one type for one
// account: account(8 big endian) ‖ bucket(1)
//
// the same bytes are the Messages pool key prefix, so a count of keys
// under this prefix is the exact persisted message count
func CountKey(account AccountID, bucket Bucket) []byte {
	key := make([]byte, CountKeyLength)
	binary.BigEndian.PutUint64(key, uint64(account))
	key[8] = byte(bucket)
	return key
}

// CountKey - the composite key of this message's (account, bucket)
func (m Message) CountKey() []byte {
	return CountKey(m.Account, m.Bucket)
}

// StorageKey - full Messages pool key for this message
func (m Message) StorageKey() []byte {
	key := make([]byte, CountKeyLength, CountKeyLength+TsHashLength)
	binary.BigEndian.PutUint64(key, uint64(m.Account))
	key[8] = byte(m.Bucket)
	return append(key, m.TsHash[:]...)
}

// Event - marker interface over all domain events
type Event interface {
	EventName() string
}

// MergeMessage - a message was merged into the store; the merge may
// report messages it transitively deleted (e.g. replaced reactions)
type MergeMessage struct {
	Added   Message
	Deleted []Message
}

// PruneMessage - a message was pruned by the storage enforcer
type PruneMessage struct {
	Pruned Message
}

// RevokeMessage - a message was revoked by a signer removal
type RevokeMessage struct {
	Revoked Message
}

// MergeUsernameProof - a username proof changed; exactly one of Added
// or Deleted is set
type MergeUsernameProof struct {
	Added   *Message
	Deleted *Message
}

// MergeOnChain - an on-chain event was mirrored; Rent is nil for
// on-chain kinds that do not carry a storage rental
type MergeOnChain struct {
	Rent *RentEvent
}

// EventName - merge-message
func (MergeMessage) EventName() string { return "merge-message" }

// EventName - prune-message
func (PruneMessage) EventName() string { return "prune-message" }

// EventName - revoke-message
func (RevokeMessage) EventName() string { return "revoke-message" }

// EventName - merge-username-proof
func (MergeUsernameProof) EventName() string { return "merge-username-proof" }

// EventName - merge-on-chain
func (MergeOnChain) EventName() string { return "merge-on-chain" }
