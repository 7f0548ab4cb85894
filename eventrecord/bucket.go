// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2021 Meshnet Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package eventrecord

import (
	"fmt"

	"github.com/meshnet-inc/meshd/fault"
)

// Bucket - message-type partition enumeration
type Bucket uint8

// possible bucket values
const (
	BucketCasts         Bucket = iota
	BucketLinks         Bucket = iota
	BucketReactions     Bucket = iota
	BucketVerifications Bucket = iota
	BucketUsernameProof Bucket = iota
	BucketUserData      Bucket = iota
	maximumBucket       Bucket = iota // this must be the last value

	// BucketCount - number of valid buckets
	BucketCount = int(maximumBucket)
)

// internal conversion
func toString(b Bucket) (string, error) {
	switch b {
	case BucketCasts:
		return "casts", nil
	case BucketLinks:
		return "links", nil
	case BucketReactions:
		return "reactions", nil
	case BucketVerifications:
		return "verifications", nil
	case BucketUsernameProof:
		return "username-proofs", nil
	case BucketUserData:
		return "user-data", nil
	default:
		return "", fault.InvalidBucket
	}
}

// IsValid - check the bucket is one of the defined partitions
func (bucket Bucket) IsValid() bool {
	return bucket < maximumBucket
}

// String - convert a bucket to its name
func (bucket Bucket) String() string {
	s, err := toString(bucket)
	if nil != err {
		return fmt.Sprintf("*bucket-%d*", uint8(bucket))
	}
	return s
}

// GoString - both enum value and name, for debugging
func (bucket Bucket) GoString() string {
	return fmt.Sprintf("<Bucket#%d:%q>", uint8(bucket), bucket.String())
}
