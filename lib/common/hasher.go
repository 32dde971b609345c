// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"golang.org/x/crypto/blake2b"
)

// Blake2bHash returns the blake2b-256 digest of the concatenated inputs.
func Blake2bHash(data ...[]byte) (hash Hash) {
	h, err := blake2b.New256(nil)
	if err != nil {
		// only fails for keys longer than 64 bytes
		panic(err)
	}
	for _, d := range data {
		_, _ = h.Write(d)
	}
	h.Sum(hash[:0])
	return hash
}
